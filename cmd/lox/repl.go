package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"ashn.dev/lox"
)

const (
	promptMain = "> "
	promptCont = ". "
	banner     = "lox REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit."
)

// historyPath resolves a relative history file against home. An empty result
// disables history.
func historyPath(config lox.Config, home string) string {
	if config.HistoryFile == "" || filepath.IsAbs(config.HistoryFile) {
		return config.HistoryFile
	}
	if home == "" {
		return ""
	}
	return filepath.Join(home, config.HistoryFile)
}

// repl runs an interactive session. Bindings persist between inputs because
// every input is evaluated in the base environment of ctx.
func repl(ctx *lox.Context, config lox.Config, home string) int {
	fmt.Println(banner)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := historyPath(config, home)
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	line := 1
	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return exitOk
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return exitOk
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		location := lox.Ptr(lox.SourceLocation{File: "<repl>", Line: line})
		line += strings.Count(code, "\n") + 1

		value, err := ctx.EvalSource(code, location)
		if err != nil {
			reportError(os.Stderr, err, config.Color)
			continue
		}
		if _, isNil := value.(*lox.Nil); !isNil {
			fmt.Println(value.String())
		}
	}
}

// prompter reads one line of input. *liner.State implements it.
type prompter interface {
	Prompt(prompt string) (string, error)
}

// readByParseProbe reads lines until they form input that parses, or that
// fails to parse for a reason other than ending too early.
func readByParseProbe(ln prompter, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" {
			return src, true
		}
		_, perr := lox.ParseSource(src, nil, false)
		if perr != nil && lox.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
