package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"ashn.dev/lox"
)

// Exit statuses, following sysexits.h.
const (
	exitOk       = 0
	exitUsage    = 1
	exitDataErr  = 65
	exitSoftware = 70
)

var logger = log.New(os.Stderr, "lox: ", 0)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func readSourceFile(path string) (string, *lox.SourceLocation, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return string(bytes), lox.Ptr(lox.SourceLocation{File: path, Line: 1}), nil
}

func dumpTokensSource(w io.Writer, source string, location *lox.SourceLocation) error {
	lexer := lox.NewLexer(source, location)
	tokens, err := lexer.Tokens()
	if err != nil {
		return err
	}
	return lox.DumpTokens(w, tokens)
}

func dumpAstSource(ctx *lox.Context, w io.Writer, source string, location *lox.SourceLocation) error {
	program, err := ctx.Parse(source, location)
	if err != nil {
		return err
	}
	return lox.DumpProgram(w, program)
}

func runSource(ctx *lox.Context, source string, location *lox.SourceLocation) error {
	program, err := ctx.Parse(source, location)
	if err != nil {
		return err
	}
	return ctx.Run(program)
}

// loadConfig reads the configuration named on the command line, or
// .lox.yaml in home when it exists. An empty home skips the lookup.
func loadConfig(path *string, home string) (lox.Config, error) {
	if path != nil {
		return lox.LoadConfig(*path)
	}
	if home == "" {
		return lox.DefaultConfig(), nil
	}
	defaultPath := filepath.Join(home, ".lox.yaml")
	if _, err := os.Stat(defaultPath); err != nil {
		return lox.DefaultConfig(), nil
	}
	return lox.LoadConfig(defaultPath)
}

func reportError(w io.Writer, err error, color bool) {
	message := lox.Report(err)
	if color {
		message = red(message)
	}
	fmt.Fprintln(w, message)
}

func exitStatus(err error) int {
	var parseError lox.ParseError
	if errors.As(err, &parseError) {
		return exitDataErr
	}
	var runtimeError lox.RuntimeError
	if errors.As(err, &runtimeError) {
		return exitSoftware
	}
	return exitUsage
}

func usage(w io.Writer) {
	program := os.Args[0]
	fmt.Fprintf(w, `usage:
  %s FILE
  %s [-c|--command] COMMAND
  %s

options:
  -c, --command     Execute the provided command.
  --config=PATH     Read settings from PATH instead of ~/.lox.yaml.
  --dump-tokens     Dump the lexed tokens to stdout as YAML.
  --dump-ast        Dump the parsed syntax tree to stdout as YAML.
  --all-errors      Report every syntax error instead of only the first.
  --no-color        Do not colorize diagnostics.
  -h, --help        Display this help text and exit.

Without a file or command an interactive session is started.
`, program, program, program)
}

func main() {
	reCommand := regexp.MustCompile(`^-+c(?:ommand)?(?:=(.*))?$`)
	reConfig := regexp.MustCompile(`^-+config(?:=(.*))?$`)
	reDumpTokens := regexp.MustCompile(`^-+dump-tokens$`)
	reDumpAst := regexp.MustCompile(`^-+dump-ast$`)
	reAllErrors := regexp.MustCompile(`^-+all-errors$`)
	reNoColor := regexp.MustCompile(`^-+no-color$`)
	reHelp := regexp.MustCompile(`^-+h(?:elp)?(?:=(.*))?$`)

	var cmds *string
	var file *string
	var configPath *string
	dumpTokens := false
	dumpAst := false
	allErrors := false
	noColor := false
	argi := 1
	for argi < len(os.Args) {
		arg := os.Args[argi]

		// Remaining args are positional.
		if arg == "--" {
			if argi+1 < len(os.Args) && file == nil && cmds == nil {
				file = &os.Args[argi+1]
			}
			break
		}

		// -c, -command
		if m := reCommand.FindStringSubmatch(arg); m != nil {
			// -c='print "hello world";'
			if m[1] != "" {
				cmds = &m[1]
				argi += 1
				continue
			}

			// -c 'print "hello world";'
			if argi+1 < len(os.Args) {
				cmds = &os.Args[argi+1]
				argi += 2
				continue
			}

			fmt.Fprintf(os.Stderr, "error: expected command argument\n")
			usage(os.Stderr)
			os.Exit(exitUsage)
		}

		// -config=PATH, -config PATH
		if m := reConfig.FindStringSubmatch(arg); m != nil {
			if m[1] != "" {
				configPath = &m[1]
				argi += 1
				continue
			}
			if argi+1 < len(os.Args) {
				configPath = &os.Args[argi+1]
				argi += 2
				continue
			}

			fmt.Fprintf(os.Stderr, "error: expected config path argument\n")
			usage(os.Stderr)
			os.Exit(exitUsage)
		}

		// -dump-tokens
		if reDumpTokens.MatchString(arg) {
			dumpTokens = true
			argi += 1
			continue
		}

		// -dump-ast
		if reDumpAst.MatchString(arg) {
			dumpAst = true
			argi += 1
			continue
		}

		// -all-errors
		if reAllErrors.MatchString(arg) {
			allErrors = true
			argi += 1
			continue
		}

		// -no-color
		if reNoColor.MatchString(arg) {
			noColor = true
			argi += 1
			continue
		}

		// -h, -help
		if m := reHelp.FindStringSubmatch(arg); m != nil {
			usage(os.Stdout)
			os.Exit(exitOk)
		}

		if strings.HasPrefix(arg, "-") {
			fmt.Fprintf(os.Stderr, "error: unknown flag %s\n", arg)
			usage(os.Stderr)
			os.Exit(exitUsage)
		}

		if file != nil || cmds != nil {
			fmt.Fprintf(os.Stderr, "error: unexpected argument %s\n", arg)
			usage(os.Stderr)
			os.Exit(exitUsage)
		}
		file = &os.Args[argi]
		argi += 1
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	config, err := loadConfig(configPath, home)
	if err != nil {
		logger.Fatalf("%v", err)
	}
	if noColor {
		config.Color = false
	}
	if allErrors {
		config.ReportAllErrors = true
	}

	ctx := lox.NewContext()
	ctx.Configure(config)

	if cmds == nil && file == nil {
		if dumpTokens || dumpAst {
			fmt.Fprintf(os.Stderr, "error: requested a dump without a command or file path\n")
			os.Exit(exitUsage)
		}
		os.Exit(repl(&ctx, config, home))
	}

	var source string
	var location *lox.SourceLocation
	if cmds != nil {
		source, location = *cmds, lox.Ptr(lox.SourceLocation{File: "<command>", Line: 1})
	} else {
		source, location, err = readSourceFile(*file)
		if err != nil {
			logger.Fatalf("%v", err)
		}
	}

	switch {
	case dumpTokens:
		err = dumpTokensSource(os.Stdout, source, location)
	case dumpAst:
		err = dumpAstSource(&ctx, os.Stdout, source, location)
	default:
		err = runSource(&ctx, source, location)
	}

	if err != nil {
		reportError(os.Stderr, err, config.Color)
		os.Exit(exitStatus(err))
	}
}
