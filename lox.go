package lox

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Utility function used to get the address of literals.
func Ptr[T any](v T) *T {
	return &v
}

func escape(s string) string {
	result := ""
	for _, r := range s {
		if r == '\t' {
			result += "\\t"
			continue
		}
		if r == '\n' {
			result += "\\n"
			continue
		}
		if r == '"' {
			result += "\\\""
			continue
		}
		if r == '\\' {
			result += "\\\\"
			continue
		}
		result += string(r)
	}
	return result
}

func quote(s string) string {
	if strings.Contains(s, "`") {
		return fmt.Sprintf(`"%s"`, s)
	}
	return fmt.Sprintf("`%s`", s)
}

type SourceLocation struct {
	File string
	Line int
}

// Context holds the state shared by every evaluation performed with it: the
// value singletons, the global environment, and the output sink of print.
type Context struct {
	Nil             *Nil
	True            *Boolean
	False           *Boolean
	BaseEnvironment *Environment
	Stdout          io.Writer
	MaxCallDepth    int  // Zero disables the call and nesting depth guards.
	ReportAllErrors bool // Collect every syntax error instead of the first.

	callDepth int
}

func NewContext() Context {
	ctx := Context{}
	ctx.Nil = &Nil{}
	ctx.True = &Boolean{true}
	ctx.False = &Boolean{false}
	ctx.BaseEnvironment = NewEnvironment(nil)
	ctx.Stdout = os.Stdout
	ctx.MaxCallDepth = DefaultConfig().MaxCallDepth
	return ctx
}

// Configure applies the interpreter related settings of config.
func (ctx *Context) Configure(config Config) {
	ctx.MaxCallDepth = config.MaxCallDepth
	ctx.ReportAllErrors = config.ReportAllErrors
}

func (ctx *Context) NewInteger(data int64) *Integer {
	return &Integer{data}
}

func (ctx *Context) NewFloat(data float64) *Float {
	return &Float{data}
}

func (ctx *Context) NewString(data string) *String {
	return &String{data}
}

func (ctx *Context) NewBoolean(data bool) *Boolean {
	if data {
		return ctx.True
	}
	return ctx.False
}

func (ctx *Context) NewFunction(name string, parameters []string, body []AstStatement, closure *Environment) *Function {
	return &Function{
		Name:       name,
		Parameters: parameters,
		Body:       body,
		Closure:    closure,
	}
}

func parseSource(source string, location *SourceLocation, all bool, maxDepth int) (AstProgram, error) {
	lexer := NewLexer(source, location)
	tokens, err := lexer.Tokens()
	if err != nil {
		return AstProgram{}, err
	}
	parser := NewParser(tokens)
	parser.MaxDepth = maxDepth
	if all {
		return parser.ParseProgramAll()
	}
	return parser.ParseProgram()
}

// ParseSource scans and parses source into a program. Unless all is set the
// first compile-time error aborts parsing; otherwise every syntax error is
// collected and returned joined.
func ParseSource(source string, location *SourceLocation, all bool) (AstProgram, error) {
	return parseSource(source, location, all, DefaultConfig().MaxCallDepth)
}

// Parse is ParseSource with the error reporting mode and nesting limit
// configured on ctx.
func (ctx *Context) Parse(source string, location *SourceLocation) (AstProgram, error) {
	return parseSource(source, location, ctx.ReportAllErrors, ctx.MaxCallDepth)
}

// EvalSource parses source and evaluates it in the base environment of ctx,
// so bindings persist between calls. The result is the value of the last
// top-level expression statement, or nil.
func (ctx *Context) EvalSource(source string, location *SourceLocation) (Value, error) {
	program, err := ctx.Parse(source, location)
	if err != nil {
		return nil, err
	}
	return ctx.Eval(program, ctx.BaseEnvironment)
}
