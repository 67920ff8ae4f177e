package lox

import (
	"errors"
	"fmt"
	"strings"
)

type ParseErrorKind int

const (
	TokenExpected ParseErrorKind = iota
	ExpressionExpected
	MissingLeftHandOperand
	IdentifierExpected
	UnexpectedCharacter
	UnterminatedString
	UnterminatedBlockComment
	NestingTooDeep
)

// ParseError is a compile-time error produced while scanning or parsing.
type ParseError struct {
	Kind     ParseErrorKind
	Char     rune            // Expected rune of TokenExpected, offending rune of UnexpectedCharacter.
	Found    string          // Kind of the token at which parsing failed.
	Limit    int             // Maximum depth of NestingTooDeep.
	Location *SourceLocation // Optional
}

func (self ParseError) Error() string {
	switch self.Kind {
	case TokenExpected:
		return fmt.Sprintf("Expected %s.", quote(string(self.Char)))
	case ExpressionExpected:
		return "Expected expression."
	case MissingLeftHandOperand:
		return "Missing the left-hand expression operand."
	case IdentifierExpected:
		return "Expected identifier."
	case UnexpectedCharacter:
		return fmt.Sprintf("Unexpected character: %s.", quote(string(self.Char)))
	case UnterminatedString:
		return "Unterminated string."
	case UnterminatedBlockComment:
		return "Unterminated block-style comment."
	case NestingTooDeep:
		return fmt.Sprintf("Maximum nesting depth of %d exceeded.", self.Limit)
	}
	return "unknown parse error"
}

// IsIncomplete reports whether err was caused by input ending too early, in
// which case appending more source may make it parse.
func IsIncomplete(err error) bool {
	var parseError ParseError
	if !errors.As(err, &parseError) {
		return false
	}
	switch parseError.Kind {
	case UnterminatedString, UnterminatedBlockComment:
		return true
	case NestingTooDeep:
		return false
	}
	return parseError.Found == TOKEN_EOF
}

type RuntimeErrorKind int

const (
	ExpectedNumberOperand RuntimeErrorKind = iota
	ZeroDivision
	VariableAlreadyDefined
	VariableNotDefined
	BreakNotWithinLoop
	ContinueNotWithinLoop
	ReturnNotWithinFunction
	ExpressionNotCallable
	InvalidArgumentCount
	CallDepthExceeded
)

// RuntimeError is a fatal error raised while evaluating a program.
type RuntimeError struct {
	Kind     RuntimeErrorKind
	Name     string          // Identifier of VariableAlreadyDefined and VariableNotDefined.
	Got      int             // Argument count of InvalidArgumentCount, limit of CallDepthExceeded.
	Want     int             // Parameter count of InvalidArgumentCount.
	Location *SourceLocation // Optional
}

func (self RuntimeError) Error() string {
	switch self.Kind {
	case ExpectedNumberOperand:
		return "Operand must be a number."
	case ZeroDivision:
		return "Attempted to divide by zero."
	case VariableAlreadyDefined:
		return fmt.Sprintf("Variable with identifier %s is already defined.", quote(self.Name))
	case VariableNotDefined:
		return fmt.Sprintf("Variable with identifier %s is not defined.", quote(self.Name))
	case BreakNotWithinLoop:
		return "`break` statement used outside of a loop."
	case ContinueNotWithinLoop:
		return "`continue` statement used outside of a loop."
	case ReturnNotWithinFunction:
		return "`return` statement used outside of a function."
	case ExpressionNotCallable:
		return "Expression is not callable."
	case InvalidArgumentCount:
		return fmt.Sprintf("Invalid arguments count (%d, expected %d).", self.Got, self.Want)
	case CallDepthExceeded:
		return fmt.Sprintf("Maximum call depth of %d exceeded.", self.Got)
	}
	return "unknown runtime error"
}

func newRuntimeError(kind RuntimeErrorKind, location *SourceLocation) RuntimeError {
	return RuntimeError{Kind: kind, Location: location}
}

// withLocation fills in the location of a runtime error raised by code that
// has no access to the syntax tree, such as the environment.
func withLocation(err error, location *SourceLocation) error {
	runtimeError, ok := err.(RuntimeError)
	if !ok || runtimeError.Location != nil {
		return err
	}
	runtimeError.Location = location
	return runtimeError
}

// Report renders err for display to a user:
//
//	compile-time error[:3]: Expected `;`.
//	runtime error[:7]: Attempted to divide by zero.
//
// The line part is omitted when it is not known. Joined errors are rendered
// one per line.
func Report(err error) string {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		lines := []string{}
		for _, e := range joined.Unwrap() {
			lines = append(lines, Report(e))
		}
		return strings.Join(lines, "\n")
	}

	var parseError ParseError
	if errors.As(err, &parseError) {
		return render("compile-time", parseError.Location, parseError.Error())
	}
	var runtimeError RuntimeError
	if errors.As(err, &runtimeError) {
		return render("runtime", runtimeError.Location, runtimeError.Error())
	}
	return err.Error()
}

func render(family string, location *SourceLocation, message string) string {
	if location == nil || location.Line == 0 {
		return fmt.Sprintf("%s error: %s", family, message)
	}
	return fmt.Sprintf("%s error[:%d]: %s", family, location.Line, message)
}
