package lox

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorMessages(t *testing.T) {
	tests := []struct {
		err  ParseError
		want string
	}{
		{ParseError{Kind: TokenExpected, Char: ';'}, "Expected `;`."},
		{ParseError{Kind: ExpressionExpected}, "Expected expression."},
		{ParseError{Kind: MissingLeftHandOperand}, "Missing the left-hand expression operand."},
		{ParseError{Kind: IdentifierExpected}, "Expected identifier."},
		{ParseError{Kind: UnexpectedCharacter, Char: '#'}, "Unexpected character: `#`."},
		{ParseError{Kind: UnexpectedCharacter, Char: '`'}, "Unexpected character: \"`\"."},
		{ParseError{Kind: UnterminatedString}, "Unterminated string."},
		{ParseError{Kind: UnterminatedBlockComment}, "Unterminated block-style comment."},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, test.err.Error())
	}
}

func TestRuntimeErrorMessages(t *testing.T) {
	tests := []struct {
		err  RuntimeError
		want string
	}{
		{RuntimeError{Kind: ExpectedNumberOperand}, "Operand must be a number."},
		{RuntimeError{Kind: ZeroDivision}, "Attempted to divide by zero."},
		{RuntimeError{Kind: VariableAlreadyDefined, Name: "x"}, "Variable with identifier `x` is already defined."},
		{RuntimeError{Kind: VariableNotDefined, Name: "y"}, "Variable with identifier `y` is not defined."},
		{RuntimeError{Kind: BreakNotWithinLoop}, "`break` statement used outside of a loop."},
		{RuntimeError{Kind: ContinueNotWithinLoop}, "`continue` statement used outside of a loop."},
		{RuntimeError{Kind: ReturnNotWithinFunction}, "`return` statement used outside of a function."},
		{RuntimeError{Kind: ExpressionNotCallable}, "Expression is not callable."},
		{RuntimeError{Kind: InvalidArgumentCount, Got: 3, Want: 1}, "Invalid arguments count (3, expected 1)."},
		{RuntimeError{Kind: CallDepthExceeded, Got: 16}, "Maximum call depth of 16 exceeded."},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, test.err.Error())
	}
}

func TestReport(t *testing.T) {
	location := &SourceLocation{"main.lox", 4}

	assert.Equal(t,
		"compile-time error[:4]: Expected expression.",
		Report(ParseError{Kind: ExpressionExpected, Location: location}))
	assert.Equal(t,
		"compile-time error: Unterminated string.",
		Report(ParseError{Kind: UnterminatedString}))
	assert.Equal(t,
		"runtime error[:4]: Expression is not callable.",
		Report(RuntimeError{Kind: ExpressionNotCallable, Location: location}))
	assert.Equal(t,
		"runtime error: Attempted to divide by zero.",
		Report(RuntimeError{Kind: ZeroDivision}))

	wrapped := fmt.Errorf("running: %w", RuntimeError{Kind: ZeroDivision, Location: location})
	assert.Equal(t, "runtime error[:4]: Attempted to divide by zero.", Report(wrapped))

	joined := errors.Join(
		ParseError{Kind: TokenExpected, Char: ')', Location: &SourceLocation{"main.lox", 1}},
		ParseError{Kind: IdentifierExpected, Location: &SourceLocation{"main.lox", 2}},
	)
	assert.Equal(t,
		"compile-time error[:1]: Expected `)`.\ncompile-time error[:2]: Expected identifier.",
		Report(joined))

	assert.Equal(t, "open x.lox: no such file", Report(errors.New("open x.lox: no such file")))
}

func TestWithLocation(t *testing.T) {
	location := &SourceLocation{"main.lox", 9}
	other := &SourceLocation{"main.lox", 2}

	assert.Nil(t, withLocation(nil, location))

	err := withLocation(RuntimeError{Kind: ZeroDivision}, location)
	assert.Equal(t, RuntimeError{Kind: ZeroDivision, Location: location}, err)

	err = withLocation(RuntimeError{Kind: ZeroDivision, Location: other}, location)
	assert.Equal(t, RuntimeError{Kind: ZeroDivision, Location: other}, err)

	plain := errors.New("plain")
	assert.Equal(t, plain, withLocation(plain, location))
}

func TestIsIncompleteIgnoresOtherErrors(t *testing.T) {
	assert.False(t, IsIncomplete(nil))
	assert.False(t, IsIncomplete(errors.New("plain")))
	assert.False(t, IsIncomplete(RuntimeError{Kind: ZeroDivision}))
	assert.True(t, IsIncomplete(ParseError{Kind: UnterminatedBlockComment}))
	assert.True(t, IsIncomplete(ParseError{Kind: TokenExpected, Char: ';', Found: TOKEN_EOF}))
	assert.False(t, IsIncomplete(ParseError{Kind: TokenExpected, Char: ';', Found: TOKEN_RPAREN}))
}
