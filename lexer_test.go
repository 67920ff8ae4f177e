package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lex(t *testing.T, source string) []Token {
	t.Helper()
	lexer := NewLexer(source, &SourceLocation{"test.lox", 1})
	tokens, err := lexer.Tokens()
	require.NoError(t, err)
	return tokens
}

func kinds(tokens []Token) []string {
	result := []string{}
	for _, token := range tokens {
		result = append(result, token.Kind)
	}
	return result
}

func TestLexEmpty(t *testing.T) {
	tokens := lex(t, "")
	require.Len(t, tokens, 1)
	assert.Equal(t, TOKEN_EOF, tokens[0].Kind)
	assert.Equal(t, 1, tokens[0].Line())
}

func TestLexOperators(t *testing.T) {
	tokens := lex(t, "( ) { } , . - + ; : * ? / ! != = == < <= > >=")
	assert.Equal(t, []string{
		TOKEN_LPAREN, TOKEN_RPAREN, TOKEN_LBRACE, TOKEN_RBRACE,
		TOKEN_COMMA, TOKEN_DOT, TOKEN_DASH, TOKEN_PLUS, TOKEN_SEMICOLON,
		TOKEN_COLON, TOKEN_STAR, TOKEN_QUESTION, TOKEN_SLASH,
		TOKEN_BANG, TOKEN_NE, TOKEN_ASSIGN, TOKEN_EQ,
		TOKEN_LT, TOKEN_LE, TOKEN_GT, TOKEN_GE,
		TOKEN_EOF,
	}, kinds(tokens))
}

func TestLexKeywordsAndIdentifiers(t *testing.T) {
	tokens := lex(t, "var breaker = break; continue fun_1 while")
	assert.Equal(t, []string{
		TOKEN_VAR, TOKEN_IDENTIFIER, TOKEN_ASSIGN, TOKEN_BREAK, TOKEN_SEMICOLON,
		TOKEN_CONTINUE, TOKEN_IDENTIFIER, TOKEN_WHILE, TOKEN_EOF,
	}, kinds(tokens))
	assert.Equal(t, "breaker", tokens[1].Lexeme)
	assert.Equal(t, "fun_1", tokens[6].Lexeme)
}

func TestLexLiterals(t *testing.T) {
	tokens := lex(t, `12 3.25 "hi there" 7.`)
	require.Len(t, tokens, 6)
	assert.Equal(t, TOKEN_NUMBER, tokens[0].Kind)
	assert.Equal(t, 12.0, tokens[0].Literal)
	assert.Equal(t, 3.25, tokens[1].Literal)
	assert.Equal(t, TOKEN_STRING, tokens[2].Kind)
	assert.Equal(t, "hi there", tokens[2].Literal)
	assert.Equal(t, `"hi there"`, tokens[2].Lexeme)
	// A trailing dot is not part of the number.
	assert.Equal(t, 7.0, tokens[3].Literal)
	assert.Equal(t, TOKEN_DOT, tokens[4].Kind)
}

func TestLexCommentsAndLines(t *testing.T) {
	tokens := lex(t, "a // comment\n/* block\ncomment */ b\n\"multi\nline\" c")
	assert.Equal(t, []string{TOKEN_IDENTIFIER, TOKEN_IDENTIFIER, TOKEN_STRING, TOKEN_IDENTIFIER, TOKEN_EOF}, kinds(tokens))
	assert.Equal(t, 1, tokens[0].Line())
	assert.Equal(t, 3, tokens[1].Line())
	assert.Equal(t, 4, tokens[2].Line())
	assert.Equal(t, 5, tokens[3].Line())
	assert.Equal(t, "test.lox", tokens[3].Location.File)
}

func TestLexSlashIsDivision(t *testing.T) {
	tokens := lex(t, "6 / 3")
	assert.Equal(t, []string{TOKEN_NUMBER, TOKEN_SLASH, TOKEN_NUMBER, TOKEN_EOF}, kinds(tokens))
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		source string
		kind   ParseErrorKind
		line   int
	}{
		{"var a = 1;\n@", UnexpectedCharacter, 2},
		{"\"open", UnterminatedString, 1},
		{"1 /* open\n", UnterminatedBlockComment, 1},
	}
	for _, test := range tests {
		lexer := NewLexer(test.source, nil)
		_, err := lexer.Tokens()
		var parseError ParseError
		require.ErrorAs(t, err, &parseError, test.source)
		assert.Equal(t, test.kind, parseError.Kind, test.source)
		assert.Equal(t, test.line, parseError.Location.Line, test.source)
	}
}

func TestLexUnexpectedCharacterMessage(t *testing.T) {
	lexer := NewLexer("#", nil)
	_, err := lexer.Tokens()
	require.Error(t, err)
	assert.Equal(t, "Unexpected character: `#`.", err.Error())
	assert.False(t, IsIncomplete(err))
}
