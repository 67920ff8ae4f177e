package lox

import (
	"strconv"
)

// Token Kinds
const (
	// Meta
	TOKEN_EOF = "end-of-file"
	// Identifiers and Literals
	TOKEN_IDENTIFIER = "identifier"
	TOKEN_NUMBER     = "number"
	TOKEN_STRING     = "string"
	// Delimiters
	TOKEN_LPAREN    = "("
	TOKEN_RPAREN    = ")"
	TOKEN_LBRACE    = "{"
	TOKEN_RBRACE    = "}"
	TOKEN_COMMA     = ","
	TOKEN_DOT       = "."
	TOKEN_SEMICOLON = ";"
	TOKEN_COLON     = ":"
	TOKEN_QUESTION  = "?"
	// Operators
	TOKEN_PLUS   = "+"
	TOKEN_DASH   = "-"
	TOKEN_STAR   = "*"
	TOKEN_SLASH  = "/"
	TOKEN_BANG   = "!"
	TOKEN_ASSIGN = "="
	TOKEN_EQ     = "=="
	TOKEN_NE     = "!="
	TOKEN_LT     = "<"
	TOKEN_LE     = "<="
	TOKEN_GT     = ">"
	TOKEN_GE     = ">="
	// Keywords
	TOKEN_AND      = "and"
	TOKEN_BREAK    = "break"
	TOKEN_CLASS    = "class"
	TOKEN_CONTINUE = "continue"
	TOKEN_ELSE     = "else"
	TOKEN_FALSE    = "false"
	TOKEN_FOR      = "for"
	TOKEN_FUN      = "fun"
	TOKEN_IF       = "if"
	TOKEN_NIL      = "nil"
	TOKEN_OR       = "or"
	TOKEN_PRINT    = "print"
	TOKEN_RETURN   = "return"
	TOKEN_SUPER    = "super"
	TOKEN_THIS     = "this"
	TOKEN_TRUE     = "true"
	TOKEN_VAR      = "var"
	TOKEN_WHILE    = "while"
)

var keywords = map[string]string{
	TOKEN_AND:      TOKEN_AND,
	TOKEN_BREAK:    TOKEN_BREAK,
	TOKEN_CLASS:    TOKEN_CLASS,
	TOKEN_CONTINUE: TOKEN_CONTINUE,
	TOKEN_ELSE:     TOKEN_ELSE,
	TOKEN_FALSE:    TOKEN_FALSE,
	TOKEN_FOR:      TOKEN_FOR,
	TOKEN_FUN:      TOKEN_FUN,
	TOKEN_IF:       TOKEN_IF,
	TOKEN_NIL:      TOKEN_NIL,
	TOKEN_OR:       TOKEN_OR,
	TOKEN_PRINT:    TOKEN_PRINT,
	TOKEN_RETURN:   TOKEN_RETURN,
	TOKEN_SUPER:    TOKEN_SUPER,
	TOKEN_THIS:     TOKEN_THIS,
	TOKEN_TRUE:     TOKEN_TRUE,
	TOKEN_VAR:      TOKEN_VAR,
	TOKEN_WHILE:    TOKEN_WHILE,
}

type Token struct {
	Kind     string
	Lexeme   string
	Literal  any             // Optional: float64 for numbers, string for strings.
	Location *SourceLocation // Optional
}

func (self Token) String() string {
	return self.Kind
}

// Line returns the source line of the token, or zero when unknown.
func (self Token) Line() int {
	if self.Location == nil {
		return 0
	}
	return self.Location.Line
}

type Lexer struct {
	runes    []rune
	file     string
	line     int
	start    int
	position int
}

// NewLexer creates a lexer over source. The location is optional and gives
// the file name and first line number reported in token locations.
func NewLexer(source string, location *SourceLocation) Lexer {
	file, line := "", 1
	if location != nil {
		file, line = location.File, location.Line
	}
	return Lexer{
		runes:    []rune(source),
		file:     file,
		line:     line,
		start:    0,
		position: 0,
	}
}

func (self *Lexer) location() *SourceLocation {
	return &SourceLocation{self.file, self.line}
}

func (self *Lexer) currentRune() rune {
	if self.position >= len(self.runes) {
		return rune(0)
	}
	return self.runes[self.position]
}

func (self *Lexer) peekRune() rune {
	if self.position+1 >= len(self.runes) {
		return rune(0)
	}
	return self.runes[self.position+1]
}

func (self *Lexer) isEof() bool {
	return self.position >= len(self.runes)
}

func (self *Lexer) advanceRune() {
	if self.isEof() {
		return
	}
	if self.currentRune() == '\n' {
		self.line += 1
	}
	self.position += 1
}

func (self *Lexer) matchRune(r rune) bool {
	if self.isEof() || self.currentRune() != r {
		return false
	}
	self.advanceRune()
	return true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

func (self *Lexer) skipWhitespace() {
	for !self.isEof() {
		switch self.currentRune() {
		case ' ', '\r', '\t', '\n':
			self.advanceRune()
		default:
			return
		}
	}
}

// skipComment skips one comment if the lexer is positioned on one and reports
// whether it did.
func (self *Lexer) skipComment() (bool, error) {
	if self.currentRune() != '/' {
		return false, nil
	}

	if self.peekRune() == '/' {
		for !self.isEof() && self.currentRune() != '\n' {
			self.advanceRune()
		}
		return true, nil
	}

	if self.peekRune() == '*' {
		location := self.location()
		self.advanceRune()
		self.advanceRune()
		for !self.isEof() && !(self.currentRune() == '*' && self.peekRune() == '/') {
			self.advanceRune()
		}
		if self.isEof() {
			return false, ParseError{
				Kind:     UnterminatedBlockComment,
				Found:    TOKEN_EOF,
				Location: location,
			}
		}
		self.advanceRune()
		self.advanceRune()
		return true, nil
	}

	return false, nil
}

func (self *Lexer) skipWhiteSpaceAndComments() error {
	for {
		self.skipWhitespace()
		skipped, err := self.skipComment()
		if err != nil {
			return err
		}
		if !skipped {
			return nil
		}
	}
}

func (self *Lexer) newToken(kind string, literal any, location *SourceLocation) Token {
	return Token{
		Kind:     kind,
		Lexeme:   string(self.runes[self.start:self.position]),
		Literal:  literal,
		Location: location,
	}
}

func (self *Lexer) lexKeywordOrIdentifier() Token {
	location := self.location()
	for isAlpha(self.currentRune()) || isDigit(self.currentRune()) {
		self.advanceRune()
	}

	literal := string(self.runes[self.start:self.position])
	if keyword, ok := keywords[literal]; ok {
		return self.newToken(keyword, nil, location)
	}
	return self.newToken(TOKEN_IDENTIFIER, nil, location)
}

func (self *Lexer) lexNumber() (Token, error) {
	location := self.location()
	for isDigit(self.currentRune()) {
		self.advanceRune()
	}
	if self.currentRune() == '.' && isDigit(self.peekRune()) {
		self.advanceRune()
		for isDigit(self.currentRune()) {
			self.advanceRune()
		}
	}

	text := string(self.runes[self.start:self.position])
	number, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// Only reachable for literals out of the float64 range.
		return Token{}, ParseError{
			Kind:     UnexpectedCharacter,
			Char:     self.runes[self.start],
			Found:    TOKEN_NUMBER,
			Location: location,
		}
	}
	return self.newToken(TOKEN_NUMBER, number, location), nil
}

func (self *Lexer) lexString() (Token, error) {
	location := self.location()
	self.advanceRune() // opening quote
	for !self.isEof() && self.currentRune() != '"' {
		self.advanceRune()
	}
	if self.isEof() {
		return Token{}, ParseError{
			Kind:     UnterminatedString,
			Found:    TOKEN_EOF,
			Location: location,
		}
	}
	self.advanceRune() // closing quote

	literal := string(self.runes[self.start+1 : self.position-1])
	return self.newToken(TOKEN_STRING, literal, location), nil
}

func (self *Lexer) NextToken() (Token, error) {
	if err := self.skipWhiteSpaceAndComments(); err != nil {
		return Token{}, err
	}
	self.start = self.position
	if self.isEof() {
		return self.newToken(TOKEN_EOF, nil, self.location()), nil
	}

	// Literals, Identifiers, and Keywords
	if isAlpha(self.currentRune()) {
		return self.lexKeywordOrIdentifier(), nil
	}
	if isDigit(self.currentRune()) {
		return self.lexNumber()
	}
	if self.currentRune() == '"' {
		return self.lexString()
	}

	// Delimiters and Operators
	location := self.location()
	r := self.currentRune()
	self.advanceRune()
	kind := ""
	switch r {
	case '(':
		kind = TOKEN_LPAREN
	case ')':
		kind = TOKEN_RPAREN
	case '{':
		kind = TOKEN_LBRACE
	case '}':
		kind = TOKEN_RBRACE
	case ',':
		kind = TOKEN_COMMA
	case '.':
		kind = TOKEN_DOT
	case ';':
		kind = TOKEN_SEMICOLON
	case ':':
		kind = TOKEN_COLON
	case '?':
		kind = TOKEN_QUESTION
	case '+':
		kind = TOKEN_PLUS
	case '-':
		kind = TOKEN_DASH
	case '*':
		kind = TOKEN_STAR
	case '/':
		kind = TOKEN_SLASH
	case '!':
		kind = TOKEN_BANG
		if self.matchRune('=') {
			kind = TOKEN_NE
		}
	case '=':
		kind = TOKEN_ASSIGN
		if self.matchRune('=') {
			kind = TOKEN_EQ
		}
	case '<':
		kind = TOKEN_LT
		if self.matchRune('=') {
			kind = TOKEN_LE
		}
	case '>':
		kind = TOKEN_GT
		if self.matchRune('=') {
			kind = TOKEN_GE
		}
	default:
		return Token{}, ParseError{
			Kind:     UnexpectedCharacter,
			Char:     r,
			Location: location,
		}
	}
	return self.newToken(kind, nil, location), nil
}

// Tokens scans the remaining source. The returned stream always ends with a
// single TOKEN_EOF token.
func (self *Lexer) Tokens() ([]Token, error) {
	tokens := []Token{}
	for {
		token, err := self.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if token.Kind == TOKEN_EOF {
			return tokens, nil
		}
	}
}
