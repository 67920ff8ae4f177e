package lox

import (
	"errors"
)

// Parser is a recursive descent parser over a scanned token stream with one
// token of lookahead.
type Parser struct {
	tokens   []Token
	position int
	depth    int

	// MaxDepth bounds how deeply statements and expressions may nest. Zero
	// disables the limit.
	MaxDepth int
}

func NewParser(tokens []Token) Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TOKEN_EOF {
		var location *SourceLocation
		if len(tokens) != 0 {
			location = tokens[len(tokens)-1].Location
		}
		tokens = append(tokens[:len(tokens):len(tokens)], Token{Kind: TOKEN_EOF, Location: location})
	}
	return Parser{
		tokens:   tokens,
		position: 0,
		MaxDepth: DefaultConfig().MaxCallDepth,
	}
}

func (self *Parser) currentToken() Token {
	return self.tokens[self.position]
}

func (self *Parser) previousToken() Token {
	if self.position == 0 {
		return self.tokens[0]
	}
	return self.tokens[self.position-1]
}

func (self *Parser) isEof() bool {
	return self.currentToken().Kind == TOKEN_EOF
}

// advanceToken consumes the current token and returns it. The final EOF token
// is never consumed.
func (self *Parser) advanceToken() Token {
	current := self.currentToken()
	if !self.isEof() {
		self.position += 1
	}
	return current
}

func (self *Parser) checkCurrent(kinds ...string) bool {
	current := self.currentToken().Kind
	for _, kind := range kinds {
		if current == kind {
			return true
		}
	}
	return false
}

func (self *Parser) matchCurrent(kinds ...string) bool {
	if self.checkCurrent(kinds...) {
		self.advanceToken()
		return true
	}
	return false
}

func (self *Parser) newError(kind ParseErrorKind, token Token) ParseError {
	return ParseError{
		Kind:     kind,
		Found:    token.Kind,
		Location: token.Location,
	}
}

// enter records one more level of nesting. Every call must be paired with a
// call to leave, including when enter fails.
func (self *Parser) enter() error {
	self.depth += 1
	if self.MaxDepth > 0 && self.depth > self.MaxDepth {
		err := self.newError(NestingTooDeep, self.currentToken())
		err.Limit = self.MaxDepth
		return err
	}
	return nil
}

func (self *Parser) leave() {
	self.depth -= 1
}

// expectCurrent consumes a token of the given kind, failing with a
// TokenExpected error naming char otherwise.
func (self *Parser) expectCurrent(kind string, char rune) (Token, error) {
	current := self.currentToken()
	if current.Kind != kind {
		err := self.newError(TokenExpected, current)
		err.Char = char
		return Token{}, err
	}
	return self.advanceToken(), nil
}

func (self *Parser) expectIdentifier() (Token, error) {
	current := self.currentToken()
	if current.Kind != TOKEN_IDENTIFIER {
		return Token{}, self.newError(IdentifierExpected, current)
	}
	return self.advanceToken(), nil
}

// synchronize discards tokens until the parser is positioned at what is
// likely the start of the next statement.
func (self *Parser) synchronize() {
	self.advanceToken()
	for !self.isEof() {
		if self.previousToken().Kind == TOKEN_SEMICOLON {
			return
		}
		switch self.currentToken().Kind {
		case TOKEN_CLASS, TOKEN_FUN, TOKEN_VAR, TOKEN_FOR, TOKEN_IF, TOKEN_WHILE,
			TOKEN_PRINT, TOKEN_RETURN, TOKEN_BREAK, TOKEN_CONTINUE:
			return
		}
		self.advanceToken()
	}
}

// ParseProgram parses the whole token stream. The first syntax error aborts
// parsing and is returned.
func (self *Parser) ParseProgram() (AstProgram, error) {
	location := self.currentToken().Location
	statements := []AstStatement{}
	for !self.isEof() {
		statement, err := self.ParseStatement()
		if err != nil {
			return AstProgram{}, err
		}
		statements = append(statements, statement)
	}
	return AstProgram{location, statements}, nil
}

// ParseProgramAll parses the whole token stream, resynchronizing at the next
// statement after each syntax error. If any error was found, all of them are
// returned joined and the program is discarded.
func (self *Parser) ParseProgramAll() (AstProgram, error) {
	location := self.currentToken().Location
	statements := []AstStatement{}
	errs := []error{}
	for !self.isEof() {
		statement, err := self.ParseStatement()
		if err != nil {
			errs = append(errs, err)
			self.synchronize()
			continue
		}
		statements = append(statements, statement)
	}
	if len(errs) != 0 {
		return AstProgram{}, errors.Join(errs...)
	}
	return AstProgram{location, statements}, nil
}

func (self *Parser) ParseStatement() (AstStatement, error) {
	err := self.enter()
	defer self.leave()
	if err != nil {
		return nil, err
	}

	switch self.currentToken().Kind {
	case TOKEN_VAR:
		return self.parseStatementVariable()
	case TOKEN_FUN:
		return self.parseStatementFunction()
	case TOKEN_PRINT:
		return self.parseStatementPrint()
	case TOKEN_LBRACE:
		return self.parseStatementBlock()
	case TOKEN_IF:
		return self.parseStatementIf()
	case TOKEN_WHILE:
		return self.parseStatementWhile()
	case TOKEN_BREAK:
		token := self.advanceToken()
		if _, err := self.expectCurrent(TOKEN_SEMICOLON, ';'); err != nil {
			return nil, err
		}
		return AstStatementBreak{token.Location}, nil
	case TOKEN_CONTINUE:
		token := self.advanceToken()
		if _, err := self.expectCurrent(TOKEN_SEMICOLON, ';'); err != nil {
			return nil, err
		}
		return AstStatementContinue{token.Location}, nil
	case TOKEN_RETURN:
		return self.parseStatementReturn()
	}
	return self.parseStatementExpression()
}

func (self *Parser) parseStatementExpression() (AstStatement, error) {
	expression, err := self.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := self.expectCurrent(TOKEN_SEMICOLON, ';'); err != nil {
		return nil, err
	}
	return AstStatementExpression{expression.ExpressionLocation(), expression}, nil
}

func (self *Parser) parseStatementPrint() (AstStatement, error) {
	token := self.advanceToken()
	expression, err := self.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := self.expectCurrent(TOKEN_SEMICOLON, ';'); err != nil {
		return nil, err
	}
	return AstStatementPrint{token.Location, expression}, nil
}

func (self *Parser) parseStatementVariable() (AstStatement, error) {
	token := self.advanceToken()
	identifier, err := self.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := self.expectCurrent(TOKEN_ASSIGN, '='); err != nil {
		return nil, err
	}
	expression, err := self.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := self.expectCurrent(TOKEN_SEMICOLON, ';'); err != nil {
		return nil, err
	}
	return AstStatementVariable{token.Location, identifier.Lexeme, expression}, nil
}

func (self *Parser) parseStatementFunction() (AstStatement, error) {
	token := self.advanceToken()
	identifier, err := self.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := self.expectCurrent(TOKEN_LPAREN, '('); err != nil {
		return nil, err
	}
	parameters := []string{}
	if !self.checkCurrent(TOKEN_RPAREN) {
		for {
			parameter, err := self.expectIdentifier()
			if err != nil {
				return nil, err
			}
			parameters = append(parameters, parameter.Lexeme)
			if !self.matchCurrent(TOKEN_COMMA) {
				break
			}
		}
	}
	if _, err := self.expectCurrent(TOKEN_RPAREN, ')'); err != nil {
		return nil, err
	}
	body, err := self.parseBlock()
	if err != nil {
		return nil, err
	}
	return AstStatementFunction{token.Location, identifier.Lexeme, parameters, body.Statements}, nil
}

func (self *Parser) parseBlock() (AstStatementBlock, error) {
	token, err := self.expectCurrent(TOKEN_LBRACE, '{')
	if err != nil {
		return AstStatementBlock{}, err
	}
	statements := []AstStatement{}
	for !self.checkCurrent(TOKEN_RBRACE) && !self.isEof() {
		statement, err := self.ParseStatement()
		if err != nil {
			return AstStatementBlock{}, err
		}
		statements = append(statements, statement)
	}
	if _, err := self.expectCurrent(TOKEN_RBRACE, '}'); err != nil {
		return AstStatementBlock{}, err
	}
	return AstStatementBlock{token.Location, statements}, nil
}

func (self *Parser) parseStatementBlock() (AstStatement, error) {
	block, err := self.parseBlock()
	if err != nil {
		return nil, err
	}
	return block, nil
}

func (self *Parser) parseStatementIf() (AstStatement, error) {
	token := self.advanceToken()
	condition, err := self.ParseExpression()
	if err != nil {
		return nil, err
	}
	then, err := self.parseBlock()
	if err != nil {
		return nil, err
	}
	if !self.matchCurrent(TOKEN_ELSE) {
		return AstStatementIf{token.Location, condition, then, nil}, nil
	}

	var alternative AstStatement
	if self.checkCurrent(TOKEN_IF) {
		alternative, err = self.parseStatementIf()
	} else {
		alternative, err = self.parseStatementBlock()
	}
	if err != nil {
		return nil, err
	}
	return AstStatementIf{token.Location, condition, then, alternative}, nil
}

func (self *Parser) parseStatementWhile() (AstStatement, error) {
	token := self.advanceToken()
	condition, err := self.ParseExpression()
	if err != nil {
		return nil, err
	}
	body, err := self.parseBlock()
	if err != nil {
		return nil, err
	}
	return AstStatementWhile{token.Location, condition, body}, nil
}

func (self *Parser) parseStatementReturn() (AstStatement, error) {
	token := self.advanceToken()
	if self.matchCurrent(TOKEN_SEMICOLON) {
		return AstStatementReturn{token.Location, AstExpressionNil{token.Location}}, nil
	}
	expression, err := self.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := self.expectCurrent(TOKEN_SEMICOLON, ';'); err != nil {
		return nil, err
	}
	return AstStatementReturn{token.Location, expression}, nil
}

func (self *Parser) ParseExpression() (AstExpression, error) {
	err := self.enter()
	defer self.leave()
	if err != nil {
		return nil, err
	}
	return self.parseAssignment()
}

func (self *Parser) parseAssignment() (AstExpression, error) {
	expression, err := self.parseConditional()
	if err != nil {
		return nil, err
	}
	if !self.checkCurrent(TOKEN_ASSIGN) {
		return expression, nil
	}

	token := self.advanceToken()
	identifier, ok := expression.(AstExpressionIdentifier)
	if !ok {
		return nil, self.newError(IdentifierExpected, token)
	}
	value, err := self.ParseExpression()
	if err != nil {
		return nil, err
	}
	return AstExpressionAssignment{identifier.Location, identifier.Name, value}, nil
}

// parseConditional parses `condition ? then : alternative`. All three parts
// bind at logic-or precedence.
func (self *Parser) parseConditional() (AstExpression, error) {
	condition, err := self.parseLogicOr()
	if err != nil {
		return nil, err
	}
	if !self.checkCurrent(TOKEN_QUESTION) {
		return condition, nil
	}

	token := self.advanceToken()
	then, err := self.parseLogicOr()
	if err != nil {
		return nil, err
	}
	if _, err := self.expectCurrent(TOKEN_COLON, ':'); err != nil {
		return nil, err
	}
	alternative, err := self.parseLogicOr()
	if err != nil {
		return nil, err
	}
	return AstExpressionConditional{token.Location, condition, then, alternative}, nil
}

func (self *Parser) parseLogicOr() (AstExpression, error) {
	left, err := self.parseLogicAnd()
	if err != nil {
		return nil, err
	}
	for self.checkCurrent(TOKEN_OR) {
		token := self.advanceToken()
		right, err := self.parseLogicAnd()
		if err != nil {
			return nil, err
		}
		left = AstExpressionBinary{token.Location, left, OperatorFromToken(token), right}
	}
	return left, nil
}

func (self *Parser) parseLogicAnd() (AstExpression, error) {
	left, err := self.parseEquality()
	if err != nil {
		return nil, err
	}
	for self.checkCurrent(TOKEN_AND) {
		token := self.advanceToken()
		right, err := self.parseEquality()
		if err != nil {
			return nil, err
		}
		left = AstExpressionBinary{token.Location, left, OperatorFromToken(token), right}
	}
	return left, nil
}

// parseBinary parses one left-associative binary operator level. An operator
// of the level appearing where its left operand should be is reported as a
// MissingLeftHandOperand error. Only the kinds in leading are checked for
// that, so operators that double as prefix operators can be excluded.
func (self *Parser) parseBinary(leading []string, operators []string, next func() (AstExpression, error)) (AstExpression, error) {
	if self.checkCurrent(leading...) {
		return nil, self.newError(MissingLeftHandOperand, self.currentToken())
	}

	left, err := next()
	if err != nil {
		return nil, err
	}
	for self.checkCurrent(operators...) {
		token := self.advanceToken()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = AstExpressionBinary{token.Location, left, OperatorFromToken(token), right}
	}
	return left, nil
}

func (self *Parser) parseEquality() (AstExpression, error) {
	operators := []string{TOKEN_EQ, TOKEN_NE}
	return self.parseBinary(operators, operators, self.parseComparison)
}

func (self *Parser) parseComparison() (AstExpression, error) {
	operators := []string{TOKEN_GT, TOKEN_GE, TOKEN_LT, TOKEN_LE}
	return self.parseBinary(operators, operators, self.parseTerm)
}

func (self *Parser) parseTerm() (AstExpression, error) {
	// A leading `-` is unary negation, not a missing operand.
	return self.parseBinary([]string{TOKEN_PLUS}, []string{TOKEN_PLUS, TOKEN_DASH}, self.parseFactor)
}

func (self *Parser) parseFactor() (AstExpression, error) {
	operators := []string{TOKEN_STAR, TOKEN_SLASH}
	return self.parseBinary(operators, operators, self.parseUnary)
}

func (self *Parser) parseUnary() (AstExpression, error) {
	if !self.checkCurrent(TOKEN_BANG, TOKEN_DASH) {
		return self.parseCall()
	}
	err := self.enter()
	defer self.leave()
	if err != nil {
		return nil, err
	}
	token := self.advanceToken()
	right, err := self.parseUnary()
	if err != nil {
		return nil, err
	}
	return AstExpressionUnary{token.Location, OperatorFromToken(token), right}, nil
}

func (self *Parser) parseCall() (AstExpression, error) {
	expression, err := self.parsePrimary()
	if err != nil {
		return nil, err
	}
	for self.checkCurrent(TOKEN_LPAREN) {
		token := self.advanceToken()
		arguments := []AstExpression{}
		if !self.checkCurrent(TOKEN_RPAREN) {
			for {
				argument, err := self.ParseExpression()
				if err != nil {
					return nil, err
				}
				arguments = append(arguments, argument)
				if !self.matchCurrent(TOKEN_COMMA) {
					break
				}
			}
		}
		if _, err := self.expectCurrent(TOKEN_RPAREN, ')'); err != nil {
			return nil, err
		}
		expression = AstExpressionCall{token.Location, expression, arguments}
	}
	return expression, nil
}

func (self *Parser) parsePrimary() (AstExpression, error) {
	token := self.currentToken()
	switch token.Kind {
	case TOKEN_NIL:
		self.advanceToken()
		return AstExpressionNil{token.Location}, nil
	case TOKEN_TRUE:
		self.advanceToken()
		return AstExpressionBoolean{token.Location, true}, nil
	case TOKEN_FALSE:
		self.advanceToken()
		return AstExpressionBoolean{token.Location, false}, nil
	case TOKEN_NUMBER:
		self.advanceToken()
		return AstExpressionNumber{token.Location, token.Literal.(float64)}, nil
	case TOKEN_STRING:
		self.advanceToken()
		return AstExpressionString{token.Location, token.Literal.(string)}, nil
	case TOKEN_IDENTIFIER:
		self.advanceToken()
		return AstExpressionIdentifier{token.Location, token.Lexeme}, nil
	case TOKEN_LPAREN:
		self.advanceToken()
		expression, err := self.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := self.expectCurrent(TOKEN_RPAREN, ')'); err != nil {
			return nil, err
		}
		return AstExpressionGrouping{token.Location, expression}, nil
	}
	return nil, self.newError(ExpressionExpected, token)
}
