package lox

import (
	"fmt"
)

type Operator string

const (
	OPERATOR_EQUAL            Operator = "=="
	OPERATOR_NOT_EQUAL        Operator = "!="
	OPERATOR_LESS             Operator = "<"
	OPERATOR_LESS_OR_EQUAL    Operator = "<="
	OPERATOR_GREATER          Operator = ">"
	OPERATOR_GREATER_OR_EQUAL Operator = ">="
	OPERATOR_ADDITION         Operator = "+"
	OPERATOR_SUBTRACTION      Operator = "-"
	OPERATOR_MULTIPLICATION   Operator = "*"
	OPERATOR_DIVISION         Operator = "/"
	OPERATOR_NEGATION         Operator = "!"
	OPERATOR_ASSIGNMENT       Operator = "="
	OPERATOR_CONJUNCTION      Operator = "and"
	OPERATOR_DISJUNCTION      Operator = "or"
)

var tokenOperators = map[string]Operator{
	TOKEN_EQ:     OPERATOR_EQUAL,
	TOKEN_NE:     OPERATOR_NOT_EQUAL,
	TOKEN_LT:     OPERATOR_LESS,
	TOKEN_LE:     OPERATOR_LESS_OR_EQUAL,
	TOKEN_GT:     OPERATOR_GREATER,
	TOKEN_GE:     OPERATOR_GREATER_OR_EQUAL,
	TOKEN_PLUS:   OPERATOR_ADDITION,
	TOKEN_DASH:   OPERATOR_SUBTRACTION,
	TOKEN_STAR:   OPERATOR_MULTIPLICATION,
	TOKEN_SLASH:  OPERATOR_DIVISION,
	TOKEN_BANG:   OPERATOR_NEGATION,
	TOKEN_ASSIGN: OPERATOR_ASSIGNMENT,
	TOKEN_AND:    OPERATOR_CONJUNCTION,
	TOKEN_OR:     OPERATOR_DISJUNCTION,
}

// OperatorFromToken maps an operator token to its operator. The parser only
// calls it with tokens it has just matched against an operator kind, so an
// unmapped token is a bug in the parser.
func OperatorFromToken(token Token) Operator {
	operator, ok := tokenOperators[token.Kind]
	if !ok {
		panic(fmt.Sprintf("unreachable: token %s is not an operator", quote(token.Kind)))
	}
	return operator
}

type AstExpression interface {
	ExpressionLocation() *SourceLocation
}

type AstStatement interface {
	StatementLocation() *SourceLocation
}

type AstProgram struct {
	Location   *SourceLocation // Optional
	Statements []AstStatement
}

type AstExpressionNil struct {
	Location *SourceLocation // Optional
}

func (self AstExpressionNil) ExpressionLocation() *SourceLocation {
	return self.Location
}

type AstExpressionBoolean struct {
	Location *SourceLocation // Optional
	Data     bool
}

func (self AstExpressionBoolean) ExpressionLocation() *SourceLocation {
	return self.Location
}

type AstExpressionNumber struct {
	Location *SourceLocation // Optional
	Data     float64
}

func (self AstExpressionNumber) ExpressionLocation() *SourceLocation {
	return self.Location
}

type AstExpressionString struct {
	Location *SourceLocation // Optional
	Data     string
}

func (self AstExpressionString) ExpressionLocation() *SourceLocation {
	return self.Location
}

type AstExpressionIdentifier struct {
	Location *SourceLocation // Optional
	Name     string
}

func (self AstExpressionIdentifier) ExpressionLocation() *SourceLocation {
	return self.Location
}

type AstExpressionGrouping struct {
	Location   *SourceLocation // Optional
	Expression AstExpression
}

func (self AstExpressionGrouping) ExpressionLocation() *SourceLocation {
	return self.Location
}

type AstExpressionUnary struct {
	Location *SourceLocation // Optional
	Operator Operator
	Right    AstExpression
}

func (self AstExpressionUnary) ExpressionLocation() *SourceLocation {
	return self.Location
}

type AstExpressionBinary struct {
	Location *SourceLocation // Optional
	Left     AstExpression
	Operator Operator
	Right    AstExpression
}

func (self AstExpressionBinary) ExpressionLocation() *SourceLocation {
	return self.Location
}

// AstExpressionConditional is the ternary `condition ? then : alternative`.
type AstExpressionConditional struct {
	Location    *SourceLocation // Optional
	Condition   AstExpression
	Then        AstExpression
	Alternative AstExpression
}

func (self AstExpressionConditional) ExpressionLocation() *SourceLocation {
	return self.Location
}

type AstExpressionAssignment struct {
	Location   *SourceLocation // Optional
	Name       string
	Expression AstExpression
}

func (self AstExpressionAssignment) ExpressionLocation() *SourceLocation {
	return self.Location
}

type AstExpressionCall struct {
	Location  *SourceLocation // Optional
	Callee    AstExpression
	Arguments []AstExpression
}

func (self AstExpressionCall) ExpressionLocation() *SourceLocation {
	return self.Location
}

type AstStatementExpression struct {
	Location   *SourceLocation // Optional
	Expression AstExpression
}

func (self AstStatementExpression) StatementLocation() *SourceLocation {
	return self.Location
}

type AstStatementPrint struct {
	Location   *SourceLocation // Optional
	Expression AstExpression
}

func (self AstStatementPrint) StatementLocation() *SourceLocation {
	return self.Location
}

type AstStatementVariable struct {
	Location   *SourceLocation // Optional
	Name       string
	Expression AstExpression
}

func (self AstStatementVariable) StatementLocation() *SourceLocation {
	return self.Location
}

// AstStatementFunction declares a named function. Body is shared with every
// Function value created from the declaration.
type AstStatementFunction struct {
	Location   *SourceLocation // Optional
	Name       string
	Parameters []string
	Body       []AstStatement
}

func (self AstStatementFunction) StatementLocation() *SourceLocation {
	return self.Location
}

type AstStatementBlock struct {
	Location   *SourceLocation // Optional
	Statements []AstStatement
}

func (self AstStatementBlock) StatementLocation() *SourceLocation {
	return self.Location
}

type AstStatementIf struct {
	Location    *SourceLocation // Optional
	Condition   AstExpression
	Then        AstStatementBlock
	Alternative AstStatement // Optional: a block or another if statement.
}

func (self AstStatementIf) StatementLocation() *SourceLocation {
	return self.Location
}

type AstStatementWhile struct {
	Location  *SourceLocation // Optional
	Condition AstExpression
	Body      AstStatementBlock
}

func (self AstStatementWhile) StatementLocation() *SourceLocation {
	return self.Location
}

type AstStatementBreak struct {
	Location *SourceLocation // Optional
}

func (self AstStatementBreak) StatementLocation() *SourceLocation {
	return self.Location
}

type AstStatementContinue struct {
	Location *SourceLocation // Optional
}

func (self AstStatementContinue) StatementLocation() *SourceLocation {
	return self.Location
}

type AstStatementReturn struct {
	Location   *SourceLocation // Optional
	Expression AstExpression
}

func (self AstStatementReturn) StatementLocation() *SourceLocation {
	return self.Location
}
