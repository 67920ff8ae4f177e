package lox

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type locationDump struct {
	File string `yaml:"file,omitempty"`
	Line int    `yaml:"line"`
}

func dumpLocation(location *SourceLocation) *locationDump {
	if location == nil {
		return nil
	}
	return &locationDump{location.File, location.Line}
}

type tokenDump struct {
	Kind     string        `yaml:"kind"`
	Lexeme   string        `yaml:"lexeme"`
	Literal  any           `yaml:"literal,omitempty"`
	Location *locationDump `yaml:"location,omitempty"`
}

func encodeYAML(w io.Writer, document any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(document); err != nil {
		return fmt.Errorf("dump: encode: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("dump: encoder close: %w", err)
	}
	return nil
}

// DumpTokens writes tokens to w as a YAML sequence.
func DumpTokens(w io.Writer, tokens []Token) error {
	document := make([]tokenDump, 0, len(tokens))
	for _, token := range tokens {
		document = append(document, tokenDump{
			Kind:     token.Kind,
			Lexeme:   token.Lexeme,
			Literal:  token.Literal,
			Location: dumpLocation(token.Location),
		})
	}
	return encodeYAML(w, document)
}

// DumpProgram writes the syntax tree of program to w as YAML. Every node is
// a single entry mapping named after the node kind.
func DumpProgram(w io.Writer, program AstProgram) error {
	return encodeYAML(w, dumpStatements(program.Statements))
}

func dumpStatements(statements []AstStatement) []any {
	result := make([]any, 0, len(statements))
	for _, statement := range statements {
		result = append(result, dumpStatement(statement))
	}
	return result
}

func dumpExpressions(expressions []AstExpression) []any {
	result := make([]any, 0, len(expressions))
	for _, expression := range expressions {
		result = append(result, dumpExpression(expression))
	}
	return result
}

func dumpStatement(statement AstStatement) any {
	switch s := statement.(type) {
	case AstStatementExpression:
		return map[string]any{"expression": dumpExpression(s.Expression)}
	case AstStatementPrint:
		return map[string]any{"print": dumpExpression(s.Expression)}
	case AstStatementVariable:
		return map[string]any{"var": struct {
			Name  string `yaml:"name"`
			Value any    `yaml:"value"`
		}{s.Name, dumpExpression(s.Expression)}}
	case AstStatementFunction:
		return map[string]any{"fun": struct {
			Name       string   `yaml:"name"`
			Parameters []string `yaml:"parameters,flow"`
			Body       []any    `yaml:"body"`
		}{s.Name, s.Parameters, dumpStatements(s.Body)}}
	case AstStatementBlock:
		return map[string]any{"block": dumpStatements(s.Statements)}
	case AstStatementIf:
		var alternative any
		if s.Alternative != nil {
			alternative = dumpStatement(s.Alternative)
		}
		return map[string]any{"if": struct {
			Condition   any   `yaml:"condition"`
			Then        []any `yaml:"then"`
			Alternative any   `yaml:"else,omitempty"`
		}{dumpExpression(s.Condition), dumpStatements(s.Then.Statements), alternative}}
	case AstStatementWhile:
		return map[string]any{"while": struct {
			Condition any   `yaml:"condition"`
			Body      []any `yaml:"body"`
		}{dumpExpression(s.Condition), dumpStatements(s.Body.Statements)}}
	case AstStatementBreak:
		return "break"
	case AstStatementContinue:
		return "continue"
	case AstStatementReturn:
		return map[string]any{"return": dumpExpression(s.Expression)}
	}
	panic(fmt.Sprintf("unreachable: unknown statement %T", statement))
}

func dumpExpression(expression AstExpression) any {
	switch e := expression.(type) {
	case AstExpressionNil:
		return map[string]any{"nil": nil}
	case AstExpressionBoolean:
		return map[string]any{"boolean": e.Data}
	case AstExpressionNumber:
		return map[string]any{"number": e.Data}
	case AstExpressionString:
		return map[string]any{"string": e.Data}
	case AstExpressionIdentifier:
		return map[string]any{"identifier": e.Name}
	case AstExpressionGrouping:
		return map[string]any{"grouping": dumpExpression(e.Expression)}
	case AstExpressionUnary:
		return map[string]any{"unary": struct {
			Operator string `yaml:"operator"`
			Right    any    `yaml:"right"`
		}{string(e.Operator), dumpExpression(e.Right)}}
	case AstExpressionBinary:
		return map[string]any{"binary": struct {
			Left     any    `yaml:"left"`
			Operator string `yaml:"operator"`
			Right    any    `yaml:"right"`
		}{dumpExpression(e.Left), string(e.Operator), dumpExpression(e.Right)}}
	case AstExpressionConditional:
		return map[string]any{"conditional": struct {
			Condition   any `yaml:"condition"`
			Then        any `yaml:"then"`
			Alternative any `yaml:"else"`
		}{dumpExpression(e.Condition), dumpExpression(e.Then), dumpExpression(e.Alternative)}}
	case AstExpressionAssignment:
		return map[string]any{"assignment": struct {
			Name  string `yaml:"name"`
			Value any    `yaml:"value"`
		}{e.Name, dumpExpression(e.Expression)}}
	case AstExpressionCall:
		return map[string]any{"call": struct {
			Callee    any   `yaml:"callee"`
			Arguments []any `yaml:"arguments"`
		}{dumpExpression(e.Callee), dumpExpressions(e.Arguments)}}
	}
	panic(fmt.Sprintf("unreachable: unknown expression %T", expression))
}
