package lox

import (
	"fmt"
)

// ControlFlow is a non-local transfer of control produced by a statement. It
// travels up through the enclosing statements until a loop or function call
// consumes it.
type ControlFlow interface {
	ControlFlowLocation() *SourceLocation
}

type Return struct {
	Location *SourceLocation // Optional
	Value    Value
}

func (self Return) ControlFlowLocation() *SourceLocation {
	return self.Location
}

type Break struct {
	Location *SourceLocation // Optional
}

func (self Break) ControlFlowLocation() *SourceLocation {
	return self.Location
}

type Continue struct {
	Location *SourceLocation // Optional
}

func (self Continue) ControlFlowLocation() *SourceLocation {
	return self.Location
}

// strayControlFlow converts control flow that escaped every loop and function
// into the matching runtime error.
func strayControlFlow(cflow ControlFlow) error {
	switch cflow.(type) {
	case Break:
		return newRuntimeError(BreakNotWithinLoop, cflow.ControlFlowLocation())
	case Continue:
		return newRuntimeError(ContinueNotWithinLoop, cflow.ControlFlowLocation())
	case Return:
		return newRuntimeError(ReturnNotWithinFunction, cflow.ControlFlowLocation())
	}
	panic(fmt.Sprintf("unreachable: unknown control flow %T", cflow))
}

// Run executes program in the base environment of ctx.
func (ctx *Context) Run(program AstProgram) error {
	_, err := ctx.Eval(program, ctx.BaseEnvironment)
	return err
}

// Eval executes program in env and returns the value of the last top-level
// expression statement, or nil if there was none.
func (ctx *Context) Eval(program AstProgram, env *Environment) (Value, error) {
	var result Value = ctx.Nil
	for _, statement := range program.Statements {
		if statementExpression, ok := statement.(AstStatementExpression); ok {
			// Top-level expression statements are evaluated directly so the
			// result of the last one can be handed back to the caller.
			value, err := ctx.Evaluate(statementExpression.Expression, env)
			if err != nil {
				return nil, err
			}
			result = value
			continue
		}

		cflow, err := ctx.Execute(statement, env)
		if err != nil {
			return nil, err
		}
		if cflow != nil {
			return nil, strayControlFlow(cflow)
		}
	}
	return result, nil
}

func (ctx *Context) executeStatements(statements []AstStatement, env *Environment) (ControlFlow, error) {
	for _, statement := range statements {
		cflow, err := ctx.Execute(statement, env)
		if err != nil || cflow != nil {
			return cflow, err
		}
	}
	return nil, nil
}

// Execute runs a single statement in env. A non-nil ControlFlow is returned
// when the statement was interrupted by break, continue, or return.
func (ctx *Context) Execute(statement AstStatement, env *Environment) (ControlFlow, error) {
	switch statement := statement.(type) {
	case AstStatementExpression:
		_, err := ctx.Evaluate(statement.Expression, env)
		return nil, err

	case AstStatementPrint:
		value, err := ctx.Evaluate(statement.Expression, env)
		if err != nil {
			return nil, err
		}
		_, err = fmt.Fprintln(ctx.Stdout, Display(value))
		return nil, err

	case AstStatementVariable:
		value, err := ctx.Evaluate(statement.Expression, env)
		if err != nil {
			return nil, err
		}
		return nil, withLocation(env.Define(statement.Name, value), statement.Location)

	case AstStatementFunction:
		function := ctx.NewFunction(statement.Name, statement.Parameters, statement.Body, env)
		return nil, withLocation(env.Define(statement.Name, function), statement.Location)

	case AstStatementBlock:
		return ctx.executeStatements(statement.Statements, NewEnvironment(env))

	case AstStatementIf:
		condition, err := ctx.Evaluate(statement.Condition, env)
		if err != nil {
			return nil, err
		}
		if Truthy(condition) {
			return ctx.Execute(statement.Then, env)
		}
		if statement.Alternative != nil {
			return ctx.Execute(statement.Alternative, env)
		}
		return nil, nil

	case AstStatementWhile:
		for {
			condition, err := ctx.Evaluate(statement.Condition, env)
			if err != nil {
				return nil, err
			}
			if !Truthy(condition) {
				return nil, nil
			}

			cflow, err := ctx.Execute(statement.Body, env)
			if err != nil {
				return nil, err
			}
			switch cflow.(type) {
			case nil, Continue:
				continue
			case Break:
				return nil, nil
			}
			return cflow, nil
		}

	case AstStatementBreak:
		return Break{statement.Location}, nil

	case AstStatementContinue:
		return Continue{statement.Location}, nil

	case AstStatementReturn:
		value, err := ctx.Evaluate(statement.Expression, env)
		if err != nil {
			return nil, err
		}
		return Return{statement.Location, value}, nil
	}
	panic(fmt.Sprintf("unreachable: unknown statement %T", statement))
}

// Evaluate computes the value of expression in env.
func (ctx *Context) Evaluate(expression AstExpression, env *Environment) (Value, error) {
	switch expression := expression.(type) {
	case AstExpressionNil:
		return ctx.Nil, nil

	case AstExpressionBoolean:
		return ctx.NewBoolean(expression.Data), nil

	case AstExpressionNumber:
		return ctx.NewNumber(expression.Data), nil

	case AstExpressionString:
		return ctx.NewString(expression.Data), nil

	case AstExpressionIdentifier:
		value, ok := env.Get(expression.Name)
		if !ok {
			return nil, RuntimeError{Kind: VariableNotDefined, Name: expression.Name, Location: expression.Location}
		}
		return value, nil

	case AstExpressionGrouping:
		return ctx.Evaluate(expression.Expression, env)

	case AstExpressionAssignment:
		value, err := ctx.Evaluate(expression.Expression, env)
		if err != nil {
			return nil, err
		}
		if err := env.Assign(expression.Name, value); err != nil {
			return nil, withLocation(err, expression.Location)
		}
		return ctx.Nil, nil

	case AstExpressionUnary:
		return ctx.evaluateUnary(expression, env)

	case AstExpressionBinary:
		return ctx.evaluateBinary(expression, env)

	case AstExpressionConditional:
		condition, err := ctx.Evaluate(expression.Condition, env)
		if err != nil {
			return nil, err
		}
		if Truthy(condition) {
			return ctx.Evaluate(expression.Then, env)
		}
		return ctx.Evaluate(expression.Alternative, env)

	case AstExpressionCall:
		return ctx.evaluateCall(expression, env)
	}
	panic(fmt.Sprintf("unreachable: unknown expression %T", expression))
}

func (ctx *Context) evaluateUnary(expression AstExpressionUnary, env *Environment) (Value, error) {
	right, err := ctx.Evaluate(expression.Right, env)
	if err != nil {
		return nil, err
	}

	switch expression.Operator {
	case OPERATOR_SUBTRACTION:
		value, err := ctx.Negate(right)
		return value, withLocation(err, expression.Location)
	case OPERATOR_ADDITION:
		return right, nil
	case OPERATOR_NEGATION:
		return ctx.Not(right), nil
	}
	return nil, newRuntimeError(ExpectedNumberOperand, expression.Location)
}

func (ctx *Context) evaluateBinary(expression AstExpressionBinary, env *Environment) (Value, error) {
	left, err := ctx.Evaluate(expression.Left, env)
	if err != nil {
		return nil, err
	}

	// Logical operators only evaluate the right operand when the left one
	// does not decide the result.
	switch expression.Operator {
	case OPERATOR_CONJUNCTION:
		if !Truthy(left) {
			return ctx.False, nil
		}
		right, err := ctx.Evaluate(expression.Right, env)
		if err != nil {
			return nil, err
		}
		return ctx.NewBoolean(Truthy(right)), nil
	case OPERATOR_DISJUNCTION:
		if Truthy(left) {
			return ctx.True, nil
		}
		right, err := ctx.Evaluate(expression.Right, env)
		if err != nil {
			return nil, err
		}
		return ctx.NewBoolean(Truthy(right)), nil
	}

	right, err := ctx.Evaluate(expression.Right, env)
	if err != nil {
		return nil, err
	}

	var value Value
	switch expression.Operator {
	case OPERATOR_ADDITION:
		value, err = ctx.Add(left, right)
	case OPERATOR_SUBTRACTION:
		value, err = ctx.Subtract(left, right)
	case OPERATOR_MULTIPLICATION:
		value, err = ctx.Multiply(left, right)
	case OPERATOR_DIVISION:
		value, err = ctx.Divide(left, right)
	case OPERATOR_EQUAL, OPERATOR_NOT_EQUAL,
		OPERATOR_LESS, OPERATOR_LESS_OR_EQUAL,
		OPERATOR_GREATER, OPERATOR_GREATER_OR_EQUAL:
		value, err = ctx.Compare(expression.Operator, left, right)
	default:
		panic(fmt.Sprintf("unreachable: %s is not a binary operator", quote(string(expression.Operator))))
	}
	if err != nil {
		return nil, withLocation(err, expression.Location)
	}
	return value, nil
}

func (ctx *Context) evaluateCall(expression AstExpressionCall, env *Environment) (Value, error) {
	callee, err := ctx.Evaluate(expression.Callee, env)
	if err != nil {
		return nil, err
	}
	function, ok := callee.(*Function)
	if !ok {
		return nil, newRuntimeError(ExpressionNotCallable, expression.Location)
	}

	arguments := make([]Value, 0, len(expression.Arguments))
	for _, argument := range expression.Arguments {
		value, err := ctx.Evaluate(argument, env)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, value)
	}

	value, err := ctx.Call(function, arguments)
	if err != nil {
		return nil, withLocation(err, expression.Location)
	}
	return value, nil
}

// Call invokes function with arguments. The body runs in a new environment
// enclosed by the environment the function was declared in, not by the
// environment of the caller.
func (ctx *Context) Call(function *Function, arguments []Value) (Value, error) {
	if len(arguments) != len(function.Parameters) {
		return nil, RuntimeError{
			Kind: InvalidArgumentCount,
			Got:  len(arguments),
			Want: len(function.Parameters),
		}
	}
	if ctx.MaxCallDepth > 0 && ctx.callDepth >= ctx.MaxCallDepth {
		return nil, RuntimeError{Kind: CallDepthExceeded, Got: ctx.MaxCallDepth}
	}
	ctx.callDepth += 1
	defer func() { ctx.callDepth -= 1 }()

	env := NewEnvironment(function.Closure)
	for i, parameter := range function.Parameters {
		if err := env.Define(parameter, arguments[i]); err != nil {
			return nil, err
		}
	}

	cflow, err := ctx.executeStatements(function.Body, env)
	if err != nil {
		return nil, err
	}
	switch cflow := cflow.(type) {
	case nil:
		return ctx.Nil, nil
	case Return:
		return cflow.Value, nil
	}
	return nil, strayControlFlow(cflow)
}
