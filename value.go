package lox

import (
	"fmt"
	"math"
	"strconv"
)

// Value is a runtime value. The set of implementations is closed: *Nil,
// *Boolean, *Integer, *Float, *String, and *Function.
type Value interface {
	Typename() string
	String() string
}

type Nil struct{}

func (self *Nil) Typename() string {
	return "nil"
}

func (self *Nil) String() string {
	return "nil"
}

type Boolean struct {
	data bool
}

func (self *Boolean) Typename() string {
	return "boolean"
}

func (self *Boolean) String() string {
	if self.data {
		return "true"
	}
	return "false"
}

func (self *Boolean) Data() bool {
	return self.data
}

type Integer struct {
	data int64
}

func (self *Integer) Typename() string {
	return "integer"
}

func (self *Integer) String() string {
	return strconv.FormatInt(self.data, 10)
}

func (self *Integer) Data() int64 {
	return self.data
}

type Float struct {
	data float64
}

func (self *Float) Typename() string {
	return "float"
}

func (self *Float) String() string {
	if math.IsNaN(self.data) {
		return "NaN"
	}
	if self.data == math.Inf(+1) {
		return "inf"
	}
	if self.data == math.Inf(-1) {
		return "-inf"
	}
	return strconv.FormatFloat(self.data, 'f', -1, 64)
}

func (self *Float) Data() float64 {
	return self.data
}

type String struct {
	data string
}

func (self *String) Typename() string {
	return "string"
}

func (self *String) String() string {
	return fmt.Sprintf("\"%s\"", escape(self.data))
}

func (self *String) Data() string {
	return self.data
}

// Function is a user defined function together with the environment it was
// declared in.
type Function struct {
	Name       string
	Parameters []string
	Body       []AstStatement
	Closure    *Environment
}

func (self *Function) Typename() string {
	return "function"
}

func (self *Function) String() string {
	return fmt.Sprintf("<fn %s>", self.Name)
}

// Display returns the text print writes for value. Strings are written
// verbatim; every other value uses its String form.
func Display(value Value) string {
	if s, ok := value.(*String); ok {
		return s.data
	}
	return value.String()
}

// Truthy coerces value to a boolean. Only false, nil, and numeric zero are
// falsy; every string, including the empty string, is truthy.
func Truthy(value Value) bool {
	switch value := value.(type) {
	case *Boolean:
		return value.data
	case *Integer:
		return value.data != 0
	case *Float:
		return value.data != 0.0
	case *String:
		return true
	case *Nil:
		return false
	case *Function:
		return true
	}
	panic(fmt.Sprintf("unreachable: unknown value type %T", value))
}

// NewNumber converts a numeric literal. Numbers without a fractional part
// become integers, saturating at the bounds of int64.
func (ctx *Context) NewNumber(data float64) Value {
	if data != math.Trunc(data) {
		return ctx.NewFloat(data)
	}
	// float64(math.MaxInt64) rounds up to 2^63, which does not fit.
	if data >= math.MaxInt64 {
		return ctx.NewInteger(math.MaxInt64)
	}
	if data <= math.MinInt64 {
		return ctx.NewInteger(math.MinInt64)
	}
	return ctx.NewInteger(int64(data))
}

func errExpectedNumberOperand() error {
	return newRuntimeError(ExpectedNumberOperand, nil)
}

func (ctx *Context) Negate(value Value) (Value, error) {
	switch value := value.(type) {
	case *Integer:
		return ctx.NewInteger(-value.data), nil
	case *Float:
		return ctx.NewFloat(-value.data), nil
	}
	return nil, errExpectedNumberOperand()
}

func (ctx *Context) Not(value Value) Value {
	return ctx.NewBoolean(!Truthy(value))
}

// arithmetic applies an operator with numeric promotion: two integers give an
// integer, any float operand promotes the result to a float.
func (ctx *Context) arithmetic(left, right Value, integers func(int64, int64) int64, floats func(float64, float64) float64) (Value, error) {
	switch l := left.(type) {
	case *Integer:
		switch r := right.(type) {
		case *Integer:
			return ctx.NewInteger(integers(l.data, r.data)), nil
		case *Float:
			return ctx.NewFloat(floats(float64(l.data), r.data)), nil
		}
	case *Float:
		switch r := right.(type) {
		case *Integer:
			return ctx.NewFloat(floats(l.data, float64(r.data))), nil
		case *Float:
			return ctx.NewFloat(floats(l.data, r.data)), nil
		}
	}
	return nil, errExpectedNumberOperand()
}

// Add adds numbers, or concatenates when the left operand is a string. A
// numeric right operand is concatenated in its display form.
func (ctx *Context) Add(left, right Value) (Value, error) {
	if l, ok := left.(*String); ok {
		switch r := right.(type) {
		case *String:
			return ctx.NewString(l.data + r.data), nil
		case *Integer, *Float:
			return ctx.NewString(l.data + Display(r)), nil
		}
		return nil, errExpectedNumberOperand()
	}
	return ctx.arithmetic(left, right,
		func(a, b int64) int64 { return a + b },
		func(a, b float64) float64 { return a + b })
}

func (ctx *Context) Subtract(left, right Value) (Value, error) {
	return ctx.arithmetic(left, right,
		func(a, b int64) int64 { return a - b },
		func(a, b float64) float64 { return a - b })
}

func (ctx *Context) Multiply(left, right Value) (Value, error) {
	return ctx.arithmetic(left, right,
		func(a, b int64) int64 { return a * b },
		func(a, b float64) float64 { return a * b })
}

func isZero(value Value) bool {
	switch value := value.(type) {
	case *Integer:
		return value.data == 0
	case *Float:
		return value.data == 0.0
	}
	return false
}

// Divide divides numbers. A zero divisor fails with ZeroDivision before the
// operand types are checked. Integer division that leaves no remainder stays
// an integer, otherwise the result is a float.
func (ctx *Context) Divide(left, right Value) (Value, error) {
	if isZero(right) {
		return nil, newRuntimeError(ZeroDivision, nil)
	}
	if l, ok := left.(*Integer); ok {
		if r, ok := right.(*Integer); ok {
			if l.data%r.data == 0 {
				return ctx.NewInteger(l.data / r.data), nil
			}
			return ctx.NewFloat(float64(l.data) / float64(r.data)), nil
		}
	}
	return ctx.arithmetic(left, right,
		func(a, b int64) int64 { return a / b },
		func(a, b float64) float64 { return a / b })
}

// order compares two numeric values. The second result is false when either
// value is not a number, the third when the numbers are unordered (NaN).
func order(left, right Value) (ordering int, numeric bool, ordered bool) {
	var l, r float64
	switch lv := left.(type) {
	case *Integer:
		switch rv := right.(type) {
		case *Integer:
			switch {
			case lv.data < rv.data:
				return -1, true, true
			case lv.data > rv.data:
				return +1, true, true
			}
			return 0, true, true
		case *Float:
			l, r = float64(lv.data), rv.data
		default:
			return 0, false, false
		}
	case *Float:
		switch rv := right.(type) {
		case *Integer:
			l, r = lv.data, float64(rv.data)
		case *Float:
			l, r = lv.data, rv.data
		default:
			return 0, false, false
		}
	default:
		return 0, false, false
	}

	switch {
	case l < r:
		return -1, true, true
	case l > r:
		return +1, true, true
	case l == r:
		return 0, true, true
	}
	return 0, true, false
}

// equal compares two values for equality. The second result is false when
// the values cannot be compared: mixed types other than integer and float,
// nil, functions, and NaN.
func equal(left, right Value) (bool, bool) {
	switch l := left.(type) {
	case *String:
		if r, ok := right.(*String); ok {
			return l.data == r.data, true
		}
		return false, false
	case *Boolean:
		if r, ok := right.(*Boolean); ok {
			return l.data == r.data, true
		}
		return false, false
	}
	ordering, numeric, ordered := order(left, right)
	if !numeric || !ordered {
		return false, false
	}
	return ordering == 0, true
}

// Compare evaluates a comparison operator. Equality operators yield false for
// values that cannot be compared; ordering operators require numbers.
func (ctx *Context) Compare(operator Operator, left, right Value) (Value, error) {
	switch operator {
	case OPERATOR_EQUAL, OPERATOR_NOT_EQUAL:
		eq, comparable := equal(left, right)
		if !comparable {
			return ctx.False, nil
		}
		if operator == OPERATOR_NOT_EQUAL {
			eq = !eq
		}
		return ctx.NewBoolean(eq), nil
	}

	ordering, numeric, ordered := order(left, right)
	if !numeric {
		return nil, errExpectedNumberOperand()
	}
	if !ordered {
		return ctx.False, nil
	}
	switch operator {
	case OPERATOR_LESS:
		return ctx.NewBoolean(ordering < 0), nil
	case OPERATOR_LESS_OR_EQUAL:
		return ctx.NewBoolean(ordering <= 0), nil
	case OPERATOR_GREATER:
		return ctx.NewBoolean(ordering > 0), nil
	case OPERATOR_GREATER_OR_EQUAL:
		return ctx.NewBoolean(ordering >= 0), nil
	}
	panic(fmt.Sprintf("unreachable: %s is not a comparison operator", quote(string(operator))))
}
