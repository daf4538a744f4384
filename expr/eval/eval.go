// Package eval computes the integer value of an expression tree.
package eval

import (
	"errors"
	"fmt"

	"github.com/dhamidi/pratt/expr/parser"
)

var (
	ErrDivisionByZero   = errors.New("division by zero")
	ErrNegativeExponent = errors.New("negative exponent")
)

// Evaluate returns the value of e. Arithmetic wraps on overflow like Go's
// int. Not yields 1 for 0 and 0 otherwise; a conditional takes its then
// branch when the condition is non-zero and evaluates only that branch.
func Evaluate(e parser.Expression) (int, error) {
	ev := &evaluator{}
	value := parser.Accept[int](e, ev)
	if ev.err != nil {
		return 0, ev.err
	}
	return value, nil
}

type evaluator struct {
	err error
}

func (ev *evaluator) VisitIntegerLiteral(n *parser.IntegerLiteral) int {
	return n.Value
}

func (ev *evaluator) VisitUnaryOp(n *parser.UnaryOp) int {
	operand := parser.Accept[int](n.Operand, ev)
	if ev.err != nil {
		return 0
	}
	if operand == 0 {
		return 1
	}
	return 0
}

func (ev *evaluator) VisitBinaryOp(n *parser.BinaryOp) int {
	left := parser.Accept[int](n.Left, ev)
	if ev.err != nil {
		return 0
	}
	right := parser.Accept[int](n.Right, ev)
	if ev.err != nil {
		return 0
	}

	switch n.Operator {
	case parser.OpAdd:
		return left + right
	case parser.OpSub:
		return left - right
	case parser.OpMul:
		return left * right
	case parser.OpDiv:
		if right == 0 {
			ev.err = fmt.Errorf("%w: %s", ErrDivisionByZero, parser.String(n))
			return 0
		}
		return left / right
	case parser.OpPow:
		if right < 0 {
			ev.err = fmt.Errorf("%w: %s", ErrNegativeExponent, parser.String(n))
			return 0
		}
		return pow(left, right)
	}
	ev.err = fmt.Errorf("unknown operator %s", n.Operator)
	return 0
}

func (ev *evaluator) VisitConditional(n *parser.Conditional) int {
	condition := parser.Accept[int](n.Condition, ev)
	if ev.err != nil {
		return 0
	}
	if condition != 0 {
		return parser.Accept[int](n.Then, ev)
	}
	return parser.Accept[int](n.Else, ev)
}

func pow(base, exp int) int {
	result := 1
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}
