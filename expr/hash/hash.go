// Package hash computes a structural 32-bit hash of an expression tree.
//
// A literal hashes to its own value; every other node combines the hashes
// of its children with a small linear function specific to its operator.
// Arithmetic wraps at 32 bits.
package hash

import "github.com/dhamidi/pratt/expr/parser"

// Sum returns the structural hash of e.
func Sum(e parser.Expression) int32 {
	return parser.Accept[int32](e, hasher{})
}

type hasher struct{}

func (h hasher) VisitIntegerLiteral(n *parser.IntegerLiteral) int32 {
	return int32(n.Value)
}

func (h hasher) VisitUnaryOp(n *parser.UnaryOp) int32 {
	operand := parser.Accept[int32](n.Operand, h)
	return 15 + 31*operand
}

func (h hasher) VisitBinaryOp(n *parser.BinaryOp) int32 {
	l := parser.Accept[int32](n.Left, h)
	r := parser.Accept[int32](n.Right, h)
	switch n.Operator {
	case parser.OpAdd:
		return 7 + 2*l - 3*r
	case parser.OpSub:
		return 15 + 5*l - 7*r
	case parser.OpMul:
		return 6 + 11*l - 13*r
	case parser.OpDiv:
		return 8 + 17*l - 19*r
	case parser.OpPow:
		return 16 + 23*l - 29*r
	}
	return 0
}

func (h hasher) VisitConditional(n *parser.Conditional) int32 {
	c := parser.Accept[int32](n.Condition, h)
	t := parser.Accept[int32](n.Then, h)
	e := parser.Accept[int32](n.Else, h)
	return 9 + 37*c - 41*t + 43*e
}
