package parser

import "fmt"

// Visitor is implemented by consumers that compute a T from a tree. Each
// method receives the node itself; composite visitors recurse by calling
// Accept on the children they care about, conventionally in the order
// returned by Children.
type Visitor[T any] interface {
	VisitIntegerLiteral(n *IntegerLiteral) T
	VisitUnaryOp(n *UnaryOp) T
	VisitBinaryOp(n *BinaryOp) T
	VisitConditional(n *Conditional) T
}

// Accept dispatches e to the matching method of v.
func Accept[T any](e Expression, v Visitor[T]) T {
	switch n := e.(type) {
	case *IntegerLiteral:
		return v.VisitIntegerLiteral(n)
	case *UnaryOp:
		return v.VisitUnaryOp(n)
	case *BinaryOp:
		return v.VisitBinaryOp(n)
	case *Conditional:
		return v.VisitConditional(n)
	}
	panic(fmt.Sprintf("parser: unknown expression type %T", e))
}
