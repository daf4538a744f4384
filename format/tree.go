package format

import (
	"io"
	"strings"

	"github.com/dhamidi/pratt/expr/parser"
)

const treeIndent = "  "

// TreeEncoder writes one line per node, children indented below their
// parent, in pre-order:
//
//	BinaryOp Add
//	  IntegerLiteral 2
//	  BinaryOp Mul
//	    IntegerLiteral 3
//	    IntegerLiteral 4
type TreeEncoder struct {
	w io.Writer
}

func NewTreeEncoder(w io.Writer) *TreeEncoder {
	return &TreeEncoder{w: w}
}

func (e *TreeEncoder) Encode(expr parser.Expression) error {
	text, err := e.MarshalText(expr)
	return encode(e.w, text, err)
}

func (e *TreeEncoder) MarshalText(expr parser.Expression) ([]byte, error) {
	p := &treePrinter{}
	parser.Accept[struct{}](expr, p)
	return []byte(p.sb.String()), nil
}

type treePrinter struct {
	sb    strings.Builder
	depth int
}

func (p *treePrinter) line(kind parser.NodeKind, label string) {
	p.sb.WriteString(strings.Repeat(treeIndent, p.depth))
	p.sb.WriteString(kind.String())
	if label != "" {
		p.sb.WriteString(" ")
		p.sb.WriteString(label)
	}
	p.sb.WriteString("\n")
}

func (p *treePrinter) children(children ...parser.Expression) struct{} {
	p.depth++
	for _, child := range children {
		parser.Accept[struct{}](child, p)
	}
	p.depth--
	return struct{}{}
}

func (p *treePrinter) VisitIntegerLiteral(n *parser.IntegerLiteral) struct{} {
	p.line(parser.KindIntegerLiteral, parser.Label(n))
	return struct{}{}
}

func (p *treePrinter) VisitUnaryOp(n *parser.UnaryOp) struct{} {
	p.line(parser.KindUnaryOp, n.Operator.String())
	return p.children(n.Operand)
}

func (p *treePrinter) VisitBinaryOp(n *parser.BinaryOp) struct{} {
	p.line(parser.KindBinaryOp, n.Operator.String())
	return p.children(n.Left, n.Right)
}

func (p *treePrinter) VisitConditional(n *parser.Conditional) struct{} {
	p.line(parser.KindConditional, "")
	return p.children(n.Condition, n.Then, n.Else)
}
