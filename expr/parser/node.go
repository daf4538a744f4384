package parser

import "strconv"

// Expression is a node of the syntax tree. The set of implementations is
// closed: *IntegerLiteral, *UnaryOp, *BinaryOp and *Conditional.
type Expression interface {
	Kind() NodeKind
	exprNode()
}

type NodeKind int

const (
	KindIntegerLiteral NodeKind = iota
	KindUnaryOp
	KindBinaryOp
	KindConditional
)

var nodeKindNames = map[NodeKind]string{
	KindIntegerLiteral: "IntegerLiteral",
	KindUnaryOp:        "UnaryOp",
	KindBinaryOp:       "BinaryOp",
	KindConditional:    "Conditional",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type UnaryOperator int

const (
	OpNot UnaryOperator = iota
)

func (op UnaryOperator) String() string {
	switch op {
	case OpNot:
		return "Not"
	}
	return "Unknown"
}

// Symbol returns the source spelling of the operator.
func (op UnaryOperator) Symbol() string {
	switch op {
	case OpNot:
		return "!"
	}
	return "?"
}

type BinaryOperator int

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

var binaryOperatorNames = map[BinaryOperator]string{
	OpAdd: "Add",
	OpSub: "Sub",
	OpMul: "Mul",
	OpDiv: "Div",
	OpPow: "Pow",
}

var binaryOperatorSymbols = map[BinaryOperator]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpPow: "^",
}

func (op BinaryOperator) String() string {
	if name, ok := binaryOperatorNames[op]; ok {
		return name
	}
	return "Unknown"
}

// Symbol returns the source spelling of the operator.
func (op BinaryOperator) Symbol() string {
	if sym, ok := binaryOperatorSymbols[op]; ok {
		return sym
	}
	return "?"
}

type IntegerLiteral struct {
	Value int
}

type UnaryOp struct {
	Operator UnaryOperator
	Operand  Expression
}

type BinaryOp struct {
	Operator BinaryOperator
	Left     Expression
	Right    Expression
}

// Conditional is "if Condition then Then else Else".
type Conditional struct {
	Condition Expression
	Then      Expression
	Else      Expression
}

func (*IntegerLiteral) Kind() NodeKind { return KindIntegerLiteral }
func (*UnaryOp) Kind() NodeKind        { return KindUnaryOp }
func (*BinaryOp) Kind() NodeKind       { return KindBinaryOp }
func (*Conditional) Kind() NodeKind    { return KindConditional }

func (*IntegerLiteral) exprNode() {}
func (*UnaryOp) exprNode()        {}
func (*BinaryOp) exprNode()       {}
func (*Conditional) exprNode()    {}

// Label returns the text that identifies a node apart from its children:
// the literal value or the operator name.
func Label(e Expression) string {
	switch n := e.(type) {
	case *IntegerLiteral:
		return strconv.Itoa(n.Value)
	case *UnaryOp:
		return n.Operator.String()
	case *BinaryOp:
		return n.Operator.String()
	case *Conditional:
		return "If"
	}
	return ""
}

// Children returns the direct children of e in source order.
func Children(e Expression) []Expression {
	switch n := e.(type) {
	case *UnaryOp:
		return []Expression{n.Operand}
	case *BinaryOp:
		return []Expression{n.Left, n.Right}
	case *Conditional:
		return []Expression{n.Condition, n.Then, n.Else}
	}
	return nil
}

// Inspect walks the tree in pre-order, calling f for each node. If f
// returns false the children of that node are skipped.
func Inspect(e Expression, f func(Expression) bool) {
	if e == nil || !f(e) {
		return
	}
	for _, child := range Children(e) {
		Inspect(child, f)
	}
}

// Equal reports whether a and b are structurally identical trees.
func Equal(a, b Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() || Label(a) != Label(b) {
		return false
	}
	ac, bc := Children(a), Children(b)
	for i := range ac {
		if !Equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

func (n *IntegerLiteral) String() string { return String(n) }
func (n *UnaryOp) String() string        { return String(n) }
func (n *BinaryOp) String() string       { return String(n) }
func (n *Conditional) String() string    { return String(n) }

// String renders e in the compact prefix form used in test failures,
// e.g. Add(2, Mul(3, 4)).
func String(e Expression) string {
	children := Children(e)
	if len(children) == 0 {
		return Label(e)
	}
	result := Label(e) + "("
	for i, child := range children {
		if i > 0 {
			result += ", "
		}
		result += String(child)
	}
	return result + ")"
}
