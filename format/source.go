package format

import (
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/pratt/expr/parser"
)

// SourceEncoder prints an expression back as infix text with the fewest
// parentheses that keep the tree shape. The output parses back to an equal
// tree under parser.ExtendedGrammar, and under parser.DefaultGrammar
// whenever the tree came from it.
type SourceEncoder struct {
	w io.Writer
}

func NewSourceEncoder(w io.Writer) *SourceEncoder {
	return &SourceEncoder{w: w}
}

func (e *SourceEncoder) Encode(expr parser.Expression) error {
	text, err := e.MarshalText(expr)
	if err != nil {
		return err
	}
	return encode(e.w, append(text, '\n'), nil)
}

func (e *SourceEncoder) MarshalText(expr parser.Expression) ([]byte, error) {
	var sb strings.Builder
	writeSource(&sb, expr, true)
	return []byte(sb.String()), nil
}

// Source returns the infix text of expr.
func Source(expr parser.Expression) string {
	var sb strings.Builder
	writeSource(&sb, expr, true)
	return sb.String()
}

// writeSource prints expr. tail is set when nothing follows expr up to the
// end of the input or a closing keyword or parenthesis, so a conditional
// there can run to the end without parentheses.
func writeSource(sb *strings.Builder, expr parser.Expression, tail bool) {
	switch n := expr.(type) {
	case *parser.IntegerLiteral:
		// The grammar has no negative literals.
		if n.Value < 0 {
			sb.WriteString("(0 - ")
			sb.WriteString(strconv.FormatUint(uint64(-int64(n.Value)), 10))
			sb.WriteString(")")
			return
		}
		sb.WriteString(strconv.Itoa(n.Value))
	case *parser.UnaryOp:
		sb.WriteString(n.Operator.Symbol())
		writeOperand(sb, n.Operand, needsParens(n.Operand, parser.PrecedencePrefix, false, tail), tail)
	case *parser.BinaryOp:
		prec, leftAssoc := binaryPrecedence(n.Operator)
		writeOperand(sb, n.Left, needsParens(n.Left, prec, !leftAssoc, false), false)
		sb.WriteString(" ")
		sb.WriteString(n.Operator.Symbol())
		sb.WriteString(" ")
		writeOperand(sb, n.Right, needsParens(n.Right, prec, leftAssoc, tail), tail)
	case *parser.Conditional:
		sb.WriteString("if ")
		writeSource(sb, n.Condition, true)
		sb.WriteString(" then ")
		writeSource(sb, n.Then, true)
		sb.WriteString(" else ")
		writeSource(sb, n.Else, tail)
	}
}

func writeOperand(sb *strings.Builder, expr parser.Expression, parens, tail bool) {
	if parens {
		sb.WriteString("(")
	}
	writeSource(sb, expr, parens || tail)
	if parens {
		sb.WriteString(")")
	}
}

// needsParens reports whether child must be wrapped to sit under an
// operator of precedence prec. tieBreaks is set when a child of equal
// precedence would otherwise regroup. A conditional absorbs every operator
// after its else, so it only needs wrapping outside tail position.
func needsParens(child parser.Expression, prec int, tieBreaks, tail bool) bool {
	if _, ok := child.(*parser.Conditional); ok {
		return !tail
	}
	childPrec := nodePrecedence(child)
	return childPrec < prec || (childPrec == prec && tieBreaks)
}

func nodePrecedence(expr parser.Expression) int {
	switch n := expr.(type) {
	case *parser.UnaryOp:
		return parser.PrecedencePrefix
	case *parser.BinaryOp:
		prec, _ := binaryPrecedence(n.Operator)
		return prec
	}
	return parser.PrecedenceCall
}

// binaryPrecedence looks the operator up in the default grammar so the
// printer and the parser never disagree.
func binaryPrecedence(op parser.BinaryOperator) (int, bool) {
	kind, ok := operatorTokens[op]
	if !ok {
		return parser.PrecedenceInitial, true
	}
	rule, ok := parser.DefaultGrammar().Infix(kind)
	if !ok {
		return parser.PrecedenceInitial, true
	}
	return rule.Precedence(), rule.LeftAssociative()
}

var operatorTokens = map[parser.BinaryOperator]parser.TokenKind{
	parser.OpAdd: parser.TokenPlus,
	parser.OpSub: parser.TokenMinus,
	parser.OpMul: parser.TokenAsterisk,
	parser.OpDiv: parser.TokenSlash,
	parser.OpPow: parser.TokenCaret,
}
