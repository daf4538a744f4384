package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/pratt/expr/parser"
)

// LineEncoder writes one tab-separated record per node in pre-order:
// depth, node kind and label. It is meant for grep and awk.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(expr parser.Expression) error {
	text, err := e.MarshalText(expr)
	return encode(e.w, text, err)
}

func (e *LineEncoder) MarshalText(expr parser.Expression) ([]byte, error) {
	var sb strings.Builder
	e.writeNode(&sb, expr, 0)
	return []byte(sb.String()), nil
}

func (e *LineEncoder) writeNode(sb *strings.Builder, expr parser.Expression, depth int) {
	fmt.Fprintf(sb, "%d\t%s\t%s\n", depth, expr.Kind(), parser.Label(expr))
	for _, child := range parser.Children(expr) {
		e.writeNode(sb, child, depth+1)
	}
}
