package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/pratt/expr/parser"
)

type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(expr parser.Expression) error {
	text, err := e.MarshalText(expr)
	if err != nil {
		return err
	}
	return encode(e.w, append(text, '\n'), nil)
}

func (e *JSONEncoder) MarshalText(expr parser.Expression) ([]byte, error) {
	return json.MarshalIndent(expr, "", "  ")
}
