// Package format renders expression trees as text.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/pratt/expr/parser"
)

type Encoder interface {
	Encode(expr parser.Expression) error
	MarshalText(expr parser.Expression) ([]byte, error)
}

// Names lists the encoders known to NewEncoder.
var Names = []string{"tree", "json", "source", "line"}

// NewEncoder returns the encoder registered under name, writing to w.
func NewEncoder(name string, w io.Writer) (Encoder, error) {
	switch name {
	case "tree":
		return NewTreeEncoder(w), nil
	case "json":
		return NewJSONEncoder(w), nil
	case "source":
		return NewSourceEncoder(w), nil
	case "line":
		return NewLineEncoder(w), nil
	}
	return nil, fmt.Errorf("unknown format: %s (expected %s)", name, strings.Join(Names, ", "))
}

func encode(w io.Writer, text []byte, err error) error {
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
