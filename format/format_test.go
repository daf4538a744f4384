package format

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dhamidi/pratt/expr/parser"
)

func mustParse(t *testing.T, input string) parser.Expression {
	t.Helper()
	expr, err := parser.Parse(input, parser.WithGrammar(parser.ExtendedGrammar()))
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", input, err)
	}
	return expr
}

func TestNewEncoder(t *testing.T) {
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			enc, err := NewEncoder(name, &buf)
			if err != nil {
				t.Fatalf("NewEncoder(%q) error: %v", name, err)
			}
			if err := enc.Encode(mustParse(t, "1+2")); err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if buf.Len() == 0 {
				t.Errorf("Encode() wrote nothing")
			}
		})
	}

	if _, err := NewEncoder("xml", &bytes.Buffer{}); err == nil {
		t.Errorf("NewEncoder(xml) succeeded, want error")
	} else if !strings.Contains(err.Error(), "unknown format: xml") {
		t.Errorf("NewEncoder(xml) error = %v", err)
	}
}

func TestTreeEncoder(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"7", "IntegerLiteral 7\n"},
		{"2+3*4", "BinaryOp Add\n" +
			"  IntegerLiteral 2\n" +
			"  BinaryOp Mul\n" +
			"    IntegerLiteral 3\n" +
			"    IntegerLiteral 4\n"},
		{"!if 1 then 2 else 3", "UnaryOp Not\n" +
			"  Conditional\n" +
			"    IntegerLiteral 1\n" +
			"    IntegerLiteral 2\n" +
			"    IntegerLiteral 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewTreeEncoder(&buf).Encode(mustParse(t, tt.input)); err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("tree output:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestLineEncoder(t *testing.T) {
	got, err := NewLineEncoder(nil).MarshalText(mustParse(t, "2^3^2"))
	if err != nil {
		t.Fatalf("MarshalText() error: %v", err)
	}
	want := "0\tBinaryOp\tPow\n" +
		"1\tIntegerLiteral\t2\n" +
		"1\tBinaryOp\tPow\n" +
		"2\tIntegerLiteral\t3\n" +
		"2\tIntegerLiteral\t2\n"
	if string(got) != want {
		t.Errorf("line output = %q, want %q", got, want)
	}
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONEncoder(&buf).Encode(mustParse(t, "5")); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	want := "{\n  \"kind\": \"IntegerLiteral\",\n  \"value\": 5\n}\n"
	if got := buf.String(); got != want {
		t.Errorf("json output = %q, want %q", got, want)
	}
}

func TestSource(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2+3*4", "2 + 3 * 4"},
		{"(2+3)*4", "(2 + 3) * 4"},
		{"2-3-4", "2 - 3 - 4"},
		{"2-(3-4)", "2 - (3 - 4)"},
		{"2*(3/4)", "2 * (3 / 4)"},
		{"2^3^2", "2 ^ 3 ^ 2"},
		{"(2^3)^2", "(2 ^ 3) ^ 2"},
		{"!2+3", "!2 + 3"},
		{"!(2+3)", "!(2 + 3)"},
		{"!2^3", "!2 ^ 3"},
		{"!!0", "!!0"},
		{"((7))", "7"},
		{"if 1 then 2 else 3", "if 1 then 2 else 3"},
		{"if 1+2 then 3*4 else 5", "if 1 + 2 then 3 * 4 else 5"},
		{"1 + (if 1 then 2 else 3)", "1 + if 1 then 2 else 3"},
		{"(if 1 then 2 else 3) * 4", "(if 1 then 2 else 3) * 4"},
		{"!(if 0 then 1 else 2)", "!if 0 then 1 else 2"},
		{"2 ^ (if 0 then 1 else 2)", "2 ^ if 0 then 1 else 2"},
		{"!(if 1 then 0 else 1) + 2", "!(if 1 then 0 else 1) + 2"},
		{"(1 - (if 1 then 2 else 3)) * 4", "(1 - if 1 then 2 else 3) * 4"},
		{"if 1 then 2 else 3 + 4", "if 1 then 2 else 3 + 4"},
		{"(if 1 then 2 else 3) + 4", "(if 1 then 2 else 3) + 4"},
		{"if (if 1 then 2 else 3) then 4 else 5", "if if 1 then 2 else 3 then 4 else 5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Source(mustParse(t, tt.input)); got != tt.want {
				t.Errorf("Source(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSourceNegativeLiteral(t *testing.T) {
	expr := &parser.BinaryOp{
		Operator: parser.OpSub,
		Left:     &parser.IntegerLiteral{Value: 1},
		Right:    &parser.IntegerLiteral{Value: -5},
	}
	got := Source(expr)
	if got != "1 - (0 - 5)" {
		t.Errorf("Source() = %q, want %q", got, "1 - (0 - 5)")
	}
	if _, err := parser.Parse(got, parser.WithGrammar(parser.ExtendedGrammar())); err != nil {
		t.Errorf("Parse(%q) error: %v", got, err)
	}
}

func TestSourceEncoderAppendsNewline(t *testing.T) {
	var buf bytes.Buffer
	if err := NewSourceEncoder(&buf).Encode(mustParse(t, "1+2")); err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	if got := buf.String(); got != "1 + 2\n" {
		t.Errorf("Encode() wrote %q", got)
	}
}
