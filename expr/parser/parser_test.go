package parser

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// evaluator is a minimal integer interpreter used to check tree shapes.
type evaluator struct{}

func (evaluator) VisitIntegerLiteral(n *IntegerLiteral) int { return n.Value }

func (e evaluator) VisitUnaryOp(n *UnaryOp) int {
	if Accept[int](n.Operand, e) == 0 {
		return 1
	}
	return 0
}

func (e evaluator) VisitBinaryOp(n *BinaryOp) int {
	l, r := Accept[int](n.Left, e), Accept[int](n.Right, e)
	switch n.Operator {
	case OpAdd:
		return l + r
	case OpSub:
		return l - r
	case OpMul:
		return l * r
	case OpDiv:
		return l / r
	case OpPow:
		result := 1
		for i := 0; i < r; i++ {
			result *= l
		}
		return result
	}
	return 0
}

func (e evaluator) VisitConditional(n *Conditional) int {
	if Accept[int](n.Condition, e) != 0 {
		return Accept[int](n.Then, e)
	}
	return Accept[int](n.Else, e)
}

func mustParse(t *testing.T, input string, opts ...Option) Expression {
	t.Helper()
	expr, err := Parse(input, opts...)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", input, err)
	}
	return expr
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"2+3*4", "Add(2, Mul(3, 4))"},
		{"2*3+4", "Add(Mul(2, 3), 4)"},
		{"2-3-4", "Sub(Sub(2, 3), 4)"},
		{"8/4/2", "Div(Div(8, 4), 2)"},
		{"1-2+3", "Add(Sub(1, 2), 3)"},
		{"2^3^2", "Pow(2, Pow(3, 2))"},
		{"2*3^2", "Mul(2, Pow(3, 2))"},
		{"2^3*2", "Mul(Pow(2, 3), 2)"},
		{"!1", "Not(1)"},
		{"!!0", "Not(Not(0))"},
		{"!1+2", "Add(Not(1), 2)"},
		{"2^!0", "Pow(2, Not(0))"},
		{"if 1 then 2 else 3", "If(1, 2, 3)"},
		{"if 1 then 2 + 3 else 4 * 5", "If(1, Add(2, 3), Mul(4, 5))"},
		{"1 + if 0 then 1 else 2", "Add(1, If(0, 1, 2))"},
		{"1 + if 0 then 1 else 2 + 3", "Add(1, If(0, 1, Add(2, 3)))"},
		{"if if 1 then 0 else 1 then 2 else 3", "If(If(1, 0, 1), 2, 3)"},
		{"if 1 then if 0 then 2 else 3 else 4", "If(1, If(0, 2, 3), 4)"},
		{"  1\t+\r2 ", "Add(1, 2)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := String(mustParse(t, tt.input))
			if got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEvaluate(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"2-3-4", -5},
		{"2^3^2", 512},
		{"2+3*4", 14},
		{"100/10/5", 2},
		{"if 0 then 1 else 2", 2},
		{"if 1 - 1 then 10 else 20 + 1", 21},
		{"!0 + !5", 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Accept[int](mustParse(t, tt.input), evaluator{})
			if got != tt.want {
				t.Errorf("eval(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRoundTripScenario(t *testing.T) {
	expr := mustParse(t, "2+3*4")

	add, ok := expr.(*BinaryOp)
	if !ok || add.Operator != OpAdd {
		t.Fatalf("root = %s, want Add", String(expr))
	}
	if lit, ok := add.Left.(*IntegerLiteral); !ok || lit.Value != 2 {
		t.Errorf("left = %s, want 2", String(add.Left))
	}
	mul, ok := add.Right.(*BinaryOp)
	if !ok || mul.Operator != OpMul {
		t.Fatalf("right = %s, want Mul", String(add.Right))
	}
	want := &BinaryOp{
		Operator: OpAdd,
		Left:     &IntegerLiteral{Value: 2},
		Right: &BinaryOp{
			Operator: OpMul,
			Left:     &IntegerLiteral{Value: 3},
			Right:    &IntegerLiteral{Value: 4},
		},
	}
	if !Equal(expr, want) {
		t.Errorf("Parse(\"2+3*4\") = %s, want %s", String(expr), String(want))
	}
}

func TestParseConditional(t *testing.T) {
	expr := mustParse(t, "if 1 then 2 else 3")
	cond, ok := expr.(*Conditional)
	if !ok {
		t.Fatalf("root = %T, want *Conditional", expr)
	}
	for i, branch := range []Expression{cond.Condition, cond.Then, cond.Else} {
		lit, ok := branch.(*IntegerLiteral)
		if !ok || lit.Value != i+1 {
			t.Errorf("branch %d = %s, want %d", i, String(branch), i+1)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input    string
		message  string
		expected []TokenKind
		got      TokenKind
	}{
		{"", "no prefix rule for token kind EOF", nil, TokenEOF},
		{"+1", "no prefix rule for token kind PLUS", nil, TokenPlus},
		{"1 +", "no prefix rule for token kind EOF", nil, TokenEOF},
		{"x + 1", "no prefix rule for token kind IDENTIFIER", nil, TokenIdent},
		{"1.5", "no prefix rule for token kind CONST_DOUBLE", nil, TokenConstDouble},
		{"(1)", "no prefix rule for token kind LEFT_PAREN", nil, TokenLParen},
		{"1 2", "no infix rule for token kind CONST_INT", []TokenKind{TokenEOF}, TokenConstInt},
		{"1 < 2", "no infix rule for token kind LESS_THAN", []TokenKind{TokenEOF}, TokenLessThan},
		{"if 1 then 2", "unexpected token", []TokenKind{TokenElse}, TokenEOF},
		{"if 1 2 else 3", "unexpected token", []TokenKind{TokenThen}, TokenConstInt},
		{"if 1 then 2 then 3", "unexpected token", []TokenKind{TokenElse}, TokenThen},
		{"if then 1 else 2", "no prefix rule for token kind THEN", nil, TokenThen},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			expr, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) = %s, want error", tt.input, String(expr))
			}
			if expr != nil {
				t.Errorf("Parse(%q) returned a partial tree %s", tt.input, String(expr))
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error = %T (%v), want *ParseError", err, err)
			}
			if pe.Message != tt.message {
				t.Errorf("Message = %q, want %q", pe.Message, tt.message)
			}
			if len(pe.Expected) != len(tt.expected) {
				t.Fatalf("Expected = %v, want %v", pe.Expected, tt.expected)
			}
			for i := range pe.Expected {
				if pe.Expected[i] != tt.expected[i] {
					t.Errorf("Expected[%d] = %v, want %v", i, pe.Expected[i], tt.expected[i])
				}
			}
			if pe.Got.Kind != tt.got {
				t.Errorf("Got = %v, want %v", pe.Got.Kind, tt.got)
			}
		})
	}
}

func TestParseMissingElseMessage(t *testing.T) {
	_, err := Parse("if 1 then 2")
	if err == nil {
		t.Fatal("expected error")
	}
	want := "unexpected token: expected ELSE, got EOF at offset 11"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestParseLexicalErrors(t *testing.T) {
	tests := []string{"%", "¤", "1 + %", "if 1 then 2 else 3 $", "1.2.3", "1\n+2"}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			expr, err := Parse(input)
			if err == nil {
				t.Fatalf("Parse(%q) = %s, want error", input, String(expr))
			}
			var le *LexicalError
			if !errors.As(err, &le) {
				t.Errorf("error = %T (%v), want *LexicalError", err, err)
			}
		})
	}
}

func TestParseExtendedGrammar(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(1)", "1"},
		{"(1+2)*3", "Mul(Add(1, 2), 3)"},
		{"2^(3^2)", "Pow(2, Pow(3, 2))"},
		{"(2^3)^2", "Pow(Pow(2, 3), 2)"},
		{"!(1+2)", "Not(Add(1, 2))"},
		{"if (1) then (2) else (3)", "If(1, 2, 3)"},
		{"((((4))))", "4"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := String(mustParse(t, tt.input, WithGrammar(ExtendedGrammar())))
			if got != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}

	_, err := Parse("(1+2", WithGrammar(ExtendedGrammar()))
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if len(pe.Expected) != 1 || pe.Expected[0] != TokenRParen {
		t.Errorf("Expected = %v, want [RIGHT_PAREN]", pe.Expected)
	}
}

func TestParseExpressionStopsAtPrecedence(t *testing.T) {
	p, err := NewParser(NewLexer("2*3+4"))
	if err != nil {
		t.Fatalf("NewParser() error: %v", err)
	}
	expr, err := p.ParseExpression(PrecedenceProduct)
	if err != nil {
		t.Fatalf("ParseExpression() error: %v", err)
	}
	if got := String(expr); got != "Mul(2, 3)" {
		t.Errorf("ParseExpression(Product) = %s, want Mul(2, 3)", got)
	}
	if p.Peek().Kind != TokenPlus {
		t.Errorf("Peek() = %v, want PLUS", p.Peek())
	}
}

func TestNewParserReportsFirstTokenError(t *testing.T) {
	_, err := NewParser(NewLexer("%"))
	var le *LexicalError
	if !errors.As(err, &le) {
		t.Fatalf("NewParser() error = %v, want *LexicalError", err)
	}
}

func TestParseWithTrace(t *testing.T) {
	got := String(mustParse(t, "2^3^2", WithTrace()))
	if got != "Pow(2, Pow(3, 2))" {
		t.Errorf("traced Parse = %s", got)
	}
}

func TestParseSharedGrammar(t *testing.T) {
	inputs := []string{"1+2", "2-3-4", "2^3^2", "if 1 then 2 else 3", "!0"}
	want := make([]string, len(inputs))
	for i, input := range inputs {
		want[i] = String(mustParse(t, input))
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8*len(inputs))
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i, input := range inputs {
				expr, err := Parse(input, WithGrammar(DefaultGrammar()))
				if err != nil {
					errs <- err.Error()
					continue
				}
				if got := String(expr); got != want[i] {
					errs <- got + " != " + want[i]
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	var failures []string
	for e := range errs {
		failures = append(failures, e)
	}
	if len(failures) > 0 {
		t.Errorf("concurrent parses failed: %s", strings.Join(failures, "; "))
	}
}

func TestErrorSpan(t *testing.T) {
	tests := []struct {
		input      string
		start, end int
	}{
		{"2 + %x", 4, 6},
		{"2 3", 2, 3},
		{"2 +", 3, 3},
		{"if 1 then 2 then", 12, 16},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}
			start, end, ok := ErrorSpan(fmt.Errorf("line 1: %w", err))
			if !ok || start != tt.start || end != tt.end {
				t.Errorf("ErrorSpan() = %d, %d, %v, want %d, %d, true", start, end, ok, tt.start, tt.end)
			}
		})
	}

	if _, _, ok := ErrorSpan(errors.New("other")); ok {
		t.Errorf("ErrorSpan(other) ok = true, want false")
	}
}
