package parser

import "testing"

func TestDefaultGrammarPrefixRules(t *testing.T) {
	g := DefaultGrammar()
	tests := []struct {
		kind TokenKind
		want bool
	}{
		{TokenNot, true},
		{TokenConstInt, true},
		{TokenIf, true},
		{TokenPlus, false},
		{TokenLParen, false},
		{TokenConstDouble, false},
		{TokenIdent, false},
		{TokenEOF, false},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if _, ok := g.Prefix(tt.kind); ok != tt.want {
				t.Errorf("Prefix(%v) found = %v, want %v", tt.kind, ok, tt.want)
			}
		})
	}
}

func TestDefaultGrammarInfixRules(t *testing.T) {
	g := DefaultGrammar()
	tests := []struct {
		kind       TokenKind
		precedence int
		leftAssoc  bool
		right      int
	}{
		{TokenPlus, PrecedenceSum, true, PrecedenceSum + 1},
		{TokenMinus, PrecedenceSum, true, PrecedenceSum + 1},
		{TokenAsterisk, PrecedenceProduct, true, PrecedenceProduct + 1},
		{TokenSlash, PrecedenceProduct, true, PrecedenceProduct + 1},
		{TokenCaret, PrecedenceExponent, false, PrecedenceExponent},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			rule, ok := g.Infix(tt.kind)
			if !ok {
				t.Fatalf("Infix(%v) not found", tt.kind)
			}
			if rule.Precedence() != tt.precedence {
				t.Errorf("Precedence() = %d, want %d", rule.Precedence(), tt.precedence)
			}
			if rule.LeftAssociative() != tt.leftAssoc {
				t.Errorf("LeftAssociative() = %v, want %v", rule.LeftAssociative(), tt.leftAssoc)
			}
			if got := RightPrecedence(rule); got != tt.right {
				t.Errorf("RightPrecedence() = %d, want %d", got, tt.right)
			}
		})
	}

	for _, kind := range []TokenKind{TokenNot, TokenConstInt, TokenIf, TokenEqual, TokenEOF} {
		if _, ok := g.Infix(kind); ok {
			t.Errorf("Infix(%v) unexpectedly found", kind)
		}
	}
}

func TestPrecedenceLadder(t *testing.T) {
	ladder := []int{
		PrecedenceInitial,
		PrecedenceConditional,
		PrecedenceSum,
		PrecedenceProduct,
		PrecedenceExponent,
		PrecedencePrefix,
		PrecedencePostfix,
		PrecedenceCall,
	}
	for i, p := range ladder {
		if p != i {
			t.Errorf("ladder[%d] = %d, want %d", i, p, i)
		}
	}
}

func TestGrammarBuilderDuplicatePanics(t *testing.T) {
	tests := []struct {
		name  string
		build func()
	}{
		{"prefix", func() {
			NewGrammarBuilder().Prefix(TokenNot, NotParselet{}).Prefix(TokenNot, NotParselet{})
		}},
		{"infix", func() {
			rule := NewBinaryParselet(OpAdd, PrecedenceSum, true)
			NewGrammarBuilder().Infix(TokenPlus, rule).Infix(TokenPlus, rule)
		}},
		{"extend", func() {
			DefaultGrammar().Extend().Prefix(TokenIf, ConditionalParselet{})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic on duplicate registration")
				}
			}()
			tt.build()
		})
	}
}

func TestGrammarBuilderSameKindBothRules(t *testing.T) {
	g := NewGrammarBuilder().
		Prefix(TokenMinus, NotParselet{}).
		Infix(TokenMinus, NewBinaryParselet(OpSub, PrecedenceSum, true)).
		Build()
	if _, ok := g.Prefix(TokenMinus); !ok {
		t.Error("prefix rule for MINUS missing")
	}
	if _, ok := g.Infix(TokenMinus); !ok {
		t.Error("infix rule for MINUS missing")
	}
}

func TestGrammarBuildIsIsolated(t *testing.T) {
	b := NewGrammarBuilder().Prefix(TokenConstInt, IntegerParselet{})
	g := b.Build()
	b.Prefix(TokenNot, NotParselet{})

	if _, ok := g.Prefix(TokenNot); ok {
		t.Error("rule registered after Build leaked into the grammar")
	}
}

func TestExtendDoesNotModifyOriginal(t *testing.T) {
	ext := DefaultGrammar().Extend().Prefix(TokenLParen, GroupParselet{}).Build()
	if _, ok := ext.Prefix(TokenLParen); !ok {
		t.Error("extended grammar lacks LEFT_PAREN")
	}
	if _, ok := DefaultGrammar().Prefix(TokenLParen); ok {
		t.Error("DefaultGrammar gained LEFT_PAREN")
	}
	if _, ok := ExtendedGrammar().Prefix(TokenLParen); !ok {
		t.Error("ExtendedGrammar lacks LEFT_PAREN")
	}
}

func TestCustomGrammar(t *testing.T) {
	g := NewGrammarBuilder().
		Prefix(TokenConstInt, IntegerParselet{}).
		Infix(TokenCaret, NewBinaryParselet(OpPow, PrecedenceProduct, true)).
		Infix(TokenAsterisk, NewBinaryParselet(OpMul, PrecedenceProduct, true)).
		Build()

	got := String(mustParse(t, "2^3^2*4", WithGrammar(g)))
	if got != "Mul(Pow(Pow(2, 3), 2), 4)" {
		t.Errorf("Parse = %s, want Mul(Pow(Pow(2, 3), 2), 4)", got)
	}
	if _, err := Parse("!1", WithGrammar(g)); err == nil {
		t.Error("expected error for ! without a prefix rule")
	}
}
