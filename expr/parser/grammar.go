package parser

import "fmt"

// Grammar maps token kinds to parselets. A Grammar is immutable once built
// and may be shared by any number of parsers.
type Grammar struct {
	prefix map[TokenKind]PrefixParselet
	infix  map[TokenKind]InfixParselet
}

// Prefix returns the prefix rule for kind, if any.
func (g *Grammar) Prefix(kind TokenKind) (PrefixParselet, bool) {
	rule, ok := g.prefix[kind]
	return rule, ok
}

// Infix returns the infix rule for kind, if any.
func (g *Grammar) Infix(kind TokenKind) (InfixParselet, bool) {
	rule, ok := g.infix[kind]
	return rule, ok
}

// Extend returns a builder seeded with the rules of g.
func (g *Grammar) Extend() *GrammarBuilder {
	b := NewGrammarBuilder()
	for kind, rule := range g.prefix {
		b.prefix[kind] = rule
	}
	for kind, rule := range g.infix {
		b.infix[kind] = rule
	}
	return b
}

type GrammarBuilder struct {
	prefix map[TokenKind]PrefixParselet
	infix  map[TokenKind]InfixParselet
}

func NewGrammarBuilder() *GrammarBuilder {
	return &GrammarBuilder{
		prefix: make(map[TokenKind]PrefixParselet),
		infix:  make(map[TokenKind]InfixParselet),
	}
}

// Prefix registers rule for kind. Registering a second prefix rule for
// the same kind panics.
func (b *GrammarBuilder) Prefix(kind TokenKind, rule PrefixParselet) *GrammarBuilder {
	if _, dup := b.prefix[kind]; dup {
		panic(fmt.Sprintf("parser: duplicate prefix rule for %s", kind))
	}
	b.prefix[kind] = rule
	return b
}

// Infix registers rule for kind. Registering a second infix rule for the
// same kind panics.
func (b *GrammarBuilder) Infix(kind TokenKind, rule InfixParselet) *GrammarBuilder {
	if _, dup := b.infix[kind]; dup {
		panic(fmt.Sprintf("parser: duplicate infix rule for %s", kind))
	}
	b.infix[kind] = rule
	return b
}

// Build copies the registered rules into a new Grammar. The builder can
// keep being used afterwards without affecting the result.
func (b *GrammarBuilder) Build() *Grammar {
	g := &Grammar{
		prefix: make(map[TokenKind]PrefixParselet, len(b.prefix)),
		infix:  make(map[TokenKind]InfixParselet, len(b.infix)),
	}
	for kind, rule := range b.prefix {
		g.prefix[kind] = rule
	}
	for kind, rule := range b.infix {
		g.infix[kind] = rule
	}
	return g
}

var defaultGrammar = NewGrammarBuilder().
	Prefix(TokenNot, NotParselet{}).
	Prefix(TokenConstInt, IntegerParselet{}).
	Prefix(TokenIf, ConditionalParselet{}).
	Infix(TokenPlus, NewBinaryParselet(OpAdd, PrecedenceSum, true)).
	Infix(TokenMinus, NewBinaryParselet(OpSub, PrecedenceSum, true)).
	Infix(TokenAsterisk, NewBinaryParselet(OpMul, PrecedenceProduct, true)).
	Infix(TokenSlash, NewBinaryParselet(OpDiv, PrecedenceProduct, true)).
	Infix(TokenCaret, NewBinaryParselet(OpPow, PrecedenceExponent, false)).
	Build()

var extendedGrammar = defaultGrammar.Extend().
	Prefix(TokenLParen, GroupParselet{}).
	Build()

// DefaultGrammar returns the language's rule table: not, integer literals
// and conditionals as prefix rules; + - * / ^ as infix rules.
func DefaultGrammar() *Grammar {
	return defaultGrammar
}

// ExtendedGrammar is DefaultGrammar plus parenthesised grouping.
func ExtendedGrammar() *Grammar {
	return extendedGrammar
}
