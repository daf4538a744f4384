package parse

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/pratt/ebnf/grammar"
	"github.com/dhamidi/pratt/ebnflex"
)

// EarleyParser recognizes a token stream against compiled rules.
type EarleyParser struct {
	rules     *Rules
	tokens    []ebnflex.Token
	skipKinds map[string]bool

	// Internal state
	chart    []*ItemSet
	filtered []ebnflex.Token // tokens after filtering trivia
	eof      ebnflex.Token
}

// Item is an Earley item: a rule with a dot position and origin.
type Item struct {
	Rule   int // index into Rules
	Dot    int // position in the rule's right-hand side
	Origin int // chart position where this item started
}

// ItemSet is a set of Earley items at a particular chart position.
type ItemSet struct {
	items    []Item
	itemSet  map[Item]bool
	position int
}

func newItemSet(pos int) *ItemSet {
	return &ItemSet{
		itemSet:  make(map[Item]bool),
		position: pos,
	}
}

// Add inserts item unless it is already present.
func (s *ItemSet) Add(item Item) bool {
	if s.itemSet[item] {
		return false
	}
	s.itemSet[item] = true
	s.items = append(s.items, item)
	return true
}

func (s *ItemSet) Items() []Item {
	return append([]Item(nil), s.items...)
}

// SyntaxError reports the first token at which no rule could continue.
type SyntaxError struct {
	Position ebnflex.Position
	Found    string
	Expected []string
}

func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("syntax error at %s: unexpected %s", e.Position, e.Found)
	if len(e.Expected) > 0 {
		msg += ", expected " + strings.Join(e.Expected, " or ")
	}
	return msg
}

// NewEarleyParser creates a new Earley parser.
func NewEarleyParser(rules *Rules, tokens []ebnflex.Token) *EarleyParser {
	return &EarleyParser{
		rules:     rules,
		tokens:    tokens,
		skipKinds: map[string]bool{"white_space": true},
	}
}

// SetSkipKinds sets which token kinds to skip.
func (p *EarleyParser) SetSkipKinds(kinds ...string) {
	p.skipKinds = make(map[string]bool)
	for _, k := range kinds {
		p.skipKinds[k] = true
	}
}

// Chart returns the item sets of the last call to Recognize.
func (p *EarleyParser) Chart() []*ItemSet {
	return p.chart
}

// Recognize reports whether the tokens form one startProduction. A
// failure is returned as a *SyntaxError.
func (p *EarleyParser) Recognize(startProduction string) error {
	if !p.rules.Has(startProduction) {
		return fmt.Errorf("production %q not found in grammar", startProduction)
	}

	p.filtered = make([]ebnflex.Token, 0, len(p.tokens))
	p.eof = ebnflex.Token{Kind: ebnflex.KindEOF}
	for _, tok := range p.tokens {
		if tok.Kind == ebnflex.KindEOF {
			p.eof = tok
			break
		}
		if !p.skipKinds[tok.Kind] {
			p.filtered = append(p.filtered, tok)
		}
	}
	if len(p.filtered) > 0 && p.eof.Position == (ebnflex.Position{}) {
		last := p.filtered[len(p.filtered)-1]
		p.eof.Position = last.Position
		p.eof.Position.Offset += len(last.Literal)
		p.eof.Position.Column += len(last.Literal)
	}

	n := len(p.filtered)
	p.chart = make([]*ItemSet, n+1)
	for i := range p.chart {
		p.chart[i] = newItemSet(i)
	}

	for _, idx := range p.rules.byLHS[startProduction] {
		p.chart[0].Add(Item{Rule: idx, Dot: 0, Origin: 0})
	}

	// Items may be added to chart[i] while it is processed.
	for i := 0; i <= n; i++ {
		for j := 0; j < len(p.chart[i].items); j++ {
			item := p.chart[i].items[j]
			rule := p.rules.rules[item.Rule]

			if item.Dot == len(rule.RHS) {
				p.complete(i, item)
				continue
			}
			next := rule.RHS[item.Dot]
			if next.Terminal {
				p.scan(i, item, next)
			} else {
				p.predict(i, item, next)
			}
		}
	}

	for _, item := range p.chart[n].items {
		rule := p.rules.rules[item.Rule]
		if rule.LHS == startProduction && item.Origin == 0 && item.Dot == len(rule.RHS) {
			return nil
		}
	}
	return p.syntaxError()
}

func (p *EarleyParser) predict(pos int, item Item, next Symbol) {
	for _, idx := range p.rules.byLHS[next.Name] {
		p.chart[pos].Add(Item{Rule: idx, Dot: 0, Origin: pos})
	}
	// A nullable nonterminal may be skipped right away.
	if p.rules.Nullable(next.Name) {
		p.chart[pos].Add(Item{Rule: item.Rule, Dot: item.Dot + 1, Origin: item.Origin})
	}
}

func (p *EarleyParser) scan(pos int, item Item, next Symbol) {
	if pos >= len(p.filtered) {
		return
	}
	if matches(next, p.filtered[pos]) {
		p.chart[pos+1].Add(Item{Rule: item.Rule, Dot: item.Dot + 1, Origin: item.Origin})
	}
}

func (p *EarleyParser) complete(pos int, completed Item) {
	lhs := p.rules.rules[completed.Rule].LHS
	waiting := p.chart[completed.Origin]
	for j := 0; j < len(waiting.items); j++ {
		item := waiting.items[j]
		rule := p.rules.rules[item.Rule]
		if item.Dot < len(rule.RHS) {
			next := rule.RHS[item.Dot]
			if !next.Terminal && next.Name == lhs {
				p.chart[pos].Add(Item{Rule: item.Rule, Dot: item.Dot + 1, Origin: item.Origin})
			}
		}
	}
}

func matches(sym Symbol, tok ebnflex.Token) bool {
	if sym.Literal {
		return tok.Literal == sym.Name
	}
	return tok.Kind == sym.Name
}

func (p *EarleyParser) syntaxError() *SyntaxError {
	// The last non-empty set is as far as any rule got.
	furthest := 0
	for i := len(p.chart) - 1; i >= 0; i-- {
		if len(p.chart[i].items) > 0 {
			furthest = i
			break
		}
	}

	expected := make(map[string]bool)
	for _, item := range p.chart[furthest].items {
		rule := p.rules.rules[item.Rule]
		if item.Dot < len(rule.RHS) && rule.RHS[item.Dot].Terminal {
			expected[rule.RHS[item.Dot].String()] = true
		}
	}
	list := make([]string, 0, len(expected))
	for sym := range expected {
		list = append(list, sym)
	}
	sort.Strings(list)

	if furthest < len(p.filtered) {
		tok := p.filtered[furthest]
		return &SyntaxError{Position: tok.Position, Found: fmt.Sprintf("%q", tok.Literal), Expected: list}
	}
	return &SyntaxError{Position: p.eof.Position, Found: "end of input", Expected: list}
}

// Recognizer checks expression source text against syntax.ebnf.
type Recognizer struct {
	rules *Rules
}

// NewRecognizer compiles the embedded phrase grammar.
func NewRecognizer() (*Recognizer, error) {
	g, err := grammar.Syntax()
	if err != nil {
		return nil, err
	}
	rules, err := Compile(g)
	if err != nil {
		return nil, err
	}
	return &Recognizer{rules: rules}, nil
}

// Check tokenizes input with tokens.ebnf and recognizes one expression.
func (r *Recognizer) Check(input, filename string) error {
	lexer, err := ebnflex.NewTokenLexer([]byte(input), filename)
	if err != nil {
		return err
	}
	tokens, err := lexer.Tokenize()
	if err != nil {
		return err
	}
	return NewEarleyParser(r.rules, tokens).Recognize(grammar.SyntaxStart)
}
