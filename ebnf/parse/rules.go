// Package parse recognizes token streams against EBNF grammars with an
// Earley parser.
package parse

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/pratt/ebnf/grammar"
)

// Symbol is one element on the right-hand side of a rule. Terminals match
// a single token, by literal when Literal is set and by kind otherwise.
type Symbol struct {
	Name     string
	Literal  bool
	Terminal bool
}

func (s Symbol) String() string {
	if s.Literal {
		return fmt.Sprintf("%q", s.Name)
	}
	return s.Name
}

// Rule is a plain context-free production: LHS → RHS.
type Rule struct {
	LHS string
	RHS []Symbol
}

func (r Rule) String() string {
	parts := make([]string, len(r.RHS))
	for i, sym := range r.RHS {
		parts[i] = sym.String()
	}
	if len(parts) == 0 {
		return r.LHS + " → ε"
	}
	return r.LHS + " → " + strings.Join(parts, " ")
}

// Rules is an EBNF grammar flattened into plain rules. Options,
// repetitions, groups and nested alternatives become fresh nonterminals
// named after the production they occur in.
type Rules struct {
	rules    []Rule
	byLHS    map[string][]int
	nullable map[string]bool
	fresh    map[string]int
}

// Compile flattens the non-lexical productions of g. References to lexical
// productions become terminals matched by token kind.
func Compile(g ebnf.Grammar) (*Rules, error) {
	r := &Rules{
		byLHS: make(map[string][]int),
		fresh: make(map[string]int),
	}

	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prod := g[name]
		if grammar.IsLexical(name) || prod.Expr == nil {
			continue
		}
		alts, err := r.alternatives(name, prod.Expr)
		if err != nil {
			return nil, err
		}
		for _, rhs := range alts {
			r.add(name, rhs)
		}
	}

	for _, rule := range r.rules {
		for _, sym := range rule.RHS {
			if sym.Terminal {
				continue
			}
			if _, ok := r.byLHS[sym.Name]; !ok {
				return nil, fmt.Errorf("production %q used by %q is not defined", sym.Name, rule.LHS)
			}
		}
	}

	r.computeNullable()
	return r, nil
}

// Rules returns the flattened rules in definition order.
func (r *Rules) Rules() []Rule {
	return append([]Rule(nil), r.rules...)
}

// Has reports whether name is a nonterminal.
func (r *Rules) Has(name string) bool {
	_, ok := r.byLHS[name]
	return ok
}

// Nullable reports whether the nonterminal name derives the empty string.
func (r *Rules) Nullable(name string) bool {
	return r.nullable[name]
}

func (r *Rules) add(lhs string, rhs []Symbol) {
	r.byLHS[lhs] = append(r.byLHS[lhs], len(r.rules))
	r.rules = append(r.rules, Rule{LHS: lhs, RHS: rhs})
}

func (r *Rules) newName(context string) string {
	r.fresh[context]++
	return fmt.Sprintf("%s#%d", context, r.fresh[context])
}

func (r *Rules) alternatives(context string, expr ebnf.Expression) ([][]Symbol, error) {
	alt, ok := expr.(ebnf.Alternative)
	if !ok {
		rhs, err := r.sequence(context, expr)
		if err != nil {
			return nil, err
		}
		return [][]Symbol{rhs}, nil
	}

	out := make([][]Symbol, 0, len(alt))
	for _, branch := range alt {
		rhs, err := r.sequence(context, branch)
		if err != nil {
			return nil, err
		}
		out = append(out, rhs)
	}
	return out, nil
}

func (r *Rules) sequence(context string, expr ebnf.Expression) ([]Symbol, error) {
	seq, ok := expr.(ebnf.Sequence)
	if !ok {
		seq = ebnf.Sequence{expr}
	}

	rhs := make([]Symbol, 0, len(seq))
	for _, elem := range seq {
		sym, err := r.symbol(context, elem)
		if err != nil {
			return nil, err
		}
		rhs = append(rhs, sym)
	}
	return rhs, nil
}

func (r *Rules) symbol(context string, expr ebnf.Expression) (Symbol, error) {
	switch e := expr.(type) {
	case *ebnf.Name:
		if grammar.IsLexical(e.String) {
			return Symbol{Name: e.String, Terminal: true}, nil
		}
		return Symbol{Name: e.String}, nil

	case *ebnf.Token:
		return Symbol{Name: e.String, Literal: true, Terminal: true}, nil

	case *ebnf.Group:
		return r.symbol(context, e.Body)

	case ebnf.Alternative, ebnf.Sequence:
		name := r.newName(context)
		alts, err := r.alternatives(context, e)
		if err != nil {
			return Symbol{}, err
		}
		for _, rhs := range alts {
			r.add(name, rhs)
		}
		return Symbol{Name: name}, nil

	case *ebnf.Option:
		name := r.newName(context)
		alts, err := r.alternatives(context, e.Body)
		if err != nil {
			return Symbol{}, err
		}
		for _, rhs := range alts {
			r.add(name, rhs)
		}
		r.add(name, nil)
		return Symbol{Name: name}, nil

	case *ebnf.Repetition:
		// N → ε | N body
		name := r.newName(context)
		body, err := r.symbol(context, e.Body)
		if err != nil {
			return Symbol{}, err
		}
		r.add(name, nil)
		r.add(name, []Symbol{{Name: name}, body})
		return Symbol{Name: name}, nil

	case *ebnf.Range:
		return Symbol{}, fmt.Errorf("%s: character range in non-lexical production %q", e.Pos(), context)
	}
	return Symbol{}, fmt.Errorf("%s: unsupported expression %T in production %q", expr.Pos(), expr, context)
}

func (r *Rules) computeNullable() {
	r.nullable = make(map[string]bool)
	for changed := true; changed; {
		changed = false
		for _, rule := range r.rules {
			if r.nullable[rule.LHS] {
				continue
			}
			empty := true
			for _, sym := range rule.RHS {
				if sym.Terminal || !r.nullable[sym.Name] {
					empty = false
					break
				}
			}
			if empty {
				r.nullable[rule.LHS] = true
				changed = true
			}
		}
	}
}
