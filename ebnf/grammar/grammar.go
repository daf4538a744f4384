// Package grammar holds the EBNF description of the expression language
// and helpers for loading EBNF grammars.
//
// Productions whose names start with a lower-case letter are lexical, as
// in golang.org/x/exp/ebnf: tokens.ebnf describes how text is split into
// tokens and syntax.ebnf how tokens combine into expressions.
package grammar

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

const (
	// TokenStart is the production in tokens.ebnf that lists the token kinds.
	TokenStart = "Token"
	// SyntaxStart is the production in syntax.ebnf that matches one expression.
	SyntaxStart = "Expression"
)

//go:embed tokens.ebnf
var tokensSource []byte

//go:embed syntax.ebnf
var syntaxSource []byte

// Tokens returns the verified lexical grammar.
func Tokens() (ebnf.Grammar, error) {
	return parseAndVerify("tokens.ebnf", tokensSource, TokenStart)
}

// Syntax returns the verified phrase grammar.
func Syntax() (ebnf.Grammar, error) {
	return parseAndVerify("syntax.ebnf", syntaxSource, SyntaxStart)
}

// TokensSource returns the text of tokens.ebnf.
func TokensSource() []byte { return bytes.Clone(tokensSource) }

// SyntaxSource returns the text of syntax.ebnf.
func SyntaxSource() []byte { return bytes.Clone(syntaxSource) }

// Parse reads an EBNF grammar. It does not verify it.
func Parse(filename string, r io.Reader) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// Load reads and parses the grammar in filename.
func Load(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return Parse(filename, f)
}

func parseAndVerify(filename string, src []byte, start string) (ebnf.Grammar, error) {
	g, err := Parse(filename, bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// IsLexical reports whether name is a lexical production name.
func IsLexical(name string) bool {
	ch, _ := utf8.DecodeRuneInString(name)
	return !unicode.IsUpper(ch)
}

// Alternatives returns the names listed by production start, which must be
// a single name or an alternative of names. The order is kept.
func Alternatives(g ebnf.Grammar, start string) ([]string, error) {
	prod, ok := g[start]
	if !ok || prod.Expr == nil {
		return nil, fmt.Errorf("production %q not found in grammar", start)
	}

	var exprs []ebnf.Expression
	switch e := prod.Expr.(type) {
	case ebnf.Alternative:
		exprs = e
	default:
		exprs = []ebnf.Expression{e}
	}

	names := make([]string, 0, len(exprs))
	for _, expr := range exprs {
		name, ok := expr.(*ebnf.Name)
		if !ok {
			return nil, fmt.Errorf("%s: production %q must list names, found %T", expr.Pos(), start, expr)
		}
		names = append(names, name.String)
	}
	return names, nil
}
