// Package ebnflex provides lexical scanning based on EBNF grammars.
package ebnflex

import (
	"fmt"
	"io"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/pratt/ebnf/grammar"
)

const (
	KindEOF   = "EOF"
	KindError = "ERROR"
)

// Position represents a location in source code.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token represents a lexical token with its position. Kind is the name of
// the production that matched.
type Token struct {
	Kind     string
	Literal  string
	Position Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Position, t.Kind, t.Literal)
}

// memoKey is used for memoization of match results.
type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input based on an EBNF grammar.
type Lexer struct {
	grammar  ebnf.Grammar
	kinds    []string
	input    []byte
	filename string
	pos      int
	line     int
	column   int
	memo     map[memoKey]int  // memoization cache: key -> match length (-1 = no match)
	visiting map[memoKey]bool // cycle detection
}

// NewLexer creates a lexer for the given grammar and input. The token
// kinds are the names listed by the start production; ties between
// matches of equal length go to the kind listed first.
func NewLexer(g ebnf.Grammar, start string, input []byte, filename string) (*Lexer, error) {
	kinds, err := grammar.Alternatives(g, start)
	if err != nil {
		return nil, err
	}
	for _, kind := range kinds {
		if _, ok := g[kind]; !ok {
			return nil, fmt.Errorf("token kind %q is not defined", kind)
		}
	}
	return &Lexer{
		grammar:  g,
		kinds:    kinds,
		input:    input,
		filename: filename,
		pos:      0,
		line:     1,
		column:   1,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}, nil
}

// NewTokenLexer creates a lexer for the expression language's own tokens.
func NewTokenLexer(input []byte, filename string) (*Lexer, error) {
	g, err := grammar.Tokens()
	if err != nil {
		return nil, err
	}
	return NewLexer(g, grammar.TokenStart, input, filename)
}

// Kinds returns the token kinds in priority order.
func (l *Lexer) Kinds() []string {
	return append([]string(nil), l.kinds...)
}

// Position returns the current position in the input.
func (l *Lexer) Position() Position {
	return Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// NextToken returns the next token from the input: the longest match
// among the token kinds. At the end of input it returns an EOF token and
// io.EOF.
func (l *Lexer) NextToken() (Token, error) {
	if l.pos >= len(l.input) {
		return Token{Kind: KindEOF, Position: l.Position()}, io.EOF
	}

	startPos := l.Position()
	startOffset := l.pos

	// Clear memoization cache for each new token (positions change)
	l.memo = make(map[memoKey]int)

	var bestKind string
	var bestLen int

	for _, name := range l.kinds {
		l.visiting = make(map[memoKey]bool)
		matchLen := l.tryMatchName(name, startOffset)
		if matchLen > bestLen {
			bestLen = matchLen
			bestKind = name
		}
	}

	if bestLen == 0 {
		// No match - emit single character as error token
		ch := l.advance()
		return Token{
			Kind:     KindError,
			Literal:  string(ch),
			Position: startPos,
		}, nil
	}

	for i := 0; i < bestLen; i++ {
		l.advance()
	}

	return Token{
		Kind:     bestKind,
		Literal:  string(l.input[startOffset : startOffset+bestLen]),
		Position: startPos,
	}, nil
}

// tryMatch attempts to match an expression at the given offset.
// Returns the length of the match, or 0 if no match.
func (l *Lexer) tryMatch(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case *ebnf.Token:
		return l.tryMatchToken(e.String, offset)

	case *ebnf.Range:
		return l.tryMatchRange(e.Begin.String, e.End.String, offset)

	case ebnf.Sequence:
		total := 0
		pos := offset
		for _, item := range e {
			n, ok := l.tryMatchOptional(item, pos)
			if !ok {
				return 0
			}
			total += n
			pos += n
		}
		return total

	case ebnf.Alternative:
		best := 0
		for _, alt := range e {
			n := l.tryMatch(alt, offset)
			if n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		pos := offset
		for {
			n := l.tryMatch(e.Body, pos)
			if n == 0 {
				break
			}
			total += n
			pos += n
		}
		return total

	case *ebnf.Option:
		return l.tryMatch(e.Body, offset)

	case *ebnf.Group:
		return l.tryMatch(e.Body, offset)

	case *ebnf.Name:
		return l.tryMatchName(e.String, offset)

	default:
		return 0
	}
}

// tryMatchOptional matches one element of a sequence. Options and
// repetitions succeed on an empty match; everything else must consume
// input.
func (l *Lexer) tryMatchOptional(expr ebnf.Expression, offset int) (int, bool) {
	n := l.tryMatch(expr, offset)
	if n > 0 {
		return n, true
	}
	switch expr.(type) {
	case *ebnf.Option, *ebnf.Repetition:
		return 0, true
	}
	return 0, false
}

// tryMatchName matches a named production with memoization and cycle detection.
func (l *Lexer) tryMatchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}

	if result, ok := l.memo[key]; ok {
		if result == -1 {
			return 0
		}
		return result
	}

	// Cycle detection - if we're already visiting this production at this offset,
	// return 0 to break the cycle (left recursion)
	if l.visiting[key] {
		return 0
	}

	prod, ok := l.grammar[name]
	if !ok || prod.Expr == nil {
		l.memo[key] = -1
		return 0
	}

	l.visiting[key] = true
	result := l.tryMatch(prod.Expr, offset)
	delete(l.visiting, key)

	if result == 0 {
		l.memo[key] = -1
	} else {
		l.memo[key] = result
	}

	return result
}

// tryMatchToken matches a literal string token.
func (l *Lexer) tryMatchToken(s string, offset int) int {
	if offset+len(s) > len(l.input) {
		return 0
	}
	if string(l.input[offset:offset+len(s)]) == s {
		return len(s)
	}
	return 0
}

// tryMatchRange matches a character range (e.g., "a" … "z").
func (l *Lexer) tryMatchRange(begin, end string, offset int) int {
	if offset >= len(l.input) {
		return 0
	}
	if len(begin) != 1 || len(end) != 1 {
		return 0
	}
	ch := l.input[offset]
	if ch >= begin[0] && ch <= end[0] {
		return 1
	}
	return 0
}

// Tokenize reads all tokens from input. The last token is always EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err == io.EOF {
			tokens = append(tokens, tok)
			break
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

// Filter returns tokens without the given kinds.
func Filter(tokens []Token, skip ...string) []Token {
	skipped := make(map[string]bool, len(skip))
	for _, kind := range skip {
		skipped[kind] = true
	}
	out := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if !skipped[tok.Kind] {
			out = append(out, tok)
		}
	}
	return out
}
