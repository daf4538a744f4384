package parser

import (
	"strconv"
)

// Lexer produces tokens from a string on demand. It holds a single scan
// position; whitespace in front of a token is skipped only when that token
// is requested.
type Lexer struct {
	input string
	pos   int
	err   error
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// Offset returns the current scan position.
func (l *Lexer) Offset() int {
	return l.pos
}

// Reset rewinds the lexer to the start of its input.
func (l *Lexer) Reset() {
	l.pos = 0
	l.err = nil
}

// Next returns the next token. Once the input is exhausted every call
// returns the same EOF token. A lexical error is terminal: the lexer
// returns it again on every subsequent call until Reset.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}

	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Offset: len(l.input)}, nil
	}

	tok, ok, err := l.scan()
	if err != nil {
		l.err = err
		return Token{}, err
	}
	if !ok {
		l.err = &LexicalError{Offset: l.pos, Remainder: l.input[l.pos:]}
		return Token{}, l.err
	}

	l.pos += len(tok.Literal)
	return tok, nil
}

// Tokenize collects every remaining token up to and including EOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && isWhitespace(l.input[l.pos]) {
		l.pos++
	}
}

// scan tries the identifier, numeric and symbol paths in that order. It
// does not move the scan position.
func (l *Lexer) scan() (Token, bool, error) {
	ch := l.input[l.pos]

	if isLetter(ch) {
		return l.scanIdentOrKeyword(), true, nil
	}

	if isDigit(ch) {
		return l.scanNumber()
	}

	return l.scanReserved()
}

func (l *Lexer) scanIdentOrKeyword() Token {
	end := l.pos + 1
	for end < len(l.input) && isLetterOrDigit(l.input[end]) {
		end++
	}
	literal := l.input[l.pos:end]
	return Token{Kind: LookupKeyword(literal), Literal: literal, Offset: l.pos}
}

func (l *Lexer) scanNumber() (Token, bool, error) {
	end := l.pos + 1
	for end < len(l.input) && (isDigit(l.input[end]) || l.input[end] == '.') {
		end++
	}
	literal := l.input[l.pos:end]

	if _, err := strconv.Atoi(literal); err == nil {
		return Token{Kind: TokenConstInt, Literal: literal, Offset: l.pos}, true, nil
	}
	if _, err := strconv.ParseFloat(literal, 64); err == nil {
		return Token{Kind: TokenConstDouble, Literal: literal, Offset: l.pos}, true, nil
	}
	return Token{}, false, &LexicalError{Offset: l.pos, Remainder: l.input[l.pos:]}
}

// scanReserved picks the longest reserved string that matches at the scan
// position.
func (l *Lexer) scanReserved() (Token, bool, error) {
	rest := l.input[l.pos:]
	best := ""
	for lit := range reserved {
		if len(lit) > len(best) && len(lit) <= len(rest) && rest[:len(lit)] == lit {
			best = lit
		}
	}
	if best == "" {
		return Token{}, false, nil
	}
	return Token{Kind: reserved[best], Literal: best, Offset: l.pos}, true, nil
}

// Newline is not whitespace and does not tokenize.
func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isLetterOrDigit(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}
