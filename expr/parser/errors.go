package parser

import (
	"errors"
	"fmt"
	"strings"
)

// LexicalError reports input at which no lexical rule matches.
type LexicalError struct {
	Offset    int
	Remainder string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("could not identify token from %q at offset %d", e.Remainder, e.Offset)
}

// ParseError reports a token the grammar cannot place. Expected is empty
// when no particular kind would have been accepted.
type ParseError struct {
	Message  string
	Expected []TokenKind
	Got      Token
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if len(e.Expected) > 0 {
		names := make([]string, len(e.Expected))
		for i, kind := range e.Expected {
			names[i] = kind.String()
		}
		sb.WriteString(": expected ")
		sb.WriteString(strings.Join(names, " or "))
		sb.WriteString(", got ")
		sb.WriteString(e.Got.String())
	}
	fmt.Fprintf(&sb, " at offset %d", e.Got.Offset)
	return sb.String()
}

func errNoPrefixRule(tok Token) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf("no prefix rule for token kind %s", tok.Kind),
		Got:     tok,
	}
}

func errNoInfixRule(tok Token) *ParseError {
	return &ParseError{
		Message:  fmt.Sprintf("no infix rule for token kind %s", tok.Kind),
		Expected: []TokenKind{TokenEOF},
		Got:      tok,
	}
}

func errUnexpected(tok Token, expected ...TokenKind) *ParseError {
	return &ParseError{
		Message:  "unexpected token",
		Expected: expected,
		Got:      tok,
	}
}

// ErrorSpan returns the byte range of the input that err points at. The
// range of a lexical error covers the rest of the input; the range of a
// parse error covers the offending token and is empty at end of input.
func ErrorSpan(err error) (start, end int, ok bool) {
	var le *LexicalError
	if errors.As(err, &le) {
		return le.Offset, le.Offset + len(le.Remainder), true
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Got.Offset, pe.Got.Offset + len(pe.Got.Literal), true
	}
	return 0, 0, false
}
