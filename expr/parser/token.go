package parser

import "fmt"

type TokenKind int

const (
	// Operators
	TokenPlus TokenKind = iota
	TokenMinus
	TokenSlash
	TokenAsterisk
	TokenCaret
	TokenNot

	// Keywords
	TokenIf
	TokenThen
	TokenElse

	// Comparisons
	TokenEqual
	TokenLessThan
	TokenLessThanOrEqual
	TokenGreaterThan
	TokenGreaterThanOrEqual
	TokenNotEqual

	TokenLParen
	TokenRParen

	// Literals
	TokenConstInt
	TokenConstDouble
	TokenIdent

	TokenEOF
)

var tokenKindNames = map[TokenKind]string{
	TokenPlus:               "PLUS",
	TokenMinus:              "MINUS",
	TokenSlash:              "SLASH",
	TokenAsterisk:           "ASTERISK",
	TokenCaret:              "CARET",
	TokenNot:                "NOT",
	TokenIf:                 "IF",
	TokenThen:               "THEN",
	TokenElse:               "ELSE",
	TokenEqual:              "EQUAL",
	TokenLessThan:           "LESS_THAN",
	TokenLessThanOrEqual:    "LESS_THAN_OR_EQUAL",
	TokenGreaterThan:        "GREATER_THAN",
	TokenGreaterThanOrEqual: "GREATER_THAN_OR_EQUAL",
	TokenNotEqual:           "NOT_EQUAL",
	TokenLParen:             "LEFT_PAREN",
	TokenRParen:             "RIGHT_PAREN",
	TokenConstInt:           "CONST_INT",
	TokenConstDouble:        "CONST_DOUBLE",
	TokenIdent:              "IDENTIFIER",
	TokenEOF:                "EOF",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Token is a single lexeme. Offset is the byte offset of Literal in the
// lexer input; the EOF token carries the input length and an empty Literal.
type Token struct {
	Kind    TokenKind
	Literal string
	Offset  int
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return "EOF"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Literal)
}

// reserved maps every literal string the lexer recognises through maximal
// munch to its kind. Keywords live here too so that the symbol path can
// return them once the identifier path has declined.
var reserved = map[string]TokenKind{
	"+":    TokenPlus,
	"-":    TokenMinus,
	"/":    TokenSlash,
	"*":    TokenAsterisk,
	"^":    TokenCaret,
	"!":    TokenNot,
	"if":   TokenIf,
	"then": TokenThen,
	"else": TokenElse,
	"==":   TokenEqual,
	"<":    TokenLessThan,
	"<=":   TokenLessThanOrEqual,
	">":    TokenGreaterThan,
	">=":   TokenGreaterThanOrEqual,
	"!=":   TokenNotEqual,
	"(":    TokenLParen,
	")":    TokenRParen,
}

var keywords = map[string]TokenKind{
	"if":   TokenIf,
	"then": TokenThen,
	"else": TokenElse,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// Reserved returns the literal strings matched by the symbol path, keyed by
// kind. The result is a fresh map.
func Reserved() map[TokenKind]string {
	result := make(map[TokenKind]string, len(reserved))
	for lit, kind := range reserved {
		result[kind] = lit
	}
	return result
}
