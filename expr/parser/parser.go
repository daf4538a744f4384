package parser

import (
	"github.com/tliron/commonlog"
)

type Option func(*Parser)

// WithGrammar replaces the default rule table.
func WithGrammar(g *Grammar) Option {
	return func(p *Parser) {
		p.grammar = g
	}
}

// WithTrace logs every rule the parser applies at debug level.
func WithTrace() Option {
	return func(p *Parser) {
		p.trace = true
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

// Parser drives a Lexer through a Grammar. It buffers exactly one token of
// look-ahead.
type Parser struct {
	lexer   *Lexer
	grammar *Grammar
	current Token
	trace   bool
	log     commonlog.Logger
}

// NewParser primes the look-ahead, so a lexical error on the first token is
// reported here.
func NewParser(lexer *Lexer, opts ...Option) (*Parser, error) {
	p := &Parser{
		lexer:   lexer,
		grammar: DefaultGrammar(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.trace && p.log == nil {
		p.log = commonlog.GetLogger("pratt.parser")
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse parses text as a single expression using the given options.
func Parse(text string, opts ...Option) (Expression, error) {
	p, err := NewParser(NewLexer(text), opts...)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// Parse parses one expression and requires the input to end after it.
func (p *Parser) Parse() (Expression, error) {
	expr, err := p.ParseExpression(PrecedenceInitial)
	if err != nil {
		return nil, err
	}
	if p.current.Kind != TokenEOF {
		return nil, errNoInfixRule(p.current)
	}
	return expr, nil
}

// Peek returns the look-ahead token.
func (p *Parser) Peek() Token {
	return p.current
}

// Expect consumes the look-ahead if it has the given kind.
func (p *Parser) Expect(kind TokenKind) (Token, error) {
	tok := p.current
	if tok.Kind != kind {
		return Token{}, errUnexpected(tok, kind)
	}
	if err := p.advance(); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// ParseExpression parses an expression whose infix operators all have at
// least minPrecedence. It stops at the first operator that binds less.
func (p *Parser) ParseExpression(minPrecedence int) (Expression, error) {
	tok := p.current
	prefix, ok := p.grammar.Prefix(tok.Kind)
	if !ok {
		return nil, errNoPrefixRule(tok)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	p.tracef("prefix %s at offset %d (min precedence %d)", tok.Kind, tok.Offset, minPrecedence)

	left, err := prefix.Parse(p, tok)
	if err != nil {
		return nil, err
	}

	for {
		op := p.current
		infix, ok := p.grammar.Infix(op.Kind)
		if !ok || infix.Precedence() < minPrecedence {
			return left, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		p.tracef("infix %s at offset %d (precedence %d, right %d)", op.Kind, op.Offset, infix.Precedence(), RightPrecedence(infix))

		left, err = infix.Parse(p, left, op)
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) advance() error {
	tok, err := p.lexer.Next()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *Parser) tracef(format string, args ...any) {
	if p.trace {
		p.log.Debugf(format, args...)
	}
}
