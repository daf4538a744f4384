package parser

import "strconv"

// Binding strengths, lowest first.
const (
	PrecedenceInitial = iota
	PrecedenceConditional
	PrecedenceSum
	PrecedenceProduct
	PrecedenceExponent
	PrecedencePrefix
	PrecedencePostfix
	PrecedenceCall
)

// PrefixParselet builds an expression that starts with tok. The parser has
// already advanced past tok when Parse is called.
type PrefixParselet interface {
	Parse(p *Parser, tok Token) (Expression, error)
}

// InfixParselet combines an already parsed left operand with the operator
// tok and whatever it parses to the right.
type InfixParselet interface {
	Parse(p *Parser, left Expression, tok Token) (Expression, error)
	Precedence() int
	LeftAssociative() bool
}

// RightPrecedence is the minimum precedence for the right operand of an
// infix rule. Left-associative rules add one so that an operator of equal
// precedence ends the operand and the chain folds left.
func RightPrecedence(rule InfixParselet) int {
	if rule.LeftAssociative() {
		return rule.Precedence() + 1
	}
	return rule.Precedence()
}

type IntegerParselet struct{}

func (IntegerParselet) Parse(p *Parser, tok Token) (Expression, error) {
	value, err := strconv.Atoi(tok.Literal)
	if err != nil {
		return nil, &ParseError{Message: "invalid integer literal " + strconv.Quote(tok.Literal), Got: tok}
	}
	return &IntegerLiteral{Value: value}, nil
}

type NotParselet struct{}

func (NotParselet) Parse(p *Parser, tok Token) (Expression, error) {
	operand, err := p.ParseExpression(PrecedencePrefix)
	if err != nil {
		return nil, err
	}
	return &UnaryOp{Operator: OpNot, Operand: operand}, nil
}

// ConditionalParselet parses "if c then t else e". Each of the three parts
// is parsed at conditional precedence, so any binary expression may appear
// there without parentheses.
type ConditionalParselet struct{}

func (ConditionalParselet) Parse(p *Parser, tok Token) (Expression, error) {
	condition, err := p.ParseExpression(PrecedenceConditional)
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(TokenThen); err != nil {
		return nil, err
	}
	then, err := p.ParseExpression(PrecedenceConditional)
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(TokenElse); err != nil {
		return nil, err
	}
	otherwise, err := p.ParseExpression(PrecedenceConditional)
	if err != nil {
		return nil, err
	}
	return &Conditional{Condition: condition, Then: then, Else: otherwise}, nil
}

// GroupParselet parses a parenthesised expression and returns the inner
// expression unchanged.
type GroupParselet struct{}

func (GroupParselet) Parse(p *Parser, tok Token) (Expression, error) {
	inner, err := p.ParseExpression(PrecedenceInitial)
	if err != nil {
		return nil, err
	}
	if _, err := p.Expect(TokenRParen); err != nil {
		return nil, err
	}
	return inner, nil
}

type BinaryParselet struct {
	operator   BinaryOperator
	precedence int
	leftAssoc  bool
}

func NewBinaryParselet(op BinaryOperator, precedence int, leftAssociative bool) *BinaryParselet {
	return &BinaryParselet{operator: op, precedence: precedence, leftAssoc: leftAssociative}
}

func (b *BinaryParselet) Precedence() int       { return b.precedence }
func (b *BinaryParselet) LeftAssociative() bool { return b.leftAssoc }

func (b *BinaryParselet) Parse(p *Parser, left Expression, tok Token) (Expression, error) {
	right, err := p.ParseExpression(RightPrecedence(b))
	if err != nil {
		return nil, err
	}
	return &BinaryOp{Operator: b.operator, Left: left, Right: right}, nil
}
