// Package parser turns expression source text into a syntax tree using
// top-down operator precedence (Pratt) parsing.
//
// # Overview
//
// The language has integer literals, the binary operators + - * / ^, the
// prefix operator ! and a conditional form:
//
//	if 1 then 2 + 3 else 4 ^ 2 ^ 2
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │────▶ Expression
//	│  (string)   │     │  (tokens)   │     │ (1 token    │
//	└─────────────┘     └─────────────┘     │ look-ahead) │
//	                                        └──────┬──────┘
//	                                               │
//	                                        ┌──────▼──────┐
//	                                        │   Grammar   │
//	                                        │ (parselets) │
//	                                        └─────────────┘
//
// The Lexer is pulled one token at a time. For the current token the
// Parser asks the Grammar for a prefix rule, lets it build the left
// operand, then keeps extending that operand with infix rules for as long
// as the next operator binds at least as tightly as the caller asked for.
//
// # Precedence
//
// From weakest to strongest:
//
//	PrecedenceInitial      0
//	PrecedenceConditional  1  if/then/else parts
//	PrecedenceSum          2  + -   left-associative
//	PrecedenceProduct      3  * /   left-associative
//	PrecedenceExponent     4  ^     right-associative
//	PrecedencePrefix       5  !
//	PrecedencePostfix      6
//	PrecedenceCall         7
//
// An infix rule parses its right operand at its own precedence plus one
// when it is left-associative, so 2-3-4 is (2-3)-4, and at exactly its
// own precedence when it is right-associative, so 2^3^2 is 2^(3^2).
//
// # Errors
//
// There is no recovery. The first *LexicalError or *ParseError aborts the
// parse and no tree is returned.
//
// # Visiting
//
// Expression is a closed set of four node types. Consumers implement
// Visitor[T] and call Accept:
//
//	type evaluator struct{}
//
//	func (evaluator) VisitIntegerLiteral(n *parser.IntegerLiteral) int { return n.Value }
//	...
//	result := parser.Accept[int](tree, evaluator{})
package parser
