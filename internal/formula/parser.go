package formula

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Resolver maps a reference name to the IDs of the items it may denote.
// A nil Resolver leaves every name as written.
type Resolver func(name string) []string

// Parser builds an expression tree from tokens.
type Parser struct {
	tokens  []Token
	pos     int
	resolve Resolver
}

// Parse parses src into an expression tree. It performs no evaluation.
func Parse(src string, resolve Resolver) (Node, error) {
	if strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(src), "=")) == "" {
		return nil, &SyntaxError{Pos: 0, Msg: "empty formula"}
	}

	tokens, err := NewLexer(src).Tokenize()
	if err != nil {
		return nil, err
	}

	p := &Parser{tokens: tokens, resolve: resolve}
	node, err := p.parseAddition()
	if err != nil {
		return nil, err
	}

	if tok := p.current(); tok.Type != TokenEOF {
		return nil, &SyntaxError{Token: tok.Value, Pos: tok.Pos, Msg: "unexpected token"}
	}
	return node, nil
}

// parseAddition handles + and - (lowest precedence)
func (p *Parser) parseAddition() (Node, error) {
	left, err := p.parseMultiplication()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.current()
		if tok.Type != TokenOperator || (tok.Value != "+" && tok.Value != "-") {
			return left, nil
		}
		p.pos++

		right, err := p.parseMultiplication()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Op: Op(tok.Value[0]), Left: left, Right: right, Pos: tok.Pos}
	}
}

// parseMultiplication handles * and /
func (p *Parser) parseMultiplication() (Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.current()
		if tok.Type != TokenOperator || (tok.Value != "*" && tok.Value != "/") {
			return left, nil
		}
		p.pos++

		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if lit, ok := right.(*Literal); ok && tok.Value == "/" && lit.Value.IsZero() {
			return nil, &DivisionByZeroError{Pos: tok.Pos, Literal: true}
		}
		left = &BinaryOp{Op: Op(tok.Value[0]), Left: left, Right: right, Pos: tok.Pos}
	}
}

// parseUnary handles prefix + and -. Negation of a literal folds into the
// literal; anything else becomes 0 - x.
func (p *Parser) parseUnary() (Node, error) {
	tok := p.current()
	if tok.Type != TokenOperator || (tok.Value != "+" && tok.Value != "-") {
		return p.parsePrimary()
	}
	p.pos++

	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if tok.Value == "+" {
		return operand, nil
	}
	if lit, ok := operand.(*Literal); ok {
		return &Literal{Value: lit.Value.Neg(), Pos: tok.Pos}, nil
	}
	return &BinaryOp{
		Op:    OpSub,
		Left:  &Literal{Value: decimal.Zero, Pos: tok.Pos},
		Right: operand,
		Pos:   tok.Pos,
	}, nil
}

func (p *Parser) parsePrimary() (Node, error) {
	tok := p.current()

	switch tok.Type {
	case TokenNumber:
		p.pos++
		value, err := decimal.NewFromString(tok.Value)
		if err != nil {
			return nil, &SyntaxError{Token: tok.Value, Pos: tok.Pos, Msg: "invalid number"}
		}
		return &Literal{Value: value, Pos: tok.Pos}, nil

	case TokenReference:
		p.pos++
		return p.reference(tok)

	case TokenLeftParen:
		p.pos++
		node, err := p.parseAddition()
		if err != nil {
			return nil, err
		}
		closing := p.current()
		if closing.Type != TokenRightParen {
			return nil, &SyntaxError{Token: closing.Value, Pos: closing.Pos, Msg: "expected ')' but found " + closing.Type.String()}
		}
		p.pos++
		return node, nil

	case TokenEOF:
		return nil, &SyntaxError{Pos: tok.Pos, Msg: "unexpected end of formula"}
	}

	return nil, &SyntaxError{Token: tok.Value, Pos: tok.Pos, Msg: "unexpected token"}
}

func (p *Parser) reference(tok Token) (Node, error) {
	ref := &Reference{ItemID: tok.Value, Name: tok.Value, Pos: tok.Pos}
	if p.resolve == nil {
		return ref, nil
	}

	candidates := p.resolve(tok.Value)
	switch len(candidates) {
	case 0:
		return ref, nil
	case 1:
		ref.ItemID = candidates[0]
		return ref, nil
	}
	return nil, &AmbiguousReferenceError{Name: tok.Value, Pos: tok.Pos, Candidates: candidates}
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}
