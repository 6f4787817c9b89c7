package symbolic

import (
	"fmt"
	"math/big"
)

// Precedence order for operators
const (
	_ int = iota
	lowest
	equals  // =
	sum     // + or -
	product // * or /
	prefix  // -X
	power   // ** or ^
	highest
)

var precedences = map[tokenKind]int{
	tokAssign: equals,
	tokPlus:   sum,
	tokMinus:  sum,
	tokStar:   product,
	tokSlash:  product,
	tokPow:    power,
}

const maxDepth = 256

type parser struct {
	toks  []token
	pos   int
	depth int
}

// Parse parses a single expression. An '=' is rejected; use ParseEquation.
func Parse(src string) (Expr, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	e, err := p.parseExpression(lowest)
	if err != nil {
		return nil, err
	}
	if err := p.expect(tokEOF); err != nil {
		return nil, err
	}
	return e, nil
}

// ParseEquation parses "lhs = rhs". Source without '=' is read as "expr = 0".
func ParseEquation(src string) (Equation, error) {
	p, err := newParser(src)
	if err != nil {
		return Equation{}, err
	}
	lhs, err := p.parseExpression(equals)
	if err != nil {
		return Equation{}, err
	}
	rhs := Expr(N(0))
	if p.cur().kind == tokAssign {
		p.next()
		if rhs, err = p.parseExpression(equals); err != nil {
			return Equation{}, err
		}
	}
	if err := p.expect(tokEOF); err != nil {
		return Equation{}, err
	}
	return Equation{LHS: lhs, RHS: rhs}, nil
}

func newParser(src string) (*parser, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	return &parser{toks: toks}, nil
}

func (p *parser) cur() token { return p.toks[p.pos] }

func (p *parser) next() {
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
}

func (p *parser) expect(kind tokenKind) error {
	if t := p.cur(); t.kind != kind {
		return p.errorf(t, "expected %s, got %s", kind, describe(t))
	}
	return nil
}

func (p *parser) parseExpression(precedence int) (Expr, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxDepth {
		return nil, p.errorf(p.cur(), "maximum nesting depth exceeded")
	}

	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for precedence < p.curPrecedence() {
		op := p.cur()
		p.next()
		left, err = p.parseInfix(op, left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *parser) parsePrefix() (Expr, error) {
	t := p.cur()
	switch t.kind {
	case tokNumber:
		p.next()
		r, ok := new(big.Rat).SetString(t.lit)
		if !ok {
			return nil, p.errorf(t, "invalid number %q", t.lit)
		}
		return &Num{val: r}, nil
	case tokIdent:
		p.next()
		return S(t.lit), nil
	case tokMinus, tokPlus:
		p.next()
		x, err := p.parseExpression(prefix)
		if err != nil {
			return nil, err
		}
		if t.kind == tokPlus {
			return x, nil
		}
		return Neg(x), nil
	case tokLParen:
		p.next()
		x, err := p.parseExpression(lowest)
		if err != nil {
			return nil, err
		}
		if err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		p.next()
		return x, nil
	}
	return nil, p.errorf(t, "unexpected %s", describe(t))
}

func (p *parser) parseInfix(op token, left Expr) (Expr, error) {
	precedence := precedences[op.kind]
	if op.kind == tokPow {
		// right associative
		precedence--
	}
	right, err := p.parseExpression(precedence)
	if err != nil {
		return nil, err
	}
	switch op.kind {
	case tokPlus:
		return &BinaryExpr{Op: OpAdd, X: left, Y: right}, nil
	case tokMinus:
		return &BinaryExpr{Op: OpSub, X: left, Y: right}, nil
	case tokStar:
		return &BinaryExpr{Op: OpMul, X: left, Y: right}, nil
	case tokSlash:
		return &BinaryExpr{Op: OpDiv, X: left, Y: right}, nil
	case tokPow:
		return &BinaryExpr{Op: OpPow, X: left, Y: right}, nil
	}
	return nil, p.errorf(op, "unexpected %s", describe(op))
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.cur().kind]; ok {
		return prec
	}
	return lowest
}

func (p *parser) errorf(t token, format string, args ...interface{}) error {
	return &ParseError{Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

func describe(t token) string {
	if t.kind == tokNumber || t.kind == tokIdent {
		return fmt.Sprintf("%s %q", t.kind, t.lit)
	}
	return t.kind.String()
}
