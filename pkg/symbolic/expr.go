package symbolic

import (
	"math/big"
	"sort"
	"strings"
)

// Expr is a node of an expression tree.
type Expr interface {
	String() string
	exprNode()
}

// Op is a binary operator.
type Op byte

const (
	OpAdd Op = '+'
	OpSub Op = '-'
	OpMul Op = '*'
	OpDiv Op = '/'
	OpPow Op = '^'
)

func (o Op) String() string {
	if o == OpPow {
		return "**"
	}
	return string(o)
}

// Num is an exact rational constant.
type Num struct{ val *big.Rat }

// N returns the integer constant n.
func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }

// R returns the rational constant p/q. It panics if q is zero.
func R(p, q int64) *Num {
	if q == 0 {
		panic("symbolic: zero denominator")
	}
	return &Num{val: big.NewRat(p, q)}
}

// Rat returns a copy of the constant's value.
func (n *Num) Rat() *big.Rat { return new(big.Rat).Set(n.val) }

func (n *Num) String() string { return ratString(n.val) }
func (*Num) exprNode()        {}

// Sym is a named unknown with no assumed domain.
type Sym struct{ Name string }

// S returns the symbol with the given name.
func S(name string) *Sym { return &Sym{Name: name} }

// Symbols returns one symbol per whitespace separated name.
func Symbols(names string) []*Sym {
	fields := strings.Fields(names)
	out := make([]*Sym, len(fields))
	for i, f := range fields {
		out[i] = S(f)
	}
	return out
}

func (s *Sym) String() string { return s.Name }
func (*Sym) exprNode()        {}

// UnaryExpr is a negation.
type UnaryExpr struct{ X Expr }

func (u *UnaryExpr) String() string { return printExpr(u) }
func (*UnaryExpr) exprNode()        {}

// BinaryExpr applies Op to X and Y.
type BinaryExpr struct {
	Op   Op
	X, Y Expr
}

func (b *BinaryExpr) String() string { return printExpr(b) }
func (*BinaryExpr) exprNode()        {}

// Add folds terms left to right into a sum. Add() is 0.
func Add(terms ...Expr) Expr { return fold(OpAdd, N(0), terms) }

// Mul folds factors left to right into a product. Mul() is 1.
func Mul(factors ...Expr) Expr { return fold(OpMul, N(1), factors) }

// Sub returns x - y.
func Sub(x, y Expr) Expr { return &BinaryExpr{Op: OpSub, X: x, Y: y} }

// Div returns x / y.
func Div(x, y Expr) Expr { return &BinaryExpr{Op: OpDiv, X: x, Y: y} }

// Pow returns x ** y.
func Pow(x, y Expr) Expr { return &BinaryExpr{Op: OpPow, X: x, Y: y} }

// Neg returns -x.
func Neg(x Expr) Expr { return &UnaryExpr{X: x} }

func fold(op Op, empty Expr, xs []Expr) Expr {
	if len(xs) == 0 {
		return empty
	}
	acc := xs[0]
	for _, x := range xs[1:] {
		acc = &BinaryExpr{Op: op, X: acc, Y: x}
	}
	return acc
}

// Equation is LHS = RHS.
type Equation struct {
	LHS, RHS Expr
}

// Residual returns LHS - RHS, which is zero exactly when the equation holds.
func (e Equation) Residual() Expr {
	if n, ok := e.RHS.(*Num); ok && n.val.Sign() == 0 {
		return e.LHS
	}
	return Sub(e.LHS, e.RHS)
}

func (e Equation) String() string {
	return e.LHS.String() + " = " + e.RHS.String()
}

func exprPrecedence(e Expr) int {
	switch v := e.(type) {
	case *Num:
		if v.val.Sign() < 0 {
			return prefix
		}
		if !v.val.IsInt() {
			return product
		}
		return highest
	case *UnaryExpr:
		return prefix
	case *BinaryExpr:
		return opPrecedence(v.Op)
	}
	return highest
}

func opPrecedence(op Op) int {
	switch op {
	case OpAdd, OpSub:
		return sum
	case OpMul, OpDiv:
		return product
	case OpPow:
		return power
	}
	return lowest
}

func printExpr(e Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e Expr) {
	switch v := e.(type) {
	case *UnaryExpr:
		sb.WriteByte('-')
		writeOperand(sb, v.X, exprPrecedence(v.X) < prefix)
	case *BinaryExpr:
		prec := opPrecedence(v.Op)
		xp, yp := exprPrecedence(v.X), exprPrecedence(v.Y)
		if v.Op == OpPow {
			// right associative
			writeOperand(sb, v.X, xp <= prec)
		} else {
			writeOperand(sb, v.X, xp < prec)
		}
		switch v.Op {
		case OpAdd, OpSub:
			sb.WriteString(" " + v.Op.String() + " ")
		default:
			sb.WriteString(v.Op.String())
		}
		if v.Op == OpPow {
			writeOperand(sb, v.Y, yp < prec)
		} else {
			writeOperand(sb, v.Y, yp <= prec)
		}
	default:
		sb.WriteString(e.String())
	}
}

func writeOperand(sb *strings.Builder, e Expr, paren bool) {
	if paren {
		sb.WriteByte('(')
	}
	writeExpr(sb, e)
	if paren {
		sb.WriteByte(')')
	}
}

func ratString(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return r.String()
}

// FreeSymbols returns the sorted, distinct symbol names occurring in e.
func FreeSymbols(e Expr) []string {
	seen := map[string]bool{}
	var walk func(Expr)
	walk = func(e Expr) {
		switch v := e.(type) {
		case *Sym:
			seen[v.Name] = true
		case *UnaryExpr:
			walk(v.X)
		case *BinaryExpr:
			walk(v.X)
			walk(v.Y)
		}
	}
	walk(e)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
