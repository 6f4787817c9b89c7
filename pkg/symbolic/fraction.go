package symbolic

import (
	"math/big"
	"sort"
)

// Fraction is a rational function Num/Den. Values returned by this package
// are normalized: Den is nonzero, a constant denominator is always 1, and
// otherwise Num and Den share no polynomial factor and have integer
// coefficients with no common divisor.
type Fraction struct {
	Num, Den Poly
}

// FracOf returns p/1.
func FracOf(p Poly) Fraction { return Fraction{Num: p, Den: ConstInt(1)} }

// FracRat returns the constant r.
func FracRat(r *big.Rat) Fraction { return FracOf(Const(r)) }

// Add returns f + g.
func (f Fraction) Add(g Fraction) Fraction {
	if f.Den.Equal(g.Den) {
		return Fraction{Num: f.Num.Add(g.Num), Den: f.Den}.normalize()
	}
	return Fraction{
		Num: f.Num.Mul(g.Den).Add(g.Num.Mul(f.Den)),
		Den: f.Den.Mul(g.Den),
	}.normalize()
}

// Sub returns f - g.
func (f Fraction) Sub(g Fraction) Fraction { return f.Add(g.Neg()) }

// Neg returns -f.
func (f Fraction) Neg() Fraction { return Fraction{Num: f.Num.Neg(), Den: f.Den} }

// Mul returns f*g.
func (f Fraction) Mul(g Fraction) Fraction {
	return Fraction{Num: f.Num.Mul(g.Num), Den: f.Den.Mul(g.Den)}.normalize()
}

// Quo returns f/g, or ErrDivisionByZero if g is identically zero.
func (f Fraction) Quo(g Fraction) (Fraction, error) {
	if g.IsZero() {
		return Fraction{}, ErrDivisionByZero
	}
	return Fraction{Num: f.Num.Mul(g.Den), Den: f.Den.Mul(g.Num)}.normalize(), nil
}

// PowInt returns f**n. A negative n inverts f.
func (f Fraction) PowInt(n int) (Fraction, error) {
	base := f
	if n < 0 {
		inv, err := FracOf(ConstInt(1)).Quo(f)
		if err != nil {
			return Fraction{}, err
		}
		base, n = inv, -n
	}
	out := FracOf(ConstInt(1))
	for ; n > 0; n-- {
		out = out.Mul(base)
	}
	return out, nil
}

// IsZero reports whether f is identically zero.
func (f Fraction) IsZero() bool { return f.Num.IsZero() }

// Rat returns the value of f when it is a constant.
func (f Fraction) Rat() (*big.Rat, bool) {
	n := f.normalize()
	if !n.Num.IsConstant() || !n.Den.IsConstant() {
		return nil, false
	}
	return n.Num.Constant(), true
}

// Equivalent reports whether f and g are the same rational function.
func (f Fraction) Equivalent(g Fraction) bool {
	return f.Num.Mul(g.Den).Equal(g.Num.Mul(f.Den))
}

// Symbols returns the sorted names of the symbols in f.
func (f Fraction) Symbols() []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range append(f.Num.Symbols(), f.Den.Symbols()...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func (f Fraction) normalize() Fraction {
	if f.Num.IsZero() {
		return FracOf(Poly{})
	}
	if f.Den.IsZero() {
		// only reachable through a zero-valued Fraction literal
		return f
	}

	if common := commonMono(f.Num, f.Den); len(common) > 0 {
		f = Fraction{Num: f.Num.divMono(common), Den: f.Den.divMono(common)}
	}
	if !f.Num.IsConstant() && !f.Den.IsConstant() {
		if g := gcd(f.Num, f.Den); !g.IsConstant() {
			num, okNum := f.Num.divide(g)
			den, okDen := f.Den.divide(g)
			if okNum && okDen {
				f = Fraction{Num: num, Den: den}
			}
		}
	}
	if f.Den.IsConstant() {
		inv := new(big.Rat).Inv(f.Den.Constant())
		return FracOf(f.Num.Scale(inv))
	}

	c := new(big.Rat).Inv(content(f.Num, f.Den))
	switch neg := 2 * f.Den.negatives(); {
	case neg > f.Den.Len():
		c.Neg(c)
	case neg == f.Den.Len() && f.Den.sorted()[0].coeff.Sign() < 0:
		c.Neg(c)
	}
	f = Fraction{Num: f.Num.Scale(c), Den: f.Den.Scale(c)}

	if ratio, ok := proportional(f.Num, f.Den); ok {
		return FracRat(ratio)
	}
	return f
}

// proportional reports whether num is a constant multiple of den.
func proportional(num, den Poly) (*big.Rat, bool) {
	if num.Len() != den.Len() {
		return nil, false
	}
	lead := den.sorted()[0]
	nt, ok := num.terms[monoKey(lead.mono)]
	if !ok {
		return nil, false
	}
	ratio := new(big.Rat).Quo(nt.coeff, lead.coeff)
	if !num.Equal(den.Scale(ratio)) {
		return nil, false
	}
	return ratio, true
}

// commonMono returns the largest monomial dividing every term of a and b.
func commonMono(a, b Poly) []Power {
	var common []Power
	first := true
	for _, p := range []Poly{a, b} {
		for _, t := range p.terms {
			if first {
				common = append([]Power(nil), t.mono...)
				first = false
				continue
			}
			next := common[:0]
			for _, pw := range common {
				if e := exponentOf(t.mono, pw.Sym); e > 0 {
					next = append(next, Power{Sym: pw.Sym, Exp: minInt(pw.Exp, e)})
				}
			}
			common = next
			if len(common) == 0 {
				return nil
			}
		}
	}
	return common
}

func (p Poly) divMono(m []Power) Poly {
	out := Poly{terms: make(map[string]term, len(p.terms))}
	for _, t := range p.terms {
		out.addTerm(divMono(t.mono, m), t.coeff)
	}
	return out
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (f Fraction) String() string {
	f = f.normalize()
	if f.Den.IsConstant() {
		return f.Num.String()
	}
	num := f.Num.String()
	if f.Num.Len() > 1 || !integral(f.Num) {
		num = "(" + num + ")"
	}
	den := f.Den.String()
	if !bareMonomial(f.Den) {
		den = "(" + den + ")"
	}
	return num + "/" + den
}

// LaTeX renders f for a LaTeX math environment.
func (f Fraction) LaTeX() string {
	f = f.normalize()
	if f.Den.IsConstant() {
		return f.Num.LaTeX()
	}
	return `\frac{` + f.Num.LaTeX() + "}{" + f.Den.LaTeX() + "}"
}

func integral(p Poly) bool {
	for _, t := range p.terms {
		if !t.coeff.IsInt() {
			return false
		}
	}
	return true
}

// bareMonomial reports whether p prints as a single power with no coefficient.
func bareMonomial(p Poly) bool {
	if p.Len() != 1 {
		return false
	}
	t := p.sorted()[0]
	return len(t.mono) == 1 && t.coeff.Cmp(big.NewRat(1, 1)) == 0
}
