package symbolic

import (
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// Power is a symbol raised to a positive integer exponent.
type Power struct {
	Sym string
	Exp int
}

type term struct {
	mono  []Power // sorted by Sym
	coeff *big.Rat
}

// Poly is a multivariate polynomial with exact rational coefficients.
// The zero value is the zero polynomial. Polys are immutable.
type Poly struct {
	terms map[string]term
}

// Const returns the constant polynomial r.
func Const(r *big.Rat) Poly {
	p := Poly{terms: map[string]term{}}
	p.addTerm(nil, r)
	return p
}

// ConstInt returns the constant polynomial n.
func ConstInt(n int64) Poly { return Const(new(big.Rat).SetInt64(n)) }

// Var returns the polynomial consisting of the single symbol name.
func Var(name string) Poly {
	p := Poly{terms: map[string]term{}}
	p.addTerm([]Power{{Sym: name, Exp: 1}}, big.NewRat(1, 1))
	return p
}

func (p *Poly) addTerm(mono []Power, coeff *big.Rat) {
	if coeff.Sign() == 0 {
		return
	}
	key := monoKey(mono)
	if t, ok := p.terms[key]; ok {
		sum := new(big.Rat).Add(t.coeff, coeff)
		if sum.Sign() == 0 {
			delete(p.terms, key)
			return
		}
		p.terms[key] = term{mono: t.mono, coeff: sum}
		return
	}
	p.terms[key] = term{mono: mono, coeff: new(big.Rat).Set(coeff)}
}

// Add returns p + q.
func (p Poly) Add(q Poly) Poly {
	out := Poly{terms: make(map[string]term, len(p.terms)+len(q.terms))}
	for _, t := range p.terms {
		out.addTerm(t.mono, t.coeff)
	}
	for _, t := range q.terms {
		out.addTerm(t.mono, t.coeff)
	}
	return out
}

// Neg returns -p.
func (p Poly) Neg() Poly { return p.Scale(big.NewRat(-1, 1)) }

// Sub returns p - q.
func (p Poly) Sub(q Poly) Poly { return p.Add(q.Neg()) }

// Scale returns r*p.
func (p Poly) Scale(r *big.Rat) Poly {
	out := Poly{terms: make(map[string]term, len(p.terms))}
	for _, t := range p.terms {
		out.addTerm(t.mono, new(big.Rat).Mul(t.coeff, r))
	}
	return out
}

// Mul returns p*q.
func (p Poly) Mul(q Poly) Poly {
	out := Poly{terms: make(map[string]term, len(p.terms)*len(q.terms))}
	for _, a := range p.terms {
		for _, b := range q.terms {
			out.addTerm(mulMono(a.mono, b.mono), new(big.Rat).Mul(a.coeff, b.coeff))
		}
	}
	return out
}

// IsZero reports whether p is identically zero.
func (p Poly) IsZero() bool { return len(p.terms) == 0 }

// IsConstant reports whether p contains no symbols.
func (p Poly) IsConstant() bool {
	if len(p.terms) == 0 {
		return true
	}
	_, ok := p.terms[""]
	return ok && len(p.terms) == 1
}

// Constant returns the constant term of p.
func (p Poly) Constant() *big.Rat {
	if t, ok := p.terms[""]; ok {
		return new(big.Rat).Set(t.coeff)
	}
	return new(big.Rat)
}

// Len returns the number of nonzero terms.
func (p Poly) Len() int { return len(p.terms) }

// Equal reports whether p and q are the same polynomial.
func (p Poly) Equal(q Poly) bool { return p.Sub(q).IsZero() }

// Degree returns the highest exponent of sym in p, or 0 if sym is absent.
func (p Poly) Degree(sym string) int {
	deg := 0
	for _, t := range p.terms {
		if e := exponentOf(t.mono, sym); e > deg {
			deg = e
		}
	}
	return deg
}

// Coefficient returns the polynomial multiplying sym**deg in p.
func (p Poly) Coefficient(sym string, deg int) Poly {
	out := Poly{terms: map[string]term{}}
	for _, t := range p.terms {
		if exponentOf(t.mono, sym) != deg {
			continue
		}
		rest := make([]Power, 0, len(t.mono))
		for _, pw := range t.mono {
			if pw.Sym != sym {
				rest = append(rest, pw)
			}
		}
		out.addTerm(rest, t.coeff)
	}
	return out
}

// Symbols returns the sorted names of all symbols occurring in p.
func (p Poly) Symbols() []string {
	seen := map[string]bool{}
	var names []string
	for _, t := range p.terms {
		for _, pw := range t.mono {
			if !seen[pw.Sym] {
				seen[pw.Sym] = true
				names = append(names, pw.Sym)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Subst replaces sym with f and returns the resulting rational function.
func (p Poly) Subst(sym string, f Fraction) Fraction {
	acc := Fraction{Num: Poly{}, Den: ConstInt(1)}
	for _, t := range p.terms {
		part := Fraction{Num: Const(t.coeff), Den: ConstInt(1)}
		for _, pw := range t.mono {
			base := Fraction{Num: Var(pw.Sym), Den: ConstInt(1)}
			if pw.Sym == sym {
				base = f
			}
			for i := 0; i < pw.Exp; i++ {
				part = part.Mul(base)
			}
		}
		acc = acc.Add(part)
	}
	return acc
}

// sorted returns the terms in print order: lexicographic over symbol names
// with higher exponents first, so the constant term is always last.
func (p Poly) sorted() []term {
	out := make([]term, 0, len(p.terms))
	for _, t := range p.terms {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return monoBefore(out[i].mono, out[j].mono) })
	return out
}

func monoBefore(a, b []Power) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Sym == b[j].Sym:
			if a[i].Exp != b[j].Exp {
				return a[i].Exp > b[j].Exp
			}
			i++
			j++
		case a[i].Sym < b[j].Sym:
			return true
		default:
			return false
		}
	}
	return i < len(a)
}

// content returns the positive rational c such that every poly divided by c
// has integer coefficients with no common factor.
func content(ps ...Poly) *big.Rat {
	num, den := new(big.Int), big.NewInt(1)
	for _, p := range ps {
		for _, t := range p.terms {
			num.GCD(nil, nil, num, new(big.Int).Abs(t.coeff.Num()))
			g := new(big.Int).GCD(nil, nil, den, t.coeff.Denom())
			den.Mul(den, t.coeff.Denom())
			den.Quo(den, g)
		}
	}
	if num.Sign() == 0 {
		return big.NewRat(1, 1)
	}
	return new(big.Rat).SetFrac(num, den)
}

// negatives counts terms with a negative coefficient.
func (p Poly) negatives() int {
	n := 0
	for _, t := range p.terms {
		if t.coeff.Sign() < 0 {
			n++
		}
	}
	return n
}

func (p Poly) String() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for i, t := range p.sorted() {
		neg := t.coeff.Sign() < 0
		switch {
		case i == 0 && neg:
			sb.WriteByte('-')
		case i > 0 && neg:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		sb.WriteString(formatTerm(new(big.Rat).Abs(t.coeff), t.mono))
	}
	return sb.String()
}

// LaTeX renders p for a LaTeX math environment.
func (p Poly) LaTeX() string {
	if p.IsZero() {
		return "0"
	}
	var sb strings.Builder
	for i, t := range p.sorted() {
		neg := t.coeff.Sign() < 0
		switch {
		case i == 0 && neg:
			sb.WriteByte('-')
		case i > 0 && neg:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		abs := new(big.Rat).Abs(t.coeff)
		var parts []string
		if len(t.mono) == 0 || !isOne(abs) {
			parts = append(parts, ratLaTeX(abs))
		}
		for _, pw := range t.mono {
			if pw.Exp == 1 {
				parts = append(parts, pw.Sym)
			} else {
				parts = append(parts, pw.Sym+"^{"+strconv.Itoa(pw.Exp)+"}")
			}
		}
		sb.WriteString(strings.Join(parts, " "))
	}
	return sb.String()
}

func formatTerm(abs *big.Rat, mono []Power) string {
	if len(mono) == 0 {
		return ratString(abs)
	}
	m := monoKey(mono)
	switch {
	case isOne(abs):
		return m
	case abs.IsInt():
		return abs.Num().String() + "*" + m
	case abs.Num().Cmp(big.NewInt(1)) == 0:
		return m + "/" + abs.Denom().String()
	default:
		return abs.Num().String() + "*" + m + "/" + abs.Denom().String()
	}
}

func ratLaTeX(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return `\frac{` + r.Num().String() + "}{" + r.Denom().String() + "}"
}

func isOne(r *big.Rat) bool { return r.IsInt() && r.Num().Cmp(big.NewInt(1)) == 0 }

// monoKey renders a monomial such as "T**2*a"; the constant monomial is "".
func monoKey(mono []Power) string {
	parts := make([]string, len(mono))
	for i, pw := range mono {
		if pw.Exp == 1 {
			parts[i] = pw.Sym
		} else {
			parts[i] = pw.Sym + "**" + strconv.Itoa(pw.Exp)
		}
	}
	return strings.Join(parts, "*")
}

func mulMono(a, b []Power) []Power {
	out := make([]Power, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].Sym == b[j].Sym:
			out = append(out, Power{Sym: a[i].Sym, Exp: a[i].Exp + b[j].Exp})
			i++
			j++
		case a[i].Sym < b[j].Sym:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}

// divMono divides a by b; every power of b must occur in a with at least b's exponent.
func divMono(a, b []Power) []Power {
	out := make([]Power, 0, len(a))
	for _, pw := range a {
		if e := pw.Exp - exponentOf(b, pw.Sym); e > 0 {
			out = append(out, Power{Sym: pw.Sym, Exp: e})
		}
	}
	return out
}

func exponentOf(mono []Power, sym string) int {
	for _, pw := range mono {
		if pw.Sym == sym {
			return pw.Exp
		}
	}
	return 0
}
