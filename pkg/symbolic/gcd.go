package symbolic

import "math/big"

// gcd returns a greatest common divisor of a and b, defined up to a constant
// factor. It runs a primitive pseudo-remainder sequence in the first symbol
// of a and b, taking contents recursively over the remaining symbols.
func gcd(a, b Poly) Poly {
	switch {
	case a.IsZero():
		return b
	case b.IsZero():
		return a
	case a.IsConstant() || b.IsConstant():
		return ConstInt(1)
	}

	v := mainSymbol(a, b)
	ca, cb := a.contentIn(v), b.contentIn(v)
	g := gcd(ca, cb)

	pa, _ := a.divide(ca)
	pb, _ := b.divide(cb)
	if pa.Degree(v) < pb.Degree(v) {
		pa, pb = pb, pa
	}
	for pb.Degree(v) > 0 {
		r := pa.prem(pb, v)
		if r.IsZero() {
			return g.Mul(pb).primitive()
		}
		pa, pb = pb, r.primitiveIn(v)
	}
	return g.primitive()
}

// mainSymbol returns the first symbol, in byte order, of a or b.
func mainSymbol(a, b Poly) string {
	syms := append(a.Symbols(), b.Symbols()...)
	first := syms[0]
	for _, s := range syms[1:] {
		if s < first {
			first = s
		}
	}
	return first
}

// contentIn returns the gcd of the coefficients of p viewed as a polynomial
// in v. A p free of v is its own content.
func (p Poly) contentIn(v string) Poly {
	var g Poly
	for d := p.Degree(v); d >= 0; d-- {
		c := p.Coefficient(v, d)
		if c.IsZero() {
			continue
		}
		g = gcd(g, c)
		if g.IsConstant() {
			return ConstInt(1)
		}
	}
	return g
}

// primitiveIn divides p by its content in v and by its rational content.
func (p Poly) primitiveIn(v string) Poly {
	q, ok := p.divide(p.contentIn(v))
	if !ok {
		return p.primitive()
	}
	return q.primitive()
}

// primitive scales p to integer coefficients with no common divisor.
func (p Poly) primitive() Poly {
	if p.IsZero() {
		return p
	}
	return p.Scale(new(big.Rat).Inv(content(p)))
}

// prem returns the pseudo-remainder of p divided by b in v.
func (p Poly) prem(b Poly, v string) Poly {
	db := b.Degree(v)
	lb := b.Coefficient(v, db)
	r := p
	for !r.IsZero() {
		dr := r.Degree(v)
		if dr < db {
			break
		}
		lr := r.Coefficient(v, dr)
		r = r.Mul(lb).Sub(lr.Mul(symPow(v, dr-db)).Mul(b))
	}
	return r
}

// divide returns p/b when b divides p exactly.
func (p Poly) divide(b Poly) (Poly, bool) {
	switch {
	case b.IsZero():
		return Poly{}, false
	case p.IsZero():
		return Poly{}, true
	case b.IsConstant():
		return p.Scale(new(big.Rat).Inv(b.Constant())), true
	}

	v := mainSymbol(p, b)
	db := b.Degree(v)
	if db == 0 {
		var q Poly
		for d := p.Degree(v); d >= 0; d-- {
			c := p.Coefficient(v, d)
			if c.IsZero() {
				continue
			}
			cq, ok := c.divide(b)
			if !ok {
				return Poly{}, false
			}
			q = q.Add(cq.Mul(symPow(v, d)))
		}
		return q, true
	}

	lb := b.Coefficient(v, db)
	var q Poly
	r := p
	for !r.IsZero() {
		dr := r.Degree(v)
		if dr < db {
			return Poly{}, false
		}
		t, ok := r.Coefficient(v, dr).divide(lb)
		if !ok {
			return Poly{}, false
		}
		t = t.Mul(symPow(v, dr-db))
		q = q.Add(t)
		r = r.Sub(t.Mul(b))
	}
	return q, true
}

func symPow(v string, n int) Poly {
	if n == 0 {
		return ConstInt(1)
	}
	p := Poly{terms: map[string]term{}}
	p.addTerm([]Power{{Sym: v, Exp: n}}, big.NewRat(1, 1))
	return p
}

// totalDegree returns the largest sum of exponents over the terms of p.
func (p Poly) totalDegree() int {
	deg := 0
	for _, t := range p.terms {
		d := 0
		for _, pw := range t.mono {
			d += pw.Exp
		}
		if d > deg {
			deg = d
		}
	}
	return deg
}
