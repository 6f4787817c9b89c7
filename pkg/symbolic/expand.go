package symbolic

import (
	"fmt"
	"sort"
)

const (
	maxExponent = 64

	// maxDegree bounds the total degree of any expanded numerator or denominator.
	maxDegree = 1024

	// maxTermProducts bounds the term-by-term products of a single multiplication.
	maxTermProducts = 1 << 18
)

// Env maps symbol names to the values substituted for them during expansion.
type Env map[string]Fraction

// ParseBindings parses each value as an expression and expands it, so
// "0.5", "3/4", "-2" and "x + 1" are all accepted.
func ParseBindings(values map[string]string) (Env, error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	env := make(Env, len(values))
	for _, name := range names {
		if !validName(name) {
			return nil, fmt.Errorf("binding %q: invalid symbol name", name)
		}
		e, err := Parse(values[name])
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", name, err)
		}
		f, err := Expand(e, nil)
		if err != nil {
			return nil, fmt.Errorf("binding %s: %w", name, err)
		}
		env[name] = f
	}
	return env, nil
}

// with returns a copy of env with name bound to value.
func (env Env) with(name string, value Fraction) Env {
	out := make(Env, len(env)+1)
	for k, v := range env {
		out[k] = v
	}
	out[name] = value
	return out
}

// Expand evaluates e to a normalized rational function, substituting the
// symbols bound in env. Expansion stops with ErrExpressionTooLarge before
// any intermediate result outgrows the degree or term budget.
func Expand(e Expr, env Env) (Fraction, error) {
	switch v := e.(type) {
	case *Num:
		return FracRat(v.val), nil
	case *Sym:
		if f, ok := env[v.Name]; ok {
			return f, nil
		}
		return FracOf(Var(v.Name)), nil
	case *UnaryExpr:
		x, err := Expand(v.X, env)
		if err != nil {
			return Fraction{}, err
		}
		return x.Neg(), nil
	case *BinaryExpr:
		x, err := Expand(v.X, env)
		if err != nil {
			return Fraction{}, err
		}
		y, err := Expand(v.Y, env)
		if err != nil {
			return Fraction{}, err
		}
		switch v.Op {
		case OpAdd, OpSub:
			if !x.Den.Equal(y.Den) {
				if err := checkProduct(x, y); err != nil {
					return Fraction{}, fmt.Errorf("%s: %w", v, err)
				}
			}
			if v.Op == OpSub {
				return x.Sub(y), nil
			}
			return x.Add(y), nil
		case OpMul:
			if err := checkProduct(x, y); err != nil {
				return Fraction{}, fmt.Errorf("%s: %w", v, err)
			}
			return x.Mul(y), nil
		case OpDiv:
			if err := checkProduct(x, y); err != nil {
				return Fraction{}, fmt.Errorf("%s: %w", v, err)
			}
			q, err := x.Quo(y)
			if err != nil {
				return Fraction{}, fmt.Errorf("%s: %w", v, err)
			}
			return q, nil
		case OpPow:
			n, err := smallInt(y)
			if err != nil {
				return Fraction{}, fmt.Errorf("%s: %w", v, err)
			}
			p, err := powChecked(x, n)
			if err != nil {
				return Fraction{}, fmt.Errorf("%s: %w", v, err)
			}
			return p, nil
		}
		return Fraction{}, fmt.Errorf("symbolic: unknown operator %q", v.Op)
	case nil:
		return Fraction{}, fmt.Errorf("symbolic: nil expression")
	}
	return Fraction{}, fmt.Errorf("symbolic: unsupported expression %T", e)
}

// checkProduct reports ErrExpressionTooLarge when combining x and y over a
// common denominator would exceed the budget.
func checkProduct(x, y Fraction) error {
	xt, yt := x.Num.Len()+x.Den.Len(), y.Num.Len()+y.Den.Len()
	if xt*yt > maxTermProducts || fracDegree(x)+fracDegree(y) > maxDegree {
		return ErrExpressionTooLarge
	}
	return nil
}

func fracDegree(f Fraction) int {
	if d := f.Den.totalDegree(); d > f.Num.totalDegree() {
		return d
	}
	return f.Num.totalDegree()
}

// powChecked is PowInt with the budget checked before every multiplication.
func powChecked(f Fraction, n int) (Fraction, error) {
	if n < 0 {
		inv, err := FracOf(ConstInt(1)).Quo(f)
		if err != nil {
			return Fraction{}, err
		}
		f, n = inv, -n
	}
	if fracDegree(f)*n > maxDegree {
		return Fraction{}, ErrExpressionTooLarge
	}
	out := FracOf(ConstInt(1))
	for ; n > 0; n-- {
		if err := checkProduct(out, f); err != nil {
			return Fraction{}, err
		}
		out = out.Mul(f)
	}
	return out, nil
}

func smallInt(f Fraction) (int, error) {
	r, ok := f.Rat()
	if !ok || !r.IsInt() {
		return 0, ErrUnsupportedExponent
	}
	n := r.Num()
	if !n.IsInt64() || n.Int64() > maxExponent || n.Int64() < -maxExponent {
		return 0, ErrUnsupportedExponent
	}
	return int(n.Int64()), nil
}

func validName(s string) bool {
	if s == "" || isDigit(s[0]) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) && !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// ValidSymbol reports whether s can be used as a symbol name.
func ValidSymbol(s string) bool { return validName(s) }
