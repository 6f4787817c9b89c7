package symbolic

import (
	"errors"
	"fmt"
)

// Solution holds the values of Target satisfying an equation.
type Solution struct {
	Target string
	Values []Fraction

	// Coefficient and Remainder describe the collected numerator
	// Coefficient*Target + Remainder.
	Coefficient Poly
	Remainder   Poly
}

// First returns the first value, or ErrNoUniqueSolution if there is none.
func (s Solution) First() (Fraction, error) {
	if len(s.Values) == 0 {
		return Fraction{}, &DegenerateError{Target: s.Target}
	}
	return s.Values[0], nil
}

// Solve isolates target in eq after substituting env. The equation must be
// linear in target once its residual is brought over a common denominator.
func Solve(eq Equation, target string, env Env) (Solution, error) {
	if _, bound := env[target]; bound {
		return Solution{}, fmt.Errorf("%w: %s", ErrTargetBound, target)
	}
	r, err := Expand(eq.Residual(), env)
	if err != nil {
		return Solution{}, err
	}

	n := r.Num
	switch deg := n.Degree(target); deg {
	case 0:
		return Solution{}, &DegenerateError{Target: target, Infinite: n.IsZero()}
	case 1:
	default:
		return Solution{}, fmt.Errorf("%w: %s has degree %d", ErrNonlinear, target, deg)
	}

	c := n.Coefficient(target, 1)
	k := n.Coefficient(target, 0)
	root, err := FracOf(k.Neg()).Quo(FracOf(c))
	if err != nil {
		return Solution{}, err
	}
	// Cancelled factors are gone from r.Den, so check the root against every
	// divisor of the equation as written.
	if _, err := Expand(eq.Residual(), env.with(target, root)); err != nil {
		if errors.Is(err, ErrDivisionByZero) {
			return Solution{}, &DegenerateError{Target: target}
		}
		return Solution{}, err
	}

	return Solution{
		Target:      target,
		Values:      []Fraction{root},
		Coefficient: c,
		Remainder:   k,
	}, nil
}

// Verify substitutes value for target and reports whether the residual of eq
// vanishes identically.
func Verify(eq Equation, target string, value Fraction, env Env) (bool, error) {
	r, err := Expand(eq.Residual(), env.with(target, value))
	if err != nil {
		return false, err
	}
	return r.IsZero(), nil
}
