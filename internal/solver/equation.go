package solver

import "github.com/bft-labs/eqsolve/pkg/symbolic"

// DefaultEquation is the production completion-time equation: the time T at
// which output reaches goal, given producedQ already produced, a base rate r1
// for the fraction a of the window (offset by t0) and rate r1+dr for the rest.
const DefaultEquation = "goal - (producedQ + r1*(a*T - t0) + (r1 + dr)*(1 - a)*T)"

// DefaultTarget is the symbol DefaultEquation is solved for.
const DefaultTarget = "T"

// ProductionEquation builds DefaultEquation from constructors.
func ProductionEquation() symbolic.Equation {
	syms := symbolic.Symbols("goal producedQ r1 a T t0 dr")
	goal, producedQ, r1, a, T, t0, dr := syms[0], syms[1], syms[2], syms[3], syms[4], syms[5], syms[6]

	lhs := symbolic.Sub(goal, symbolic.Add(
		producedQ,
		symbolic.Mul(r1, symbolic.Sub(symbolic.Mul(a, T), t0)),
		symbolic.Mul(symbolic.Add(r1, dr), symbolic.Sub(symbolic.N(1), a), T),
	))
	return symbolic.Equation{LHS: lhs, RHS: symbolic.N(0)}
}
