// Package symbolic provides a small computer-algebra kernel for solving a
// single equation for one unknown.
//
// Expressions are parsed or built with constructors, expanded into exact
// rational functions over multivariate polynomials, and solved for a target
// symbol when the equation is linear in it. All arithmetic is exact
// (math/big.Rat); there is no floating point inside the kernel. Rational
// functions are kept in lowest terms, with common polynomial factors
// cancelled.
//
// # Usage
//
// Parse an equation and solve it for T:
//
//	eq, err := symbolic.ParseEquation("goal - (producedQ + r1*(a*T - t0) + (r1 + dr)*(1 - a)*T)")
//	if err != nil {
//	    return err
//	}
//	sol, err := symbolic.Solve(eq, "T", nil)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sol.Values[0]) // (goal - producedQ + r1*t0)/(-a*dr + dr + r1)
//
// Bind parameters to numbers (or other expressions) with an [Env]:
//
//	env, err := symbolic.ParseBindings(map[string]string{"goal": "100", "a": "0.5"})
//
// # Errors
//
// A coefficient that vanishes on the target yields a [*DegenerateError],
// which matches [ErrNoUniqueSolution] with errors.Is. Equations of degree
// two or more in the target return [ErrNonlinear]. Expressions whose
// expansion would exceed the degree or term budget return
// [ErrExpressionTooLarge].
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package symbolic
