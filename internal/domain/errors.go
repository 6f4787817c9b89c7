package domain

import "errors"

// Domain errors represent error conditions in the eqsolve domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrDegenerateEquation is returned when the coefficient of the target
	// vanishes, leaving no solution or infinitely many.
	ErrDegenerateEquation = errors.New("eqsolve: no unique solution")

	// ErrInvalidEquation is returned when the equation cannot be parsed or expanded.
	ErrInvalidEquation = errors.New("eqsolve: invalid equation")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("eqsolve: invalid configuration")

	// ErrInvalidSchedule is returned when a production schedule cannot be
	// derived from the request: missing parameters, an unknown timezone, or a
	// duration that is not a number.
	ErrInvalidSchedule = errors.New("eqsolve: invalid schedule")

	// ErrVerificationFailed is returned when substituting the solution back
	// into the equation does not yield zero.
	ErrVerificationFailed = errors.New("eqsolve: solution failed verification")
)
