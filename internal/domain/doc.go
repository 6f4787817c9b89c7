// Package domain contains the error taxonomy shared by the eqsolve layers.
//
// It has no dependencies on infrastructure concerns (flags, files, logging).
// Every failure surfaced by the solver or the CLI wraps one of these
// sentinels so callers can branch with errors.Is:
//
//   - [ErrDegenerateEquation]: the target's coefficient vanishes
//   - [ErrInvalidEquation]: parse or expansion failure
//   - [ErrInvalidConfig]: configuration validation failure
//   - [ErrVerificationFailed]: the round-trip substitution did not cancel
package domain
