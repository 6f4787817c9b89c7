// Package eqsolve solves a single equation symbolically for one unknown.
//
// Example usage:
//
//	res, err := eqsolve.Solve(context.Background(), eqsolve.Request{
//	    Bindings: map[string]string{"goal": "100", "a": "0.5"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Sentence())
//
// An empty Request solves the production completion-time equation for T.
package eqsolve

import (
	"context"

	"github.com/bft-labs/eqsolve/internal/domain"
	"github.com/bft-labs/eqsolve/internal/solver"
	"github.com/bft-labs/eqsolve/pkg/log"
)

// Request describes one solve. The zero value solves DefaultEquation for
// DefaultTarget.
type Request = solver.Request

// Result is a solved equation.
type Result = solver.Result

// ScheduleRequest places the production equation on the calendar.
type ScheduleRequest = solver.ScheduleRequest

// Schedule is a production run with its rate switch placed on the calendar.
type Schedule = solver.Schedule

// Solver solves equations and can be configured with a logger.
type Solver = solver.Solver

// Option configures a Solver.
type Option = solver.Option

// DefaultEquation is the production completion-time equation.
const DefaultEquation = solver.DefaultEquation

// DefaultTarget is the symbol DefaultEquation is solved for.
const DefaultTarget = solver.DefaultTarget

// ErrDegenerateEquation is returned when the equation has no unique solution
// for the target, for example because its coefficient vanishes.
var ErrDegenerateEquation = domain.ErrDegenerateEquation

// ErrInvalidEquation is returned for equations that cannot be parsed or are
// not linear in the target.
var ErrInvalidEquation = domain.ErrInvalidEquation

// ErrInvalidSchedule is returned when a schedule request lacks a parameter,
// names an unknown timezone, or leaves T symbolic.
var ErrInvalidSchedule = domain.ErrInvalidSchedule

// ErrVerificationFailed is returned when a verified solve does not satisfy
// the equation.
var ErrVerificationFailed = domain.ErrVerificationFailed

// New creates a Solver.
func New(opts ...Option) *Solver {
	return solver.New(opts...)
}

// WithLogger sets the logger a Solver reports through.
func WithLogger(logger log.Logger) Option {
	return solver.WithLogger(logger)
}

// Solve solves req with a default Solver.
func Solve(ctx context.Context, req Request) (*Result, error) {
	return solver.New().Solve(ctx, req)
}

// PlanSchedule derives a production schedule with a default Solver.
func PlanSchedule(ctx context.Context, req ScheduleRequest) (*Schedule, error) {
	return solver.New().Schedule(ctx, req)
}
