// Package solver isolates one symbol of an equation and verifies the result.
package solver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gofrs/uuid"

	"github.com/bft-labs/eqsolve/internal/domain"
	"github.com/bft-labs/eqsolve/pkg/log"
	"github.com/bft-labs/eqsolve/pkg/symbolic"
)

// Request describes one solve.
type Request struct {
	// Equation is "lhs = rhs" or an expression equal to zero.
	// Empty means DefaultEquation.
	Equation string

	// Target is the symbol to isolate. Empty means DefaultTarget.
	Target string

	// Bindings substitutes values (numbers or expressions) for parameters.
	Bindings map[string]string

	// Verify substitutes the solution back into the equation.
	Verify bool
}

// Result is a solved equation.
type Result struct {
	ID       uuid.UUID
	Equation symbolic.Equation
	Target   string
	Value    symbolic.Fraction
	Bindings map[string]string
	Verified bool
	Elapsed  time.Duration
}

// Expression returns the solution in plain text.
func (r *Result) Expression() string { return r.Value.String() }

// Sentence returns the one-line report printed by the CLI.
func (r *Result) Sentence() string {
	return fmt.Sprintf("The equation solved for %s is: %s = %s", r.Target, r.Target, r.Value)
}

// LaTeX returns "target = value" in LaTeX.
func (r *Result) LaTeX() string { return r.Target + " = " + r.Value.LaTeX() }

// Solver solves equations. The zero value is not usable; call New.
type Solver struct {
	logger log.Logger
	newID  func() (uuid.UUID, error)
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger log.Logger) Option {
	return func(s *Solver) {
		s.logger = logger
	}
}

// New creates a Solver.
func New(opts ...Option) *Solver {
	s := &Solver{
		logger: log.NewNoopLogger(),
		newID:  uuid.NewV4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Solve parses req.Equation, substitutes req.Bindings and isolates req.Target.
// A vanishing coefficient is reported as domain.ErrDegenerateEquation.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	id, err := s.newID()
	if err != nil {
		return nil, fmt.Errorf("generate solve id: %w", err)
	}
	logger := s.logger.With(log.String("solve_id", id.String()))

	target := req.Target
	if target == "" {
		target = DefaultTarget
	}
	eq, err := parseEquation(req.Equation)
	if err != nil {
		return nil, err
	}
	env, err := symbolic.ParseBindings(req.Bindings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidEquation, err)
	}
	warnUnused(logger, eq, req.Bindings)

	logger.Debug("solving",
		log.String("equation", eq.String()),
		log.String("target", target),
		log.Int("bindings", len(req.Bindings)),
	)

	sol, err := symbolic.Solve(eq, target, env)
	if err != nil {
		if errors.Is(err, symbolic.ErrNoUniqueSolution) {
			logger.Warn("degenerate equation", log.String("target", target), log.Err(err))
			return nil, fmt.Errorf("%w: %w", domain.ErrDegenerateEquation, err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidEquation, err)
	}
	value, err := sol.First()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDegenerateEquation, err)
	}

	res := &Result{
		ID:       id,
		Equation: eq,
		Target:   target,
		Value:    value,
		Bindings: req.Bindings,
	}
	if req.Verify {
		ok, err := symbolic.Verify(eq, target, value, env)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrVerificationFailed, err)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s = %s", domain.ErrVerificationFailed, target, value)
		}
		res.Verified = true
	}
	res.Elapsed = time.Since(start)

	logger.Info("solved",
		log.String("target", target),
		log.String("value", value.String()),
		log.Bool("verified", res.Verified),
		log.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

func parseEquation(src string) (symbolic.Equation, error) {
	if src == "" || src == DefaultEquation {
		return ProductionEquation(), nil
	}
	eq, err := symbolic.ParseEquation(src)
	if err != nil {
		return symbolic.Equation{}, fmt.Errorf("%w: %w", domain.ErrInvalidEquation, err)
	}
	return eq, nil
}

func warnUnused(logger log.Logger, eq symbolic.Equation, bindings map[string]string) {
	present := map[string]bool{}
	for _, name := range symbolic.FreeSymbols(eq.Residual()) {
		present[name] = true
	}
	var unused []string
	for name := range bindings {
		if !present[name] {
			unused = append(unused, name)
		}
	}
	if len(unused) == 0 {
		return
	}
	sort.Strings(unused)
	logger.Warn("bindings do not occur in equation", log.Strings("symbols", unused))
}
