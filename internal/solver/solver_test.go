package solver

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/eqsolve/internal/domain"
	"github.com/bft-labs/eqsolve/pkg/log"
	"github.com/bft-labs/eqsolve/pkg/symbolic"
)

type recordingLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (l *recordingLogger) Debug(msg string, fields ...log.Field) {}
func (l *recordingLogger) Info(msg string, fields ...log.Field)  {}
func (l *recordingLogger) Error(msg string, fields ...log.Field) {}

func (l *recordingLogger) Warn(msg string, fields ...log.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, msg)
}

func (l *recordingLogger) With(fields ...log.Field) log.Logger { return l }

var numericBindings = map[string]string{
	"goal":      "100",
	"producedQ": "20",
	"r1":        "2",
	"a":         "0.5",
	"t0":        "5",
	"dr":        "1",
}

func TestProductionEquation_MatchesDefault(t *testing.T) {
	parsed, err := symbolic.ParseEquation(DefaultEquation)
	require.NoError(t, err)
	require.Equal(t, parsed.String(), ProductionEquation().String())
}

func TestSolver_Default(t *testing.T) {
	s := New()
	res, err := s.Solve(context.Background(), Request{Verify: true})
	require.NoError(t, err)

	require.Equal(t, "T", res.Target)
	require.True(t, res.Verified)
	require.NotEqual(t, uuid.Nil, res.ID)
	require.Equal(t, "The equation solved for T is: T = (goal - producedQ + r1*t0)/(-a*dr + dr + r1)", res.Sentence())
	require.Equal(t, `T = \frac{goal - producedQ + r1 t0}{-a dr + dr + r1}`, res.LaTeX())
}

func TestSolver_Numeric(t *testing.T) {
	res, err := New().Solve(context.Background(), Request{Bindings: numericBindings, Verify: true})
	require.NoError(t, err)
	require.Equal(t, "36", res.Expression())
	require.Equal(t, "The equation solved for T is: T = 36", res.Sentence())
	require.Equal(t, "T = 36", res.LaTeX())
}

func TestSolver_CustomEquation(t *testing.T) {
	res, err := New().Solve(context.Background(), Request{
		Equation: "v = d/t",
		Target:   "t",
		Verify:   true,
	})
	require.NoError(t, err)
	require.Equal(t, "d/v", res.Expression())
}

func TestSolver_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr []error
	}{
		{
			name:    "degenerate coefficient",
			req:     Request{Bindings: map[string]string{"r1": "1", "dr": "-1", "a": "0"}},
			wantErr: []error{domain.ErrDegenerateEquation, symbolic.ErrNoUniqueSolution},
		},
		{
			name:    "syntax error",
			req:     Request{Equation: "x + = 1", Target: "x"},
			wantErr: []error{domain.ErrInvalidEquation, symbolic.ErrSyntax},
		},
		{
			name:    "bad binding",
			req:     Request{Bindings: map[string]string{"a": "1 +"}},
			wantErr: []error{domain.ErrInvalidEquation, symbolic.ErrSyntax},
		},
		{
			name:    "nonlinear",
			req:     Request{Equation: "x**2 = 4", Target: "x"},
			wantErr: []error{domain.ErrInvalidEquation, symbolic.ErrNonlinear},
		},
		{
			name:    "expression too large",
			req:     Request{Equation: "x = (y**64)**64", Target: "x"},
			wantErr: []error{domain.ErrInvalidEquation, symbolic.ErrExpressionTooLarge},
		},
		{
			name:    "target bound",
			req:     Request{Bindings: map[string]string{"T": "1"}},
			wantErr: []error{domain.ErrInvalidEquation, symbolic.ErrTargetBound},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Solve(context.Background(), tt.req)
			require.Error(t, err)
			for _, want := range tt.wantErr {
				require.ErrorIs(t, err, want)
			}
		})
	}
}

func TestSolver_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Solve(ctx, Request{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSolver_IDFailure(t *testing.T) {
	s := New()
	s.newID = func() (uuid.UUID, error) { return uuid.Nil, errors.New("no entropy") }
	_, err := s.Solve(context.Background(), Request{})
	require.ErrorContains(t, err, "no entropy")
}

func TestSolver_WarnsUnusedBindings(t *testing.T) {
	logger := &recordingLogger{}
	_, err := New(WithLogger(logger)).Solve(context.Background(), Request{
		Bindings: map[string]string{"goal": "10", "zeta": "3"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"bindings do not occur in equation"}, logger.warnings)
}
