package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bft-labs/eqsolve/internal/domain"
	"github.com/bft-labs/eqsolve/pkg/symbolic"
)

var scheduleStart = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func scheduleBindingsWith(overrides map[string]string) map[string]string {
	out := map[string]string{}
	for k, v := range numericBindings {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func TestSolver_Schedule(t *testing.T) {
	sched, err := New().Schedule(context.Background(), ScheduleRequest{
		Bindings: numericBindings,
		Start:    scheduleStart,
		Location: "UTC",
	})
	require.NoError(t, err)

	require.Equal(t, "36", sched.WithSwitch.Expression())
	require.Equal(t, "45", sched.WithoutSwitch.Expression())
	require.Equal(t, 36*time.Hour, sched.Duration)
	require.Equal(t, 45*time.Hour, sched.DurationWithoutSwitch)
	require.Equal(t, sched.WithSwitch.ID, sched.ID)

	require.True(t, sched.SwitchAt.Equal(scheduleStart.Add(18*time.Hour)))
	require.True(t, sched.FinishWithSwitch.Equal(scheduleStart.Add(36*time.Hour)))
	require.True(t, sched.FinishWithoutSwitch.Equal(scheduleStart.Add(45*time.Hour)))
	require.Equal(t, scheduleStart.Add(36*time.Hour).Unix(), sched.FinishWithSwitch.Unix())

	require.Equal(t, []string{
		"The equation solved for T is: T = 36",
		"Switch at:             2024-03-01T18:00:00Z (1709316000)",
		"Finish with switch:    2024-03-02T12:00:00Z (1709380800)",
		"Finish without switch: 2024-03-02T21:00:00Z (1709413200)",
	}, sched.Lines())
}

func TestSolver_ScheduleElapsed(t *testing.T) {
	bindings := scheduleBindingsWith(nil)
	delete(bindings, "t0")

	sched, err := New().Schedule(context.Background(), ScheduleRequest{
		Bindings: bindings,
		Elapsed:  5 * time.Hour,
		Start:    scheduleStart,
	})
	require.NoError(t, err)
	require.Equal(t, 36*time.Hour, sched.Duration)

	// 5400s is 3/2 hours: (100 - 20 + 2*3/2)/(2 + 1/2)
	sched, err = New().Schedule(context.Background(), ScheduleRequest{
		Bindings: bindings,
		Elapsed:  5400 * time.Second,
		Start:    scheduleStart,
	})
	require.NoError(t, err)
	require.Equal(t, "166/5", sched.WithSwitch.Expression())
	require.Equal(t, 33*time.Hour+12*time.Minute, sched.Duration)
}

func TestSolver_ScheduleLocation(t *testing.T) {
	sched, err := New().Schedule(context.Background(), ScheduleRequest{
		Bindings: numericBindings,
		Start:    scheduleStart,
		Location: "Europe/Berlin",
	})
	require.NoError(t, err)
	require.Equal(t, "Europe/Berlin", sched.Start.Location().String())
	require.Equal(t, "2024-03-01T19:00:00+01:00", sched.SwitchAt.Format(time.RFC3339))
	require.True(t, sched.SwitchAt.Equal(scheduleStart.Add(18*time.Hour)))
}

func TestSolver_ScheduleErrors(t *testing.T) {
	tests := []struct {
		name     string
		req      ScheduleRequest
		err      error
		contains string
	}{
		{
			name: "zero denominator",
			req: ScheduleRequest{
				Bindings: scheduleBindingsWith(map[string]string{"r1": "1", "dr": "-1", "a": "0"}),
			},
			err:      domain.ErrDegenerateEquation,
			contains: "schedule with switch",
		},
		{
			name: "zero initial rate",
			req: ScheduleRequest{
				Bindings: scheduleBindingsWith(map[string]string{"r1": "0"}),
			},
			err:      domain.ErrDegenerateEquation,
			contains: "schedule without switch",
		},
		{
			name: "unknown timezone",
			req: ScheduleRequest{
				Bindings: numericBindings,
				Location: "Mars/Olympus_Mons",
			},
			err:      domain.ErrInvalidSchedule,
			contains: "Mars/Olympus_Mons",
		},
		{
			name: "missing parameters",
			req: ScheduleRequest{
				Bindings: map[string]string{"goal": "100", "r1": "2"},
			},
			err:      domain.ErrInvalidSchedule,
			contains: "missing a, dr, producedQ",
		},
		{
			name: "t0 and elapsed",
			req: ScheduleRequest{
				Bindings: numericBindings,
				Elapsed:  time.Hour,
			},
			err:      domain.ErrInvalidSchedule,
			contains: "both set",
		},
		{
			name: "symbolic duration",
			req: ScheduleRequest{
				Bindings: scheduleBindingsWith(map[string]string{"goal": "g + 100"}),
			},
			err:      domain.ErrInvalidSchedule,
			contains: "not a number",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().Schedule(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.err)
			require.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestSolver_ScheduleDegenerateIsNoUniqueSolution(t *testing.T) {
	_, err := New().Schedule(context.Background(), ScheduleRequest{
		Bindings: scheduleBindingsWith(map[string]string{"r1": "0", "dr": "0"}),
	})
	require.ErrorIs(t, err, symbolic.ErrNoUniqueSolution)
}

func TestSolver_ScheduleCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Schedule(ctx, ScheduleRequest{Bindings: numericBindings})
	require.ErrorIs(t, err, context.Canceled)
}
