package solver

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"
	_ "time/tzdata" // LoadLocation on hosts without a zoneinfo database

	"github.com/gofrs/uuid"

	"github.com/bft-labs/eqsolve/internal/domain"
	"github.com/bft-labs/eqsolve/pkg/log"
	"github.com/bft-labs/eqsolve/pkg/symbolic"
)

// scheduleParams must be bound to numbers for a schedule. t0 may come from
// ScheduleRequest.Elapsed instead.
var scheduleParams = []string{"a", "dr", "goal", "producedQ", "r1", "t0"}

// ScheduleRequest places the production equation on the calendar. Rates are
// per hour and t0 is in hours.
type ScheduleRequest struct {
	// Bindings gives goal, producedQ, r1, dr, a and optionally t0.
	Bindings map[string]string

	// Elapsed is how long the run has gone since Start. It binds t0 when
	// Bindings does not.
	Elapsed time.Duration

	// Start is when the run began.
	Start time.Time

	// Location is the IANA timezone the times are reported in. Empty is UTC.
	Location string
}

// Schedule is a production run with its rate switch placed on the calendar.
type Schedule struct {
	ID uuid.UUID

	// WithSwitch solves for T as configured; WithoutSwitch solves with dr = 0.
	WithSwitch    *Result
	WithoutSwitch *Result

	Duration              time.Duration
	DurationWithoutSwitch time.Duration

	Start               time.Time
	SwitchAt            time.Time
	FinishWithSwitch    time.Time
	FinishWithoutSwitch time.Time
}

// Schedule solves the production equation for T twice, as given and with
// dr = 0, then derives the switch time Start + a*T, the finish time
// Start + T and the finish time without the switch. A vanishing r1 + dr*(1 - a)
// or a vanishing r1 is domain.ErrDegenerateEquation.
func (s *Solver) Schedule(ctx context.Context, req ScheduleRequest) (*Schedule, error) {
	loc, err := time.LoadLocation(req.Location)
	if err != nil {
		return nil, fmt.Errorf("%w: load timezone %s: %w", domain.ErrInvalidSchedule, req.Location, err)
	}
	bindings, err := scheduleBindings(req)
	if err != nil {
		return nil, err
	}
	env, err := symbolic.ParseBindings(map[string]string{"a": bindings["a"]})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidSchedule, err)
	}

	withSwitch, err := s.Solve(ctx, Request{Bindings: bindings, Verify: true})
	if err != nil {
		return nil, fmt.Errorf("schedule with switch: %w", err)
	}
	noSwitch := make(map[string]string, len(bindings))
	for k, v := range bindings {
		noSwitch[k] = v
	}
	noSwitch["dr"] = "0"
	withoutSwitch, err := s.Solve(ctx, Request{Bindings: noSwitch, Verify: true})
	if err != nil {
		return nil, fmt.Errorf("schedule without switch: %w", err)
	}

	total, err := hours(withSwitch.Value)
	if err != nil {
		return nil, err
	}
	untilSwitch, err := hours(env["a"].Mul(withSwitch.Value))
	if err != nil {
		return nil, err
	}
	plain, err := hours(withoutSwitch.Value)
	if err != nil {
		return nil, err
	}

	start := req.Start.In(loc)
	sched := &Schedule{
		ID:                    withSwitch.ID,
		WithSwitch:            withSwitch,
		WithoutSwitch:         withoutSwitch,
		Duration:              total,
		DurationWithoutSwitch: plain,
		Start:                 start,
		SwitchAt:              start.Add(untilSwitch),
		FinishWithSwitch:      start.Add(total),
		FinishWithoutSwitch:   start.Add(plain),
	}

	s.logger.Info("scheduled",
		log.String("solve_id", sched.ID.String()),
		log.String("location", loc.String()),
		log.Duration("duration", total),
		log.Duration("duration_without_switch", plain),
	)
	return sched, nil
}

// Lines returns the text report: the solved equation, then one line per time
// with its Unix timestamp.
func (s *Schedule) Lines() []string {
	row := func(label string, t time.Time) string {
		return fmt.Sprintf("%-22s %s (%d)", label+":", t.Format(time.RFC3339), t.Unix())
	}
	return []string{
		s.WithSwitch.Sentence(),
		row("Switch at", s.SwitchAt),
		row("Finish with switch", s.FinishWithSwitch),
		row("Finish without switch", s.FinishWithoutSwitch),
	}
}

func scheduleBindings(req ScheduleRequest) (map[string]string, error) {
	out := make(map[string]string, len(req.Bindings)+1)
	for k, v := range req.Bindings {
		out[k] = v
	}
	if _, ok := out["t0"]; ok && req.Elapsed != 0 {
		return nil, fmt.Errorf("%w: t0 and elapsed are both set", domain.ErrInvalidSchedule)
	}
	if _, ok := out["t0"]; !ok {
		out["t0"] = big.NewRat(int64(req.Elapsed), int64(time.Hour)).RatString()
	}

	var missing []string
	for _, name := range scheduleParams {
		if strings.TrimSpace(out[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", domain.ErrInvalidSchedule, strings.Join(missing, ", "))
	}
	return out, nil
}

// hours converts a constant number of hours to a Duration, truncating to
// the nanosecond.
func hours(f symbolic.Fraction) (time.Duration, error) {
	r, ok := f.Rat()
	if !ok {
		return 0, fmt.Errorf("%w: %s is not a number of hours", domain.ErrInvalidSchedule, f)
	}
	ns := new(big.Rat).Mul(r, new(big.Rat).SetInt64(int64(time.Hour)))
	q := new(big.Int).Quo(ns.Num(), ns.Denom())
	if !q.IsInt64() {
		return 0, fmt.Errorf("%w: %s hours is out of range", domain.ErrInvalidSchedule, f)
	}
	return time.Duration(q.Int64()), nil
}
