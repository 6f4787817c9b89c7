package cliconfig

import (
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/bft-labs/eqsolve/internal/domain"
	"github.com/bft-labs/eqsolve/internal/solver"
	"github.com/bft-labs/eqsolve/pkg/symbolic"
)

// Output formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatLaTeX = "latex"
)

// DefaultLogLevel keeps stderr quiet unless something needs attention.
const DefaultLogLevel = "warn"

// StartNow is the Start value meaning the moment eqsolve runs.
const StartNow = "now"

// Config holds CLI configuration for eqsolve.
type Config struct {
	// Equation is empty for the built-in production equation.
	Equation string
	Target   string
	Bindings map[string]string

	Format   string
	Verify   bool
	Watch    bool
	NoColor  bool
	LogLevel string

	// Start switches to schedule mode: an RFC 3339 time or StartNow.
	Start    string
	Timezone string
	Elapsed  time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Target:   solver.DefaultTarget,
		Bindings: map[string]string{},
		Format:   FormatText,
		LogLevel: DefaultLogLevel,
	}
}

// Request converts the configuration into a solver request.
func (c Config) Request() solver.Request {
	return solver.Request{
		Equation: c.Equation,
		Target:   c.Target,
		Bindings: c.Bindings,
		Verify:   c.Verify,
	}
}

// Scheduled reports whether the configuration asks for a production schedule.
func (c Config) Scheduled() bool { return c.Start != "" }

// ScheduleRequest converts the configuration into a schedule request. now
// stands in for StartNow.
func (c Config) ScheduleRequest(now time.Time) (solver.ScheduleRequest, error) {
	start, err := parseStart(c.Start, now)
	if err != nil {
		return solver.ScheduleRequest{}, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	return solver.ScheduleRequest{
		Bindings: c.Bindings,
		Elapsed:  c.Elapsed,
		Start:    start,
		Location: c.Timezone,
	}, nil
}

func parseStart(s string, now time.Time) (time.Time, error) {
	if strings.EqualFold(s, StartNow) {
		return now, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("start: %w", err)
	}
	return t, nil
}

// Validate checks the configuration for errors and sets derived defaults.
// Every problem is reported, not just the first.
func (c *Config) Validate() error {
	if c.Target == "" {
		c.Target = solver.DefaultTarget
	}
	if c.Format == "" {
		c.Format = FormatText
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	c.Format = strings.ToLower(c.Format)

	var result *multierror.Error
	if !symbolic.ValidSymbol(c.Target) {
		result = multierror.Append(result, fmt.Errorf("target %q is not a symbol name", c.Target))
	}
	switch c.Format {
	case FormatText, FormatJSON, FormatLaTeX:
	default:
		result = multierror.Append(result, fmt.Errorf("unknown format %q (want %s, %s or %s)", c.Format, FormatText, FormatJSON, FormatLaTeX))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		result = multierror.Append(result, fmt.Errorf("log level: %w", err))
	}
	if c.Equation != "" {
		if _, err := symbolic.ParseEquation(c.Equation); err != nil {
			result = multierror.Append(result, fmt.Errorf("equation: %w", err))
		}
	}
	if _, ok := c.Bindings[c.Target]; ok {
		result = multierror.Append(result, fmt.Errorf("target %s cannot also be bound", c.Target))
	}
	if _, err := symbolic.ParseBindings(c.Bindings); err != nil {
		result = multierror.Append(result, err)
	}
	if c.Elapsed < 0 {
		result = multierror.Append(result, fmt.Errorf("elapsed %s is negative", c.Elapsed))
	}
	if c.Scheduled() {
		if _, err := parseStart(c.Start, time.Now()); err != nil {
			result = multierror.Append(result, err)
		}
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			result = multierror.Append(result, fmt.Errorf("timezone: %w", err))
		}
		if c.Equation != "" || c.Target != solver.DefaultTarget {
			result = multierror.Append(result, fmt.Errorf("a schedule needs the production equation solved for %s", solver.DefaultTarget))
		}
	} else if c.Elapsed != 0 || c.Timezone != "" {
		result = multierror.Append(result, fmt.Errorf("elapsed and timezone need a start time"))
	}

	if err := result.ErrorOrNil(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setDuration sets a duration from a pointer if not nil and flag not changed.
func (s *configSetter) setDuration(flag string, value *time.Duration, dst *time.Duration) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// MergeBindings copies src into *dst key by key, later layers winning.
// Bindings are merged rather than replaced, so the changed map does not apply.
func MergeBindings(dst *map[string]string, src map[string]string) {
	if len(src) == 0 {
		return
	}
	if *dst == nil {
		*dst = make(map[string]string, len(src))
	}
	for k, v := range src {
		(*dst)[k] = v
	}
}
