package cliconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig holds the EQSOLVE_* environment variables. Booleans are pointers
// so an unset variable is distinguishable from false; values go through
// strconv.ParseBool and anything it rejects is a parse error.
type EnvConfig struct {
	Equation string            `env:"EQSOLVE_EQUATION"`
	Target   string            `env:"EQSOLVE_TARGET"`
	Format   string            `env:"EQSOLVE_FORMAT"`
	LogLevel string            `env:"EQSOLVE_LOG_LEVEL"`
	Verify   *bool             `env:"EQSOLVE_VERIFY"`
	Watch    *bool             `env:"EQSOLVE_WATCH"`
	NoColor  *bool             `env:"EQSOLVE_NO_COLOR"`
	Start    string            `env:"EQSOLVE_START"`
	Timezone string            `env:"EQSOLVE_TZ"`
	Elapsed  *time.Duration    `env:"EQSOLVE_ELAPSED"`
	Set      map[string]string `env:"EQSOLVE_SET" envSeparator:"," envKeyValSeparator:"="`
}

// LoadEnvConfig reads the EQSOLVE_* variables from the process environment.
func LoadEnvConfig() (EnvConfig, error) {
	var ec EnvConfig
	if err := env.Parse(&ec); err != nil {
		return ec, fmt.Errorf("parse env: %w", err)
	}
	return ec, nil
}

// ApplyEnvConfig applies configuration from environment variables (EQSOLVE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	ec, err := LoadEnvConfig()
	if err != nil {
		return err
	}
	s := newConfigSetter(changed)

	s.setString("equation", ec.Equation, &cfg.Equation)
	s.setString("for", ec.Target, &cfg.Target)
	s.setString("format", ec.Format, &cfg.Format)
	s.setString("log-level", ec.LogLevel, &cfg.LogLevel)

	s.setBool("verify", ec.Verify, &cfg.Verify)
	s.setBool("watch", ec.Watch, &cfg.Watch)
	s.setBool("no-color", ec.NoColor, &cfg.NoColor)

	s.setString("start", ec.Start, &cfg.Start)
	s.setString("tz", ec.Timezone, &cfg.Timezone)
	s.setDuration("elapsed", ec.Elapsed, &cfg.Elapsed)

	MergeBindings(&cfg.Bindings, ec.Set)
	return nil
}
