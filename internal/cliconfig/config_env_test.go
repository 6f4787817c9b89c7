package cliconfig

import (
	"testing"
	"time"
)

func TestApplyEnvConfig(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		changed  map[string]bool
		initial  Config
		expected Config
		wantErr  bool
	}{
		{
			name: "applies all valid env vars",
			envVars: map[string]string{
				"EQSOLVE_EQUATION":  "v = d/t",
				"EQSOLVE_TARGET":    "t",
				"EQSOLVE_FORMAT":    "json",
				"EQSOLVE_LOG_LEVEL": "debug",
				"EQSOLVE_VERIFY":    "true",
				"EQSOLVE_WATCH":     "1",
				"EQSOLVE_NO_COLOR":  "true",
			},
			changed: map[string]bool{},
			initial: Config{},
			expected: Config{
				Equation: "v = d/t",
				Target:   "t",
				Format:   "json",
				LogLevel: "debug",
				Verify:   true,
				Watch:    true,
				NoColor:  true,
			},
			wantErr: false,
		},
		{
			name: "respects changed flags",
			envVars: map[string]string{
				"EQSOLVE_TARGET": "x",
				"EQSOLVE_FORMAT": "latex",
			},
			changed: map[string]bool{"for": true},
			initial: Config{
				Target: "T",
			},
			expected: Config{
				Target: "T",
				Format: "latex",
			},
			wantErr: false,
		},
		{
			name: "handles bool 'false' as false",
			envVars: map[string]string{
				"EQSOLVE_VERIFY": "false",
			},
			changed:  map[string]bool{},
			initial:  Config{Verify: true},
			expected: Config{Verify: false},
			wantErr:  false,
		},
		{
			name: "accepts upper-case TRUE",
			envVars: map[string]string{
				"EQSOLVE_VERIFY": "TRUE",
				"EQSOLVE_WATCH":  "t",
			},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{Verify: true, Watch: true},
			wantErr:  false,
		},
		{
			name: "returns error for unrecognized bool",
			envVars: map[string]string{
				"EQSOLVE_VERIFY": "yes",
			},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{},
			wantErr:  true,
		},
		{
			name: "returns error for unrecognized no-color",
			envVars: map[string]string{
				"EQSOLVE_NO_COLOR": "on",
			},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{},
			wantErr:  true,
		},
		{
			name: "applies schedule settings",
			envVars: map[string]string{
				"EQSOLVE_START":   "now",
				"EQSOLVE_TZ":      "UTC",
				"EQSOLVE_ELAPSED": "1h30m",
			},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{Start: "now", Timezone: "UTC", Elapsed: 90 * time.Minute},
			wantErr:  false,
		},
		{
			name: "returns error for malformed elapsed",
			envVars: map[string]string{
				"EQSOLVE_ELAPSED": "5400",
			},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{},
			wantErr:  true,
		},
		{
			name: "returns error for malformed bindings",
			envVars: map[string]string{
				"EQSOLVE_SET": "goal",
			},
			changed:  map[string]bool{},
			initial:  Config{},
			expected: Config{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg := tt.initial
			err := ApplyEnvConfig(&cfg, tt.changed)

			if (err != nil) != tt.wantErr {
				t.Errorf("ApplyEnvConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}

			if cfg.Equation != tt.expected.Equation {
				t.Errorf("Equation = %v, want %v", cfg.Equation, tt.expected.Equation)
			}
			if cfg.Target != tt.expected.Target {
				t.Errorf("Target = %v, want %v", cfg.Target, tt.expected.Target)
			}
			if cfg.Format != tt.expected.Format {
				t.Errorf("Format = %v, want %v", cfg.Format, tt.expected.Format)
			}
			if cfg.LogLevel != tt.expected.LogLevel {
				t.Errorf("LogLevel = %v, want %v", cfg.LogLevel, tt.expected.LogLevel)
			}
			if cfg.Verify != tt.expected.Verify {
				t.Errorf("Verify = %v, want %v", cfg.Verify, tt.expected.Verify)
			}
			if cfg.Watch != tt.expected.Watch {
				t.Errorf("Watch = %v, want %v", cfg.Watch, tt.expected.Watch)
			}
			if cfg.NoColor != tt.expected.NoColor {
				t.Errorf("NoColor = %v, want %v", cfg.NoColor, tt.expected.NoColor)
			}
			if cfg.Start != tt.expected.Start {
				t.Errorf("Start = %v, want %v", cfg.Start, tt.expected.Start)
			}
			if cfg.Timezone != tt.expected.Timezone {
				t.Errorf("Timezone = %v, want %v", cfg.Timezone, tt.expected.Timezone)
			}
			if cfg.Elapsed != tt.expected.Elapsed {
				t.Errorf("Elapsed = %v, want %v", cfg.Elapsed, tt.expected.Elapsed)
			}
		})
	}
}

func TestApplyEnvConfig_Bindings(t *testing.T) {
	t.Setenv("EQSOLVE_SET", "goal=100,a=1/2,dr=-1")

	cfg := Config{Bindings: map[string]string{"goal": "10", "r1": "2"}}
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig() error = %v", err)
	}

	want := map[string]string{"goal": "100", "a": "1/2", "dr": "-1", "r1": "2"}
	if len(cfg.Bindings) != len(want) {
		t.Fatalf("Bindings = %v, want %v", cfg.Bindings, want)
	}
	for k, v := range want {
		if cfg.Bindings[k] != v {
			t.Errorf("Bindings[%s] = %q, want %q", k, cfg.Bindings[k], v)
		}
	}
}

func TestApplyEnvConfig_Unset(t *testing.T) {
	cfg := DefaultConfig()
	if err := ApplyEnvConfig(&cfg, map[string]bool{}); err != nil {
		t.Fatalf("ApplyEnvConfig() error = %v", err)
	}
	if cfg.Target != "T" || cfg.Format != FormatText || len(cfg.Bindings) != 0 {
		t.Errorf("ApplyEnvConfig() changed defaults: %+v", cfg)
	}
}
