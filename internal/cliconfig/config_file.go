package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config in TOML form. Binding values may be TOML numbers
// or strings holding an expression.
type FileConfig struct {
	Equation string         `toml:"equation"`
	Target   string         `toml:"target"`
	Format   string         `toml:"format"`
	LogLevel string         `toml:"log_level"`
	Verify   *bool          `toml:"verify"`
	Watch    *bool          `toml:"watch"`
	NoColor  *bool          `toml:"no_color"`
	Bindings map[string]any `toml:"bindings"`

	// Elapsed is a Go duration string such as "90m".
	Start    string `toml:"start"`
	Timezone string `toml:"timezone"`
	Elapsed  string `toml:"elapsed"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.eqsolve/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".eqsolve", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("equation", fc.Equation, &cfg.Equation)
	s.setString("for", fc.Target, &cfg.Target)
	s.setString("format", fc.Format, &cfg.Format)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	s.setBool("verify", fc.Verify, &cfg.Verify)
	s.setBool("watch", fc.Watch, &cfg.Watch)
	s.setBool("no-color", fc.NoColor, &cfg.NoColor)

	s.setString("start", fc.Start, &cfg.Start)
	s.setString("tz", fc.Timezone, &cfg.Timezone)
	if fc.Elapsed != "" {
		d, err := time.ParseDuration(fc.Elapsed)
		if err != nil {
			return fmt.Errorf("elapsed: %w", err)
		}
		s.setDuration("elapsed", &d, &cfg.Elapsed)
	}

	bindings, err := fileBindings(fc.Bindings)
	if err != nil {
		return err
	}
	MergeBindings(&cfg.Bindings, bindings)
	return nil
}

func fileBindings(raw map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(raw))
	for name, v := range raw {
		switch v := v.(type) {
		case string:
			out[name] = v
		case int64:
			out[name] = strconv.FormatInt(v, 10)
		case float64:
			out[name] = strconv.FormatFloat(v, 'g', -1, 64)
		default:
			return nil, fmt.Errorf("binding %s: unsupported TOML value %v (%T)", name, v, v)
		}
	}
	return out, nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
