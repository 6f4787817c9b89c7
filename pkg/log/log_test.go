package log

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestZerologAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologAdapterWithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel))

	logger.Debug("hidden")
	logger.Info("solved", String("target", "T"), Int("values", 1), Bool("verified", true))
	logger.Error("failed", Err(errors.New("boom")))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug message written at info level: %s", out)
	}
	for _, want := range []string{`"target":"T"`, `"values":1`, `"verified":true`, `"error":"boom"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestZerologAdapter_With(t *testing.T) {
	var buf bytes.Buffer
	base := NewZerologAdapterWithLogger(zerolog.New(&buf))

	base.With(String("solve_id", "abc")).Warn("scoped")
	base.Warn("unscoped")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], `"solve_id":"abc"`) {
		t.Errorf("scoped line missing field: %s", lines[0])
	}
	if strings.Contains(lines[1], "solve_id") {
		t.Errorf("field leaked into parent logger: %s", lines[1])
	}
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NewNoopLogger()
	l.Info("ignored", Any("k", 1))
	if l.With(String("a", "b")) == nil {
		t.Error("With returned nil")
	}
}
