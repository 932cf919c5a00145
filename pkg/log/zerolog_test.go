package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestZerologAdapterFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologAdapter(&buf, zerolog.DebugLevel)

	l.Info("step",
		String("game", "pong"),
		Int("n", 3),
		Uint64("step", 7),
		Float64("reward", 0.5),
		Bool("done", true),
		Stringer("took", time.Second),
		Err(errors.New("boom")),
	)

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	m := lines[0]
	if m["message"] != "step" || m["level"] != "info" {
		t.Errorf("unexpected envelope: %v", m)
	}
	if m["game"] != "pong" || m["n"] != float64(3) || m["step"] != float64(7) {
		t.Errorf("unexpected fields: %v", m)
	}
	if m["done"] != true || m["error"] != "boom" || m["took"] != "1s" {
		t.Errorf("unexpected fields: %v", m)
	}
}

func TestZerologAdapterLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologAdapter(&buf, zerolog.WarnLevel)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")

	lines := decodeLines(t, &buf)
	if len(lines) != 1 || lines[0]["message"] != "shown" {
		t.Fatalf("expected only the warn line, got %v", lines)
	}
}

func TestZerologAdapterWith(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologAdapter(&buf, zerolog.InfoLevel).With(String("run", "abc"))

	l.Error("failed", Int("step", 2))

	lines := decodeLines(t, &buf)
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0]["run"] != "abc" || lines[0]["step"] != float64(2) {
		t.Errorf("child context missing: %v", lines[0])
	}
}

func TestNoopLogger(t *testing.T) {
	var l Logger = NewNoopLogger()
	l = l.With(String("k", "v"))
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
}

func TestFieldHelpers(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		want  any
	}{
		{"string", String("k", "v"), "v"},
		{"int", Int("k", 3), 3},
		{"int64", Int64("k", -4), int64(-4)},
		{"uint64", Uint64("k", 5), uint64(5)},
		{"float64", Float64("k", 0.25), 0.25},
		{"bool", Bool("k", true), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.field.Key != "k" || tt.field.Value != tt.want {
				t.Errorf("got %+v, want value %v", tt.field, tt.want)
			}
		})
	}
}
