// ABOUTME: Tests for the leveled logger
// ABOUTME: Validates level filtering, level parsing and output redirection

package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// Tests here share the package-level level and writer, so none run in
// parallel.

func capture(t *testing.T, l slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut := SetOutput(&buf)
	prevLevel := GetLevel()
	SetLevel(l)
	t.Cleanup(func() {
		SetOutput(prevOut)
		SetLevel(prevLevel)
	})
	return &buf
}

func TestLevelFiltering(t *testing.T) {
	tests := []struct {
		name  string
		level slog.Level
		want  []string
		skip  []string
	}{
		{name: "debug shows all", level: LevelDebug, want: []string{"[DEBUG] d 1", "[INFO] i 2", "[WARN] w 3", "[ERROR] e 4"}},
		{name: "warn hides debug and info", level: LevelWarn, want: []string{"[WARN] w 3", "[ERROR] e 4"}, skip: []string{"[DEBUG]", "[INFO]"}},
		{name: "error still emitted above error", level: LevelError + 4, want: []string{"[ERROR] e 4"}, skip: []string{"[WARN]"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, tt.level)
			Debug("d %d", 1)
			Info("i %d", 2)
			Warn("w %d", 3)
			Error("e %d", 4)

			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output %q missing %q", out, w)
				}
			}
			for _, s := range tt.skip {
				if strings.Contains(out, s) {
					t.Errorf("output %q contains %q", out, s)
				}
			}
		})
	}
}

func TestSetLevel(t *testing.T) {
	prev := GetLevel()
	defer SetLevel(prev)

	SetLevel(LevelDebug)
	if GetLevel() != LevelDebug {
		t.Errorf("expected LevelDebug, got %v", GetLevel())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "", want: LevelWarn},
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: "warn", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "loud", wantErr: true, want: LevelWarn},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetOutputNilDiscards(t *testing.T) {
	prev := SetOutput(nil)
	defer SetOutput(prev)
	Error("dropped")
}
