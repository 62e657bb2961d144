package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestSetupWithWriterFiltersByLevel(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	logger := SetupWithWriter(&buf, slog.LevelWarn)

	logger.Info("quiet")
	logger.Warn("loud", "group_id", "g-1")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(out, "loud") || !strings.Contains(out, "g-1") {
		t.Errorf("warn message missing from output: %q", out)
	}
	if slog.Default() != logger {
		t.Error("Setup did not install the default logger")
	}
}
