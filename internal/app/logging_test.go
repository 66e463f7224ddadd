package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, LogLevelWarn)

	log.Debug("dropped")
	log.Info("dropped")
	log.Warn("kept: %d", 1)
	log.Error("kept: %d", 2)

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("messages below the level should be dropped: %q", out)
	}
	if !strings.Contains(out, "[WARN] kept: 1") || !strings.Contains(out, "[ERROR] kept: 2") {
		t.Errorf("expected warn and error lines, got %q", out)
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, LogLevelInfo).WithComponent("search").WithField("count", 3)

	log.Info("done")

	out := buf.String()
	if !strings.Contains(out, "component=search") || !strings.Contains(out, "count=3") {
		t.Errorf("expected fields in output, got %q", out)
	}
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, LogLevelError)

	log.Info("hidden")
	log.SetLevel(LogLevelDebug)
	log.Debug("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "visible") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNullLogger(t *testing.T) {
	// Must not panic despite having no output writer.
	NullLogger.Error("ignored")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"nonsense", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
