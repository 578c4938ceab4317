package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name   string
		level  string
		enable slog.Level
	}{
		{"debug level", "debug", slog.LevelDebug},
		{"warn level", "warn", slog.LevelWarn},
		{"error level", "error", slog.LevelError},
		{"mixed case", "ERROR", slog.LevelError},
		{"default info", "", slog.LevelInfo},
	}

	ctx := context.Background()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := New(tt.level)
			if !logger.Enabled(ctx, tt.enable) {
				t.Fatalf("expected level %s to be enabled", tt.enable)
			}
		})
	}
}

func TestDefaultLogger(t *testing.T) {
	logger := Default()

	ctx := context.Background()
	if !logger.Enabled(ctx, slog.LevelInfo) {
		t.Error("Default() should enable info level")
	}
	if logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("Default() should not enable debug level")
	}
	if logger.Logger == nil {
		t.Fatal("Default() returned Logger with nil slog.Logger")
	}
}

func TestInfoBelowWarnIsDropped(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("warn", &buf)

	logger.Info("should not appear")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}

	logger.Warn("should appear")
	if buf.Len() == 0 {
		t.Fatal("expected warn output")
	}
}

func TestWithAttachesAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", &buf).With("component", "bookings")

	logger.Info("hello")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if record["component"] != "bookings" {
		t.Fatalf("expected component attribute, got %v", record)
	}
}

func TestComponentTagsRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter("info", &buf).Component("payments")

	logger.Info("recorded")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if record["component"] != "payments" {
		t.Fatalf("expected payments component, got %v", record)
	}
}
