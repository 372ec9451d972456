package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLogLevel(tt.input); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestSetupLoggerConsoleOnly(t *testing.T) {
	logger, rotator := SetupLogger(Options{Level: slog.LevelWarn})

	if logger == nil {
		t.Fatal("Expected logger")
	}
	if rotator != nil {
		t.Error("Expected no rotator without a directory")
	}
	if logger.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Expected info to be disabled at warn level")
	}
}

func TestSetupLoggerWithFile(t *testing.T) {
	dir := t.TempDir()
	logger, rotator := SetupLogger(Options{Dir: dir, Level: slog.LevelInfo, RetentionWeeks: 2, MaxFileSize: 1 << 20})
	if rotator == nil {
		t.Fatal("Expected rotator with a directory")
	}
	defer rotator.Close()

	logger.With("component", "test").Info("catalog loaded", "drugs", 5)

	matches, err := filepath.Glob(filepath.Join(dir, "app-*.log"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("Expected one log file, got %v (%v)", matches, err)
	}
	content, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"msg":"catalog loaded"`, `"drugs":5`, `"component":"test"`} {
		if !strings.Contains(string(content), want) {
			t.Errorf("Expected %s in JSON log, got %s", want, string(content))
		}
	}
}

func TestInitLoggerSetsDefault(t *testing.T) {
	previous := DefaultLoggingService
	defer func() { DefaultLoggingService = previous }()

	InitLoggerWithOptions(Options{Level: slog.LevelDebug})

	if GetLogger() != DefaultLoggingService.Logger {
		t.Error("Expected GetLogger to return the initialized logger")
	}
	if err := Close(); err != nil {
		t.Errorf("Expected nil error closing console logger, got %v", err)
	}
}

func TestGetLoggerFallback(t *testing.T) {
	previous := DefaultLoggingService
	defer func() { DefaultLoggingService = previous }()

	DefaultLoggingService = nil
	if GetLogger() == nil {
		t.Error("Expected fallback logger")
	}
	// Package helpers must not panic before initialization
	Info("info")
	Warn("warn")
	Error("error")
	Debug("debug")
}
