package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "Warn", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "unknown", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLoggerFileSink(t *testing.T) {
	tmp := t.TempDir()
	logger, err := New(Config{Level: "info", Dir: tmp, Filename: "test.log"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	logger.InfoTag("HTTP", "request handled: status=%d", 200)
	logger.Debug("should be filtered at info level")

	if err := logger.Close(); err != nil {
		t.Fatalf("close logger: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(tmp, "test.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "request handled: status=200") {
		t.Errorf("log file missing info entry: %s", content)
	}
	if strings.Contains(content, "should be filtered") {
		t.Errorf("debug entry should be filtered at info level: %s", content)
	}
}

func TestLoggerWithoutFileSink(t *testing.T) {
	logger, err := New(Config{Level: "debug"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer logger.Close()

	// No file sink configured; these only need to not panic.
	logger.Info("plain message")
	logger.WarnTag("Config", "tagged message: %s", "value")
	if logger.Slog() == nil {
		t.Error("Slog accessor should not return nil")
	}
}
