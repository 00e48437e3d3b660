package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNewLogger_JSONWithContext(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(Config{Level: "info", Format: "json", Output: &buf})
	log = WithExecutable(log, "palcheck")
	log = WithLambda(log, "fn", "1", "req-1")

	log.Debug("hidden")
	log.Info("checked", slog.Bool("palindrome", true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 log line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["executable"] != "palcheck" {
		t.Errorf("Expected executable field, got %v", entry["executable"])
	}
	lambda, ok := entry["lambda"].(map[string]any)
	if !ok || lambda["request_id"] != "req-1" {
		t.Errorf("Expected lambda group with request_id, got %v", entry["lambda"])
	}
	if entry["palindrome"] != true {
		t.Errorf("Expected palindrome attribute, got %v", entry["palindrome"])
	}
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	log := WithService(NewLogger(Config{Level: "debug", Format: "text", Output: &buf}), "api")

	log.Debug("hello")

	if !strings.Contains(buf.String(), "service=api") || !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("Unexpected text output: %q", buf.String())
	}
}

func TestCLIConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg := CLIConfig()
	if cfg.Level != "warn" || cfg.Format != "text" || cfg.Output == nil {
		t.Errorf("Unexpected CLI config: %+v", cfg)
	}
}

func TestDefaultConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("LOG_ADD_SOURCE", "true")

	cfg := DefaultConfig()
	if cfg.Level != "debug" || cfg.Format != "text" || !cfg.AddSource {
		t.Errorf("Unexpected config: %+v", cfg)
	}
}
