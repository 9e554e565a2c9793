package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, want %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"Info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"WARNING", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf, Prefix: "test"})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn %d", 1)
	logger.Error("error")

	output := buf.String()
	for _, absent := range []string{"[DEBUG]", "[INFO]"} {
		if strings.Contains(output, absent) {
			t.Errorf("output contains filtered level %s: %s", absent, output)
		}
	}
	for _, present := range []string{"[WARN] test: warn 1", "[ERROR] test: error"} {
		if !strings.Contains(output, present) {
			t.Errorf("output missing %q: %s", present, output)
		}
	}
}

func TestLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.WithComponent("session").WithFields(map[string]any{"b": 2, "a": "x"}).Info("hello")

	line := strings.TrimSpace(buf.String())
	if !strings.HasSuffix(line, "hello {a=x, b=2, component=session}") {
		t.Errorf("line = %q, want sorted fields", line)
	}
}

func TestLogger_DerivedShareSettings(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf})
	child := logger.WithComponent("script")

	child.Info("hidden")
	logger.SetLevel(LogLevelInfo)
	child.Info("shown")
	if got := buf.String(); strings.Contains(got, "hidden") || !strings.Contains(got, "shown") {
		t.Errorf("output = %q, want child to follow parent level", got)
	}

	logger.Disable()
	child.Error("muted")
	if strings.Contains(buf.String(), "muted") {
		t.Error("child logged while parent disabled")
	}
	logger.Enable()

	var other bytes.Buffer
	logger.SetOutput(&other)
	child.Info("moved")
	if !strings.Contains(other.String(), "moved") {
		t.Error("child did not follow SetOutput")
	}
}

func TestNullLogger(t *testing.T) {
	NullLogger.Debug("test")
	NullLogger.Info("test")
	NullLogger.WithField("k", 1).Warn("test")
	NullLogger.Error("test")
}

func TestGetSetLogger(t *testing.T) {
	logger := GetLogger()
	if logger == nil || GetLogger() != logger {
		t.Fatal("GetLogger() should return one instance")
	}

	custom := NewLogger(LoggerConfig{Output: &bytes.Buffer{}})
	SetLogger(custom)
	defer SetLogger(logger)
	if GetLogger() != custom {
		t.Error("GetLogger() did not return the logger passed to SetLogger")
	}
}

func TestDefaultLoggerConfig(t *testing.T) {
	cfg := DefaultLoggerConfig()
	if cfg.Level != LogLevelInfo || cfg.Output == nil || cfg.Prefix != "keyline" {
		t.Errorf("DefaultLoggerConfig() = %+v", cfg)
	}
}

func TestOpenLogOutput(t *testing.T) {
	w, closer, err := openLogOutput("", true)
	if err != nil || closer != nil || w == os.Stderr {
		t.Errorf("UI without log file = %v, %v, %v, want a discarding writer", w, closer, err)
	}
	if w, _, _ := openLogOutput("", false); w != os.Stderr {
		t.Error("line mode without log file should log to stderr")
	}

	path := filepath.Join(t.TempDir(), "keyline.log")
	w, closer, err = openLogOutput(path, true)
	if err != nil {
		t.Fatalf("openLogOutput(%s) error = %v", path, err)
	}
	NewLogger(LoggerConfig{Output: w}).Info("to file")
	closer.Close()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file = %q", data)
	}
}
