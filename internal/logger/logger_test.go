package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("dropped at warn level")
	Warn("Test warning message", "habit", "read")

	data, err := os.ReadFile(LogPath(configDir))
	if err != nil {
		t.Fatalf("log file was not written: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "Test warning message") {
		t.Errorf("warning missing from log: %q", out)
	}
	if strings.Contains(out, "dropped at warn level") {
		t.Errorf("debug message written at warn level: %q", out)
	}
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{Debug: true, ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	Debug("Test debug message")

	data, err := os.ReadFile(LogPath(configDir))
	if err != nil {
		t.Fatalf("log file was not written: %v", err)
	}
	if !strings.Contains(string(data), "Test debug message") {
		t.Errorf("debug message missing in debug mode")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	saved := Logger
	Logger = nil
	defer func() { Logger = saved }()

	Debug("noop")
	Info("noop")
	Warn("noop")
	Error("noop")
	if Component("store") != nil {
		t.Error("Component() should be nil before Init")
	}
}
