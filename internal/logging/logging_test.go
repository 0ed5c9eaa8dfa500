package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewFileLoggerCreatesParentAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ui.log")

	logger, closer, err := NewFileLogger(path, Info)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	logger.Info("session loaded", F("session", "ses_1"), F("parts", 12))
	logger.Debug("dropped", F("ignored", true))
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "msg=\"session loaded\"") {
		t.Fatalf("missing message in log output: %q", out)
	}
	if !strings.Contains(out, "session=ses_1") || !strings.Contains(out, "parts=12") {
		t.Fatalf("missing fields in log output: %q", out)
	}
	if strings.Contains(out, "dropped") {
		t.Fatalf("debug line should be filtered at info level: %q", out)
	}
}

func TestLoggerWithAddsContextFields(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	logger := New(&buf, Debug).With(F("screen", "treemap"))
	logger.Debug("selection moved", F("leaf", "3-1"))

	out := buf.String()
	if !strings.Contains(out, "screen=treemap") || !strings.Contains(out, "leaf=3-1") {
		t.Fatalf("unexpected log output: %q", out)
	}
	if !strings.HasPrefix(out, "ts=") {
		t.Fatalf("expected ts prefix, got %q", out)
	}
}
