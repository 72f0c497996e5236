package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewRespectsDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, false)
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug line leaked at info level: %q", buf.String())
	}
	logger.Info("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected info line in output, got %q", buf.String())
	}
}

func TestNewDebugEnabled(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, true)
	logger.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected debug line in output, got %q", buf.String())
	}
}

func TestDiscardDropsEverything(t *testing.T) {
	logger := Discard()
	logger.Error("should vanish", slog.String("k", "v"))
}
