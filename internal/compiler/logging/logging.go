// Package logging wraps log/slog for orchestration-level structured logs —
// stage timings, cache hits, file loads — kept separate from the localized
// user-facing diagnostic and info channel in package localization, which
// speaks to the DSL author rather than to an operator reading process logs.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New builds a leveled logger writing JSON lines to w (os.Stderr if nil).
// debug enables slog.LevelDebug; otherwise the floor is slog.LevelInfo.
func New(w io.Writer, debug bool) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// Discard returns a logger that drops everything, for callers (tests,
// library embedders) that don't want orchestration logs on stderr.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
