package tui

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// newDebugLogger returns a logger writing to path, or a discarding logger when path is
// empty or cannot be opened. The TUI owns the terminal, so nothing is logged to stderr.
func newDebugLogger(path string) (*slog.Logger, func() error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return discardLogger(), func() error { return nil }
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return discardLogger(), func() error { return nil }
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return discardLogger(), func() error { return nil }
	}
	h := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(h), f.Close
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
