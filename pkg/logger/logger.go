// Package logger provides the slog loggers used by the client.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// New creates a text logger on stderr. Debug enables request/response tracing.
func New(debug bool) *slog.Logger {
	return NewWithWriter(os.Stderr, debug)
}

// NewWithWriter creates a text logger writing to w.
func NewWithWriter(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelError + 1,
	}))
}

// Truncate shortens a body for logging, the way large base64 payloads
// would otherwise flood the output.
func Truncate(body []byte, limit int) string {
	if len(body) > limit {
		return fmt.Sprintf("[%d bytes - too large to log]", len(body))
	}
	return string(body)
}
