// Package logging configures the structured logger shared by the CLI and the board.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "hall-debug.log"

// ParseLevel maps a config level name to a slog level. Unknown names mean info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger writing to w at level.
func New(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)}))
}

// Setup returns the application logger and a function releasing its resources.
//
// With debug enabled every event down to debug level is written as JSON lines to
// DebugLogPath in the current directory. Otherwise a text logger writes to stderr at level.
func Setup(level string, debug bool) (*slog.Logger, func(), error) {
	if !debug {
		return New(os.Stderr, level), func() {}, nil
	}

	f, err := os.Create(DebugLogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("creating debug log: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	logger.Debug("debug log started", "log_file", DebugLogPath)

	return logger, func() {
		logger.Debug("debug log closed")
		_ = f.Close()
	}, nil
}

// Discard returns a logger dropping every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
