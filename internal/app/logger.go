package app

import (
	"io"
	"log/slog"
)

// newLogger builds the run's logger. It never touches the global logger, so
// several apps can run side by side in one test binary. Every record carries
// the run ID.
func newLogger(levelStr, formatStr string, outW io.Writer, runID string) *slog.Logger {
	level := slog.LevelInfo
	if levelStr != "" {
		// NewConfig has already rejected unknown names.
		_ = level.UnmarshalText([]byte(levelStr))
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch formatStr {
	case "json":
		handler = slog.NewJSONHandler(outW, opts)
	default:
		handler = slog.NewTextHandler(outW, opts)
	}
	return slog.New(handler).With("run_id", runID)
}
