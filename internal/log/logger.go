// Package log configures structured logging for the service. All packages
// log through log/slog; this package owns handler setup and the HTTP
// request logging middleware.
package log

import (
	"log/slog"
	"os"
)

// Setup installs a text handler on stdout at the given level as the
// process-wide default logger and returns it. Unknown levels fall back
// to info.
func Setup(level string) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
	slog.SetDefault(logger)
	return logger
}

// ParseLevel maps a config level string to a slog.Level.
func ParseLevel(level string) slog.Level {
	switch level {
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
