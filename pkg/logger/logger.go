// Package logger owns the process-wide slog instance and the
// request-scoped logger carried through context. Every log line is tagged
// with the service name so aggregated streams stay attributable.
package logger

import (
	"log/slog"
	"os"
)

const serviceName = "fiscal-tracker"

var defaultLogger *slog.Logger

// Init configures the process-wide logger for the given environment.
// Production and staging emit JSON at info level for log shippers;
// anything else gets human-readable text at debug level.
func Init(env string) {
	var handler slog.Handler

	switch env {
	case "production", "staging":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}

	defaultLogger = slog.New(handler).With("service", serviceName)
	slog.SetDefault(defaultLogger)
}

// LoggerWrapper returns the configured logger, lazily initializing a
// development one so callers never get nil.
func LoggerWrapper() *slog.Logger {
	if defaultLogger == nil {
		Init("development")
	}
	return defaultLogger
}
