package pvec

import (
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger with pvec-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSession adds a session field to the logger.
func (l *Logger) WithSession(id uuid.UUID) *Logger {
	return &Logger{
		Logger: l.Logger.With("session", id.String()),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogTransient logs the creation of a transient over count elements.
func (l *Logger) LogTransient(count int) {
	l.WithCount(count).Debug("transient opened")
}

// LogFreeze logs a transient being frozen into a vector of count elements.
func (l *Logger) LogFreeze(count, cloned int, elapsed time.Duration) {
	l.WithCount(count).Debug("transient frozen",
		"cloned_nodes", cloned,
		"elapsed", elapsed,
	)
}

// LogViolation logs a rejected transient operation.
func (l *Logger) LogViolation(op string, err error) {
	l.Warn("transient ownership violation",
		"op", op,
		"error", err,
	)
}
