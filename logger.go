package stgkit

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// Logger wraps slog.Logger with stgkit-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

var defaultLogger atomic.Pointer[Logger]

// DefaultLogger returns the logger used by arenas and tables that were not
// given one explicitly. It discards everything until SetDefaultLogger is called.
func DefaultLogger() *Logger {
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	return noop
}

var noop = NoopLogger()

// SetDefaultLogger replaces the default logger. Passing nil restores the
// discarding logger.
func SetDefaultLogger(l *Logger) {
	defaultLogger.Store(l)
}

// WithName adds the diagnostic label of an arena or table.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// WithComponent adds a component field ("stg", "hashtab", ...).
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", component),
	}
}

// LogGrow logs an arena or table resize.
func (l *Logger) LogGrow(ctx context.Context, oldSize, newSize, length int) {
	l.DebugContext(ctx, "grow",
		"old_size", oldSize,
		"new_size", newSize,
		"len", length,
	)
}

// LogFatal logs a contract violation right before it is handed to the fatal
// handler.
func (l *Logger) LogFatal(err *FatalError) {
	l.Error("fatal",
		"op", err.Op,
		"name", err.Name,
		"error", err,
	)
}
