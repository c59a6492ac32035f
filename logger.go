package sparsego

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with kernel-specific helpers.
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

// WithWorkers adds a worker-count field to the logger.
func (l *Logger) WithWorkers(workers int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", workers),
	}
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogSample logs a Gaussian sampling operation.
func (l *Logger) LogSample(rows, dim int, duration time.Duration) {
	l.Debug("sample completed",
		"rows", rows,
		"dimension", dim,
		"duration", duration,
	)
}

// LogUnique logs a deduplication operation.
func (l *Logger) LogUnique(in, distinct int, duration time.Duration) {
	l.Debug("unique completed",
		"input", in,
		"distinct", distinct,
		"duration", duration,
	)
}

// LogCoalesce logs a coalescing operation with its phase timings.
func (l *Logger) LogCoalesce(algorithm string, entries, segments int, sortPhase, reducePhase time.Duration) {
	l.Debug("coalesce completed",
		"algorithm", algorithm,
		"entries", entries,
		"segments", segments,
		"sort_phase", sortPhase,
		"reduce_phase", reducePhase,
	)
}
