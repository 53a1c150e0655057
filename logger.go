package kmeansvis

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with kmeansvis-specific context.
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

// nopHandler discards all records. Enabled returns false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(nopHandler{}),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithClumpiness adds a clumpiness field to the logger.
func (l *Logger) WithClumpiness(clumpiness float64) *Logger {
	return &Logger{
		Logger: l.Logger.With("clumpiness", clumpiness),
	}
}

// LogRegenerate logs a point cloud generation.
func (l *Logger) LogRegenerate(ctx context.Context, points, fallbacks int, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "regenerate failed",
			"error", err,
		)
	case fallbacks > 0:
		l.WarnContext(ctx, "regenerate completed with uniform fallbacks",
			"points", points,
			"fallbacks", fallbacks,
		)
	default:
		l.InfoContext(ctx, "regenerate completed",
			"points", points,
		)
	}
}

// LogSeed logs a centroid reseed.
func (l *Logger) LogSeed(ctx context.Context, k int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "seed failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "seed completed",
			"k", k,
		)
	}
}

// LogStep logs a completed step. next is the phase the following step runs.
func (l *Logger) LogStep(ctx context.Context, next string, iteration, reassigned int, shift float64) {
	l.DebugContext(ctx, "step completed",
		"next", next,
		"iteration", iteration,
		"reassigned", reassigned,
		"shift", shift,
	)
}

// LogRejected logs a call that was refused without touching state.
func (l *Logger) LogRejected(ctx context.Context, op string, err error) {
	l.WarnContext(ctx, "call rejected",
		"op", op,
		"error", err,
	)
}

// LogThrottled logs a slider drag deferred by the reseed limit.
func (l *Logger) LogThrottled(ctx context.Context, value float64) {
	l.DebugContext(ctx, "reseed throttled",
		"value", value,
	)
}
