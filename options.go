package kmeansvis

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/hupe1980/kmeansvis/model"
)

type options struct {
	config           model.Config
	src              rand.Source
	numPoints        int
	maxRejections    int
	strictSampling   bool
	reseedsPerSecond float64
	reseedBurst      int
	now              func() time.Time
	metricsCollector MetricsCollector
	logger           *Logger
}

func defaultOptions() options {
	return options{
		config:           model.DefaultConfig(),
		numPoints:        model.NumPoints,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
}

// Option configures Visualizer construction.
type Option func(*options)

// WithConfig sets the initial cluster count and clumpiness.
// It is validated by New.
func WithConfig(cfg model.Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithSource sets the random source for point generation and seeding.
// The source must not be shared with other goroutines.
func WithSource(src rand.Source) Option {
	return func(o *options) {
		o.src = src
	}
}

// WithSeed is shorthand for WithSource(rand.NewPCG(seed, seed)).
// Two visualizers with the same seed and calls produce identical snapshots.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.src = rand.NewPCG(seed, seed)
	}
}

// WithNumPoints overrides the number of points per generation.
// Values <= 0 keep model.NumPoints.
func WithNumPoints(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.numPoints = n
		}
	}
}

// WithMaxRejections sets how many normal draws a coordinate may take before
// falling back to a uniform draw. Values <= 0 keep the default.
func WithMaxRejections(n int) Option {
	return func(o *options) {
		o.maxRejections = n
	}
}

// WithStrictSampling turns an exhausted rejection budget into
// ErrSamplingExhausted instead of a uniform fallback.
func WithStrictSampling() Option {
	return func(o *options) {
		o.strictSampling = true
	}
}

// WithReseedRate limits how often slider drags regenerate the point cloud.
// perSecond <= 0 disables the limit. burst <= 0 means 1.
//
// Example:
//
//	vis, _ := kmeansvis.New(bounds, kmeansvis.WithReseedRate(20, 1))
//	applied, _ := vis.Slider().DragTo(35)
func WithReseedRate(perSecond float64, burst int) Option {
	return func(o *options) {
		o.reseedsPerSecond = perSecond
		o.reseedBurst = burst
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &kmeansvis.BasicMetricsCollector{}
//	vis, _ := kmeansvis.New(bounds, kmeansvis.WithMetricsCollector(metrics))
//	// ... step ...
//	stats := metrics.GetStats()
//	fmt.Printf("Assignments: %d, Avg latency: %dns\n", stats.AssignCount, stats.AssignAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kmeansvis.NewJSONLogger(slog.LevelInfo)
//	vis, _ := kmeansvis.New(bounds, kmeansvis.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// withClock replaces time.Now for the reseed limiter.
func withClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}
