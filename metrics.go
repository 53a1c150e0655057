package kmeansvis

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordGenerate is called after each point cloud generation.
	// fallbacks counts coordinates that fell back to uniform sampling.
	RecordGenerate(points, fallbacks int, duration time.Duration, err error)

	// RecordSeed is called after each centroid seeding.
	RecordSeed(k int, duration time.Duration, err error)

	// RecordStep is called after each assignment or update phase.
	RecordStep(assignment bool, duration time.Duration)

	// RecordRejected is called when a call is refused (busy or throttled).
	RecordRejected(op string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGenerate(int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSeed(int, time.Duration, error)          {}
func (NoopMetricsCollector) RecordStep(bool, time.Duration)                {}
func (NoopMetricsCollector) RecordRejected(string)                         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GenerateCount      atomic.Int64
	GenerateErrors     atomic.Int64
	GenerateFallbacks  atomic.Int64
	GenerateTotalNanos atomic.Int64
	SeedCount          atomic.Int64
	SeedErrors         atomic.Int64
	AssignCount        atomic.Int64
	AssignTotalNanos   atomic.Int64
	UpdateCount        atomic.Int64
	UpdateTotalNanos   atomic.Int64
	RejectedCount      atomic.Int64
}

// RecordGenerate implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGenerate(points, fallbacks int, duration time.Duration, err error) {
	b.GenerateCount.Add(1)
	b.GenerateTotalNanos.Add(duration.Nanoseconds())
	b.GenerateFallbacks.Add(int64(fallbacks))
	if err != nil {
		b.GenerateErrors.Add(1)
	}
}

// RecordSeed implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSeed(k int, duration time.Duration, err error) {
	b.SeedCount.Add(1)
	if err != nil {
		b.SeedErrors.Add(1)
	}
}

// RecordStep implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStep(assignment bool, duration time.Duration) {
	if assignment {
		b.AssignCount.Add(1)
		b.AssignTotalNanos.Add(duration.Nanoseconds())
		return
	}
	b.UpdateCount.Add(1)
	b.UpdateTotalNanos.Add(duration.Nanoseconds())
}

// RecordRejected implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRejected(string) {
	b.RejectedCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		GenerateCount:     b.GenerateCount.Load(),
		GenerateErrors:    b.GenerateErrors.Load(),
		GenerateFallbacks: b.GenerateFallbacks.Load(),
		GenerateAvgNanos:  avg(b.GenerateTotalNanos.Load(), b.GenerateCount.Load()),
		SeedCount:         b.SeedCount.Load(),
		SeedErrors:        b.SeedErrors.Load(),
		AssignCount:       b.AssignCount.Load(),
		AssignAvgNanos:    avg(b.AssignTotalNanos.Load(), b.AssignCount.Load()),
		UpdateCount:       b.UpdateCount.Load(),
		UpdateAvgNanos:    avg(b.UpdateTotalNanos.Load(), b.UpdateCount.Load()),
		RejectedCount:     b.RejectedCount.Load(),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	GenerateCount     int64
	GenerateErrors    int64
	GenerateFallbacks int64
	GenerateAvgNanos  int64
	SeedCount         int64
	SeedErrors        int64
	AssignCount       int64
	AssignAvgNanos    int64
	UpdateCount       int64
	UpdateAvgNanos    int64
	RejectedCount     int64
}
