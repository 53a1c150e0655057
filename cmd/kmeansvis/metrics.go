package main

import (
	"time"

	"github.com/hupe1980/kmeansvis"
	"github.com/prometheus/client_golang/prometheus"
)

// promCollector implements kmeansvis.MetricsCollector with Prometheus.
type promCollector struct {
	opLatency *prometheus.HistogramVec
	ops       *prometheus.CounterVec
	fallbacks prometheus.Counter
	points    prometheus.Gauge
	rejected  *prometheus.CounterVec
}

var _ kmeansvis.MetricsCollector = (*promCollector)(nil)

func newPromCollector(reg prometheus.Registerer) *promCollector {
	c := &promCollector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kmeansvis_operation_latency_seconds",
			Help:    "Latency of visualizer operations",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}, []string{"op"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kmeansvis_operations_total",
			Help: "Total operations by outcome",
		}, []string{"op", "status"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kmeansvis_uniform_fallbacks_total",
			Help: "Coordinates that fell back to uniform sampling",
		}),
		points: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kmeansvis_points",
			Help: "Points in the current cloud",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kmeansvis_rejected_total",
			Help: "Calls refused while busy or throttled",
		}, []string{"op"}),
	}

	reg.MustRegister(c.opLatency, c.ops, c.fallbacks, c.points, c.rejected)
	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func (c *promCollector) RecordGenerate(points, fallbacks int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("generate").Observe(d.Seconds())
	c.ops.WithLabelValues("generate", status(err)).Inc()
	if err == nil {
		c.points.Set(float64(points))
		c.fallbacks.Add(float64(fallbacks))
	}
}

func (c *promCollector) RecordSeed(_ int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("seed").Observe(d.Seconds())
	c.ops.WithLabelValues("seed", status(err)).Inc()
}

func (c *promCollector) RecordStep(assignment bool, d time.Duration) {
	op := "update"
	if assignment {
		op = "assign"
	}
	c.opLatency.WithLabelValues(op).Observe(d.Seconds())
	c.ops.WithLabelValues(op, "success").Inc()
}

func (c *promCollector) RecordRejected(op string) {
	c.rejected.WithLabelValues(op).Inc()
}
