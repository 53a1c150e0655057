package kmeansvis

import (
	"context"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/hupe1980/kmeansvis/internal/kmeans"
	"github.com/hupe1980/kmeansvis/internal/pointcloud"
	"github.com/hupe1980/kmeansvis/internal/resource"
	"github.com/hupe1980/kmeansvis/model"
	"github.com/hupe1980/kmeansvis/voronoi"
)

// Phase is the step state: the kind of phase the next Step runs.
type Phase = kmeans.Phase

const (
	// AwaitingAssignment means the next step assigns points to centroids.
	AwaitingAssignment = kmeans.AwaitingAssignment
	// AwaitingUpdate means the next step moves centroids to their bin means.
	AwaitingUpdate = kmeans.AwaitingUpdate
)

// Snapshot is a read-only copy of the clustering state.
type Snapshot = kmeans.Snapshot

// Bin holds the point indices assigned to one centroid.
type Bin = kmeans.Bin

// GenerationStats describes the most recent point cloud generation.
type GenerationStats struct {
	Clustered  int
	Uniform    int
	Rejections int
	Fallbacks  int
	// Centers are the synthetic cluster centers. They are never shown to the
	// engine; use them for diagnostics only.
	Centers []model.Point
}

// Visualizer drives one k-means animation: it owns the point cloud, the
// clustering engine and the current Voronoi cells.
//
// All methods run synchronously. A Visualizer must be driven by one caller at
// a time. Overlapping Configure, Regenerate, Reseed, Step and slider calls
// fail with ErrBusy; readers such as Snapshot and Cells take no lock.
type Visualizer struct {
	bounds model.Bounds
	cfg    model.Config

	src     rand.Source
	gen     *pointcloud.Generator
	engine  *kmeans.Engine
	cells   []voronoi.Cell
	stats   GenerationStats
	ctrl    *resource.Controller
	slider  *Slider
	logger  *Logger
	metrics MetricsCollector
}

// New creates a Visualizer over bounds and generates the first point cloud.
func New(bounds model.Bounds, optFns ...Option) (*Visualizer, error) {
	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	if err := bounds.Validate(); err != nil {
		return nil, translateError(err)
	}
	if err := o.config.Validate(); err != nil {
		return nil, translateError(err)
	}

	src := o.src
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	genOpts := []pointcloud.Option{
		pointcloud.WithNumPoints(o.numPoints),
		pointcloud.WithMaxRejections(o.maxRejections),
	}
	if o.strictSampling {
		genOpts = append(genOpts, pointcloud.WithStrictSampling())
	}

	v := &Visualizer{
		bounds: bounds,
		cfg:    o.config,
		src:    src,
		gen:    pointcloud.New(src, genOpts...),
		ctrl: resource.NewController(resource.Config{
			ReseedsPerSecond: o.reseedsPerSecond,
			ReseedBurst:      o.reseedBurst,
			Now:              o.now,
		}),
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
	v.slider = &Slider{v: v, value: o.config.Clumpiness}

	if _, err := v.Regenerate(); err != nil {
		return nil, err
	}

	return v, nil
}

// Bounds returns the presentation box.
func (v *Visualizer) Bounds() model.Bounds {
	return v.bounds
}

// Config returns the configuration used by the next Regenerate or Reseed.
func (v *Visualizer) Config() model.Config {
	return v.cfg
}

// Configure updates the cluster count and clumpiness. It does not regenerate;
// the new values apply on the next Regenerate or Reseed.
func (v *Visualizer) Configure(clusterCount int, clumpiness float64) error {
	cfg := model.Config{ClusterCount: clusterCount, Clumpiness: clumpiness}
	if err := cfg.Validate(); err != nil {
		err = translateError(err)
		v.logger.LogRejected(context.Background(), "configure", err)
		return err
	}

	if !v.ctrl.TryEnter() {
		return v.busy("configure")
	}
	defer v.ctrl.Leave()

	v.cfg = cfg
	v.slider.value = clumpiness
	return nil
}

// Regenerate replaces the point cloud and seeds fresh centroids.
// The returned snapshot awaits assignment.
func (v *Visualizer) Regenerate() (Snapshot, error) {
	if !v.ctrl.TryEnter() {
		return Snapshot{}, v.busy("regenerate")
	}
	defer v.ctrl.Leave()

	return v.regenerate(v.cfg)
}

// regenerate builds a new cloud and engine from cfg. State, including
// v.cfg, is replaced only when both succeed.
func (v *Visualizer) regenerate(cfg model.Config) (Snapshot, error) {
	ctx := context.Background()

	start := time.Now()
	points, stats, err := v.gen.Generate(cfg, v.bounds)
	err = translateError(err)
	v.metrics.RecordGenerate(len(points), stats.Fallbacks, time.Since(start), err)
	v.logger.WithK(cfg.ClusterCount).WithClumpiness(cfg.Clumpiness).
		LogRegenerate(ctx, len(points), stats.Fallbacks, err)
	if err != nil {
		return Snapshot{}, err
	}

	start = time.Now()
	engine, err := kmeans.New(points, v.bounds, cfg.ClusterCount, v.src)
	err = translateError(err)
	v.metrics.RecordSeed(cfg.ClusterCount, time.Since(start), err)
	v.logger.LogSeed(ctx, cfg.ClusterCount, err)
	if err != nil {
		return Snapshot{}, err
	}

	v.cfg = cfg
	v.engine = engine
	v.stats = GenerationStats{
		Clustered:  stats.Clustered,
		Uniform:    stats.Uniform,
		Rejections: stats.Rejections,
		Fallbacks:  stats.Fallbacks,
		Centers:    stats.Centers,
	}
	v.refreshCells()

	return v.engine.Snapshot(), nil
}

// Reseed keeps the point cloud and draws fresh centroids using the current
// cluster count. The returned snapshot awaits assignment.
func (v *Visualizer) Reseed() (Snapshot, error) {
	if !v.ctrl.TryEnter() {
		return Snapshot{}, v.busy("reseed")
	}
	defer v.ctrl.Leave()

	start := time.Now()
	err := translateError(v.engine.Seed(v.cfg.ClusterCount))
	v.metrics.RecordSeed(v.cfg.ClusterCount, time.Since(start), err)
	v.logger.LogSeed(context.Background(), v.cfg.ClusterCount, err)
	if err != nil {
		return Snapshot{}, err
	}

	v.refreshCells()

	return v.engine.Snapshot(), nil
}

// Step runs one phase: assignment when AwaitingAssignment, update otherwise.
func (v *Visualizer) Step() (Snapshot, error) {
	if !v.ctrl.TryEnter() {
		return Snapshot{}, v.busy("step")
	}
	defer v.ctrl.Leave()

	assignment := v.engine.Phase() == AwaitingAssignment

	start := time.Now()
	next := v.engine.Step()
	v.metrics.RecordStep(assignment, time.Since(start))

	if !assignment {
		v.refreshCells()
	}

	v.logger.LogStep(context.Background(), next.String(), v.engine.Iteration(), v.engine.Reassigned(), v.engine.LastShift())

	return v.engine.Snapshot(), nil
}

// Snapshot returns the current state without changing it.
func (v *Visualizer) Snapshot() Snapshot {
	return v.engine.Snapshot()
}

// Phase returns the phase the next Step runs.
func (v *Visualizer) Phase() Phase {
	return v.engine.Phase()
}

// CurrentPhaseLabel returns "AwaitingAssignment" or "AwaitingUpdate".
func (v *Visualizer) CurrentPhaseLabel() string {
	return v.engine.Phase().String()
}

// ButtonText returns the caption of the step button for the current phase.
func (v *Visualizer) ButtonText() string {
	if v.engine.Phase() == AwaitingAssignment {
		return "Find closest centroid"
	}
	return "Update centroid"
}

// VoronoiCells partitions the bounds by the snapshot's centroids.
func (v *Visualizer) VoronoiCells(snap Snapshot) ([]voronoi.Cell, error) {
	cells, err := voronoi.Partition(snap.Centroids, v.bounds)
	return cells, translateError(err)
}

// Cells returns the partition of the current centroids, recomputed after
// every seeding and every update phase.
// The returned cells are copies.
func (v *Visualizer) Cells() []voronoi.Cell {
	cells := make([]voronoi.Cell, len(v.cells))
	for i, c := range v.cells {
		c.Ring = slices.Clone(c.Ring)
		cells[i] = c
	}
	return cells
}

// Stats returns statistics of the most recent generation.
func (v *Visualizer) Stats() GenerationStats {
	return v.stats
}

// LastShift returns the largest centroid move of the most recent update, or
// +Inf before the first update since seeding.
func (v *Visualizer) LastShift() float64 {
	return v.engine.LastShift()
}

// Converged reports whether the last update moved no centroid further than
// eps. Step keeps working after convergence.
func (v *Visualizer) Converged(eps float64) bool {
	return v.engine.Converged(eps)
}

// Slider returns the clumpiness control bound to this visualizer.
func (v *Visualizer) Slider() *Slider {
	return v.slider
}

func (v *Visualizer) refreshCells() {
	cells, err := voronoi.Partition(v.engine.Centroids(), v.bounds)
	if err != nil {
		// Centroids always lie inside valid bounds.
		v.logger.ErrorContext(context.Background(), "partition failed", "error", err)
		v.cells = nil
		return
	}
	v.cells = cells
}

func (v *Visualizer) busy(op string) error {
	v.metrics.RecordRejected(op)
	v.logger.LogRejected(context.Background(), op, ErrBusy)
	return ErrBusy
}
