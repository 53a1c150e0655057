package kmeans

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/kmeansvis/distance"
	"github.com/hupe1980/kmeansvis/internal/pointcloud"
	"github.com/hupe1980/kmeansvis/model"
	"gonum.org/v1/gonum/stat"
)

// ErrTooManyPoints is returned when point indices would not fit a PointIndex.
var ErrTooManyPoints = errors.New("too many points")

// Phase is the step state of an Engine.
type Phase int

const (
	// AwaitingAssignment means the next step assigns points to centroids.
	AwaitingAssignment Phase = iota
	// AwaitingUpdate means the next step moves centroids to their bin means.
	AwaitingUpdate
)

func (p Phase) String() string {
	switch p {
	case AwaitingAssignment:
		return "AwaitingAssignment"
	case AwaitingUpdate:
		return "AwaitingUpdate"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// Bin holds the points assigned to one centroid.
type Bin struct {
	// CentroidID is the owning centroid.
	CentroidID int
	// Points are the member indices in ascending order.
	Points []model.PointIndex

	members *roaring.Bitmap
}

func newBin(id int) Bin {
	return Bin{CentroidID: id, members: roaring.New()}
}

func (b *Bin) add(idx model.PointIndex) {
	b.Points = append(b.Points, idx)
	b.members.Add(uint32(idx))
}

// Contains reports whether the point is a member of the bin.
func (b Bin) Contains(idx model.PointIndex) bool {
	return b.members != nil && b.members.Contains(uint32(idx))
}

// Len returns the number of member points.
func (b Bin) Len() int {
	return len(b.Points)
}

func (b Bin) clone() Bin {
	c := Bin{CentroidID: b.CentroidID, Points: slices.Clone(b.Points)}
	if b.members != nil {
		c.members = b.members.Clone()
	} else {
		c.members = roaring.New()
	}
	return c
}

// Partitioned reports whether every index in [0, n) belongs to exactly one of
// the bins.
func Partitioned(bins []Bin, n int) bool {
	var total uint64
	sets := make([]*roaring.Bitmap, 0, len(bins))
	for _, b := range bins {
		if b.members == nil {
			continue
		}
		total += b.members.GetCardinality()
		sets = append(sets, b.members)
	}

	if total != uint64(n) {
		return false
	}
	if n == 0 {
		return true
	}

	union := roaring.FastOr(sets...)
	return union.GetCardinality() == uint64(n) && union.Maximum() == uint32(n-1)
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Points    []model.Point
	Centroids []model.Centroid
	Bins      []Bin
	// Assignment maps a point index to its centroid ID, or -1 before the
	// first assignment phase.
	Assignment []int
	Phase      Phase
	// Iteration counts completed update phases.
	Iteration int
}

// Engine owns the points, centroids and bins of one clustering run.
// It is not safe for concurrent use.
type Engine struct {
	points []model.Point
	bounds model.Bounds
	src    rand.Source

	centroids  []model.Centroid
	bins       []Bin
	assignment []int
	phase      Phase
	iteration  int

	lastShift  float64
	reassigned int
}

// New creates an engine over points and seeds k centroids.
func New(points []model.Point, bounds model.Bounds, k int, src rand.Source) (*Engine, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	if uint64(len(points)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyPoints, len(points))
	}

	e := &Engine{
		points: slices.Clone(points),
		bounds: bounds,
		src:    src,
	}

	if err := e.Seed(k); err != nil {
		return nil, err
	}

	return e, nil
}

// Seed discards centroids and bins and draws k centroids uniformly in the
// bounds. The points are kept. The next step is an assignment.
func (e *Engine) Seed(k int) error {
	if k < 1 {
		return &model.ErrInvalidClusterCount{ClusterCount: k}
	}

	e.centroids = make([]model.Centroid, k)
	for i := range e.centroids {
		p := pointcloud.UniformPoint(e.src, e.bounds)
		e.centroids[i] = model.Centroid{ID: i, X: p.X, Y: p.Y}
	}

	e.resetBins()
	e.assignment = make([]int, len(e.points))
	for i := range e.assignment {
		e.assignment[i] = -1
	}

	e.phase = AwaitingAssignment
	e.iteration = 0
	e.lastShift = math.Inf(1)
	e.reassigned = len(e.points)

	return nil
}

func (e *Engine) resetBins() {
	e.bins = make([]Bin, len(e.centroids))
	for i := range e.bins {
		e.bins[i] = newBin(i)
	}
}

// Step runs the pending phase and returns the phase that follows it.
func (e *Engine) Step() Phase {
	switch e.phase {
	case AwaitingAssignment:
		e.assign()
		e.phase = AwaitingUpdate
	default:
		e.update()
		e.phase = AwaitingAssignment
	}
	return e.phase
}

// assign rebuilds every bin from empty and places each point in the bin of
// its nearest centroid. Ties go to the lowest centroid ID.
func (e *Engine) assign() {
	e.resetBins()
	e.reassigned = 0

	for i, p := range e.points {
		best := distance.Nearest(p, e.centroids)
		e.bins[best].add(model.PointIndex(i))

		if e.assignment[i] != best {
			e.assignment[i] = best
			e.reassigned++
		}
	}
}

// update moves every centroid with a non-empty bin to the bin mean.
// Centroids with empty bins stay where they are.
func (e *Engine) update() {
	e.lastShift = 0

	var xs, ys []float64
	for j, bin := range e.bins {
		if bin.Len() == 0 {
			continue
		}

		xs = xs[:0]
		ys = ys[:0]
		for _, idx := range bin.Points {
			xs = append(xs, e.points[idx].X)
			ys = append(ys, e.points[idx].Y)
		}

		next := model.Point{X: stat.Mean(xs, nil), Y: stat.Mean(ys, nil)}
		if math.IsNaN(next.X) || math.IsNaN(next.Y) {
			continue
		}

		shift := distance.Euclidean(e.centroids[j].Point(), next)
		e.lastShift = max(e.lastShift, shift)

		e.centroids[j].X = next.X
		e.centroids[j].Y = next.Y
	}

	e.iteration++
}

// Phase returns the phase the next Step will run.
func (e *Engine) Phase() Phase {
	return e.phase
}

// Iteration returns the number of completed update phases since seeding.
func (e *Engine) Iteration() int {
	return e.iteration
}

// NumPoints returns the size of the point set.
func (e *Engine) NumPoints() int {
	return len(e.points)
}

// Centroids returns a copy of the current centroids.
func (e *Engine) Centroids() []model.Centroid {
	return slices.Clone(e.centroids)
}

// LastShift returns the largest centroid displacement of the most recent
// update phase, or +Inf if no update ran since seeding.
func (e *Engine) LastShift() float64 {
	return e.lastShift
}

// Reassigned returns how many points changed bins in the most recent
// assignment phase.
func (e *Engine) Reassigned() int {
	return e.reassigned
}

// Converged reports whether the last update moved no centroid further than
// eps. Stepping is never blocked by this; it is a hint for callers.
func (e *Engine) Converged(eps float64) bool {
	return e.iteration > 0 && e.lastShift <= eps
}

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	bins := make([]Bin, len(e.bins))
	for i, b := range e.bins {
		bins[i] = b.clone()
	}

	return Snapshot{
		Points:     slices.Clone(e.points),
		Centroids:  slices.Clone(e.centroids),
		Bins:       bins,
		Assignment: slices.Clone(e.assignment),
		Phase:      e.phase,
		Iteration:  e.iteration,
	}
}
