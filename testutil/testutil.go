package testutil

import (
	"math/rand/v2"
	"sync"

	"github.com/hupe1980/kmeansvis/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand    *rand.Rand
	seed    uint64
	streams uint64
	mu      sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand = rand.New(rand.NewPCG(r.seed, r.seed^0x9e3779b97f4a7c15))
	r.streams = 0
}

// Seed returns the initial seed.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// Source returns a new source derived from the seed. Successive calls return
// distinct streams; the sequence of streams is reproducible after Reset.
func (r *RNG) Source() rand.Source {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.streams++
	return rand.NewPCG(r.seed, r.streams)
}

// Float64 returns, as a float64, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// UniformPoints generates n points uniformly in bounds.
func (r *RNG) UniformPoints(n int, bounds model.Bounds) []model.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]model.Point, n)
	for i := range points {
		points[i] = model.Point{
			X: r.rand.Float64() * bounds.Width,
			Y: r.rand.Float64() * bounds.Height,
		}
	}

	return points
}

// Blobs generates perBlob points around each center with Gaussian noise of
// the given spread. Points are emitted blob by blob, so point i belongs to
// centers[i/perBlob]. Coordinates are not clipped.
func (r *RNG) Blobs(centers []model.Point, perBlob int, spread float64) []model.Point {
	r.mu.Lock()
	defer r.mu.Unlock()

	points := make([]model.Point, 0, len(centers)*perBlob)
	for _, c := range centers {
		for range perBlob {
			points = append(points, model.Point{
				X: c.X + r.rand.NormFloat64()*spread,
				Y: c.Y + r.rand.NormFloat64()*spread,
			})
		}
	}

	return points
}

// Membership counts how many of the given bins contain each point index.
// A valid assignment yields 1 for every index.
func Membership(numPoints int, bins [][]model.PointIndex) []int {
	counts := make([]int, numPoints)
	for _, bin := range bins {
		for _, idx := range bin {
			if int(idx) < numPoints {
				counts[idx]++
			}
		}
	}
	return counts
}

// Mean returns the arithmetic mean of the indexed points.
// ok is false for an empty index list.
func Mean(points []model.Point, idx []model.PointIndex) (model.Point, bool) {
	if len(idx) == 0 {
		return model.Point{}, false
	}

	var sx, sy float64
	for _, i := range idx {
		sx += points[i].X
		sy += points[i].Y
	}

	n := float64(len(idx))
	return model.Point{X: sx / n, Y: sy / n}, true
}
