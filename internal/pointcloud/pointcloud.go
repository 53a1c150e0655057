package pointcloud

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/hupe1980/kmeansvis/model"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultMaxRejections is the number of normal draws attempted per coordinate
// before the generator gives up on the Gaussian.
const DefaultMaxRejections = 1000

// ErrSamplingExhausted is returned in strict mode when no in-bounds
// coordinate was drawn within the rejection budget.
var ErrSamplingExhausted = errors.New("rejection sampling exhausted")

// Stats describes one generation.
type Stats struct {
	// Clustered is the number of points drawn around synthetic centers.
	Clustered int
	// Uniform is the number of background points.
	Uniform int
	// Rejections counts redrawn out-of-bounds coordinates.
	Rejections int
	// Fallbacks counts coordinates replaced by a uniform draw after the
	// rejection budget ran out.
	Fallbacks int
	// Centers are the synthetic cluster centers. Diagnostics only.
	Centers []model.Point
}

// Option configures a Generator.
type Option func(*Generator)

// WithNumPoints overrides the number of points per generation.
func WithNumPoints(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.numPoints = n
		}
	}
}

// WithMaxRejections sets the per-coordinate draw budget.
// Values <= 0 keep the default.
func WithMaxRejections(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxRejections = n
		}
	}
}

// WithStrictSampling makes an exhausted rejection budget an error instead of
// substituting a uniform coordinate.
func WithStrictSampling() Option {
	return func(g *Generator) {
		g.strict = true
	}
}

// Generator produces point clouds from a random source.
// It is not safe for concurrent use; neither is the source.
type Generator struct {
	src           rand.Source
	numPoints     int
	maxRejections int
	strict        bool
}

// New creates a Generator drawing from src.
func New(src rand.Source, optFns ...Option) *Generator {
	g := &Generator{
		src:           src,
		numPoints:     model.NumPoints,
		maxRejections: DefaultMaxRejections,
	}

	for _, fn := range optFns {
		fn(g)
	}

	return g
}

// NumPoints returns the number of points each generation holds.
func (g *Generator) NumPoints() int {
	return g.numPoints
}

// Generate returns exactly NumPoints points inside bounds.
//
// For each of cfg.ClusterCount synthetic centers it draws
// floor(fraction*N/k) points, each coordinate from a normal distribution
// with standard deviation cfg.Sigma(). The remainder is uniform noise.
func (g *Generator) Generate(cfg model.Config, bounds model.Bounds) ([]model.Point, Stats, error) {
	var stats Stats

	if err := cfg.Validate(); err != nil {
		return nil, stats, err
	}
	if err := bounds.Validate(); err != nil {
		return nil, stats, err
	}

	n := g.numPoints
	points := make([]model.Point, 0, n)

	perCluster := int(cfg.ClusteredFraction() * float64(n) / float64(cfg.ClusterCount))
	sigma := cfg.Sigma()

	stats.Centers = make([]model.Point, 0, cfg.ClusterCount)
	for range cfg.ClusterCount {
		center := UniformPoint(g.src, bounds)
		stats.Centers = append(stats.Centers, center)

		for range perCluster {
			x, err := g.sampleAxis(center.X, sigma, bounds.Width, &stats)
			if err != nil {
				return nil, stats, err
			}
			y, err := g.sampleAxis(center.Y, sigma, bounds.Height, &stats)
			if err != nil {
				return nil, stats, err
			}
			points = append(points, model.Point{X: x, Y: y})
		}
	}
	stats.Clustered = len(points)

	// Scatter the remaining points uniformly.
	for len(points) < n {
		points = append(points, UniformPoint(g.src, bounds))
	}
	stats.Uniform = n - stats.Clustered

	return points, stats, nil
}

// sampleAxis draws from Normal(mean, sigma) until the value lands in
// [0, limit) or the budget runs out.
func (g *Generator) sampleAxis(mean, sigma, limit float64, stats *Stats) (float64, error) {
	dist := distuv.Normal{Mu: mean, Sigma: sigma, Src: g.src}

	for range g.maxRejections {
		v := dist.Rand()
		if v >= 0 && v < limit {
			return v, nil
		}
		stats.Rejections++
	}

	if g.strict {
		return 0, fmt.Errorf("%w: no value in [0, %g) after %d draws from N(%g, %g)",
			ErrSamplingExhausted, limit, g.maxRejections, mean, sigma)
	}

	stats.Fallbacks++
	return Uniform(g.src, limit), nil
}

// Uniform draws a value in [0, limit).
func Uniform(src rand.Source, limit float64) float64 {
	v := distuv.Uniform{Min: 0, Max: limit, Src: src}.Rand()
	if v >= limit {
		// Rounding can land exactly on the open end.
		v = math.Nextafter(limit, 0)
	}
	return v
}

// UniformPoint draws a point uniformly in bounds.
func UniformPoint(src rand.Source, bounds model.Bounds) model.Point {
	return model.Point{
		X: Uniform(src, bounds.Width),
		Y: Uniform(src, bounds.Height),
	}
}
