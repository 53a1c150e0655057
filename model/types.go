package model

import (
	"errors"
	"fmt"
	"math"
)

// NumPoints is the number of points in one generation.
const NumPoints = 500

// DefaultClumpiness matches the initial slider position.
const DefaultClumpiness = 20.0

var (
	// ErrInvalidClumpiness is returned when clumpiness is outside [0, 100].
	ErrInvalidClumpiness = errors.New("clumpiness must be within [0, 100]")

	// ErrInvalidBounds is returned when a bounding box is empty or not finite.
	ErrInvalidBounds = errors.New("bounds must be positive and finite")
)

// ErrInvalidClusterCount indicates a cluster count below one.
type ErrInvalidClusterCount struct {
	ClusterCount int
}

func (e *ErrInvalidClusterCount) Error() string {
	return fmt.Sprintf("invalid cluster count: %d (must be >= 1)", e.ClusterCount)
}

// PointIndex is the identity of a point: its position in the generated slice.
// Bins reference points by index, never by value.
type PointIndex uint32

// Point is a 2D sample.
type Point struct {
	X, Y float64
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}

// Centroid is the representative of a cluster.
type Centroid struct {
	ID   int
	X, Y float64
}

// Point returns the centroid position.
func (c Centroid) Point() Point {
	return Point{X: c.X, Y: c.Y}
}

// Bounds is the presentation box. Valid coordinates are [0,Width) x [0,Height).
type Bounds struct {
	Width, Height float64
}

// Validate checks that both extents are positive and finite.
func (b Bounds) Validate() error {
	if !(b.Width > 0) || !(b.Height > 0) || math.IsInf(b.Width, 0) || math.IsInf(b.Height, 0) {
		return fmt.Errorf("%w: %vx%v", ErrInvalidBounds, b.Width, b.Height)
	}
	return nil
}

// Contains reports whether p lies in [0,Width) x [0,Height).
func (b Bounds) Contains(p Point) bool {
	return p.X >= 0 && p.X < b.Width && p.Y >= 0 && p.Y < b.Height
}

// Config controls point generation and seeding.
type Config struct {
	// ClusterCount is the number of synthetic clusters and of centroids.
	ClusterCount int

	// Clumpiness is 0 for tightly clustered data and 100 for uniform noise.
	Clumpiness float64
}

// DefaultConfig returns the configuration a new Visualizer starts with.
func DefaultConfig() Config {
	return Config{ClusterCount: 3, Clumpiness: DefaultClumpiness}
}

// Validate rejects configurations that would produce NaNs downstream.
func (c Config) Validate() error {
	if c.ClusterCount < 1 {
		return &ErrInvalidClusterCount{ClusterCount: c.ClusterCount}
	}
	if math.IsNaN(c.Clumpiness) || c.Clumpiness < 0 || c.Clumpiness > 100 {
		return fmt.Errorf("%w: %v", ErrInvalidClumpiness, c.Clumpiness)
	}
	return nil
}

// Sigma is the standard deviation used around synthetic cluster centers.
func (c Config) Sigma() float64 {
	return c.Clumpiness + 10
}

// ClusteredFraction is the share of points drawn around cluster centers.
func (c Config) ClusteredFraction() float64 {
	return (100 - c.Clumpiness) / 100
}
