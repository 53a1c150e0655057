package distance

import (
	"math"

	"github.com/hupe1980/kmeansvis/model"
)

// SquaredEuclidean calculates the squared Euclidean distance between two points.
func SquaredEuclidean(a, b model.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Euclidean calculates the Euclidean distance between two points.
func Euclidean(a, b model.Point) float64 {
	return math.Sqrt(SquaredEuclidean(a, b))
}

// Nearest returns the index of the centroid closest to p.
// Only a strictly smaller distance replaces the current best, so the first
// centroid wins exact ties, and the first centroid is chosen when no
// distance is finite. Returns -1 if centroids is empty.
func Nearest(p model.Point, centroids []model.Centroid) int {
	if len(centroids) == 0 {
		return -1
	}

	best := 0
	minDist := math.Inf(1)

	for j, c := range centroids {
		d := SquaredEuclidean(p, c.Point())
		if d < minDist {
			minDist = d
			best = j
		}
	}

	return best
}
