// Package distance provides point distance calculations.
//
// # Supported Metrics
//
//   - Euclidean: straight-line distance
//   - SquaredEuclidean: monotonic in Euclidean, used for nearest-centroid
//     selection since only the ordering matters
//
// # Usage
//
//	d := distance.Euclidean(a, b)
//	i := distance.Nearest(p, centroids)
package distance
