// Package kmeans implements the step-wise Lloyd's algorithm behind the
// visualizer.
//
// An Engine alternates between two phases. Assignment places every point in
// the bin of its nearest centroid; update moves every centroid to the mean of
// its bin. Each call to Step runs exactly one phase so that callers can show
// the intermediate state.
package kmeans
