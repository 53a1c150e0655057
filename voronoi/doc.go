// Package voronoi partitions a bounding box into nearest-site cells.
//
// Each cell is the box clipped by the perpendicular bisector between its site
// and every other site, so a point inside a cell is at least as close to that
// cell's site as to any other. Cells are convex and returned as closed
// orb.Ring values.
//
// Coincident sites are merged into the one enumerated first; the others come
// back as degenerate cells with an empty ring.
//
//	cells, err := voronoi.Partition(centroids, bounds)
//	id, ok := voronoi.Locate(cells, orb.Point{x, y})
package voronoi
