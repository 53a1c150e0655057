// Package kmeansvis animates Lloyd's algorithm (k-means) on a synthetic 2D
// point cloud.
//
// A Visualizer generates a point cloud whose clumpiness is tunable, seeds k
// centroids uniformly at random, and then advances one phase per Step:
// assignment places every point in the bin of its nearest centroid, update
// moves every centroid to the mean of its bin. After every centroid change
// the plane is re-partitioned into Voronoi cells so callers can draw the
// decision boundaries.
//
// # Quick Start
//
//	vis, err := kmeansvis.New(model.Bounds{Width: 600, Height: 600},
//	    kmeansvis.WithConfig(model.Config{ClusterCount: 3, Clumpiness: 20}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for range 6 {
//	    fmt.Println(vis.ButtonText()) // "Find closest centroid", "Update centroid", ...
//	    snap, _ := vis.Step()
//	    cells := vis.Cells()
//	    _ = render.Render(w, snap, cells, vis.Bounds())
//	}
//
// # Controls
//
//   - Configure sets the cluster count and clumpiness for the next
//     Regenerate or Reseed.
//   - Regenerate replaces the points and the centroids.
//   - Reseed keeps the points and draws new centroids.
//   - Slider().DragTo changes clumpiness and regenerates, throttled by
//     WithReseedRate.
//
// # Convergence
//
// Stepping never stops by itself. LastShift and Converged report how far the
// centroids moved in the latest update so callers can decide when to stop.
//
// # Concurrency
//
// A Visualizer is single-threaded. Overlapping mutating calls (Configure,
// Regenerate, Reseed, Step and slider drags) fail with ErrBusy rather than
// interleave. Read-only accessors take no lock and must not run concurrently
// with a mutating call.
package kmeansvis
