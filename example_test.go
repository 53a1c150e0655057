package kmeansvis_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/kmeansvis"
	"github.com/hupe1980/kmeansvis/model"
)

// Example_stepping demonstrates the alternating assignment and update phases.
func Example_stepping() {
	vis, err := kmeansvis.New(model.Bounds{Width: 400, Height: 400},
		kmeansvis.WithSeed(1),
		kmeansvis.WithConfig(model.Config{ClusterCount: 3, Clumpiness: 20}),
	)
	if err != nil {
		log.Fatal(err)
	}

	for range 4 {
		label := vis.ButtonText()
		snap, err := vis.Step()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%s -> %s (iteration %d)\n", label, snap.Phase, snap.Iteration)
	}

	// Output:
	// Find closest centroid -> AwaitingUpdate (iteration 0)
	// Update centroid -> AwaitingAssignment (iteration 1)
	// Find closest centroid -> AwaitingUpdate (iteration 1)
	// Update centroid -> AwaitingAssignment (iteration 2)
}

// Example_voronoi demonstrates partitioning a single centroid.
func Example_voronoi() {
	vis, err := kmeansvis.New(model.Bounds{Width: 200, Height: 100},
		kmeansvis.WithSeed(7),
		kmeansvis.WithConfig(model.Config{ClusterCount: 1, Clumpiness: 50}),
	)
	if err != nil {
		log.Fatal(err)
	}

	cells, err := vis.VoronoiCells(vis.Snapshot())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%d cell, area %.0f\n", len(cells), cells[0].Area())
	// Output: 1 cell, area 20000
}
