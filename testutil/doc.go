// Package testutil provides testing utilities for kmeansvis.
//
// This package is intended for use in tests and benchmarks only.
// It provides seeded random sources and helpers for building point sets
// with known structure.
//
// # Random Sources
//
//	rng := testutil.NewRNG(seed)
//	src := rng.Source()                   // independent, reproducible source
//	pts := rng.Blobs(centers, 50, 1.5)     // Gaussian blobs around centers
//
// # Membership Checks
//
//	counts := testutil.Membership(len(points), bins)
package testutil
