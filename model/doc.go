// Package model defines the core types shared by the generator, the
// clustering engine and the partitioner.
//
// # Identity Types
//
//   - PointIndex: stable identity of a point within one generation (uint32)
//   - Centroid.ID: stable identity of a centroid within one engine (0..k-1)
//
// # Data Types
//
//   - Point: immutable 2D sample
//   - Centroid: cluster representative, moved by the update phase
//   - Bounds: the presentation box, [0,Width) x [0,Height)
//   - Config: cluster count and clumpiness
package model
