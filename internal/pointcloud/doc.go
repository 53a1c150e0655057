// Package pointcloud generates the synthetic 2D point sets that the
// clustering engine works on.
//
// A generation mixes Gaussian blobs around uniformly drawn centers with
// uniform background noise. The mix is controlled by the clumpiness of a
// model.Config: 0 puts every point into a blob, 100 makes every point noise.
// Gaussian coordinates that fall outside the bounds are redrawn, up to a
// fixed number of attempts.
package pointcloud
