// Package render rasterizes visualizer snapshots to images.
//
// A frame is drawn back to front: background, Voronoi cells in a translucent
// palette, the points, the centroid triangles, and an optional caption. Points
// are black until their first assignment and take the colour of their
// centroid afterwards.
//
// Coordinates map one to one onto pixels with the origin at the top left.
package render
