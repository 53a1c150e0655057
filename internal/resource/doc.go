// Package resource guards a visualizer against misuse by its callers.
//
// A Controller provides two limits:
//
//   - an exclusive, non-blocking entry gate so that interleaved calls are
//     rejected instead of corrupting engine state
//   - a token-bucket limit on reseeding so that slider drags cannot
//     regenerate the point cloud faster than the configured rate
package resource
