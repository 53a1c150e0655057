package kmeansvis

import (
	"errors"
	"fmt"

	"github.com/hupe1980/kmeansvis/internal/pointcloud"
	"github.com/hupe1980/kmeansvis/model"
	"github.com/hupe1980/kmeansvis/voronoi"
)

var (
	// ErrInvalidConfiguration is returned for cluster counts below one,
	// clumpiness outside [0, 100] and empty bounds.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrDegenerateGeometry is returned when centroids cannot be partitioned.
	ErrDegenerateGeometry = errors.New("degenerate geometry")

	// ErrSamplingExhausted is returned with strict sampling when a Gaussian
	// coordinate could not be drawn inside the bounds.
	ErrSamplingExhausted = errors.New("sampling exhausted")

	// ErrBusy is returned when a call overlaps another call on the same
	// Visualizer.
	ErrBusy = errors.New("visualizer busy")
)

// ErrInvalidClusterCount indicates a cluster count below one.
// It matches ErrInvalidConfiguration with errors.Is.
//
// The underlying model error can be accessed via errors.Unwrap.
type ErrInvalidClusterCount struct {
	ClusterCount int
	cause        error
}

func (e *ErrInvalidClusterCount) Error() string {
	return fmt.Sprintf("invalid cluster count: %d", e.ClusterCount)
}

func (e *ErrInvalidClusterCount) Unwrap() error { return e.cause }

// Is reports whether target is ErrInvalidConfiguration.
func (e *ErrInvalidClusterCount) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Configuration.
	var icc *model.ErrInvalidClusterCount
	if errors.As(err, &icc) {
		return &ErrInvalidClusterCount{ClusterCount: icc.ClusterCount, cause: err}
	}
	if errors.Is(err, model.ErrInvalidClumpiness) || errors.Is(err, model.ErrInvalidBounds) {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	// Geometry.
	if errors.Is(err, voronoi.ErrDegenerateGeometry) || errors.Is(err, voronoi.ErrNoSites) {
		return fmt.Errorf("%w: %w", ErrDegenerateGeometry, err)
	}

	// Sampling.
	if errors.Is(err, pointcloud.ErrSamplingExhausted) {
		return fmt.Errorf("%w: %w", ErrSamplingExhausted, err)
	}

	return err
}
