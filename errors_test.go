package kmeansvis

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hupe1980/kmeansvis/internal/pointcloud"
	"github.com/hupe1980/kmeansvis/model"
	"github.com/hupe1980/kmeansvis/voronoi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	err := translateError(&model.ErrInvalidClusterCount{ClusterCount: -3})
	var icc *ErrInvalidClusterCount
	require.ErrorAs(t, err, &icc)
	assert.Equal(t, -3, icc.ClusterCount)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.NotNil(t, errors.Unwrap(err))

	err = translateError(fmt.Errorf("wrapped: %w", model.ErrInvalidClumpiness))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.ErrorIs(t, err, model.ErrInvalidClumpiness)

	assert.ErrorIs(t, translateError(model.ErrInvalidBounds), ErrInvalidConfiguration)
	assert.ErrorIs(t, translateError(voronoi.ErrNoSites), ErrDegenerateGeometry)
	assert.ErrorIs(t, translateError(voronoi.ErrDegenerateGeometry), ErrDegenerateGeometry)
	assert.ErrorIs(t, translateError(pointcloud.ErrSamplingExhausted), ErrSamplingExhausted)

	other := errors.New("other")
	assert.Equal(t, other, translateError(other))
}
