package testutil

import (
	"testing"

	"github.com/hupe1980/kmeansvis/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformPoints(t *testing.T) {
	rng := NewRNG(4711)
	b := model.Bounds{Width: 10, Height: 20}

	pts := rng.UniformPoints(100, b)

	assert.Len(t, pts, 100)
	for _, p := range pts {
		assert.True(t, b.Contains(p), "point %v outside bounds", p)
	}
}

func TestBlobs(t *testing.T) {
	rng := NewRNG(4711)
	centers := []model.Point{{X: 10, Y: 10}, {X: 90, Y: 90}}

	pts := rng.Blobs(centers, 50, 1)
	require.Len(t, pts, 100)

	for i, p := range pts {
		c := centers[i/50]
		assert.InDelta(t, c.X, p.X, 6)
		assert.InDelta(t, c.Y, p.Y, 6)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := rng.Float64()
	s1 := rng.Source().Uint64()

	rng.Reset()
	b := rng.Float64()
	s2 := rng.Source().Uint64()

	assert.Equal(t, a, b)
	assert.Equal(t, s1, s2)
	assert.Equal(t, uint64(4711), rng.Seed())
}

func TestSourceStreamsDiffer(t *testing.T) {
	rng := NewRNG(1)
	assert.NotEqual(t, rng.Source().Uint64(), rng.Source().Uint64())
}

func TestMembershipAndMean(t *testing.T) {
	points := []model.Point{{X: 0, Y: 0}, {X: 2, Y: 4}, {X: 4, Y: 2}}
	bins := [][]model.PointIndex{{0}, {1, 2}, {}}

	assert.Equal(t, []int{1, 1, 1}, Membership(3, bins))

	m, ok := Mean(points, bins[1])
	require.True(t, ok)
	assert.InDelta(t, 3.0, m.X, 1e-12)
	assert.InDelta(t, 3.0, m.Y, 1e-12)

	_, ok = Mean(points, bins[2])
	assert.False(t, ok)
}
