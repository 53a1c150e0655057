package pointcloud

import (
	"math/rand/v2"
	"testing"

	"github.com/hupe1980/kmeansvis/model"
	"github.com/hupe1980/kmeansvis/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_CountAndBounds(t *testing.T) {
	rng := testutil.NewRNG(4711)
	bounds := model.Bounds{Width: 100, Height: 60}

	for _, clump := range []float64{0, 20, 50, 99.5, 100} {
		for _, k := range []int{1, 2, 3, 7} {
			g := New(rng.Source())
			cfg := model.Config{ClusterCount: k, Clumpiness: clump}

			points, stats, err := g.Generate(cfg, bounds)
			require.NoError(t, err)
			require.Len(t, points, model.NumPoints, "k=%d clumpiness=%v", k, clump)

			for _, p := range points {
				require.True(t, bounds.Contains(p), "point %v outside bounds", p)
			}
			assert.Equal(t, model.NumPoints, stats.Clustered+stats.Uniform)
			assert.Len(t, stats.Centers, k)
		}
	}
}

func TestGenerate_ClusteredShare(t *testing.T) {
	tests := []struct {
		name      string
		cfg       model.Config
		clustered int
	}{
		{"Tight", model.Config{ClusterCount: 2, Clumpiness: 0}, 500},
		{"Default", model.Config{ClusterCount: 3, Clumpiness: 20}, 399}, // 3 * floor(133.33)
		{"Half", model.Config{ClusterCount: 4, Clumpiness: 50}, 248},    // 4 * floor(62.5)
		{"Uniform", model.Config{ClusterCount: 5, Clumpiness: 100}, 0},
		{"Truncation", model.Config{ClusterCount: 3, Clumpiness: 0}, 498}, // 3 * floor(166.67)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(rand.NewPCG(1, 2))
			points, stats, err := g.Generate(tt.cfg, model.Bounds{Width: 500, Height: 500})
			require.NoError(t, err)
			assert.Len(t, points, model.NumPoints)
			assert.Equal(t, tt.clustered, stats.Clustered)
			assert.Equal(t, model.NumPoints-tt.clustered, stats.Uniform)
		})
	}
}

func TestGenerate_TightBlobsStayNearCenters(t *testing.T) {
	g := New(rand.NewPCG(7, 7))
	bounds := model.Bounds{Width: 1000, Height: 1000}

	points, stats, err := g.Generate(model.Config{ClusterCount: 1, Clumpiness: 0}, bounds)
	require.NoError(t, err)

	// sigma = 10; nearly every point sits within 4 sigma of the center.
	c := stats.Centers[0]
	near := 0
	for _, p := range points {
		dx, dy := p.X-c.X, p.Y-c.Y
		if dx*dx+dy*dy <= 40*40 {
			near++
		}
	}
	assert.GreaterOrEqual(t, near, 490)
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := model.Config{ClusterCount: 3, Clumpiness: 20}
	bounds := model.Bounds{Width: 300, Height: 300}

	a, _, err := New(rand.NewPCG(42, 42)).Generate(cfg, bounds)
	require.NoError(t, err)
	b, _, err := New(rand.NewPCG(42, 42)).Generate(cfg, bounds)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestGenerate_InvalidInput(t *testing.T) {
	g := New(rand.NewPCG(1, 1))

	_, _, err := g.Generate(model.Config{ClusterCount: 0, Clumpiness: 20}, model.Bounds{Width: 10, Height: 10})
	var icc *model.ErrInvalidClusterCount
	assert.ErrorAs(t, err, &icc)

	_, _, err = g.Generate(model.Config{ClusterCount: 1, Clumpiness: 120}, model.Bounds{Width: 10, Height: 10})
	assert.ErrorIs(t, err, model.ErrInvalidClumpiness)

	_, _, err = g.Generate(model.Config{ClusterCount: 1, Clumpiness: 20}, model.Bounds{Width: 0, Height: 10})
	assert.ErrorIs(t, err, model.ErrInvalidBounds)
}

// A sliver of bounds with sigma >= 10 makes an in-range draw very unlikely.
func TestGenerate_ExhaustionFallsBackToUniform(t *testing.T) {
	g := New(rand.NewPCG(3, 3), WithNumPoints(20), WithMaxRejections(5))
	bounds := model.Bounds{Width: 1e-6, Height: 1e-6}

	points, stats, err := g.Generate(model.Config{ClusterCount: 1, Clumpiness: 0}, bounds)
	require.NoError(t, err)
	require.Len(t, points, 20)

	for _, p := range points {
		assert.True(t, bounds.Contains(p))
	}
	assert.Positive(t, stats.Fallbacks)
	assert.Positive(t, stats.Rejections)
}

func TestGenerate_StrictExhaustion(t *testing.T) {
	g := New(rand.NewPCG(3, 3), WithNumPoints(20), WithMaxRejections(5), WithStrictSampling())

	_, _, err := g.Generate(model.Config{ClusterCount: 1, Clumpiness: 0}, model.Bounds{Width: 1e-6, Height: 1e-6})
	assert.ErrorIs(t, err, ErrSamplingExhausted)
}

func TestOptions(t *testing.T) {
	g := New(rand.NewPCG(1, 1), WithNumPoints(-1), WithMaxRejections(0))
	assert.Equal(t, model.NumPoints, g.NumPoints())
	assert.Equal(t, DefaultMaxRejections, g.maxRejections)

	g = New(rand.NewPCG(1, 1), WithNumPoints(64))
	points, _, err := g.Generate(model.DefaultConfig(), model.Bounds{Width: 50, Height: 50})
	require.NoError(t, err)
	assert.Len(t, points, 64)
}

func TestUniform(t *testing.T) {
	src := rand.NewPCG(9, 9)
	for range 1000 {
		v := Uniform(src, 3)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 3.0)
	}
}
