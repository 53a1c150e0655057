package kmeansvis

import (
	"context"
	"testing"
	"time"

	"github.com/hupe1980/kmeansvis/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlider_DragRegenerates(t *testing.T) {
	v := newTestVisualizer(t, model.Config{ClusterCount: 2, Clumpiness: 20})
	assert.Equal(t, 20.0, v.Slider().Value())

	_, err := v.Step()
	require.NoError(t, err)
	before := v.Snapshot()

	applied, err := v.Slider().DragTo(100)
	require.NoError(t, err)
	assert.True(t, applied)

	snap := v.Snapshot()
	assert.Equal(t, 100.0, v.Config().Clumpiness)
	assert.Equal(t, AwaitingAssignment, snap.Phase)
	assert.NotEqual(t, before.Points, snap.Points)
	assert.Equal(t, model.NumPoints, v.Stats().Uniform)
}

func TestSlider_InvalidValue(t *testing.T) {
	v := newTestVisualizer(t, model.DefaultConfig())

	_, err := v.Slider().DragTo(-5)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
	assert.Equal(t, model.DefaultClumpiness, v.Slider().Value())
}

func TestSlider_Throttled(t *testing.T) {
	now := time.Unix(0, 0)
	metrics := &BasicMetricsCollector{}
	v := newTestVisualizer(t, model.DefaultConfig(),
		WithReseedRate(10, 1),
		withClock(func() time.Time { return now }),
		WithMetricsCollector(metrics),
	)
	s := v.Slider()

	applied, err := s.DragTo(30)
	require.NoError(t, err)
	assert.True(t, applied)
	points := v.Snapshot().Points

	applied, err = s.DragTo(40)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.True(t, s.Pending())
	assert.Equal(t, 40.0, s.Value())
	assert.Equal(t, 30.0, v.Config().Clumpiness)
	assert.Equal(t, points, v.Snapshot().Points)

	applied, err = s.DragTo(45)
	require.NoError(t, err)
	assert.False(t, applied)

	now = now.Add(200 * time.Millisecond)
	applied, err = s.DragTo(50)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.False(t, s.Pending())
	assert.Equal(t, 50.0, v.Config().Clumpiness)

	assert.Equal(t, int64(2), metrics.GetStats().RejectedCount)
	assert.Equal(t, int64(3), metrics.GetStats().GenerateCount)
}

func TestSlider_Flush(t *testing.T) {
	now := time.Unix(0, 0)
	v := newTestVisualizer(t, model.DefaultConfig(),
		WithReseedRate(10, 1),
		withClock(func() time.Time { return now }),
	)
	s := v.Slider()

	applied, err := s.Flush(context.Background())
	require.NoError(t, err)
	assert.False(t, applied, "nothing pending")

	_, err = s.DragTo(60)
	require.NoError(t, err)
	_, err = s.DragTo(65)
	require.NoError(t, err)
	require.True(t, s.Pending())

	applied, err = s.Flush(context.Background())
	require.NoError(t, err)
	assert.True(t, applied)
	assert.False(t, s.Pending())
	assert.Equal(t, 65.0, v.Config().Clumpiness)
}

func TestSlider_FlushCanceled(t *testing.T) {
	v := newTestVisualizer(t, model.DefaultConfig(), WithReseedRate(0.001, 1))
	s := v.Slider()

	_, err := s.DragTo(60)
	require.NoError(t, err)
	_, err = s.DragTo(70)
	require.NoError(t, err)
	require.True(t, s.Pending())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	applied, err := s.Flush(ctx)
	assert.Error(t, err)
	assert.False(t, applied)
	assert.True(t, s.Pending())
}

func TestSlider_FailedDragKeepsState(t *testing.T) {
	v, err := New(model.Bounds{Width: 1, Height: 1},
		WithSeed(1),
		WithStrictSampling(),
		WithMaxRejections(1),
		WithConfig(model.Config{ClusterCount: 1, Clumpiness: 100}),
	)
	require.NoError(t, err)
	before := v.Snapshot()

	applied, err := v.Slider().DragTo(0)
	assert.True(t, applied)
	assert.ErrorIs(t, err, ErrSamplingExhausted)

	assert.Equal(t, 100.0, v.Config().Clumpiness)
	assert.Equal(t, before.Points, v.Snapshot().Points)
	assert.Equal(t, model.NumPoints, v.Stats().Uniform)
	assert.True(t, v.Slider().Pending())
	assert.Equal(t, 0.0, v.Slider().Value())

	applied, err = v.Slider().Flush(context.Background())
	assert.True(t, applied)
	assert.ErrorIs(t, err, ErrSamplingExhausted)
	assert.True(t, v.Slider().Pending())
	assert.Equal(t, 100.0, v.Config().Clumpiness)

	_, err = v.Step()
	assert.NoError(t, err)
}
