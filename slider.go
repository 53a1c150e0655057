package kmeansvis

import (
	"context"

	"github.com/hupe1980/kmeansvis/model"
)

// Slider is the clumpiness control. Every accepted drag regenerates the
// point cloud. With a reseed rate configured, drags arriving faster than the
// rate are remembered and the latest value is applied by the next accepted
// drag or by Flush.
type Slider struct {
	v       *Visualizer
	value   float64
	pending bool
}

// Value returns the last value dragged to.
func (s *Slider) Value() float64 {
	return s.value
}

// Pending reports whether a throttled value has not been applied yet.
func (s *Slider) Pending() bool {
	return s.pending
}

// DragTo moves the slider. applied is false when the reseed limit deferred
// the regeneration.
func (s *Slider) DragTo(value float64) (bool, error) {
	v := s.v
	cfg := model.Config{ClusterCount: v.cfg.ClusterCount, Clumpiness: value}
	if err := cfg.Validate(); err != nil {
		return false, translateError(err)
	}

	s.value = value
	if !v.ctrl.AllowReseed() {
		s.pending = true
		v.metrics.RecordRejected("drag")
		v.logger.LogThrottled(context.Background(), value)
		return false, nil
	}

	return true, s.apply()
}

// Flush waits for the reseed limit and applies a pending value.
// It returns false if nothing was pending.
func (s *Slider) Flush(ctx context.Context) (bool, error) {
	if !s.pending {
		return false, nil
	}
	if err := s.v.ctrl.WaitReseed(ctx); err != nil {
		return false, err
	}
	return true, s.apply()
}

func (s *Slider) apply() error {
	v := s.v
	if !v.ctrl.TryEnter() {
		s.pending = true
		return v.busy("drag")
	}
	defer v.ctrl.Leave()

	cfg := v.cfg
	cfg.Clumpiness = s.value
	if _, err := v.regenerate(cfg); err != nil {
		// Keep the value pending so a later Flush can retry it.
		s.pending = true
		return err
	}

	s.pending = false
	return nil
}
