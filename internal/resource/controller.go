package resource

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// ReseedsPerSecond is the sustained reseed rate.
	// If 0, reseeding is unlimited.
	ReseedsPerSecond float64

	// ReseedBurst is the number of reseeds allowed back to back.
	// If 0, defaults to 1.
	ReseedBurst int

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Controller manages entry and reseed limits.
type Controller struct {
	cfg Config

	// Entry
	busy *semaphore.Weighted

	// Reseed
	reseedLimiter *rate.Limiter // nil if unlimited
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.ReseedBurst <= 0 {
		cfg.ReseedBurst = 1
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	c := &Controller{
		cfg:  cfg,
		busy: semaphore.NewWeighted(1),
	}

	if cfg.ReseedsPerSecond > 0 {
		c.reseedLimiter = rate.NewLimiter(rate.Limit(cfg.ReseedsPerSecond), cfg.ReseedBurst)
	}

	return c
}

// TryEnter claims exclusive access without blocking.
// Returns false if another call holds it.
func (c *Controller) TryEnter() bool {
	if c == nil {
		return true
	}
	return c.busy.TryAcquire(1)
}

// Leave releases access claimed by TryEnter.
func (c *Controller) Leave() {
	if c == nil {
		return
	}
	c.busy.Release(1)
}

// AllowReseed reports whether a reseed may run now and consumes a token if so.
func (c *Controller) AllowReseed() bool {
	if c == nil || c.reseedLimiter == nil {
		return true
	}
	return c.reseedLimiter.AllowN(c.cfg.Now(), 1)
}

// WaitReseed blocks until a reseed token is available or ctx is canceled.
// The token is reserved against Config.Now; on cancellation it is returned.
func (c *Controller) WaitReseed(ctx context.Context) error {
	if c == nil || c.reseedLimiter == nil {
		return nil
	}

	now := c.cfg.Now()
	r := c.reseedLimiter.ReserveN(now, 1)
	if !r.OK() {
		return fmt.Errorf("reseed: burst %d cannot admit a reseed", c.reseedLimiter.Burst())
	}

	delay := r.DelayFrom(now)
	if delay == 0 {
		return nil
	}

	t := time.NewTimer(delay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		r.CancelAt(c.cfg.Now())
		return ctx.Err()
	}
}

// ReseedLimited reports whether a reseed rate is configured.
func (c *Controller) ReseedLimited() bool {
	return c != nil && c.reseedLimiter != nil
}
