// Package timer implements the background countdown that keeps a running
// cook cycle's remaining time current and ends the cycle when it runs out.
package timer

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/ricecooker/internal/logger"
)

// DefaultTickInterval is one simulated minute of cooking.
const DefaultTickInterval = time.Minute

// Option configures the countdown.
type Option func(*Countdown)

// WithTickInterval sets how often the countdown fires.
func WithTickInterval(d time.Duration) Option {
	return func(c *Countdown) {
		if d > 0 {
			c.tickInterval = d
		}
	}
}

// TickFunc runs once per tick. Returning false ends the countdown.
type TickFunc func(ctx context.Context) bool

// Countdown fires a TickFunc on a fixed period until it is stopped or the
// TickFunc reports there is nothing left to count.
type Countdown struct {
	log          *logger.Logger
	tickInterval time.Duration

	mu      sync.Mutex
	running bool
	gen     uint64
	cancel  context.CancelFunc
}

// New creates a stopped countdown.
func New(log *logger.Logger, opts ...Option) *Countdown {
	c := &Countdown{
		log:          log,
		tickInterval: DefaultTickInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start begins ticking in the background. Non-blocking. Calling Start on a
// running countdown does nothing.
func (c *Countdown) Start(ctx context.Context, fn TickFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		c.log.Warn("countdown already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.running = true
	c.gen++

	go c.loop(childCtx, c.gen, fn)

	c.log.Debug("countdown started (tick=%s)", c.tickInterval)
}

// Stop cancels the countdown. Safe to call from inside a TickFunc and when
// nothing is running.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}

	c.cancel()
	c.running = false
	c.log.Debug("countdown stopped")
}

// Running reports whether the countdown is active.
func (c *Countdown) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// loop is the main tick loop.
func (c *Countdown) loop(ctx context.Context, gen uint64, fn TickFunc) {
	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Both channels can be ready at once; a cancelled run never ticks.
			if ctx.Err() != nil {
				return
			}
			if !fn(ctx) {
				c.finish(gen)
				return
			}
		}
	}
}

// finish marks the run over unless a newer Start has already replaced it.
func (c *Countdown) finish(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen || !c.running {
		return
	}
	c.cancel()
	c.running = false
	c.log.Debug("countdown finished")
}

// ElapsedMinutes returns whole minutes between start and now, floored.
// A now before start counts as zero.
func ElapsedMinutes(start, now time.Time) int {
	d := now.Sub(start)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}

// RemainingMinutes returns max(total - elapsed, 0).
func RemainingMinutes(total int, start, now time.Time) int {
	left := total - ElapsedMinutes(start, now)
	if left < 0 {
		return 0
	}
	return left
}
