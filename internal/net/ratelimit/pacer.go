// Package ratelimit paces outbound calls to one upstream API. The pacer is
// a courtesy throttle, not a quota manager: it spreads requests out so a
// fetch never bursts against a provider, nothing more.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a minimum wall-clock interval between successive calls to
// one source's API. Each source gets its own instance; instances are never
// shared across sources, so one throttled source cannot stall another.
type Pacer struct {
	interval time.Duration
	lim      *rate.Limiter
}

// NewPacer creates a pacer with the given minimum interval between calls.
// A zero or negative interval produces a pacer that never blocks.
func NewPacer(minInterval time.Duration) *Pacer {
	if minInterval <= 0 {
		return &Pacer{lim: rate.NewLimiter(rate.Inf, 1)}
	}
	// Burst 1 with a full initial bucket: the first Wait returns
	// immediately, every later Wait spaces out by minInterval.
	return &Pacer{
		interval: minInterval,
		lim:      rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// Wait blocks until at least the configured interval has elapsed since the
// previous Wait on this instance. The first call never blocks. Returns the
// context's error if it is cancelled while waiting.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.lim.Wait(ctx)
}

// Interval returns the configured minimum interval.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}
