// Package circuit wraps sony/gobreaker with the failure policy used for
// every upstream source: trip fast on consecutive failures, or on a high
// error rate once enough traffic has been seen.
package circuit

import (
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// Breaker guards one source's outbound calls.
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// New creates a breaker named after its source. The circuit opens after 3
// consecutive failures, or after a >5% failure rate across at least 20
// requests, and probes again after 60 seconds.
func New(name string) *Breaker {
	st := gobreaker.Settings{Name: name}
	st.Interval = 60 * time.Second
	st.Timeout = 60 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		if counts.ConsecutiveFailures >= 3 {
			return true
		}
		total := counts.Requests
		if total < 20 {
			return false
		}
		return float64(counts.TotalFailures)/float64(total) > 0.05
	}
	return &Breaker{cb: gobreaker.NewCircuitBreaker(st)}
}

// Do runs fn through the breaker. While the circuit is open, fn is not
// invoked and an open-state error is returned instead.
func (b *Breaker) Do(fn func() error) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn()
	})
	return err
}

// State returns the current breaker state name.
func (b *Breaker) State() string {
	return b.cb.State().String()
}

// IsOpen reports whether err came from an open (or half-open, saturated)
// circuit rather than from the guarded call itself.
func IsOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
