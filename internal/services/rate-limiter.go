package services

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles outbound calls to the pricing API. A nil Limiter
// never blocks.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter builds a token bucket of ratePerSecond with the given burst.
// A non-positive rate disables throttling.
func NewLimiter(ratePerSecond float64, burst int) *Limiter {
	if ratePerSecond <= 0 {
		return &Limiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst < 1 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst)}
}

// Acquire blocks until a token is available or context is done.
func (l *Limiter) Acquire(ctx context.Context) error {
	if l == nil || l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}
