package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle caps how many sessions per second a backfill may score, so bulk
// rescans don't saturate shared storage. A rate of 0 means unthrottled.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a new backfill throttle
func NewThrottle(sessionsPerSecond float64, burst int) *Throttle {
	if burst <= 0 {
		burst = 5
	}

	limit := rate.Inf
	if sessionsPerSecond > 0 {
		limit = rate.Limit(sessionsPerSecond)
	}

	return &Throttle{limiter: rate.NewLimiter(limit, burst)}
}

// Wait blocks until the next session may be scored
func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}

// Allow checks clearance without waiting
func (t *Throttle) Allow() bool {
	return t.limiter.Allow()
}
