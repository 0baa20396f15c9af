package market

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Throttle gates calls to the external pricing service. One instance is
// shared by every board so the request budget is global, not per world;
// tests substitute a deterministic implementation.
type Throttle interface {
	Do(ctx context.Context, fn func() error) error
}

// RateThrottle combines a token-bucket rate limit with a concurrency ceiling.
type RateThrottle struct {
	limiter *rate.Limiter
	sem     *semaphore.Weighted
}

// NewRateThrottle allows rps requests per second (bursting to burst) with at
// most concurrent calls in flight at once.
func NewRateThrottle(rps float64, burst int, concurrent int64) *RateThrottle {
	return &RateThrottle{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		sem:     semaphore.NewWeighted(concurrent),
	}
}

// Do runs fn once a concurrency slot and a rate token are available. The
// semaphore admits waiters in FIFO order, so no world can starve another.
func (t *RateThrottle) Do(ctx context.Context, fn func() error) error {
	if err := t.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer t.sem.Release(1)

	if err := t.limiter.Wait(ctx); err != nil {
		return err
	}
	return fn()
}
