package geocode

import (
	"context"
	"sync"
	"time"
)

// MinInterval is the minimum gap between the starts of two requests to the
// public Nominatim service, per its usage policy.
const MinInterval = 1 * time.Second

// RateLimiter grants permits with at least a minimum interval between the
// grants.
//
// Waiting happens while holding the lock, so concurrent callers are served
// strictly one after the other and never in a burst.
type RateLimiter struct {
	mutex    sync.Mutex
	last     time.Time
	interval time.Duration
}

// NewRateLimiter creates a RateLimiter with the given minimum interval.
func NewRateLimiter(interval time.Duration) *RateLimiter {
	return &RateLimiter{interval: interval}
}

// Acquire blocks until a permit may be granted and records the grant time.
//
// If ctx is done before that, no permit is granted and the context's error is
// returned.
func (l *RateLimiter) Acquire(ctx context.Context) error {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if !l.last.IsZero() {
		if wait := l.interval - time.Since(l.last); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}

	l.last = time.Now()
	return nil
}
