package client

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// poller paces reloads at a fixed interval. The first slot is immediate.
type poller struct {
	limiter *rate.Limiter
}

func newPoller(interval time.Duration) *poller {
	return &poller{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// next blocks until the next poll slot. It returns false if the deadline
// arrives first; a zero deadline never expires.
func (p *poller) next(ctx context.Context, deadline time.Time) (bool, error) {
	r := p.limiter.Reserve()
	delay := r.Delay()

	expires := false
	if !deadline.IsZero() {
		if remaining := time.Until(deadline); remaining < delay {
			delay = remaining
			expires = true
		}
	}

	if delay <= 0 {
		return !expires, ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		r.Cancel()
		return false, ctx.Err()
	case <-timer.C:
		return !expires, nil
	}
}
