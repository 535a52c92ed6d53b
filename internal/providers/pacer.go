package providers

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces the start of successive upstream calls by a fixed delay.
// The first call is never delayed.
type Pacer struct {
	limiter *rate.Limiter
	delay   time.Duration
}

// NewPacer returns a pacer; a non-positive delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1), delay: delay}
}

// Wait blocks until the next call may start or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.limiter == nil {
		return ctx.Err()
	}
	if err := p.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

func (p *Pacer) Delay() time.Duration {
	if p == nil {
		return 0
	}
	return p.delay
}
