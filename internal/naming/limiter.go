package naming

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultMinInterval is the default spacing between naming-service calls.
const DefaultMinInterval = 250 * time.Millisecond

// Limiter enforces a minimum spacing between outbound naming-service calls.
// One instance is shared per batch; rate.Limiter serializes access to its
// internal timestamp, so Wait is safe from multiple goroutines.
type Limiter struct {
	l *rate.Limiter
}

// NewLimiter returns a limiter that spaces calls at least minInterval apart.
// The first call never blocks (burst of one).
func NewLimiter(minInterval time.Duration) *Limiter {
	if minInterval <= 0 {
		return &Limiter{l: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Limiter{l: rate.NewLimiter(rate.Every(minInterval), 1)}
}

// Wait blocks until the minimum interval since the previous call has elapsed,
// or ctx is cancelled.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.l.Wait(ctx)
}
