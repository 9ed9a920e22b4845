package naming

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// DefaultMaxAttempts bounds retries of one naming-service call.
const DefaultMaxAttempts = 3

// transientStatuses are the HTTP statuses worth retrying. Errors that carry
// no status at all (network failures, timeouts) are treated as possibly
// transient too.
var transientStatuses = map[int]bool{
	429: true,
	500: true,
	502: true,
	503: true,
	504: true,
}

// Retrier wraps an operation with bounded retries and exponential backoff,
// honoring server-supplied retry hints. Attempts are sequential; there is
// never more than one in-flight try per request.
type Retrier struct {
	MaxAttempts int

	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() float64
}

// NewRetrier returns a Retrier with the given attempt budget.
func NewRetrier(maxAttempts int) *Retrier {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Retrier{
		MaxAttempts: maxAttempts,
		sleep:       sleepCtx,
		// Uniform jitter in [0.8, 1.2] to avoid synchronized retry storms.
		jitter: func() float64 { return 0.8 + 0.4*rand.Float64() },
	}
}

// Do runs op until it succeeds, fails non-transiently, or the attempt budget
// is exhausted. Between transient failures it sleeps for the server-supplied
// retry hint when one is present, otherwise 2^attempt seconds, jittered.
func (r *Retrier) Do(ctx context.Context, op func() (string, error)) (string, error) {
	var lastErr error

	for attempt := 0; attempt < r.MaxAttempts; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isTransient(err) {
			log.Debug().Err(err).Msg("Non-transient naming failure, not retrying")
			return "", err
		}
		if attempt == r.MaxAttempts-1 {
			break
		}

		delay := time.Duration(1<<uint(attempt)) * time.Second
		if hint, ok := retryAfterHint(err); ok {
			delay = hint
		}
		delay = time.Duration(float64(delay) * r.jitter())

		log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Int("max_attempts", r.MaxAttempts).
			Dur("backoff", delay).
			Msg("Transient naming failure, retrying")

		if err := r.sleep(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("naming call failed after %d attempts: %w", r.MaxAttempts, lastErr)
}

// isTransient classifies a naming-service failure. An explicit HTTP status
// outside the transient table means retrying cannot help.
func isTransient(err error) bool {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return transientStatuses[apiErr.Code]
	}
	return true
}

// retryAfterHint extracts a server-supplied retry delay from a Google API
// error's RetryInfo detail, when present.
func retryAfterHint(err error) (time.Duration, bool) {
	var apiErr *genai.APIError
	if !errors.As(err, &apiErr) {
		return 0, false
	}

	for _, detail := range apiErr.Details {
		typeURL, _ := detail["@type"].(string)
		if typeURL != "type.googleapis.com/google.rpc.RetryInfo" {
			continue
		}
		raw, _ := detail["retryDelay"].(string)
		if raw == "" {
			continue
		}
		d, parseErr := time.ParseDuration(raw)
		if parseErr != nil || d < 0 {
			log.Debug().Str("retry_delay", raw).Msg("Unparseable retry hint, ignoring")
			continue
		}
		return d, true
	}
	return 0, false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
