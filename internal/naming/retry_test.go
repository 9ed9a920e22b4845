package naming

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"google.golang.org/genai"
)

// testRetrier returns a Retrier whose sleeps are recorded instead of slept
// and whose jitter is pinned to 1.0.
func testRetrier(maxAttempts int) (*Retrier, *[]time.Duration) {
	var sleeps []time.Duration
	r := NewRetrier(maxAttempts)
	r.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	r.jitter = func() float64 { return 1.0 }
	return r, &sleeps
}

func apiError(code int) *genai.APIError {
	return &genai.APIError{Code: code, Message: fmt.Sprintf("status %d", code)}
}

func TestRetrierSucceedsFirstTry(t *testing.T) {
	r, sleeps := testRetrier(3)

	got, err := r.Do(context.Background(), func() (string, error) {
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Fatalf("Do() = %q, %v", got, err)
	}
	if len(*sleeps) != 0 {
		t.Errorf("slept %d times on immediate success", len(*sleeps))
	}
}

// Two 429s then success within three attempts: two backoff sleeps, result
// returned. A fourth needed attempt would have failed instead.
func TestRetrierRecoversFromRateLimit(t *testing.T) {
	r, sleeps := testRetrier(3)

	calls := 0
	got, err := r.Do(context.Background(), func() (string, error) {
		calls++
		if calls <= 2 {
			return "", apiError(429)
		}
		return "named", nil
	})
	if err != nil || got != "named" {
		t.Fatalf("Do() = %q, %v", got, err)
	}
	if calls != 3 {
		t.Errorf("op called %d times, want 3", calls)
	}
	if len(*sleeps) != 2 {
		t.Fatalf("slept %d times, want 2", len(*sleeps))
	}
	// Exponential backoff with jitter pinned to 1: 1s then 2s.
	if (*sleeps)[0] != time.Second || (*sleeps)[1] != 2*time.Second {
		t.Errorf("backoff sleeps = %v, want [1s 2s]", *sleeps)
	}
}

func TestRetrierExhaustsAttempts(t *testing.T) {
	r, _ := testRetrier(3)

	calls := 0
	_, err := r.Do(context.Background(), func() (string, error) {
		calls++
		return "", apiError(503)
	})
	if err == nil {
		t.Fatal("Do() should fail after exhausting attempts")
	}
	if calls != 3 {
		t.Errorf("op called %d times, want 3", calls)
	}

	var apiErr *genai.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != 503 {
		t.Errorf("returned error does not wrap the last failure: %v", err)
	}
}

func TestRetrierStopsOnNonTransientStatus(t *testing.T) {
	for _, code := range []int{400, 401, 403, 404} {
		r, sleeps := testRetrier(3)

		calls := 0
		_, err := r.Do(context.Background(), func() (string, error) {
			calls++
			return "", apiError(code)
		})
		if err == nil {
			t.Fatalf("Do() with status %d should fail", code)
		}
		if calls != 1 {
			t.Errorf("status %d: op called %d times, want 1 (no retry)", code, calls)
		}
		if len(*sleeps) != 0 {
			t.Errorf("status %d: slept before giving up", code)
		}
	}
}

// Errors without any HTTP status are possibly transient and retried.
func TestRetrierRetriesStatuslessErrors(t *testing.T) {
	r, _ := testRetrier(2)

	calls := 0
	got, err := r.Do(context.Background(), func() (string, error) {
		calls++
		if calls == 1 {
			return "", errors.New("connection reset by peer")
		}
		return "ok", nil
	})
	if err != nil || got != "ok" {
		t.Fatalf("Do() = %q, %v", got, err)
	}
	if calls != 2 {
		t.Errorf("op called %d times, want 2", calls)
	}
}

func TestRetrierHonorsRetryAfterHint(t *testing.T) {
	r, sleeps := testRetrier(2)

	hinted := &genai.APIError{
		Code:    429,
		Message: "rate limited",
		Details: []map[string]any{
			{"@type": "type.googleapis.com/google.rpc.ErrorInfo"},
			{
				"@type":      "type.googleapis.com/google.rpc.RetryInfo",
				"retryDelay": "7s",
			},
		},
	}

	calls := 0
	_, err := r.Do(context.Background(), func() (string, error) {
		calls++
		if calls == 1 {
			return "", hinted
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if len(*sleeps) != 1 || (*sleeps)[0] != 7*time.Second {
		t.Errorf("sleeps = %v, want [7s] from server hint", *sleeps)
	}
}

func TestRetrierJitterBounds(t *testing.T) {
	// With real jitter the sleep stays within [0.8, 1.2] of the base.
	r := NewRetrier(2)
	var slept time.Duration
	r.sleep = func(ctx context.Context, d time.Duration) error {
		slept = d
		return nil
	}

	calls := 0
	_, err := r.Do(context.Background(), func() (string, error) {
		calls++
		if calls == 1 {
			return "", apiError(500)
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	if slept < 800*time.Millisecond || slept > 1200*time.Millisecond {
		t.Errorf("jittered sleep = %v, want within [800ms, 1200ms]", slept)
	}
}

func TestRetryAfterHintParsing(t *testing.T) {
	if _, ok := retryAfterHint(errors.New("plain error")); ok {
		t.Error("plain error should carry no retry hint")
	}

	bad := &genai.APIError{
		Code: 429,
		Details: []map[string]any{
			{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "soon"},
		},
	}
	if _, ok := retryAfterHint(bad); ok {
		t.Error("unparseable retryDelay should be ignored")
	}

	good := &genai.APIError{
		Code: 429,
		Details: []map[string]any{
			{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "1.5s"},
		},
	}
	d, ok := retryAfterHint(good)
	if !ok || d != 1500*time.Millisecond {
		t.Errorf("retryAfterHint() = %v, %v; want 1.5s, true", d, ok)
	}
}

func TestRetrierContextCancelledDuringBackoff(t *testing.T) {
	r := NewRetrier(3)
	r.jitter = func() float64 { return 1.0 }

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Do(ctx, func() (string, error) {
		return "", apiError(429)
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Do() error = %v, want context.Canceled", err)
	}
}
