package naming

import (
	"context"
	"testing"
	"time"
)

func TestLimiterFirstCallDoesNotBlock(t *testing.T) {
	l := NewLimiter(time.Second)

	start := time.Now()
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first Wait() blocked for %v", elapsed)
	}
}

func TestLimiterSpacesCalls(t *testing.T) {
	const interval = 80 * time.Millisecond
	l := NewLimiter(interval)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("Wait() error: %v", err)
		}
	}
	// Three calls: the first is free, the next two wait one interval each.
	if elapsed := time.Since(start); elapsed < 2*interval {
		t.Errorf("three calls completed in %v, want at least %v", elapsed, 2*interval)
	}
}

func TestLimiterZeroIntervalNeverBlocks(t *testing.T) {
	l := NewLimiter(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 10; i++ {
		if err := l.Wait(ctx); err != nil {
			t.Fatalf("Wait() error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("unlimited limiter blocked for %v", elapsed)
	}
}

func TestLimiterHonorsContextCancellation(t *testing.T) {
	l := NewLimiter(time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_ = l.Wait(ctx) // first call is free
	if err := l.Wait(ctx); err == nil {
		t.Error("second Wait() should fail once the context deadline passes")
	}
}
