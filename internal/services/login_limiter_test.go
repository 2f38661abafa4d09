package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/storefront-backend/internal/pkg/apperr"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestLoginLimiterLocksOutAfterMaxFailures(t *testing.T) {
	ctx := context.Background()
	limiter := NewLoginLimiter(testLogger(t), NewMemoryAttemptStore(), 5, 30*time.Minute)

	for i := 0; i < 5; i++ {
		if err := limiter.Allow(ctx, "10.0.0.1"); err != nil {
			t.Fatalf("attempt %d should be allowed: %v", i+1, err)
		}
		if err := limiter.RecordFailure(ctx, "10.0.0.1"); err != nil {
			t.Fatalf("RecordFailure: %v", err)
		}
	}

	err := limiter.Allow(ctx, "10.0.0.1")
	if err == nil {
		t.Fatal("sixth attempt should be rejected")
	}
	var lockErr *apperr.LockedOutError
	if !errors.As(err, &lockErr) {
		t.Fatalf("expected LockedOutError, got %T", err)
	}
	if lockErr.RetryAfter <= 0 {
		t.Fatalf("retry-after should be positive, got %s", lockErr.RetryAfter)
	}
	if lockErr.RetryAfter > 30*time.Minute {
		t.Fatalf("retry-after exceeds window: %s", lockErr.RetryAfter)
	}

	if err := limiter.Allow(ctx, "10.0.0.2"); err != nil {
		t.Fatalf("other client should be unaffected: %v", err)
	}
}

func TestLoginLimiterClearResetsCounter(t *testing.T) {
	ctx := context.Background()
	limiter := NewLoginLimiter(testLogger(t), NewMemoryAttemptStore(), 5, 30*time.Minute)

	for i := 0; i < 5; i++ {
		_ = limiter.RecordFailure(ctx, "10.0.0.3")
	}
	if err := limiter.Allow(ctx, "10.0.0.3"); err == nil {
		t.Fatal("should be locked out")
	}
	if err := limiter.Clear(ctx, "10.0.0.3"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := limiter.Allow(ctx, "10.0.0.3"); err != nil {
		t.Fatalf("should be allowed after clear: %v", err)
	}
}

func TestLoginLimiterWindowSlides(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryAttemptStore().(*memoryAttemptStore)
	now := time.Now()
	store.now = func() time.Time { return now }
	limiter := NewLoginLimiter(testLogger(t), store, 5, 30*time.Minute)

	for i := 0; i < 4; i++ {
		_ = limiter.RecordFailure(ctx, "10.0.0.4")
	}

	// 29 minutes later the counter is still alive; one more failure locks out
	// and pushes the expiry another full window.
	now = now.Add(29 * time.Minute)
	_ = limiter.RecordFailure(ctx, "10.0.0.4")
	if err := limiter.Allow(ctx, "10.0.0.4"); err == nil {
		t.Fatal("should be locked out inside the window")
	}

	now = now.Add(31 * time.Minute)
	if err := limiter.Allow(ctx, "10.0.0.4"); err != nil {
		t.Fatalf("window expired, should be allowed: %v", err)
	}
}

func TestMemoryAttemptStoreConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryAttemptStore()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < 50; i++ {
		g.Go(func() error {
			_, err := store.Increment(gctx, "concurrent", time.Minute)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent increments: %v", err)
	}

	count, err := store.Count(ctx, "concurrent")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 50 {
		t.Fatalf("expected 50, got %d", count)
	}
}
