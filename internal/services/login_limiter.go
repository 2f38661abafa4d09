package services

import (
	"context"
	"sync"
	"time"

	"github.com/yungbote/storefront-backend/internal/clients/redis"
	"github.com/yungbote/storefront-backend/internal/pkg/apperr"
	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

// LoginLimiter locks a client out after too many failed login attempts.
// The window slides: every failure pushes the expiry forward.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) error
	RecordFailure(ctx context.Context, key string) error
	Clear(ctx context.Context, key string) error
}

type loginLimiter struct {
	log         *logger.Logger
	store       redis.AttemptStore
	maxAttempts int64
	window      time.Duration
}

func NewLoginLimiter(log *logger.Logger, store redis.AttemptStore, maxAttempts int, window time.Duration) LoginLimiter {
	return &loginLimiter{
		log:         log.With("service", "LoginLimiter"),
		store:       store,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

func (ll *loginLimiter) Allow(ctx context.Context, key string) error {
	count, err := ll.store.Count(ctx, key)
	if err != nil {
		// A broken attempt store should not take logins down with it.
		ll.log.Warn("attempt store unavailable, allowing login", "error", err)
		return nil
	}
	if count < ll.maxAttempts {
		return nil
	}
	retryAfter, err := ll.store.RetryAfter(ctx, key)
	if err != nil || retryAfter <= 0 {
		retryAfter = ll.window
	}
	return apperr.NewLockedOut(retryAfter)
}

func (ll *loginLimiter) RecordFailure(ctx context.Context, key string) error {
	if _, err := ll.store.Increment(ctx, key, ll.window); err != nil {
		ll.log.Warn("failed to record login failure", "key", key, "error", err)
		return err
	}
	return nil
}

func (ll *loginLimiter) Clear(ctx context.Context, key string) error {
	return ll.store.Clear(ctx, key)
}

// memoryAttemptStore is the fallback used when REDIS_ADDR is unset.
// Counters live in process memory, so lockouts do not survive restarts
// and are not shared across replicas.
type memoryAttemptStore struct {
	mu      sync.Mutex
	entries map[string]*memoryAttemptEntry
	now     func() time.Time
}

type memoryAttemptEntry struct {
	count     int64
	expiresAt time.Time
}

func NewMemoryAttemptStore() redis.AttemptStore {
	return &memoryAttemptStore{
		entries: make(map[string]*memoryAttemptEntry),
		now:     time.Now,
	}
}

func (s *memoryAttemptStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	if e == nil || s.now().After(e.expiresAt) {
		e = &memoryAttemptEntry{}
		s.entries[key] = e
	}
	e.count++
	e.expiresAt = s.now().Add(window)
	return e.count, nil
}

func (s *memoryAttemptStore) Count(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	if e == nil || s.now().After(e.expiresAt) {
		return 0, nil
	}
	return e.count, nil
}

func (s *memoryAttemptStore) RetryAfter(_ context.Context, key string) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entries[key]
	if e == nil {
		return 0, nil
	}
	remaining := e.expiresAt.Sub(s.now())
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

func (s *memoryAttemptStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *memoryAttemptStore) Close() error { return nil }
