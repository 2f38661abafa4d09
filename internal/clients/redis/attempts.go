package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/storefront-backend/internal/pkg/logger"
)

// AttemptStore tracks failed login attempts keyed by client identity.
type AttemptStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
	Count(ctx context.Context, key string) (int64, error)
	RetryAfter(ctx context.Context, key string) (time.Duration, error)
	Clear(ctx context.Context, key string) error
	Close() error
}

type attemptStore struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
}

func NewAttemptStore(log *logger.Logger) (AttemptStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(os.Getenv("REDIS_ATTEMPT_PREFIX"))
	if prefix == "" {
		prefix = "login_attempts"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &attemptStore{
		log:    log.With("service", "RedisAttemptStore"),
		rdb:    rdb,
		prefix: prefix,
	}, nil
}

func (s *attemptStore) key(key string) string {
	return s.prefix + ":" + key
}

// Increment bumps the counter and resets its expiry, so the lockout
// window slides forward on every failure.
func (s *attemptStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	if s == nil || s.rdb == nil {
		return 0, fmt.Errorf("redis attempt store not initialized")
	}
	pipe := s.rdb.TxPipeline()
	incr := pipe.Incr(ctx, s.key(key))
	pipe.Expire(ctx, s.key(key), window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}
	return incr.Val(), nil
}

func (s *attemptStore) Count(ctx context.Context, key string) (int64, error) {
	if s == nil || s.rdb == nil {
		return 0, fmt.Errorf("redis attempt store not initialized")
	}
	n, err := s.rdb.Get(ctx, s.key(key)).Int64()
	if err == goredis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get: %w", err)
	}
	return n, nil
}

func (s *attemptStore) RetryAfter(ctx context.Context, key string) (time.Duration, error) {
	if s == nil || s.rdb == nil {
		return 0, fmt.Errorf("redis attempt store not initialized")
	}
	ttl, err := s.rdb.TTL(ctx, s.key(key)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis ttl: %w", err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

func (s *attemptStore) Clear(ctx context.Context, key string) error {
	if s == nil || s.rdb == nil {
		return fmt.Errorf("redis attempt store not initialized")
	}
	return s.rdb.Del(ctx, s.key(key)).Err()
}

func (s *attemptStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
