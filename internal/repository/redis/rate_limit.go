package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brightshield/insurance-portal/internal/core/port"
)

// RateLimitStore counts attempts per key using a fixed expiring counter.
type RateLimitStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRateLimitStore constructs a Redis-backed rate-limit store.
func NewRateLimitStore(client *redis.Client, keyPrefix string) *RateLimitStore {
	if keyPrefix == "" {
		keyPrefix = "portal:rate-limit"
	}
	return &RateLimitStore{client: client, keyPrefix: keyPrefix}
}

func (s *RateLimitStore) key(identifier string) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, identifier)
}

// Increment bumps the counter for key and returns the new count. The window
// TTL is applied when the counter is first created.
func (s *RateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (int, error) {
	k := s.key(key)

	count, err := s.client.Incr(ctx, k).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}
	if count == 1 && window > 0 {
		if err := s.client.Expire(ctx, k, window).Err(); err != nil {
			return 0, fmt.Errorf("redis expire: %w", err)
		}
	}
	return int(count), nil
}

// Reset clears the counter for key.
func (s *RateLimitStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

var _ port.RateLimitStore = (*RateLimitStore)(nil)
