package port

import (
	"context"
	"time"
)

// RateLimitStore counts attempts within a sliding window, keyed by caller identity.
type RateLimitStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int, error)
	Reset(ctx context.Context, key string) error
}
