package adapter

import (
	"context"
	"time"
)

// Locker serializes work on a key across processes.
type Locker interface {
	// TryLock returns a token that must be passed to Unlock, or
	// domain.ErrLockBusy when another holder keeps the key past the retries.
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, err error)
	Unlock(ctx context.Context, key, token string) error
}

// AttemptLimiter counts attempts per key in a fixed window.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
