package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Store.Get when a key is absent or expired
var ErrMiss = errors.New("cache miss")

// Store is a key-value byte store with per-entry TTL.
// The cache is a pure memoization layer: every value is reproducible by
// recomputation, so implementations may lose entries at any time.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
