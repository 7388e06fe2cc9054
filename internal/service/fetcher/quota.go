package fetcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Quota tracks calls against the quote source's hard daily budget.
// TryConsume reserves one call; false means the budget is exhausted and
// the caller must not call the source.
type Quota interface {
	TryConsume(ctx context.Context) (bool, error)
}

// RedisQuota is a Redis-backed daily counter, shared across processes.
// The counter key expires 24h after its first hit.
type RedisQuota struct {
	client *redis.Client
	key    string
	limit  int
}

// NewRedisQuota creates a RedisQuota with the given daily limit
func NewRedisQuota(client *redis.Client, key string, limit int) *RedisQuota {
	return &RedisQuota{
		client: client,
		key:    key,
		limit:  limit,
	}
}

// TryConsume increments the daily counter and reports whether the call
// is within budget
func (q *RedisQuota) TryConsume(ctx context.Context) (bool, error) {
	count, err := q.client.Incr(ctx, q.key).Result()
	if err != nil {
		return false, fmt.Errorf("increment quota counter: %w", err)
	}

	// First hit of the window starts the 24h clock
	if count == 1 {
		if err := q.client.Expire(ctx, q.key, 24*time.Hour).Err(); err != nil {
			return false, fmt.Errorf("set quota expiry: %w", err)
		}
	}

	return count <= int64(q.limit), nil
}

// MemoryQuota is an in-process daily counter. Used when Redis is
// disabled, and in tests. Resets 24h after the first consume.
type MemoryQuota struct {
	mu      sync.Mutex
	limit   int
	count   int
	resetAt time.Time

	now func() time.Time
}

// NewMemoryQuota creates a MemoryQuota with the given daily limit
func NewMemoryQuota(limit int) *MemoryQuota {
	return &MemoryQuota{
		limit: limit,
		now:   time.Now,
	}
}

// TryConsume increments the counter and reports whether the call is
// within budget
func (q *MemoryQuota) TryConsume(_ context.Context) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.now()
	if q.resetAt.IsZero() || now.After(q.resetAt) {
		q.count = 0
		q.resetAt = now.Add(24 * time.Hour)
	}

	q.count++
	return q.count <= q.limit, nil
}

// SetClock overrides the quota's clock. Test helper.
func (q *MemoryQuota) SetClock(now func() time.Time) {
	q.mu.Lock()
	q.now = now
	q.mu.Unlock()
}
