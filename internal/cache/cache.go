package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
)

// GetOrCompute memoizes compute under key with the given TTL.
//
// The store is never the source of truth: any store failure (miss,
// unavailable backend, corrupt entry) degrades to direct computation.
// Successful results are written back best-effort. Duplicate concurrent
// computation on a miss is acceptable; both writers converge to the same
// logical value within the TTL window.
func GetOrCompute[T any](ctx context.Context, store Store, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	var value T

	if store != nil {
		raw, err := store.Get(ctx, key)
		switch {
		case err == nil:
			if err := json.Unmarshal(raw, &value); err == nil {
				return value, nil
			}
			// Corrupt entry: drop it and recompute
			log.Warn().Str("key", key).Msg("Dropping undecodable cache entry")
			_ = store.Delete(ctx, key)
		case !errors.Is(err, ErrMiss):
			log.Warn().Err(err).Str("key", key).Msg("Cache read failed, computing directly")
		}
	}

	value, err := compute(ctx)
	if err != nil {
		return value, err
	}

	if store != nil {
		raw, err := json.Marshal(value)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to encode value for cache")
			return value, nil
		}
		if err := store.Set(ctx, key, raw, ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
		}
	}

	return value, nil
}

// Put writes value under key best-effort. Used by the fetcher for
// write-through priming after persisting a snapshot.
func Put(ctx context.Context, store Store, key string, value any, ttl time.Duration) {
	if store == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to encode value for cache")
		return
	}
	if err := store.Set(ctx, key, raw, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}
