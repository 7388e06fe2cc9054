package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

// failingStore reports a backend failure on every call
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("backend unavailable")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("backend unavailable")
}

func (failingStore) Delete(context.Context, string) error {
	return errors.New("backend unavailable")
}

func TestGetOrCompute(t *testing.T) {
	ctx := context.Background()

	t.Run("miss computes and stores", func(t *testing.T) {
		store := NewMemoryStore()
		calls := 0
		compute := func(context.Context) (int, error) {
			calls++
			return 42, nil
		}

		v, err := GetOrCompute(ctx, store, "k", time.Minute, compute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 42 {
			t.Errorf("expected 42, got %d", v)
		}

		// Hit: compute must not run again
		v, err = GetOrCompute(ctx, store, "k", time.Minute, compute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 42 || calls != 1 {
			t.Errorf("expected cached 42 with 1 compute call, got %d with %d calls", v, calls)
		}
	})

	t.Run("nil store computes every time", func(t *testing.T) {
		calls := 0
		compute := func(context.Context) (string, error) {
			calls++
			return "x", nil
		}

		for i := 0; i < 2; i++ {
			if _, err := GetOrCompute[string](ctx, nil, "k", time.Minute, compute); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if calls != 2 {
			t.Errorf("expected 2 compute calls, got %d", calls)
		}
	})

	t.Run("compute error is not cached", func(t *testing.T) {
		store := NewMemoryStore()
		boom := errors.New("boom")
		_, err := GetOrCompute(ctx, store, "k", time.Minute, func(context.Context) (int, error) {
			return 0, boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}

		if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
			t.Errorf("expected miss after failed compute, got %v", err)
		}
	})

	t.Run("failing store degrades to compute", func(t *testing.T) {
		v, err := GetOrCompute(ctx, failingStore{}, "k", time.Minute, func(context.Context) (int, error) {
			return 7, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 7 {
			t.Errorf("expected 7, got %d", v)
		}
	})

	t.Run("corrupt entry recomputes", func(t *testing.T) {
		store := NewMemoryStore()
		if err := store.Set(ctx, "k", []byte("{not json"), time.Minute); err != nil {
			t.Fatal(err)
		}

		v, err := GetOrCompute(ctx, store, "k", time.Minute, func(context.Context) (int, error) {
			return 9, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != 9 {
			t.Errorf("expected 9, got %d", v)
		}
	})
}

func TestPut(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	Put(ctx, store, "k", map[string]int{"n": 3}, time.Minute)

	raw, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"n":3}` {
		t.Errorf("unexpected stored value %s", raw)
	}

	// nil store is a no-op
	Put(ctx, nil, "k", 1, time.Minute)
}

func TestMemoryStoreTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })

	if err := store.Set(ctx, "k", []byte("v"), 60*time.Second); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Get(ctx, "k"); err != nil {
		t.Fatalf("expected hit before expiry, got %v", err)
	}

	now = now.Add(61 * time.Second)
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss after expiry, got %v", err)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if err := store.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}
