package fetcher

import (
	"context"
	"testing"
	"time"
)

func TestMemoryQuota(t *testing.T) {
	ctx := context.Background()

	t.Run("enforces the limit", func(t *testing.T) {
		q := NewMemoryQuota(3)

		for i := 0; i < 3; i++ {
			ok, err := q.TryConsume(ctx)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ok {
				t.Fatalf("call %d unexpectedly over budget", i+1)
			}
		}

		ok, err := q.TryConsume(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ok {
			t.Error("expected budget exhausted")
		}
	})

	t.Run("resets after the window", func(t *testing.T) {
		q := NewMemoryQuota(1)

		now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
		q.SetClock(func() time.Time { return now })

		if ok, _ := q.TryConsume(ctx); !ok {
			t.Fatal("first call should be within budget")
		}
		if ok, _ := q.TryConsume(ctx); ok {
			t.Fatal("second call should be over budget")
		}

		now = now.Add(24*time.Hour + time.Minute)
		if ok, _ := q.TryConsume(ctx); !ok {
			t.Error("expected fresh budget after the window")
		}
	})
}
