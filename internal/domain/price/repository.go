package price

import (
	"context"
	"time"
)

// Repository defines the interface for price snapshot access
type Repository interface {
	// Insert appends a new snapshot
	Insert(ctx context.Context, s *Snapshot) error

	// LatestForStock returns the snapshot with the greatest observed_at
	// for a stock, or nil when the stock has no snapshots
	LatestForStock(ctx context.Context, stockID int64) (*Snapshot, error)

	// LatestForStocks returns the latest snapshot per stock, keyed by
	// stock id. Stocks without snapshots are absent from the map.
	LatestForStocks(ctx context.Context, stockIDs []int64) (map[int64]Snapshot, error)

	// ClosingOnDate returns, per stock, the snapshot with the greatest
	// observed_at among those whose observed_date equals the given
	// calendar date. Stocks without data on that date are absent.
	ClosingOnDate(ctx context.Context, stockIDs []int64, date time.Time) (map[int64]Snapshot, error)
}
