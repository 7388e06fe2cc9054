package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jaksa-v/stock-tracker/internal/domain/price"
)

// PriceRepository implements price.Repository using PostgreSQL
type PriceRepository struct {
	pool *Pool
}

// NewPriceRepository creates a new PriceRepository
func NewPriceRepository(pool *Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

const snapshotColumns = "id, stock_id, open, high, low, close, volume, observed_at, observed_date, created_at"

// Insert appends a new snapshot. observed_date is derived from observed_at
// when unset.
func (r *PriceRepository) Insert(ctx context.Context, s *price.Snapshot) error {
	s.DeriveDate()
	if err := s.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO stock_prices (stock_id, open, high, low, close, volume, observed_at, observed_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		s.StockID, s.Open, s.High, s.Low, s.Close, s.Volume, s.ObservedAt, s.ObservedDate,
	).Scan(&s.ID, &s.CreatedTS)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot for stock %d: %w", s.StockID, err)
	}

	return nil
}

// LatestForStock returns the snapshot with the greatest observed_at for a
// stock, or nil when the stock has no snapshots
func (r *PriceRepository) LatestForStock(ctx context.Context, stockID int64) (*price.Snapshot, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM stock_prices
		WHERE stock_id = $1
		ORDER BY observed_at DESC
		LIMIT 1
	`, snapshotColumns)

	var s price.Snapshot
	err := r.pool.QueryRow(ctx, query, stockID).Scan(
		&s.ID, &s.StockID, &s.Open, &s.High, &s.Low, &s.Close,
		&s.Volume, &s.ObservedAt, &s.ObservedDate, &s.CreatedTS,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query latest snapshot for stock %d: %w", stockID, err)
	}

	return &s, nil
}

// LatestForStocks returns the latest snapshot per stock, keyed by stock id
func (r *PriceRepository) LatestForStocks(ctx context.Context, stockIDs []int64) (map[int64]price.Snapshot, error) {
	if len(stockIDs) == 0 {
		return map[int64]price.Snapshot{}, nil
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT ON (stock_id) %s
		FROM stock_prices
		WHERE stock_id = ANY($1)
		ORDER BY stock_id, observed_at DESC
	`, snapshotColumns)

	rows, err := r.pool.Query(ctx, query, stockIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshots: %w", err)
	}
	defer rows.Close()

	return scanSnapshotsByStock(rows)
}

// ClosingOnDate returns, per stock, the last snapshot recorded on the given
// calendar date
func (r *PriceRepository) ClosingOnDate(ctx context.Context, stockIDs []int64, date time.Time) (map[int64]price.Snapshot, error) {
	if len(stockIDs) == 0 {
		return map[int64]price.Snapshot{}, nil
	}

	query := fmt.Sprintf(`
		SELECT DISTINCT ON (stock_id) %s
		FROM stock_prices
		WHERE stock_id = ANY($1) AND observed_date = $2
		ORDER BY stock_id, observed_at DESC
	`, snapshotColumns)

	rows, err := r.pool.Query(ctx, query, stockIDs, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots on %s: %w", date.Format("2006-01-02"), err)
	}
	defer rows.Close()

	return scanSnapshotsByStock(rows)
}

// scanSnapshotsByStock scans rows into a stock_id keyed map
func scanSnapshotsByStock(rows pgx.Rows) (map[int64]price.Snapshot, error) {
	snapshots := make(map[int64]price.Snapshot)
	for rows.Next() {
		var s price.Snapshot
		err := rows.Scan(
			&s.ID, &s.StockID, &s.Open, &s.High, &s.Low, &s.Close,
			&s.Volume, &s.ObservedAt, &s.ObservedDate, &s.CreatedTS,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots[s.StockID] = s
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snapshots, nil
}
