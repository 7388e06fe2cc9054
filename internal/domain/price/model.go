package price

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot represents one OHLCV price record for a stock
// Maps to the stock_prices table. Rows are append-only: the fetcher
// inserts them and nothing ever updates or deletes them.
type Snapshot struct {
	ID      int64 `json:"id" db:"id"`
	StockID int64 `json:"stock_id" db:"stock_id"`

	Open   decimal.Decimal `json:"open" db:"open"`
	High   decimal.Decimal `json:"high" db:"high"`
	Low    decimal.Decimal `json:"low" db:"low"`
	Close  decimal.Decimal `json:"close" db:"close"`
	Volume int64           `json:"volume" db:"volume"`

	// ObservedAt is the source-provided quote timestamp.
	// ObservedDate is its calendar date, kept as a separate column for
	// date-bucketed lookups.
	ObservedAt   time.Time `json:"observed_at" db:"observed_at"`
	ObservedDate time.Time `json:"observed_date" db:"observed_date"`

	CreatedTS time.Time `json:"-" db:"created_at"`
}

// DeriveDate fills ObservedDate from ObservedAt when unset
func (s *Snapshot) DeriveDate() {
	if s.ObservedDate.IsZero() && !s.ObservedAt.IsZero() {
		y, m, d := s.ObservedAt.Date()
		s.ObservedDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
}

// Validate checks snapshot invariants before insert
func (s *Snapshot) Validate() error {
	if s.StockID == 0 {
		return ErrMissingStock
	}
	if s.Open.IsNegative() || s.High.IsNegative() || s.Low.IsNegative() || s.Close.IsNegative() {
		return ErrNegativePrice
	}
	if s.Volume < 0 {
		return ErrNegativeVolume
	}
	if s.ObservedAt.IsZero() {
		return ErrMissingTimestamp
	}
	return nil
}
