package quote

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote represents the most recent intraday data point for a symbol,
// as returned by an external quote source
type Quote struct {
	Symbol    string
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	Volume    int64
	Timestamp time.Time // source-provided quote time, timezone-aware
}
