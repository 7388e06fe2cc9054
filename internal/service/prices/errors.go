package prices

import "errors"

var (
	// ErrNoStocksFound means none of the requested symbols exist in the
	// directory
	ErrNoStocksFound = errors.New("no stocks found for requested symbols")

	// ErrNoPriceData means no requested stock has snapshots at both dates
	ErrNoPriceData = errors.New("no price data in requested date range")
)
