package quote

import "context"

// Source fetches the latest intraday quote for a symbol from an
// external market-data provider
type Source interface {
	GetIntradayQuote(ctx context.Context, symbol string) (*Quote, error)
}
