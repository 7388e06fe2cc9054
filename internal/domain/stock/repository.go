package stock

import "context"

// Repository defines the interface for stock directory access
type Repository interface {
	// ListAll returns all stocks in insertion (id) order
	ListAll(ctx context.Context) ([]Stock, error)

	// GetBySymbol returns a stock by symbol (case-insensitive)
	GetBySymbol(ctx context.Context, symbol string) (*Stock, error)

	// GetBySymbols returns the stocks matching the given symbols,
	// in insertion (id) order. Unknown symbols are silently dropped.
	GetBySymbols(ctx context.Context, symbols []string) ([]Stock, error)

	// Create inserts a new stock and sets its ID
	Create(ctx context.Context, s *Stock) error
}
