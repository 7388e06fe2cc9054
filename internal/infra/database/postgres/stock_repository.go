package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jaksa-v/stock-tracker/internal/domain/stock"
)

// StockRepository implements stock.Repository using PostgreSQL
type StockRepository struct {
	pool *Pool
}

// NewStockRepository creates a new StockRepository
func NewStockRepository(pool *Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

const stockColumns = "id, symbol, name, description, created_at, updated_at"

// ListAll returns all stocks in insertion (id) order
func (r *StockRepository) ListAll(ctx context.Context) ([]stock.Stock, error) {
	query := fmt.Sprintf("SELECT %s FROM stocks ORDER BY id", stockColumns)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks: %w", err)
	}
	defer rows.Close()

	return scanStocks(rows)
}

// GetBySymbol returns a stock by symbol (case-insensitive)
func (r *StockRepository) GetBySymbol(ctx context.Context, symbol string) (*stock.Stock, error) {
	query := fmt.Sprintf("SELECT %s FROM stocks WHERE symbol = $1", stockColumns)

	var s stock.Stock
	err := r.pool.QueryRow(ctx, query, stock.NormalizeSymbol(symbol)).Scan(
		&s.ID, &s.Symbol, &s.Name, &s.Description, &s.CreatedTS, &s.UpdatedTS,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, stock.ErrStockNotFound
		}
		return nil, fmt.Errorf("failed to query stock %s: %w", symbol, err)
	}

	return &s, nil
}

// GetBySymbols returns the stocks matching symbols, in id order.
// Unknown symbols are silently dropped.
func (r *StockRepository) GetBySymbols(ctx context.Context, symbols []string) ([]stock.Stock, error) {
	if len(symbols) == 0 {
		return []stock.Stock{}, nil
	}

	query := fmt.Sprintf("SELECT %s FROM stocks WHERE symbol = ANY($1) ORDER BY id", stockColumns)

	rows, err := r.pool.Query(ctx, query, symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks by symbols: %w", err)
	}
	defer rows.Close()

	return scanStocks(rows)
}

// Create inserts a new stock and sets its ID
func (r *StockRepository) Create(ctx context.Context, s *stock.Stock) error {
	s.Symbol = stock.NormalizeSymbol(s.Symbol)

	query := `
		INSERT INTO stocks (symbol, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query, s.Symbol, s.Name, s.Description).
		Scan(&s.ID, &s.CreatedTS, &s.UpdatedTS)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return stock.ErrDuplicateSymbol
		}
		return fmt.Errorf("failed to insert stock %s: %w", s.Symbol, err)
	}

	return nil
}

// scanStocks scans all rows into stocks
func scanStocks(rows pgx.Rows) ([]stock.Stock, error) {
	stocks := []stock.Stock{}
	for rows.Next() {
		var s stock.Stock
		err := rows.Scan(&s.ID, &s.Symbol, &s.Name, &s.Description, &s.CreatedTS, &s.UpdatedTS)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stocks: %w", err)
	}

	return stocks, nil
}
