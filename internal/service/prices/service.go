package prices

import (
	"context"
	"fmt"
	"time"

	"github.com/jaksa-v/stock-tracker/internal/cache"
	"github.com/jaksa-v/stock-tracker/internal/domain/price"
	"github.com/jaksa-v/stock-tracker/internal/domain/stock"
)

const dateLayout = "2006-01-02"

// Service serves the read model: directory listings, latest-price
// projections and price-change computations, each memoized behind the
// read cache. The cache is never the source of truth; a nil or failing
// store degrades to direct computation.
type Service struct {
	stocks stock.Repository
	prices price.Repository
	store  cache.Store
}

// New creates a new read-model service. store may be nil.
func New(stocks stock.Repository, prices price.Repository, store cache.Store) *Service {
	return &Service{
		stocks: stocks,
		prices: prices,
		store:  store,
	}
}

// ListStocks returns the full directory listing
func (s *Service) ListStocks(ctx context.Context) ([]StockView, error) {
	return cache.GetOrCompute(ctx, s.store, cache.KeyAllStocks, cache.TTLReference,
		func(ctx context.Context) ([]StockView, error) {
			stocks, err := s.stocks.ListAll(ctx)
			if err != nil {
				return nil, err
			}
			views := make([]StockView, 0, len(stocks))
			for _, st := range stocks {
				views = append(views, NewStockView(st))
			}
			return views, nil
		})
}

// GetStock returns one stock by symbol.
// Returns stock.ErrStockNotFound for unknown symbols.
func (s *Service) GetStock(ctx context.Context, symbol string) (StockView, error) {
	symbol = stock.NormalizeSymbol(symbol)
	return cache.GetOrCompute(ctx, s.store, cache.KeyStock(symbol), cache.TTLReference,
		func(ctx context.Context) (StockView, error) {
			st, err := s.stocks.GetBySymbol(ctx, symbol)
			if err != nil {
				return StockView{}, err
			}
			return NewStockView(*st), nil
		})
}

// LatestAll returns the latest-price projection for every stock
func (s *Service) LatestAll(ctx context.Context) ([]LatestPrice, error) {
	return cache.GetOrCompute(ctx, s.store, cache.KeyAllLatest, cache.TTLLatest,
		func(ctx context.Context) ([]LatestPrice, error) {
			return s.computeLatestAll(ctx)
		})
}

// LatestOne returns the latest-price projection for one stock.
// Returns stock.ErrStockNotFound for unknown symbols; the price fields
// are null when the stock has no snapshot.
func (s *Service) LatestOne(ctx context.Context, symbol string) (LatestPrice, error) {
	symbol = stock.NormalizeSymbol(symbol)
	return cache.GetOrCompute(ctx, s.store, cache.KeyStockLatest(symbol), cache.TTLLatest,
		func(ctx context.Context) (LatestPrice, error) {
			st, err := s.stocks.GetBySymbol(ctx, symbol)
			if err != nil {
				return LatestPrice{}, err
			}
			snap, err := s.prices.LatestForStock(ctx, st.ID)
			if err != nil {
				return LatestPrice{}, err
			}
			return NewLatestPrice(*st, snap), nil
		})
}

// LatestMany returns latest-price projections for a symbol subset, in
// directory order. Returns ErrNoStocksFound when no symbol resolves.
func (s *Service) LatestMany(ctx context.Context, symbols []string) ([]LatestPrice, error) {
	return cache.GetOrCompute(ctx, s.store, cache.KeyMultipleLatest(symbols), cache.TTLLatest,
		func(ctx context.Context) ([]LatestPrice, error) {
			stocks, err := s.stocks.GetBySymbols(ctx, symbols)
			if err != nil {
				return nil, err
			}
			if len(stocks) == 0 {
				return nil, ErrNoStocksFound
			}
			return s.latestViews(ctx, stocks)
		})
}

// Change computes per-stock price changes between startDate and endDate.
// Returns ErrNoStocksFound when no symbol resolves and ErrNoPriceData
// when no resolved stock has snapshots at both dates.
func (s *Service) Change(ctx context.Context, symbols []string, startDate, endDate time.Time) ([]ChangeRecord, error) {
	start := startDate.Format(dateLayout)
	end := endDate.Format(dateLayout)

	return cache.GetOrCompute(ctx, s.store, cache.KeyChange(symbols, start, end), cache.TTLChange,
		func(ctx context.Context) ([]ChangeRecord, error) {
			stocks, err := s.stocks.GetBySymbols(ctx, symbols)
			if err != nil {
				return nil, err
			}
			if len(stocks) == 0 {
				return nil, ErrNoStocksFound
			}

			ids := stockIDs(stocks)

			startPrices, err := s.prices.ClosingOnDate(ctx, ids, startDate)
			if err != nil {
				return nil, fmt.Errorf("closing prices on %s: %w", start, err)
			}
			endPrices, err := s.prices.ClosingOnDate(ctx, ids, endDate)
			if err != nil {
				return nil, fmt.Errorf("closing prices on %s: %w", end, err)
			}

			records := computeChanges(stocks, startPrices, endPrices, start, end)
			if len(records) == 0 {
				return nil, ErrNoPriceData
			}
			return records, nil
		})
}

// PrimeStockLatest write-through primes the per-symbol latest entry after
// a new snapshot is persisted
func (s *Service) PrimeStockLatest(ctx context.Context, st stock.Stock, snap *price.Snapshot) {
	cache.Put(ctx, s.store, cache.KeyStockLatest(st.Symbol), NewLatestPrice(st, snap), cache.TTLLatest)
}

// PrimeLatestAll recomputes and primes the aggregate latest entry
func (s *Service) PrimeLatestAll(ctx context.Context) error {
	views, err := s.computeLatestAll(ctx)
	if err != nil {
		return err
	}
	cache.Put(ctx, s.store, cache.KeyAllLatest, views, cache.TTLLatest)
	return nil
}

func (s *Service) computeLatestAll(ctx context.Context) ([]LatestPrice, error) {
	stocks, err := s.stocks.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.latestViews(ctx, stocks)
}

// latestViews builds latest-price projections for stocks, preserving
// their order
func (s *Service) latestViews(ctx context.Context, stocks []stock.Stock) ([]LatestPrice, error) {
	snapshots, err := s.prices.LatestForStocks(ctx, stockIDs(stocks))
	if err != nil {
		return nil, err
	}

	views := make([]LatestPrice, 0, len(stocks))
	for _, st := range stocks {
		var snap *price.Snapshot
		if latest, ok := snapshots[st.ID]; ok {
			snapCopy := latest
			snap = &snapCopy
		}
		views = append(views, NewLatestPrice(st, snap))
	}
	return views, nil
}

func stockIDs(stocks []stock.Stock) []int64 {
	ids := make([]int64, 0, len(stocks))
	for _, st := range stocks {
		ids = append(ids, st.ID)
	}
	return ids
}
