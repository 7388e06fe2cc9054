package cache

import (
	"strings"
	"time"

	"github.com/jaksa-v/stock-tracker/internal/domain/stock"
)

// TTLs per operation family. Reference data barely changes; latest-price
// projections go stale within a minute; historical change results for
// closed date ranges never change.
const (
	TTLReference = 24 * time.Hour
	TTLLatest    = 60 * time.Second
	TTLChange    = 24 * time.Hour
)

// KeyAllStocks is the cache key for the full directory listing
const KeyAllStocks = "stocks.all"

// KeyAllLatest is the cache key for the all-symbols latest-price projection
const KeyAllLatest = "stocks.all.latest"

// KeyStock returns the cache key for a single stock lookup
func KeyStock(symbol string) string {
	return "stocks." + stock.NormalizeSymbol(symbol)
}

// KeyStockLatest returns the cache key for a single stock's latest price
func KeyStockLatest(symbol string) string {
	return "stock." + stock.NormalizeSymbol(symbol) + ".latest"
}

// KeyMultipleLatest returns the cache key for a batch latest-price lookup.
// Symbols are assumed normalized; they are sorted here so equivalent sets
// produce the same key.
func KeyMultipleLatest(symbols []string) string {
	sorted := stock.SortedSymbols(symbols)
	return "stocks.multiple." + strings.Join(sorted, ".") + ".latest"
}

// KeyChange returns the cache key for a price-change computation over
// [startDate, endDate], dates in YYYY-MM-DD form.
func KeyChange(symbols []string, startDate, endDate string) string {
	sorted := stock.SortedSymbols(symbols)
	return "stocks.change." + strings.Join(sorted, ".") + "." + startDate + "." + endDate
}
