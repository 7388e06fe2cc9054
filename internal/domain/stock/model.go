package stock

import (
	"sort"
	"strings"
	"time"
)

// Stock represents a tracked symbol in the directory
// Maps to the stocks table
type Stock struct {
	ID          int64     `json:"-" db:"id"`
	Symbol      string    `json:"symbol" db:"symbol"`           // uppercase ticker, natural lookup key
	Name        string    `json:"name" db:"name"`               // display name
	Description *string   `json:"description" db:"description"` // optional free text
	CreatedTS   time.Time `json:"-" db:"created_at"`
	UpdatedTS   time.Time `json:"-" db:"updated_at"`
}

// NormalizeSymbol trims whitespace and uppercases a ticker symbol
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ParseSymbolList parses a comma-separated symbol list into normalized,
// deduplicated symbols. First-occurrence order is preserved; empty entries
// are dropped.
func ParseSymbolList(raw string) []string {
	parts := strings.Split(raw, ",")

	seen := make(map[string]bool, len(parts))
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		symbol := NormalizeSymbol(p)
		if symbol == "" || seen[symbol] {
			continue
		}
		seen[symbol] = true
		symbols = append(symbols, symbol)
	}

	return symbols
}

// SortedSymbols returns a lexicographically sorted copy of symbols.
// Cache keys are built from the sorted form so equivalent symbol sets
// collide to the same entry regardless of input order.
func SortedSymbols(symbols []string) []string {
	sorted := make([]string, len(symbols))
	copy(sorted, symbols)
	sort.Strings(sorted)
	return sorted
}
