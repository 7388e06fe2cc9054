package prices

import (
	"github.com/shopspring/decimal"

	"github.com/jaksa-v/stock-tracker/internal/domain/price"
	"github.com/jaksa-v/stock-tracker/internal/domain/stock"
)

var hundred = decimal.NewFromInt(100)

// computeChanges computes per-stock price changes between two dates.
//
// Only stocks present in both startPrices and endPrices produce a record;
// the rest are excluded entirely. Output follows the order of stocks,
// which callers pass in directory (id) order.
//
// When the start close is zero the percent change is reported as 0 rather
// than undefined. That is an inherited policy choice, not arithmetic.
func computeChanges(stocks []stock.Stock, startPrices, endPrices map[int64]price.Snapshot, startDate, endDate string) []ChangeRecord {
	records := []ChangeRecord{}

	for _, s := range stocks {
		startSnap, ok := startPrices[s.ID]
		if !ok {
			continue
		}
		endSnap, ok := endPrices[s.ID]
		if !ok {
			continue
		}

		change := endSnap.Close.Sub(startSnap.Close)

		changePercent := decimal.Zero
		if startSnap.Close.IsPositive() {
			changePercent = change.Div(startSnap.Close).Mul(hundred)
		}

		records = append(records, ChangeRecord{
			Symbol:        s.Symbol,
			Name:          s.Name,
			StartDate:     startDate,
			EndDate:       endDate,
			StartPrice:    startSnap.Close.Round(2),
			EndPrice:      endSnap.Close.Round(2),
			Change:        change.Round(2),
			ChangePercent: changePercent.Round(2),
		})
	}

	return records
}
