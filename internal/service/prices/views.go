package prices

import (
	"github.com/shopspring/decimal"

	"github.com/jaksa-v/stock-tracker/internal/domain/price"
	"github.com/jaksa-v/stock-tracker/internal/domain/stock"
)

const priceTimestampLayout = "2006-01-02 15:04:05"

// StockView is the directory projection of a stock
type StockView struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// LatestPrice is the latest-price projection of a stock. Price and
// PriceTimestamp are null when the stock has no snapshot yet.
type LatestPrice struct {
	Symbol         string           `json:"symbol"`
	Name           string           `json:"name"`
	Price          *decimal.Decimal `json:"price"`
	PriceTimestamp *string          `json:"price_timestamp"`
}

// ChangeRecord is the price change of one stock between two dates
type ChangeRecord struct {
	Symbol        string          `json:"symbol"`
	Name          string          `json:"name"`
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	StartPrice    decimal.Decimal `json:"start_price"`
	EndPrice      decimal.Decimal `json:"end_price"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
}

// NewStockView builds the directory projection
func NewStockView(s stock.Stock) StockView {
	return StockView{
		Symbol:      s.Symbol,
		Name:        s.Name,
		Description: s.Description,
	}
}

// NewLatestPrice builds the latest-price projection. snap may be nil.
func NewLatestPrice(s stock.Stock, snap *price.Snapshot) LatestPrice {
	view := LatestPrice{
		Symbol: s.Symbol,
		Name:   s.Name,
	}
	if snap != nil {
		closePrice := snap.Close
		ts := snap.ObservedAt.Format(priceTimestampLayout)
		view.Price = &closePrice
		view.PriceTimestamp = &ts
	}
	return view
}
