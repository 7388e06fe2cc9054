package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/jaksa-v/stock-tracker/internal/domain/price"
	"github.com/jaksa-v/stock-tracker/internal/domain/stock"
	"github.com/jaksa-v/stock-tracker/internal/service/prices"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStockRepo struct {
	stocks []stock.Stock
}

func (f *fakeStockRepo) ListAll(context.Context) ([]stock.Stock, error) {
	return f.stocks, nil
}

func (f *fakeStockRepo) GetBySymbol(_ context.Context, symbol string) (*stock.Stock, error) {
	for i := range f.stocks {
		if f.stocks[i].Symbol == symbol {
			s := f.stocks[i]
			return &s, nil
		}
	}
	return nil, stock.ErrStockNotFound
}

func (f *fakeStockRepo) GetBySymbols(_ context.Context, symbols []string) ([]stock.Stock, error) {
	want := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		want[s] = true
	}
	matched := []stock.Stock{}
	for _, s := range f.stocks {
		if want[s.Symbol] {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

func (f *fakeStockRepo) Create(context.Context, *stock.Stock) error { return nil }

type fakePriceRepo struct {
	latest  map[int64]price.Snapshot
	closing map[string]map[int64]price.Snapshot
}

func (f *fakePriceRepo) Insert(context.Context, *price.Snapshot) error { return nil }

func (f *fakePriceRepo) LatestForStock(_ context.Context, stockID int64) (*price.Snapshot, error) {
	if snap, ok := f.latest[stockID]; ok {
		return &snap, nil
	}
	return nil, nil
}

func (f *fakePriceRepo) LatestForStocks(_ context.Context, stockIDs []int64) (map[int64]price.Snapshot, error) {
	out := make(map[int64]price.Snapshot)
	for _, id := range stockIDs {
		if snap, ok := f.latest[id]; ok {
			out[id] = snap
		}
	}
	return out, nil
}

func (f *fakePriceRepo) ClosingOnDate(_ context.Context, stockIDs []int64, date time.Time) (map[int64]price.Snapshot, error) {
	day := f.closing[date.Format("2006-01-02")]
	out := make(map[int64]price.Snapshot)
	for _, id := range stockIDs {
		if snap, ok := day[id]; ok {
			out[id] = snap
		}
	}
	return out, nil
}

// testRouter wires handlers onto a bare engine, mirroring the production
// route layout
func testRouter(stockRepo *fakeStockRepo, priceRepo *fakePriceRepo) *gin.Engine {
	svc := prices.New(stockRepo, priceRepo, nil)
	stockHandler := NewStockHandler(svc)
	priceHandler := NewPriceHandler(svc)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/stocks", stockHandler.List)
	api.GET("/stocks/:symbol", stockHandler.GetBySymbol)
	api.GET("/prices", priceHandler.LatestAll)
	api.GET("/prices/batch", priceHandler.LatestBatch)
	api.GET("/prices/change", priceHandler.Change)
	api.GET("/prices/:symbol", priceHandler.LatestOne)
	return r
}

func defaultStocks() *fakeStockRepo {
	desc := "Consumer electronics"
	return &fakeStockRepo{stocks: []stock.Stock{
		{ID: 1, Symbol: "AAPL", Name: "Apple Inc.", Description: &desc},
		{ID: 2, Symbol: "MSFT", Name: "Microsoft Corporation"},
	}}
}

func doRequest(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rr.Body.String(), err)
	}
	return rr, body
}

func TestStockList(t *testing.T) {
	r := testRouter(defaultStocks(), &fakePriceRepo{})

	rr, body := doRequest(t, r, "/api/stocks")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	data := body["data"].([]any)
	if len(data) != 2 {
		t.Fatalf("expected 2 stocks, got %d", len(data))
	}
	meta := body["meta"].(map[string]any)
	if meta["count"].(float64) != 2 {
		t.Errorf("expected count 2, got %v", meta["count"])
	}

	first := data[0].(map[string]any)
	if first["symbol"] != "AAPL" || first["description"] != "Consumer electronics" {
		t.Errorf("unexpected first stock %v", first)
	}
	second := data[1].(map[string]any)
	if second["description"] != nil {
		t.Errorf("expected null description, got %v", second["description"])
	}
}

func TestStockGetBySymbol(t *testing.T) {
	r := testRouter(defaultStocks(), &fakePriceRepo{})

	t.Run("found, case insensitive", func(t *testing.T) {
		rr, body := doRequest(t, r, "/api/stocks/aapl")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if body["symbol"] != "AAPL" {
			t.Errorf("unexpected body %v", body)
		}
	})

	t.Run("not found", func(t *testing.T) {
		rr, body := doRequest(t, r, "/api/stocks/NOPE")
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
		if body["error"] != "Stock not found" {
			t.Errorf("unexpected error code %v", body["error"])
		}
		if body["message"] != "No stock found with symbol 'NOPE'" {
			t.Errorf("unexpected message %v", body["message"])
		}
	})
}

func TestPriceLatestAll(t *testing.T) {
	priceRepo := &fakePriceRepo{latest: map[int64]price.Snapshot{
		1: {
			StockID:    1,
			Close:      decimal.RequireFromString("232.50"),
			ObservedAt: time.Date(2026, 8, 28, 15, 59, 0, 0, time.UTC),
		},
	}}
	r := testRouter(defaultStocks(), priceRepo)

	rr, body := doRequest(t, r, "/api/prices")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	data := body["data"].([]any)
	if len(data) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(data))
	}

	first := data[0].(map[string]any)
	if first["price"] != "232.5" {
		t.Errorf("expected price 232.5, got %v", first["price"])
	}
	if first["price_timestamp"] != "2026-08-28 15:59:00" {
		t.Errorf("unexpected timestamp %v", first["price_timestamp"])
	}

	// No snapshot yet: fields are null, the stock still appears
	second := data[1].(map[string]any)
	if second["price"] != nil || second["price_timestamp"] != nil {
		t.Errorf("expected null price fields, got %v", second)
	}
}

func TestPriceLatestOne(t *testing.T) {
	r := testRouter(defaultStocks(), &fakePriceRepo{})

	t.Run("known symbol without data", func(t *testing.T) {
		rr, body := doRequest(t, r, "/api/prices/MSFT")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		if body["symbol"] != "MSFT" || body["price"] != nil {
			t.Errorf("unexpected body %v", body)
		}
	})

	t.Run("unknown symbol", func(t *testing.T) {
		rr, body := doRequest(t, r, "/api/prices/NOPE")
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
		if body["error"] != "Stock not found" {
			t.Errorf("unexpected error code %v", body["error"])
		}
	})
}

func TestPriceLatestBatch(t *testing.T) {
	r := testRouter(defaultStocks(), &fakePriceRepo{})

	t.Run("missing parameter", func(t *testing.T) {
		rr, body := doRequest(t, r, "/api/prices/batch")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if body["error"] != "Invalid input parameters" {
			t.Errorf("unexpected error code %v", body["error"])
		}
	})

	t.Run("no valid symbols", func(t *testing.T) {
		rr, body := doRequest(t, r, "/api/prices/batch?stocks=%2C%20%2C")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if body["error"] != "No valid stock symbols provided" {
			t.Errorf("unexpected error code %v", body["error"])
		}
	})

	t.Run("none resolve", func(t *testing.T) {
		rr, body := doRequest(t, r, "/api/prices/batch?stocks=NOPE,ALSO")
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
		if body["error"] != "No stocks found" {
			t.Errorf("unexpected error code %v", body["error"])
		}
	})

	t.Run("partial resolve returns matches only", func(t *testing.T) {
		rr, body := doRequest(t, r, "/api/prices/batch?stocks=msft,NOPE")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		data := body["data"].([]any)
		if len(data) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(data))
		}
		if data[0].(map[string]any)["symbol"] != "MSFT" {
			t.Errorf("unexpected entry %v", data[0])
		}
	})
}

func TestPriceChange(t *testing.T) {
	priceRepo := &fakePriceRepo{closing: map[string]map[int64]price.Snapshot{
		"2026-08-01": {1: {StockID: 1, Close: decimal.RequireFromString("150.00")}},
		"2026-08-15": {1: {StockID: 1, Close: decimal.RequireFromString("160.00")}},
	}}
	r := testRouter(defaultStocks(), priceRepo)

	t.Run("success", func(t *testing.T) {
		rr, body := doRequest(t, r, "/api/prices/change?stocks=AAPL&start_date=2026-08-01&end_date=2026-08-15")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %v", rr.Code, body)
		}

		data := body["data"].([]any)
		if len(data) != 1 {
			t.Fatalf("expected 1 record, got %d", len(data))
		}
		record := data[0].(map[string]any)
		if record["change"] != "10" {
			t.Errorf("expected change 10, got %v", record["change"])
		}
		if record["change_percent"] != "6.67" {
			t.Errorf("expected change_percent 6.67, got %v", record["change_percent"])
		}

		meta := body["meta"].(map[string]any)
		if meta["start_date"] != "2026-08-01" || meta["end_date"] != "2026-08-15" {
			t.Errorf("unexpected meta %v", meta)
		}
	})

	t.Run("missing dates", func(t *testing.T) {
		rr, body := doRequest(t, r, "/api/prices/change?stocks=AAPL")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if body["message"] != "The start_date parameter is required" {
			t.Errorf("unexpected message %v", body["message"])
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		rr, _ := doRequest(t, r, "/api/prices/change?stocks=AAPL&start_date=08-01-2026&end_date=2026-08-15")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("inverted range", func(t *testing.T) {
		rr, body := doRequest(t, r, "/api/prices/change?stocks=AAPL&start_date=2026-08-15&end_date=2026-08-01")
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
		if body["message"] != "The end_date must be a date after or equal to start_date" {
			t.Errorf("unexpected message %v", body["message"])
		}
	})

	t.Run("no price data in range", func(t *testing.T) {
		rr, body := doRequest(t, r, "/api/prices/change?stocks=MSFT&start_date=2026-08-01&end_date=2026-08-15")
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
		if body["error"] != "No price data" {
			t.Errorf("unexpected error code %v", body["error"])
		}
	})
}
