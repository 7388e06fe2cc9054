package handlers

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jaksa-v/stock-tracker/internal/api/response"
	"github.com/jaksa-v/stock-tracker/internal/domain/stock"
	"github.com/jaksa-v/stock-tracker/internal/service/prices"
)

const dateLayout = "2006-01-02"

// PriceHandler handles price projection HTTP requests
type PriceHandler struct {
	prices *prices.Service
}

// NewPriceHandler creates a new PriceHandler
func NewPriceHandler(prices *prices.Service) *PriceHandler {
	return &PriceHandler{prices: prices}
}

// LatestAll handles GET /api/prices
func (h *PriceHandler) LatestAll(c *gin.Context) {
	views, err := h.prices.LatestAll(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.List(c, views, len(views))
}

// LatestOne handles GET /api/prices/:symbol
func (h *PriceHandler) LatestOne(c *gin.Context) {
	symbol := stock.NormalizeSymbol(c.Param("symbol"))

	view, err := h.prices.LatestOne(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, stock.ErrStockNotFound) {
			response.NotFound(c, response.ErrCodeStockNotFound,
				fmt.Sprintf("No stock found with symbol '%s'", symbol))
			return
		}
		response.InternalError(c, err)
		return
	}

	response.Success(c, view)
}

// LatestBatch handles GET /api/prices/batch?stocks=A,B,C
func (h *PriceHandler) LatestBatch(c *gin.Context) {
	symbols, ok := h.requireSymbols(c)
	if !ok {
		return
	}

	views, err := h.prices.LatestMany(c.Request.Context(), symbols)
	if err != nil {
		if errors.Is(err, prices.ErrNoStocksFound) {
			response.NotFound(c, response.ErrCodeNoStocksFound,
				"None of the requested symbols could be found in our database")
			return
		}
		response.InternalError(c, err)
		return
	}

	response.List(c, views, len(views))
}

// Change handles GET /api/prices/change?stocks=A,B&start_date=&end_date=
func (h *PriceHandler) Change(c *gin.Context) {
	symbols, ok := h.requireSymbols(c)
	if !ok {
		return
	}

	startDate, ok := h.requireDate(c, "start_date")
	if !ok {
		return
	}
	endDate, ok := h.requireDate(c, "end_date")
	if !ok {
		return
	}

	if endDate.Before(startDate) {
		response.BadRequest(c, response.ErrCodeInvalidInput,
			"The end_date must be a date after or equal to start_date")
		return
	}

	records, err := h.prices.Change(c.Request.Context(), symbols, startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, prices.ErrNoStocksFound):
			response.NotFound(c, response.ErrCodeNoStocksFound,
				"None of the requested symbols could be found in our database")
		case errors.Is(err, prices.ErrNoPriceData):
			response.NotFound(c, response.ErrCodeNoPriceData,
				"Could not find price data for the requested stocks in the given date range")
		default:
			response.InternalError(c, err)
		}
		return
	}

	response.ListWithRange(c, records, len(records),
		startDate.Format(dateLayout), endDate.Format(dateLayout))
}

// requireSymbols validates the stocks query parameter. Validation runs
// before any cache or data access.
func (h *PriceHandler) requireSymbols(c *gin.Context) ([]string, bool) {
	raw, exists := c.GetQuery("stocks")
	if !exists || raw == "" {
		response.BadRequest(c, response.ErrCodeInvalidInput,
			"The stocks parameter is required")
		return nil, false
	}

	symbols := stock.ParseSymbolList(raw)
	if len(symbols) == 0 {
		response.BadRequest(c, response.ErrCodeNoValidSymbols,
			"Please provide at least one valid stock symbol")
		return nil, false
	}

	return symbols, true
}

// requireDate validates a YYYY-MM-DD query parameter
func (h *PriceHandler) requireDate(c *gin.Context, name string) (time.Time, bool) {
	raw, exists := c.GetQuery(name)
	if !exists || raw == "" {
		response.BadRequest(c, response.ErrCodeInvalidInput,
			fmt.Sprintf("The %s parameter is required", name))
		return time.Time{}, false
	}

	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		response.BadRequest(c, response.ErrCodeInvalidInput,
			fmt.Sprintf("The %s parameter must be a valid date in YYYY-MM-DD format", name))
		return time.Time{}, false
	}

	return date, true
}
