package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/jaksa-v/stock-tracker/internal/api/response"
	"github.com/jaksa-v/stock-tracker/internal/domain/stock"
	"github.com/jaksa-v/stock-tracker/internal/service/prices"
)

// StockHandler handles stock directory HTTP requests
type StockHandler struct {
	prices *prices.Service
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(prices *prices.Service) *StockHandler {
	return &StockHandler{prices: prices}
}

// List handles GET /api/stocks
func (h *StockHandler) List(c *gin.Context) {
	views, err := h.prices.ListStocks(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}

	response.List(c, views, len(views))
}

// GetBySymbol handles GET /api/stocks/:symbol
func (h *StockHandler) GetBySymbol(c *gin.Context) {
	symbol := stock.NormalizeSymbol(c.Param("symbol"))

	view, err := h.prices.GetStock(c.Request.Context(), symbol)
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
