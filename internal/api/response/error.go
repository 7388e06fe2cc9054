package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jaksa-v/stock-tracker/internal/api/middleware"
)

// ErrorResponse is the error body for all user-visible errors: a stable
// machine code plus a human message. No internals leak past this shape.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Stable error codes
const (
	ErrCodeInvalidInput    = "Invalid input parameters"
	ErrCodeNoValidSymbols  = "No valid stock symbols provided"
	ErrCodeStockNotFound   = "Stock not found"
	ErrCodeNoStocksFound   = "No stocks found"
	ErrCodeNoPriceData     = "No price data"
	ErrCodeInternalFailure = "Internal server error"
)

// Error sends an error response
func Error(c *gin.Context, statusCode int, code, message string) {
	log.Warn().
		Str("request_id", middleware.GetRequestID(c)).
		Str("error_code", code).
		Str("message", message).
		Int("status", statusCode).
		Msg("API error response")

	c.JSON(statusCode, ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// BadRequest sends a 400 validation error
func BadRequest(c *gin.Context, code, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// NotFound sends a 404 error
func NotFound(c *gin.Context, code, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// InternalError sends a 500 error, logging the cause without exposing it
func InternalError(c *gin.Context, err error) {
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(c)).
			Msg("Internal server error")
	}
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   ErrCodeInternalFailure,
		Message: "An unexpected error occurred",
	})
}
