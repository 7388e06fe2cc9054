package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse wraps list payloads with a result count
type ListResponse struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

// Meta carries response metadata. The date range fields are set only on
// price-change responses.
type Meta struct {
	Count     int    `json:"count"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// Success sends a single object
func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// List sends a list payload with its count
func List(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, ListResponse{
		Data: data,
		Meta: Meta{Count: count},
	})
}

// ListWithRange sends a list payload echoing the normalized date range
func ListWithRange(c *gin.Context, data any, count int, startDate, endDate string) {
	c.JSON(http.StatusOK, ListResponse{
		Data: data,
		Meta: Meta{
			Count:     count,
			StartDate: startDate,
			EndDate:   endDate,
		},
	})
}
