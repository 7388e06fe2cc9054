package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks a backend's connectivity
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db      Pinger
	cache   Pinger // nil when no cache backend is configured
	version string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db, cache Pinger, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		cache:   cache,
		version: version,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	components := gin.H{}

	if err := h.db.Ping(ctx); err != nil {
		components["database"] = "unavailable"
		status = http.StatusServiceUnavailable
	} else {
		components["database"] = "ok"
	}

	// A down cache degrades latency, not availability
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			components["cache"] = "unavailable"
		} else {
			components["cache"] = "ok"
		}
	}

	c.JSON(status, gin.H{
		"status":     statusText(status),
		"version":    h.version,
		"components": components,
	})
}

func statusText(status int) string {
	if status == http.StatusOK {
		return "healthy"
	}
	return "unhealthy"
}
