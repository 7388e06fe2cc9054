package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(context.Context) error { return f.err }

func healthRouter(db, cache Pinger) *gin.Engine {
	r := gin.New()
	r.GET("/health", NewHealthHandler(db, cache, "1.0.0").Health)
	return r
}

func getHealth(t *testing.T, r *gin.Engine) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rr.Code, body
}

func TestHealth(t *testing.T) {
	t.Run("all components up", func(t *testing.T) {
		code, body := getHealth(t, healthRouter(fakePinger{}, fakePinger{}))
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if body["status"] != "healthy" || body["version"] != "1.0.0" {
			t.Errorf("unexpected body %v", body)
		}
	})

	t.Run("database down is unhealthy", func(t *testing.T) {
		code, body := getHealth(t, healthRouter(fakePinger{err: errors.New("down")}, fakePinger{}))
		if code != http.StatusServiceUnavailable {
			t.Fatalf("expected 503, got %d", code)
		}
		if body["status"] != "unhealthy" {
			t.Errorf("unexpected status %v", body["status"])
		}
	})

	t.Run("cache down stays healthy", func(t *testing.T) {
		code, body := getHealth(t, healthRouter(fakePinger{}, fakePinger{err: errors.New("down")}))
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		components := body["components"].(map[string]any)
		if components["cache"] != "unavailable" {
			t.Errorf("unexpected components %v", components)
		}
	})

	t.Run("no cache backend configured", func(t *testing.T) {
		code, body := getHealth(t, healthRouter(fakePinger{}, nil))
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		components := body["components"].(map[string]any)
		if _, exists := components["cache"]; exists {
			t.Errorf("cache component reported without a backend: %v", components)
		}
	})
}
