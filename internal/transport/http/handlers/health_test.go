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

func TestHealthStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/healthz", NewHealthHandler().Status)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("health status = %q, want ok", resp.Status)
	}
	if resp.StartedAt.IsZero() {
		t.Fatal("expected a start timestamp")
	}
}

func TestReadinessAggregatesChecks(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHealthHandler(
		WithReadinessCheck("database", func(context.Context) error { return nil }),
		WithReadinessCheck("redis", func(context.Context) error { return errors.New("connection refused") }),
	)

	router := gin.New()
	router.GET("/readyz", handler.Readiness)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}

	var resp ReadyResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "degraded" {
		t.Fatalf("readiness status = %q, want degraded", resp.Status)
	}
	if resp.Checks["database"] != "ok" {
		t.Fatalf("database check = %q, want ok", resp.Checks["database"])
	}
	if resp.Checks["redis"] != "connection refused" {
		t.Fatalf("redis check = %q, want the probe error", resp.Checks["redis"])
	}
}

func TestReadinessWithoutChecksIsReady(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/readyz", NewHealthHandler().Readiness)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}
