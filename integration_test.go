package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitor-paiva/comanda-live/config"
	"github.com/vitor-paiva/comanda-live/middleware"
	"github.com/vitor-paiva/comanda-live/services"
)

// newTestApp wires the full router the way main does, against fresh state
func newTestApp() (http.Handler, *services.OrderLedger, *services.TableRegistry) {
	cfg := &config.Config{
		Port:       "3000",
		GoEnv:      "test",
		TableCount: 12,
		PublicDir:  "./public",
	}
	registry := services.NewTableRegistry(cfg.TableCount)
	ledger := services.NewOrderLedger(registry, cfg.StrictTransitions)
	hub := services.NewHub()
	return setupRouter(cfg, registry, ledger, hub), ledger, registry
}

// TestHealthEndpointIntegration tests /api/v1/health with full routing
func TestHealthEndpointIntegration(t *testing.T) {
	router, _, _ := newTestApp()

	req, _ := http.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "Expected status 200 OK")

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err, "Response should be valid JSON")
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "Comanda Live is running", response["message"])
}

// TestSummaryEndpointIntegration tests /api/v1/summary against a ledger
// with one delivered order
func TestSummaryEndpointIntegration(t *testing.T) {
	router, ledger, _ := newTestApp()

	order, err := ledger.Create(3, nil, 10.00, "Maria")
	require.NoError(t, err)
	_, err = ledger.UpdateStatus(order.ID, "delivered")
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/api/v1/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool `json:"success"`
		Data    struct {
			TotalOrders     int     `json:"totalOrders"`
			DeliveredOrders int     `json:"deliveredOrders"`
			Revenue         float64 `json:"revenue"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, 1, response.Data.TotalOrders)
	assert.Equal(t, 1, response.Data.DeliveredOrders)
	assert.InDelta(t, 10.00, response.Data.Revenue, 1e-9)
}

// TestRootServesEntryDocument tests that GET / serves the static entry
// document from the public dir
func TestRootServesEntryDocument(t *testing.T) {
	router, _, _ := newTestApp()

	req, _ := http.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Comanda Live")
}

// TestRequestIDHeaderIntegration tests that every response carries a
// request id
func TestRequestIDHeaderIntegration(t *testing.T) {
	router, _, _ := newTestApp()

	req, _ := http.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}
