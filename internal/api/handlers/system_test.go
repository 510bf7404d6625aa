package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ade-gb/investlite-demo-platform/internal/api/handlers"
	"github.com/ade-gb/investlite-demo-platform/internal/service"
	"github.com/ade-gb/investlite-demo-platform/internal/testutil"
)

// TestSystemHandler_Health tests the GET /api/system/health endpoint.
func TestSystemHandler_Health(t *testing.T) {
	t.Run("reports healthy with a working database", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(service.NewSystemService(db))

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()
		handler.Health(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response handlers.HealthResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.Status != "healthy" || response.Database != "connected" {
			t.Errorf("Expected healthy/connected, got %s/%s", response.Status, response.Database)
		}
	})

	t.Run("reports unhealthy when the database is gone", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(service.NewSystemService(db))
		db.Close()

		req := httptest.NewRequest(http.MethodGet, "/api/system/health", nil)
		w := httptest.NewRecorder()
		handler.Health(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected status 503, got %d", w.Code)
		}
	})
}

// TestSystemHandler_Version tests the GET /api/system/version endpoint.
func TestSystemHandler_Version(t *testing.T) {
	t.Run("returns application version", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewSystemHandler(service.NewSystemService(db))

		req := httptest.NewRequest(http.MethodGet, "/api/system/version", nil)
		w := httptest.NewRecorder()
		handler.Version(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var response handlers.VersionInfoResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if response.AppVersion == "" {
			t.Error("Expected a non-empty app version")
		}
	})
}
