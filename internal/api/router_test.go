package api_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ade-gb/investlite-demo-platform/internal/api"
	"github.com/ade-gb/investlite-demo-platform/internal/assistant"
	"github.com/ade-gb/investlite-demo-platform/internal/config"
	"github.com/ade-gb/investlite-demo-platform/internal/model"
	"github.com/ade-gb/investlite-demo-platform/internal/repository"
	"github.com/ade-gb/investlite-demo-platform/internal/service"
	"github.com/ade-gb/investlite-demo-platform/internal/testutil"
)

type noopGateway struct{}

var _ assistant.Client = noopGateway{}

func (noopGateway) Reply(context.Context, string, string) (string, error) {
	return "", nil
}

// newTestRouter wires the complete HTTP stack, middleware included,
// against a fresh in-memory database.
func newTestRouter(t *testing.T, db *sql.DB) (http.Handler, *service.CatalogService) {
	t.Helper()

	walletRepo := repository.NewWalletRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	hub := service.NewAssetHub()
	catalog := service.NewCatalogService(assetRepo, hub)
	settings, err := service.NewSettingsService(settingsRepo, "")
	if err != nil {
		t.Fatalf("Failed to build settings service: %v", err)
	}

	svc := api.Services{
		System:      service.NewSystemService(db),
		Ledger:      service.NewLedgerService(db, walletRepo, assetRepo, positionRepo, transactionRepo),
		Catalog:     catalog,
		Portfolio:   service.NewPortfolioService(positionRepo),
		Transaction: service.NewTransactionService(transactionRepo),
		Assistant:   service.NewAssistantService(noopGateway{}, settings),
		Settings:    settings,
	}

	cfg := &config.Config{
		CORS: config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	return api.NewRouter(svc, cfg), catalog
}

// TestAssetStream tests the websocket price stream end to end: through
// the router, the logging and instrumentation middleware, and the
// identity check.
//
// WHY: the upgrade handshake needs the raw TCP connection, so every
// response wrapper between the server and the handler must pass
// http.Hijacker through. A recorder-based handler test cannot catch a
// wrapper that silently drops it.
func TestAssetStream(t *testing.T) {
	t.Run("streams price updates after upgrade", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		router, catalog := newTestRouter(t, db)
		asset := testutil.NewAsset().WithPrice(100).Build(t, db)

		server := httptest.NewServer(router)
		defer server.Close()

		url := strings.Replace(server.URL, "http", "ws", 1) + "/api/asset/stream"
		header := http.Header{"X-User-Id": []string{testutil.MakeID()}}

		conn, resp, err := websocket.DefaultDialer.Dial(url, header)
		if err != nil {
			status := 0
			if resp != nil {
				status = resp.StatusCode
			}
			t.Fatalf("Failed to open stream (status %d): %v", status, err)
		}
		defer conn.Close()

		// The handler subscribes after the handshake, so publish until
		// the first frame lands.
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			ticker := time.NewTicker(20 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-stop:
					return
				case <-ticker.C:
					_, _ = catalog.AdjustPrice(context.Background(), asset.ID, 123.45)
				}
			}
		}()

		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		var got model.Asset
		if err := conn.ReadJSON(&got); err != nil {
			t.Fatalf("Expected a streamed asset frame, got error: %v", err)
		}
		if got.ID != asset.ID {
			t.Errorf("Expected frame for asset %s, got %s", asset.ID, got.ID)
		}
		if got.CurrentPrice != 123.45 {
			t.Errorf("Expected streamed price 123.45, got %v", got.CurrentPrice)
		}
	})

	t.Run("rejects stream without identity", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		router, _ := newTestRouter(t, db)

		server := httptest.NewServer(router)
		defer server.Close()

		url := strings.Replace(server.URL, "http", "ws", 1) + "/api/asset/stream"

		conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
		if err == nil {
			conn.Close()
			t.Fatal("Expected the handshake to be rejected without X-User-Id")
		}
		if resp == nil || resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected 401 handshake response, got %+v", resp)
		}
	})
}
