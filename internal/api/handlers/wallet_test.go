package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ade-gb/investlite-demo-platform/internal/api/handlers"
	"github.com/ade-gb/investlite-demo-platform/internal/api/middleware"
	"github.com/ade-gb/investlite-demo-platform/internal/model"
	"github.com/ade-gb/investlite-demo-platform/internal/testutil"
)

// ownerRequest builds a request carrying the identity header and runs it
// through RequireOwner so the handler sees the owner in context.
func ownerRequest(t *testing.T, handler http.HandlerFunc, method, target, ownerID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("X-User-Id", ownerID)
	w := httptest.NewRecorder()

	middleware.RequireOwner(handler).ServeHTTP(w, req)
	return w
}

// TestWalletHandler_GetWallet tests the GET /api/wallet endpoint.
//
// WHY: Wallet retrieval must create the wallet lazily and must be scoped
// to the identity header, never to anything in the request body.
func TestWalletHandler_GetWallet(t *testing.T) {
	t.Run("returns a fresh wallet with zero balance", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewWalletHandler(testutil.NewTestLedgerService(t, db))
		ownerID := testutil.MakeID()

		w := ownerRequest(t, handler.GetWallet, http.MethodGet, "/api/wallet/", ownerID, "")

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d", w.Code)
		}

		var wallet model.Wallet
		if err := json.NewDecoder(w.Body).Decode(&wallet); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if wallet.UserID != ownerID {
			t.Errorf("Expected wallet for %s, got %s", ownerID, wallet.UserID)
		}
		if wallet.Balance != 0 {
			t.Errorf("Expected zero balance, got %v", wallet.Balance)
		}
	})
}

// TestWalletHandler_FundWallet tests the POST /api/wallet/fund endpoint.
func TestWalletHandler_FundWallet(t *testing.T) {
	t.Run("credits the wallet and returns the transaction", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewWalletHandler(testutil.NewTestLedgerService(t, db))
		ownerID := testutil.MakeID()

		w := ownerRequest(t, handler.FundWallet, http.MethodPost, "/api/wallet/fund", ownerID,
			`{"amount": 250}`)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected status 201, got %d: %s", w.Code, w.Body.String())
		}

		var tx model.Transaction
		if err := json.NewDecoder(w.Body).Decode(&tx); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if tx.Amount != 250 || tx.Type != model.TransactionFunding {
			t.Errorf("Expected funding transaction of 250, got %+v", tx)
		}
		if balance := testutil.WalletBalance(t, db, ownerID); balance != 250 {
			t.Errorf("Expected balance 250, got %v", balance)
		}
	})

	t.Run("returns 400 for a non-positive amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewWalletHandler(testutil.NewTestLedgerService(t, db))

		w := ownerRequest(t, handler.FundWallet, http.MethodPost, "/api/wallet/fund", testutil.MakeID(),
			`{"amount": -10}`)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
		testutil.AssertRowCount(t, db, "transaction", 0)
	})

	t.Run("returns 400 for malformed JSON", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewWalletHandler(testutil.NewTestLedgerService(t, db))

		w := ownerRequest(t, handler.FundWallet, http.MethodPost, "/api/wallet/fund", testutil.MakeID(),
			`{"amount": `)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})

	t.Run("returns 401 without identity header", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := handlers.NewWalletHandler(testutil.NewTestLedgerService(t, db))

		req := httptest.NewRequest(http.MethodPost, "/api/wallet/fund", strings.NewReader(`{"amount": 10}`))
		w := httptest.NewRecorder()
		middleware.RequireOwner(http.HandlerFunc(handler.FundWallet)).ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", w.Code)
		}
	})
}
