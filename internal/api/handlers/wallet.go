package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ade-gb/investlite-demo-platform/internal/api/middleware"
	"github.com/ade-gb/investlite-demo-platform/internal/api/request"
	"github.com/ade-gb/investlite-demo-platform/internal/api/response"
	"github.com/ade-gb/investlite-demo-platform/internal/apperrors"
	"github.com/ade-gb/investlite-demo-platform/internal/service"
	"github.com/ade-gb/investlite-demo-platform/internal/validation"
)

// WalletHandler handles wallet-related HTTP requests
type WalletHandler struct {
	ledgerService *service.LedgerService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(ledgerService *service.LedgerService) *WalletHandler {
	return &WalletHandler{ledgerService: ledgerService}
}

// GetWallet handles GET requests for the authenticated owner's wallet.
// A wallet is created lazily with a zero balance on first access.
//
// Endpoint: GET /api/wallet
// Response: 200 OK with Wallet
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	wallet, err := h.ledgerService.GetWallet(r.Context(), middleware.OwnerID(r.Context()))
	if err != nil {
		respondDomainError(w, err, apperrors.ErrFailedToRetrieveWallet.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, wallet)
}

// FundWallet handles POST requests to add demo funds to the wallet.
// Funding is not idempotent: each accepted request credits the balance
// and appends a funding transaction.
//
// Endpoint: POST /api/wallet/fund
// Request Body: FundWalletRequest (amount)
// Response: 201 Created with the funding Transaction
// Error: 400 Bad Request if the body is invalid or the amount is not positive
// Error: 503 Service Unavailable if the store rejects the write
func (h *WalletHandler) FundWallet(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.FundWalletRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateFundWallet(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, err := h.ledgerService.FundWallet(r.Context(), middleware.OwnerID(r.Context()), req.Amount)
	if err != nil {
		respondDomainError(w, err, "failed to fund wallet")
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}

// Reconcile handles admin GET requests to audit a wallet against its
// transaction log. The wallet balance must equal the signed sum of all
// logged transaction amounts.
//
// Endpoint: GET /api/admin/wallet/{uuid}/reconcile
// Response: 200 OK with ReconciliationReport
// Error: 400 Bad Request if the owner ID is invalid (validated by middleware)
func (h *WalletHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "uuid")

	report, err := h.ledgerService.Reconcile(r.Context(), userID)
	if err != nil {
		respondDomainError(w, err, "failed to reconcile wallet")
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
