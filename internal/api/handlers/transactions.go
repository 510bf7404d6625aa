package handlers

import (
	"net/http"
	"strconv"

	"github.com/ade-gb/investlite-demo-platform/internal/api/middleware"
	"github.com/ade-gb/investlite-demo-platform/internal/api/response"
	"github.com/ade-gb/investlite-demo-platform/internal/apperrors"
	"github.com/ade-gb/investlite-demo-platform/internal/service"
)

// TransactionHandler handles transaction history HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// GetHistory handles GET requests for the owner's transaction log,
// newest first. The optional limit query parameter caps the number of
// rows returned; it defaults to 50 and 0 means no cap.
//
// Endpoint: GET /api/transaction?limit=50
// Response: 200 OK with []TransactionResponse
// Error: 400 Bad Request if limit is not a non-negative integer
func (h *TransactionHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	limit := service.DefaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.RespondError(w, http.StatusBadRequest, "validation failed", "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	transactions, err := h.transactionService.GetHistory(r.Context(), middleware.OwnerID(r.Context()), limit)
	if err != nil {
		respondDomainError(w, err, apperrors.ErrFailedToRetrieveTransactions.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}
