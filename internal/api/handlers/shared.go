// Package handlers contains the HTTP handlers for the API endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ade-gb/investlite-demo-platform/internal/api/response"
	"github.com/ade-gb/investlite-demo-platform/internal/apperrors"
)

// parseJSON decodes the request body into the given request type.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, fmt.Errorf("invalid JSON: %w", err)
	}
	return req, nil
}

// respondDomainError maps a service-layer error onto an HTTP status.
// Not-found errors map to 404, trade-rule rejections to 422, storage
// failures to 503, and anything unexpected to 500 with the fallback
// message.
func respondDomainError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrWalletNotFound),
		errors.Is(err, apperrors.ErrAssetNotFound),
		errors.Is(err, apperrors.ErrPositionNotFound),
		errors.Is(err, apperrors.ErrTransactionNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), nil)

	case errors.Is(err, apperrors.ErrAmountNotPositive),
		errors.Is(err, apperrors.ErrQuantityNotPositive),
		errors.Is(err, apperrors.ErrBelowMinimumInvestment),
		errors.Is(err, apperrors.ErrAssetInactive),
		errors.Is(err, apperrors.ErrInsufficientFunds),
		errors.Is(err, apperrors.ErrInsufficientHoldings):
		response.RespondError(w, http.StatusUnprocessableEntity, "trade rejected", err.Error())

	case errors.Is(err, apperrors.ErrPersistence):
		response.RespondError(w, http.StatusServiceUnavailable, "storage unavailable", "please retry")

	default:
		response.RespondError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}
