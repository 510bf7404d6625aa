package handlers

import (
	"net/http"

	"github.com/ade-gb/investlite-demo-platform/internal/api/middleware"
	"github.com/ade-gb/investlite-demo-platform/internal/api/response"
	"github.com/ade-gb/investlite-demo-platform/internal/apperrors"
	"github.com/ade-gb/investlite-demo-platform/internal/service"
)

// PortfolioHandler handles portfolio summary HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// Summary handles GET requests for the owner's aggregated portfolio
// metrics: total value at current prices, cost basis, unrealized gain,
// and gain percentage.
//
// Endpoint: GET /api/portfolio/summary
// Response: 200 OK with PortfolioSummary
func (h *PortfolioHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.portfolioService.GetSummary(r.Context(), middleware.OwnerID(r.Context()))
	if err != nil {
		respondDomainError(w, err, apperrors.ErrFailedToGetSummary.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}
