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

// PositionHandler handles position and trade HTTP requests.
// Trade prices are resolved server-side from the catalog at request time;
// the client never supplies a price.
type PositionHandler struct {
	ledgerService    *service.LedgerService
	catalogService   *service.CatalogService
	portfolioService *service.PortfolioService
}

// NewPositionHandler creates a new PositionHandler
func NewPositionHandler(
	ledgerService *service.LedgerService,
	catalogService *service.CatalogService,
	portfolioService *service.PortfolioService,
) *PositionHandler {
	return &PositionHandler{
		ledgerService:    ledgerService,
		catalogService:   catalogService,
		portfolioService: portfolioService,
	}
}

// GetPositions handles GET requests for the owner's holdings, enriched
// with asset display fields and valuation at current prices.
//
// Endpoint: GET /api/position
// Response: 200 OK with []PositionResponse
func (h *PositionHandler) GetPositions(w http.ResponseWriter, r *http.Request) {
	positions, err := h.portfolioService.GetPositions(r.Context(), middleware.OwnerID(r.Context()))
	if err != nil {
		respondDomainError(w, err, apperrors.ErrFailedToRetrievePositions.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, positions)
}

// Invest handles POST requests to buy into an asset for a monetary
// amount. The quantity acquired is amount divided by the asset's price
// at execution time. Repeat investments merge into the existing position
// at a weighted-average purchase price.
//
// Endpoint: POST /api/position/invest
// Request Body: InvestRequest (assetId, amount)
// Response: 201 Created with the resulting Position
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the asset does not exist
// Error: 422 Unprocessable Entity if the asset is inactive, the amount is
// below the asset's minimum, or the wallet balance is insufficient
func (h *PositionHandler) Invest(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.InvestRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateInvest(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.catalogService.GetAsset(r.Context(), req.AssetID)
	if err != nil {
		respondDomainError(w, err, apperrors.ErrFailedToRetrieveAsset.Error())
		return
	}

	position, err := h.ledgerService.Invest(
		r.Context(), middleware.OwnerID(r.Context()), req.AssetID, req.Amount, asset.CurrentPrice)
	if err != nil {
		respondDomainError(w, err, "failed to execute investment")
		return
	}

	response.RespondJSON(w, http.StatusCreated, position)
}

// Sell handles POST requests to sell part or all of a position at the
// asset's current price. Selling the full quantity deletes the position.
//
// Endpoint: POST /api/position/{uuid}/sell
// Request Body: SellRequest (quantity)
// Response: 201 Created with the sale Transaction
// Error: 400 Bad Request if the position ID or quantity is invalid
// Error: 404 Not Found if the position does not exist for this owner
// Error: 422 Unprocessable Entity if quantity exceeds the held quantity
func (h *PositionHandler) Sell(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "uuid")
	ownerID := middleware.OwnerID(r.Context())

	req, err := parseJSON[request.SellRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSell(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	position, err := h.portfolioService.GetPosition(r.Context(), ownerID, positionID)
	if err != nil {
		respondDomainError(w, err, apperrors.ErrFailedToRetrievePositions.Error())
		return
	}

	asset, err := h.catalogService.GetAsset(r.Context(), position.AssetID)
	if err != nil {
		respondDomainError(w, err, apperrors.ErrFailedToRetrieveAsset.Error())
		return
	}

	transaction, err := h.ledgerService.Sell(
		r.Context(), ownerID, positionID, req.Quantity, asset.CurrentPrice)
	if err != nil {
		respondDomainError(w, err, "failed to execute sale")
		return
	}

	response.RespondJSON(w, http.StatusCreated, transaction)
}
