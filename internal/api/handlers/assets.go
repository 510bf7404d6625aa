package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ade-gb/investlite-demo-platform/internal/api/request"
	"github.com/ade-gb/investlite-demo-platform/internal/api/response"
	"github.com/ade-gb/investlite-demo-platform/internal/apperrors"
	"github.com/ade-gb/investlite-demo-platform/internal/metrics"
	"github.com/ade-gb/investlite-demo-platform/internal/service"
	"github.com/ade-gb/investlite-demo-platform/internal/validation"
)

// AssetHandler handles asset catalog HTTP requests
type AssetHandler struct {
	catalogService *service.CatalogService
	upgrader       websocket.Upgrader
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(catalogService *service.CatalogService) *AssetHandler {
	return &AssetHandler{
		catalogService: catalogService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from the SPA origin; CORS policy
			// is enforced at the HTTP layer.
			CheckOrigin: func(_ *http.Request) bool { return true },
		},
	}
}

// ListAssets handles GET requests for the investable catalog.
// Only active assets are returned, ordered by name.
//
// Endpoint: GET /api/asset
// Response: 200 OK with []Asset
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.catalogService.ListActiveAssets(r.Context())
	if err != nil {
		respondDomainError(w, err, apperrors.ErrFailedToRetrieveAssets.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, assets)
}

// GetAsset handles GET requests for a single asset by ID.
// Inactive assets are still retrievable so existing positions can be
// displayed and sold.
//
// Endpoint: GET /api/asset/{uuid}
// Response: 200 OK with Asset
// Error: 404 Not Found if the asset does not exist
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	asset, err := h.catalogService.GetAsset(r.Context(), assetID)
	if err != nil {
		respondDomainError(w, err, apperrors.ErrFailedToRetrieveAsset.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// Stream upgrades the connection to a websocket and pushes asset price
// updates as they are produced by the simulator or admin adjustments.
// Each frame is a single JSON-encoded Asset.
//
// Endpoint: GET /api/asset/stream
func (h *AssetHandler) Stream(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	subID, updates := h.catalogService.Subscribe()
	defer h.catalogService.Unsubscribe(subID)

	metrics.StreamClients.Inc()
	defer metrics.StreamClients.Dec()

	// Reader goroutine drains control frames and signals client close.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case asset, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(asset); err != nil {
				return
			}
		}
	}
}

// CreateAsset handles admin POST requests to add an asset to the catalog.
//
// Endpoint: POST /api/admin/asset
// Request Body: CreateAssetRequest
// Response: 201 Created with Asset
// Error: 400 Bad Request if validation fails
func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateAssetRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAsset(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	asset, err := h.catalogService.CreateAsset(r.Context(), req)
	if err != nil {
		respondDomainError(w, err, "failed to create asset")
		return
	}

	response.RespondJSON(w, http.StatusCreated, asset)
}

// AdjustPrice handles admin PUT requests to set an asset's price
// directly, outside the simulator. The 24h change indicator resets.
//
// Endpoint: PUT /api/admin/asset/{uuid}/price
// Request Body: AdjustAssetPriceRequest (price)
// Response: 200 OK with updated Asset
// Error: 400 Bad Request if the price is not positive
// Error: 404 Not Found if the asset does not exist
func (h *AssetHandler) AdjustPrice(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.AdjustAssetPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Price <= 0 {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "price must be positive")
		return
	}

	asset, err := h.catalogService.AdjustPrice(r.Context(), assetID, req.Price)
	if err != nil {
		respondDomainError(w, err, "failed to adjust asset price")
		return
	}

	response.RespondJSON(w, http.StatusOK, asset)
}

// SetActive handles admin PUT requests to activate or deactivate an
// asset. Deactivated assets stop appearing in the catalog and reject new
// investments; existing positions remain sellable.
//
// Endpoint: PUT /api/admin/asset/{uuid}/active
// Request Body: SetAssetActiveRequest (isActive)
// Response: 204 No Content
// Error: 404 Not Found if the asset does not exist
func (h *AssetHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.SetAssetActiveRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.catalogService.SetActive(r.Context(), assetID, req.IsActive); err != nil {
		respondDomainError(w, err, "failed to update asset status")
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
