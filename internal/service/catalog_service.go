package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/ade-gb/investlite-demo-platform/internal/apperrors"
	"github.com/ade-gb/investlite-demo-platform/internal/api/request"
	"github.com/ade-gb/investlite-demo-platform/internal/model"
	"github.com/ade-gb/investlite-demo-platform/internal/repository"
)

// CatalogService exposes the asset catalog: active assets ordered by name,
// point lookups, admin management, and change notification via the hub.
// Readers always observe the latest committed record; staleness between a
// price write and a read is acceptable, torn records are not.
type CatalogService struct {
	assetRepo *repository.AssetRepository
	hub       *AssetHub
}

// NewCatalogService creates a new CatalogService with the provided repository and hub.
func NewCatalogService(assetRepo *repository.AssetRepository, hub *AssetHub) *CatalogService {
	return &CatalogService{
		assetRepo: assetRepo,
		hub:       hub,
	}
}

// ListActiveAssets retrieves all active assets ordered by display name.
func (s *CatalogService) ListActiveAssets(ctx context.Context) ([]model.Asset, error) {
	assets, err := s.assetRepo.ListActive(ctx)
	if err != nil {
		return nil, persistence(err)
	}
	return assets, nil
}

// GetAsset retrieves one asset by ID.
func (s *CatalogService) GetAsset(ctx context.Context, assetID string) (model.Asset, error) {
	asset, err := s.assetRepo.Get(ctx, assetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) || errors.Is(err, apperrors.ErrEmptyID) {
			return model.Asset{}, err
		}
		return model.Asset{}, persistence(err)
	}
	return asset, nil
}

// Subscribe registers a change-notification subscriber. Updated asset
// records are delivered as the simulator or an admin writes them.
func (s *CatalogService) Subscribe() (int, <-chan model.Asset) {
	return s.hub.Subscribe()
}

// Unsubscribe removes a change-notification subscriber.
func (s *CatalogService) Unsubscribe(id int) {
	s.hub.Unsubscribe(id)
}

// CreateAsset adds a new asset to the catalog. Admin operation.
func (s *CatalogService) CreateAsset(ctx context.Context, req request.CreateAssetRequest) (model.Asset, error) {
	asset := model.Asset{
		ID:            uuid.New().String(),
		Symbol:        req.Symbol,
		Name:          req.Name,
		Description:   req.Description,
		AssetType:     req.AssetType,
		CurrentPrice:  round(req.CurrentPrice),
		RiskLevel:     req.RiskLevel,
		MinInvestment: round(req.MinInvestment),
		IsActive:      true,
	}

	if err := s.assetRepo.Insert(ctx, &asset); err != nil {
		return model.Asset{}, persistence(err)
	}

	s.hub.Publish(asset)
	return asset, nil
}

// AdjustPrice sets an asset's price directly. Admin operation; goes through
// the same atomic per-row update as the simulator and resets the 24h-change
// indicator, since a manual adjustment is not market drift.
func (s *CatalogService) AdjustPrice(ctx context.Context, assetID string, price float64) (model.Asset, error) {
	if price <= 0 {
		return model.Asset{}, apperrors.ErrAmountNotPositive
	}
	price = round(price)

	if err := s.assetRepo.UpdatePrice(ctx, assetID, price, 0); err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			return model.Asset{}, err
		}
		return model.Asset{}, persistence(err)
	}

	asset, err := s.assetRepo.Get(ctx, assetID)
	if err != nil {
		return model.Asset{}, persistence(err)
	}

	s.hub.Publish(asset)
	return asset, nil
}

// SetActive activates or deactivates an asset. Admin operation.
// Deactivated assets cannot be traded and are skipped by the simulator;
// existing positions remain and may still be sold.
func (s *CatalogService) SetActive(ctx context.Context, assetID string, active bool) error {
	err := s.assetRepo.SetActive(ctx, assetID, active)
	if err != nil {
		if errors.Is(err, apperrors.ErrAssetNotFound) {
			return err
		}
		return persistence(err)
	}
	return nil
}
