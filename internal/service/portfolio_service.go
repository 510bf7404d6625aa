package service

import (
	"context"

	"github.com/ade-gb/investlite-demo-platform/internal/model"
	"github.com/ade-gb/investlite-demo-platform/internal/repository"
)

// PortfolioService computes read-only derived metrics over an owner's
// positions at current catalog prices. Nothing here mutates state.
type PortfolioService struct {
	positionRepo *repository.PositionRepository
}

// NewPortfolioService creates a new PortfolioService with the provided repository.
func NewPortfolioService(positionRepo *repository.PositionRepository) *PortfolioService {
	return &PortfolioService{positionRepo: positionRepo}
}

// GetPositions retrieves an owner's holdings enriched with asset display
// fields and per-position valuation. Monetary values are rounded to two
// decimal places for presentation.
func (s *PortfolioService) GetPositions(ctx context.Context, userID string) ([]model.PositionResponse, error) {
	positions, err := s.positionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, persistence(err)
	}

	for i := range positions {
		p := &positions[i]
		p.CurrentValue = round(p.Quantity * p.CurrentPrice)
		p.CostBasis = round(p.Quantity * p.PurchasePrice)
		p.UnrealizedGain = round(p.CurrentValue - p.CostBasis)
	}

	return positions, nil
}

// GetPosition retrieves a single position owned by the given user.
// Returns apperrors.ErrPositionNotFound if no such position exists.
func (s *PortfolioService) GetPosition(ctx context.Context, userID, positionID string) (model.Position, error) {
	position, err := s.positionRepo.Get(ctx, positionID, userID)
	if err != nil {
		if isBusinessError(err) {
			return model.Position{}, err
		}
		return model.Position{}, persistence(err)
	}
	return position, nil
}

// GetSummary aggregates an owner's holdings: total value at current
// prices, cost basis, unrealized gain, and gain percentage. The gain
// percentage is defined as 0 when the cost basis is 0.
func (s *PortfolioService) GetSummary(ctx context.Context, userID string) (model.PortfolioSummary, error) {
	positions, err := s.positionRepo.ListByUser(ctx, userID)
	if err != nil {
		return model.PortfolioSummary{}, persistence(err)
	}

	var summary model.PortfolioSummary
	for _, p := range positions {
		summary.TotalValue += p.Quantity * p.CurrentPrice
		summary.CostBasis += p.Quantity * p.PurchasePrice
	}

	summary.UnrealizedGain = summary.TotalValue - summary.CostBasis
	if summary.CostBasis > 0 {
		summary.GainPercent = summary.UnrealizedGain / summary.CostBasis * 100
	}

	summary.TotalValue = round(summary.TotalValue)
	summary.CostBasis = round(summary.CostBasis)
	summary.UnrealizedGain = round(summary.UnrealizedGain)
	summary.GainPercent = round(summary.GainPercent)
	summary.PositionCount = len(positions)

	return summary, nil
}
