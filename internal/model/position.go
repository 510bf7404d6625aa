package model

import "time"

// Position represents a user's current holding in one asset.
// A position exists only while quantity > 0; a full sale deletes the row.
// PurchasePrice is the quantity-weighted average cost of all still-held
// units: buying recomputes it, selling never changes it.
type Position struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	AssetID       string    `json:"assetId"`
	Quantity      float64   `json:"quantity"`
	PurchasePrice float64   `json:"purchasePrice"`
	CreatedAt     time.Time `json:"createdAt"`
}

// PositionResponse is a position enriched with asset display fields for
// API responses.
type PositionResponse struct {
	ID             string    `json:"id"`
	AssetID        string    `json:"assetId"`
	AssetName      string    `json:"assetName"`
	AssetSymbol    string    `json:"assetSymbol"`
	Quantity       float64   `json:"quantity"`
	PurchasePrice  float64   `json:"purchasePrice"`
	CurrentPrice   float64   `json:"currentPrice"`
	CurrentValue   float64   `json:"currentValue"`
	CostBasis      float64   `json:"costBasis"`
	UnrealizedGain float64   `json:"unrealizedGain"`
	CreatedAt      time.Time `json:"createdAt"`
}

// PortfolioSummary aggregates a user's holdings at current catalog prices.
// GainPercent is defined as 0 when the cost basis is 0.
type PortfolioSummary struct {
	TotalValue     float64 `json:"totalValue"`
	CostBasis      float64 `json:"costBasis"`
	UnrealizedGain float64 `json:"unrealizedGain"`
	GainPercent    float64 `json:"gainPercent"`
	PositionCount  int     `json:"positionCount"`
}
