package model

// Asset represents a tradable demo asset from the catalog.
// Prices are mutated only by the price simulator (or an admin adjustment);
// everything else treats the record as read-only reference data.
type Asset struct {
	ID             string  `json:"id"`
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	AssetType      string  `json:"assetType"`
	CurrentPrice   float64 `json:"currentPrice"`
	PriceChange24h float64 `json:"priceChange24h"`
	RiskLevel      string  `json:"riskLevel"`
	MinInvestment  float64 `json:"minInvestment"`
	IsActive       bool    `json:"isActive"`
}
