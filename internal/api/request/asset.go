package request

// CreateAssetRequest is the body for the admin POST /api/admin/asset endpoint.
type CreateAssetRequest struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	AssetType     string  `json:"assetType"`
	CurrentPrice  float64 `json:"currentPrice"`
	RiskLevel     string  `json:"riskLevel"`
	MinInvestment float64 `json:"minInvestment"`
}

// AdjustAssetPriceRequest is the body for the admin price-adjustment endpoint.
type AdjustAssetPriceRequest struct {
	Price float64 `json:"price"`
}

// SetAssetActiveRequest is the body for the admin activate/deactivate endpoint.
type SetAssetActiveRequest struct {
	IsActive bool `json:"isActive"`
}
