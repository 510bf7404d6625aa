// Package request defines the JSON request bodies accepted by the API.
package request

// FundWalletRequest is the body for POST /api/wallet/fund.
type FundWalletRequest struct {
	Amount float64 `json:"amount"`
}

// InvestRequest is the body for POST /api/position/invest.
// The trade price is resolved server-side from the asset catalog at
// request time; clients never supply prices.
type InvestRequest struct {
	AssetID string  `json:"assetId"`
	Amount  float64 `json:"amount"`
}

// SellRequest is the body for POST /api/position/{uuid}/sell.
// Quantity may be at most the position's held quantity.
type SellRequest struct {
	Quantity float64 `json:"quantity"`
}
