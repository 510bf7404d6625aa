package model

import "time"

// Transaction kinds. Funding and sale amounts are positive, investment
// amounts negative; the signed amounts are what makes the wallet balance
// reconcile against the log.
const (
	TransactionFunding    = "funding"
	TransactionInvestment = "investment"
	TransactionSale       = "sale"
)

// Transaction is one immutable entry in the append-only activity log.
// Every balance-affecting ledger operation writes exactly one of these,
// in the same database transaction as the balance mutation.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	AssetID     string    `json:"assetId,omitempty"`
	Quantity    float64   `json:"quantity,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TransactionResponse is a transaction joined with asset display fields
// for API responses. Asset fields are empty for funding transactions.
type TransactionResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	AssetID     string    `json:"assetId,omitempty"`
	AssetName   string    `json:"assetName,omitempty"`
	AssetSymbol string    `json:"assetSymbol,omitempty"`
	Quantity    float64   `json:"quantity,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
