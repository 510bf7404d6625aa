package model

import "time"

// Wallet represents a user's simulated cash balance.
// One wallet exists per user; it is created lazily on first access
// and never deleted. Balance is always >= 0.
type Wallet struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Balance   float64   `json:"balance"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReconciliationReport compares a wallet balance against the sum of the
// owner's transaction amounts. Balanced is true when the two agree to the cent.
type ReconciliationReport struct {
	UserID          string  `json:"userId"`
	WalletBalance   float64 `json:"walletBalance"`
	TransactionSum  float64 `json:"transactionSum"`
	Drift           float64 `json:"drift"`
	TransactionRows int     `json:"transactionRows"`
	Balanced        bool    `json:"balanced"`
}
