package testutil

import (
	"database/sql"
	"testing"

	"github.com/ade-gb/investlite-demo-platform/internal/model"
)

// AssetBuilder provides a fluent interface for creating test assets.
//
// Example usage:
//
//	// Simple creation with defaults
//	asset := testutil.NewAsset().Build(t, db)
//
//	// Customized asset
//	asset := testutil.NewAsset().
//	    WithPrice(50).
//	    WithMinInvestment(100).
//	    Inactive().
//	    Build(t, db)
type AssetBuilder struct {
	ID            string
	Symbol        string
	Name          string
	Description   string
	AssetType     string
	CurrentPrice  float64
	PriceChange   float64
	RiskLevel     string
	MinInvestment float64
	IsActive      bool
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset() *AssetBuilder {
	return &AssetBuilder{
		ID:            MakeID(),
		Symbol:        MakeSymbol(),
		Name:          MakeAssetName("Test Fund"),
		Description:   "Test description",
		AssetType:     "etf",
		CurrentPrice:  100.00,
		PriceChange:   0,
		RiskLevel:     "medium",
		MinInvestment: 10,
		IsActive:      true,
	}
}

// WithID sets a custom ID.
func (b *AssetBuilder) WithID(id string) *AssetBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.Name = name
	return b
}

// WithSymbol sets a custom symbol.
func (b *AssetBuilder) WithSymbol(symbol string) *AssetBuilder {
	b.Symbol = symbol
	return b
}

// WithPrice sets the current price.
func (b *AssetBuilder) WithPrice(price float64) *AssetBuilder {
	b.CurrentPrice = price
	return b
}

// WithPriceChange sets the 24h change indicator.
func (b *AssetBuilder) WithPriceChange(change float64) *AssetBuilder {
	b.PriceChange = change
	return b
}

// WithMinInvestment sets the minimum investment ticket.
func (b *AssetBuilder) WithMinInvestment(min float64) *AssetBuilder {
	b.MinInvestment = min
	return b
}

// WithRiskLevel sets the risk level.
func (b *AssetBuilder) WithRiskLevel(level string) *AssetBuilder {
	b.RiskLevel = level
	return b
}

// Inactive marks the asset as deactivated.
func (b *AssetBuilder) Inactive() *AssetBuilder {
	b.IsActive = false
	return b
}

// Build inserts the asset into the database and returns the model.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	query := `
		INSERT INTO asset (id, symbol, name, description, asset_type, current_price, price_change_24h, risk_level, min_investment, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Symbol, b.Name, b.Description, b.AssetType,
		b.CurrentPrice, b.PriceChange, b.RiskLevel, b.MinInvestment, b.IsActive)
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return model.Asset{
		ID:             b.ID,
		Symbol:         b.Symbol,
		Name:           b.Name,
		Description:    b.Description,
		AssetType:      b.AssetType,
		CurrentPrice:   b.CurrentPrice,
		PriceChange24h: b.PriceChange,
		RiskLevel:      b.RiskLevel,
		MinInvestment:  b.MinInvestment,
		IsActive:       b.IsActive,
	}
}

// CreateWallet inserts a wallet row with the given balance and returns
// the wallet ID.
func CreateWallet(t *testing.T, db *sql.DB, userID string, balance float64) string {
	t.Helper()

	id := MakeID()
	query := `INSERT INTO wallet (id, user_id, balance) VALUES (?, ?, ?)`
	if _, err := db.Exec(query, id, userID, balance); err != nil {
		t.Fatalf("Failed to create test wallet: %v", err)
	}

	return id
}

// WalletBalance reads the current wallet balance for a user.
func WalletBalance(t *testing.T, db *sql.DB, userID string) float64 {
	t.Helper()

	var balance float64
	err := db.QueryRow(`SELECT balance FROM wallet WHERE user_id = ?`, userID).Scan(&balance)
	if err != nil {
		t.Fatalf("Failed to read wallet balance: %v", err)
	}

	return balance
}
