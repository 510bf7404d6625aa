package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/ade-gb/investlite-demo-platform/internal/config"
	"github.com/ade-gb/investlite-demo-platform/internal/repository"
	"github.com/ade-gb/investlite-demo-platform/internal/service"
)

// NewTestLedgerService constructs a LedgerService wired to the given
// test database.
func NewTestLedgerService(t *testing.T, db *sql.DB) *service.LedgerService {
	t.Helper()

	return service.NewLedgerService(
		db,
		repository.NewWalletRepository(db),
		repository.NewAssetRepository(db),
		repository.NewPositionRepository(db),
		repository.NewTransactionRepository(db),
	)
}

// NewTestCatalogService constructs a CatalogService with a fresh hub.
func NewTestCatalogService(t *testing.T, db *sql.DB) (*service.CatalogService, *service.AssetHub) {
	t.Helper()

	hub := service.NewAssetHub()
	return service.NewCatalogService(repository.NewAssetRepository(db), hub), hub
}

// NewTestPortfolioService constructs a PortfolioService wired to the
// given test database.
func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(repository.NewPositionRepository(db))
}

// NewTestTransactionService constructs a TransactionService wired to
// the given test database.
func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(repository.NewTransactionRepository(db))
}

// NewTestSimulatorService constructs a SimulatorService with standard
// simulator parameters (5s tick, 2% drift, 0.01 floor).
func NewTestSimulatorService(t *testing.T, db *sql.DB) (*service.SimulatorService, *service.AssetHub) {
	t.Helper()

	hub := service.NewAssetHub()
	cfg := config.SimulatorConfig{
		TickSeconds:     5,
		MaxDriftPercent: 2.0,
		PriceFloor:      0.01,
	}
	return service.NewSimulatorService(repository.NewAssetRepository(db), hub, cfg), hub
}

// MakeID generates a valid UUID for testing.
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a unique ticker symbol for testing.
func MakeSymbol() string {
	return randomAlphanumeric(4)
}

// MakeAssetName generates a unique asset name for testing.
//
// Example usage:
//
//	name := testutil.MakeAssetName("Tech Fund")
//	// Returns: "Tech Fund XYZ789"
func MakeAssetName(base string) string {
	if base == "" {
		base = "Asset"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random uppercase alphanumeric string.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
