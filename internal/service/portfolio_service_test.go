package service_test

import (
	"context"
	"testing"

	"github.com/ade-gb/investlite-demo-platform/internal/testutil"
)

// TestPortfolioService_GetPositions tests position enrichment.
//
// WHY: The positions view combines the ledger's quantities with the
// catalog's live prices; the derived valuation fields are what the user
// actually sees.
func TestPortfolioService_GetPositions(t *testing.T) {
	t.Run("returns empty slice when no positions exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		positions, err := svc.GetPositions(context.Background(), testutil.MakeID())
		if err != nil {
			t.Fatalf("GetPositions() returned unexpected error: %v", err)
		}
		if len(positions) != 0 {
			t.Errorf("Expected empty slice, got %d positions", len(positions))
		}
	})

	t.Run("enriches positions with valuation at current prices", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ledger := testutil.NewTestLedgerService(t, db)
		svc := testutil.NewTestPortfolioService(t, db)
		userID := testutil.MakeID()
		asset := testutil.NewAsset().WithPrice(50).Build(t, db)
		ctx := context.Background()

		if _, err := ledger.FundWallet(ctx, userID, 1000); err != nil {
			t.Fatalf("FundWallet() returned unexpected error: %v", err)
		}
		if _, err := ledger.Invest(ctx, userID, asset.ID, 1000, 50); err != nil {
			t.Fatalf("Invest() returned unexpected error: %v", err)
		}

		// Price moves after the buy.
		if _, err := db.Exec(`UPDATE asset SET current_price = 60 WHERE id = ?`, asset.ID); err != nil {
			t.Fatalf("Failed to update price: %v", err)
		}

		positions, err := svc.GetPositions(ctx, userID)
		if err != nil {
			t.Fatalf("GetPositions() returned unexpected error: %v", err)
		}
		if len(positions) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(positions))
		}

		p := positions[0]
		if p.AssetSymbol != asset.Symbol || p.AssetName != asset.Name {
			t.Errorf("Expected asset display fields %s/%s, got %s/%s", asset.Symbol, asset.Name, p.AssetSymbol, p.AssetName)
		}
		if p.CurrentValue != 1200 {
			t.Errorf("Expected current value 1200, got %v", p.CurrentValue)
		}
		if p.CostBasis != 1000 {
			t.Errorf("Expected cost basis 1000, got %v", p.CostBasis)
		}
		if p.UnrealizedGain != 200 {
			t.Errorf("Expected unrealized gain 200, got %v", p.UnrealizedGain)
		}
	})

	t.Run("does not include other owners' positions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ledger := testutil.NewTestLedgerService(t, db)
		svc := testutil.NewTestPortfolioService(t, db)
		owner := testutil.MakeID()
		other := testutil.MakeID()
		asset := testutil.NewAsset().WithPrice(10).Build(t, db)
		ctx := context.Background()

		if _, err := ledger.FundWallet(ctx, other, 100); err != nil {
			t.Fatalf("FundWallet() returned unexpected error: %v", err)
		}
		if _, err := ledger.Invest(ctx, other, asset.ID, 100, 10); err != nil {
			t.Fatalf("Invest() returned unexpected error: %v", err)
		}

		positions, err := svc.GetPositions(ctx, owner)
		if err != nil {
			t.Fatalf("GetPositions() returned unexpected error: %v", err)
		}
		if len(positions) != 0 {
			t.Errorf("Expected no positions for %s, got %d", owner, len(positions))
		}
	})
}

// TestPortfolioService_GetSummary tests portfolio aggregation.
func TestPortfolioService_GetSummary(t *testing.T) {
	t.Run("aggregates across positions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ledger := testutil.NewTestLedgerService(t, db)
		svc := testutil.NewTestPortfolioService(t, db)
		userID := testutil.MakeID()
		a := testutil.NewAsset().WithPrice(10).Build(t, db)
		b := testutil.NewAsset().WithPrice(20).Build(t, db)
		ctx := context.Background()

		if _, err := ledger.FundWallet(ctx, userID, 1000); err != nil {
			t.Fatalf("FundWallet() returned unexpected error: %v", err)
		}
		if _, err := ledger.Invest(ctx, userID, a.ID, 500, 10); err != nil {
			t.Fatalf("Invest() returned unexpected error: %v", err)
		}
		if _, err := ledger.Invest(ctx, userID, b.ID, 500, 20); err != nil {
			t.Fatalf("Invest() returned unexpected error: %v", err)
		}

		// Asset a doubles, asset b is unchanged.
		if _, err := db.Exec(`UPDATE asset SET current_price = 20 WHERE id = ?`, a.ID); err != nil {
			t.Fatalf("Failed to update price: %v", err)
		}

		summary, err := svc.GetSummary(ctx, userID)
		if err != nil {
			t.Fatalf("GetSummary() returned unexpected error: %v", err)
		}

		if summary.PositionCount != 2 {
			t.Errorf("Expected 2 positions, got %d", summary.PositionCount)
		}
		if summary.CostBasis != 1000 {
			t.Errorf("Expected cost basis 1000, got %v", summary.CostBasis)
		}
		if summary.TotalValue != 1500 {
			t.Errorf("Expected total value 1500, got %v", summary.TotalValue)
		}
		if summary.UnrealizedGain != 500 {
			t.Errorf("Expected unrealized gain 500, got %v", summary.UnrealizedGain)
		}
		if summary.GainPercent != 50 {
			t.Errorf("Expected gain percent 50, got %v", summary.GainPercent)
		}
	})

	t.Run("gain percent is zero for an empty portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPortfolioService(t, db)

		summary, err := svc.GetSummary(context.Background(), testutil.MakeID())
		if err != nil {
			t.Fatalf("GetSummary() returned unexpected error: %v", err)
		}

		if summary.GainPercent != 0 || summary.TotalValue != 0 || summary.PositionCount != 0 {
			t.Errorf("Expected zero summary, got %+v", summary)
		}
	})
}
