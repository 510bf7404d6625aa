package service_test

import (
	"context"
	"testing"

	"github.com/ade-gb/investlite-demo-platform/internal/model"
	"github.com/ade-gb/investlite-demo-platform/internal/testutil"
)

// TestTransactionService_GetHistory tests the activity log view.
//
// WHY: The history is the owner's audit trail. It must come back newest
// first, carry asset display fields for trades, omit them for funding,
// and honor the optional limit.
func TestTransactionService_GetHistory(t *testing.T) {
	t.Run("returns empty slice when no transactions exist", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestTransactionService(t, db)

		transactions, err := svc.GetHistory(context.Background(), testutil.MakeID(), 0)
		if err != nil {
			t.Fatalf("GetHistory() returned unexpected error: %v", err)
		}
		if len(transactions) != 0 {
			t.Errorf("Expected empty slice, got %d transactions", len(transactions))
		}
	})

	t.Run("returns newest first with asset display fields", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ledger := testutil.NewTestLedgerService(t, db)
		svc := testutil.NewTestTransactionService(t, db)
		userID := testutil.MakeID()
		asset := testutil.NewAsset().WithPrice(10).Build(t, db)
		ctx := context.Background()

		if _, err := ledger.FundWallet(ctx, userID, 1000); err != nil {
			t.Fatalf("FundWallet() returned unexpected error: %v", err)
		}
		if _, err := ledger.Invest(ctx, userID, asset.ID, 100, 10); err != nil {
			t.Fatalf("Invest() returned unexpected error: %v", err)
		}

		transactions, err := svc.GetHistory(ctx, userID, 0)
		if err != nil {
			t.Fatalf("GetHistory() returned unexpected error: %v", err)
		}
		if len(transactions) != 2 {
			t.Fatalf("Expected 2 transactions, got %d", len(transactions))
		}

		// Newest first: the investment follows the funding in time.
		if transactions[0].Type != model.TransactionInvestment {
			t.Errorf("Expected newest transaction to be the investment, got %s", transactions[0].Type)
		}
		if transactions[0].AssetSymbol != asset.Symbol || transactions[0].AssetName != asset.Name {
			t.Errorf("Expected asset fields %s/%s, got %s/%s",
				asset.Symbol, asset.Name, transactions[0].AssetSymbol, transactions[0].AssetName)
		}
		if transactions[0].Amount != -100 {
			t.Errorf("Expected investment amount -100, got %v", transactions[0].Amount)
		}

		// Funding rows carry no asset.
		if transactions[1].Type != model.TransactionFunding {
			t.Errorf("Expected oldest transaction to be the funding, got %s", transactions[1].Type)
		}
		if transactions[1].AssetID != "" || transactions[1].AssetSymbol != "" {
			t.Errorf("Expected funding without asset fields, got %s/%s",
				transactions[1].AssetID, transactions[1].AssetSymbol)
		}
	})

	t.Run("honors the limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ledger := testutil.NewTestLedgerService(t, db)
		svc := testutil.NewTestTransactionService(t, db)
		userID := testutil.MakeID()
		ctx := context.Background()

		for i := 0; i < 5; i++ {
			if _, err := ledger.FundWallet(ctx, userID, 10); err != nil {
				t.Fatalf("FundWallet() returned unexpected error: %v", err)
			}
		}

		transactions, err := svc.GetHistory(ctx, userID, 3)
		if err != nil {
			t.Fatalf("GetHistory() returned unexpected error: %v", err)
		}
		if len(transactions) != 3 {
			t.Errorf("Expected 3 transactions with limit 3, got %d", len(transactions))
		}
	})

	t.Run("does not leak other owners' transactions", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ledger := testutil.NewTestLedgerService(t, db)
		svc := testutil.NewTestTransactionService(t, db)
		ctx := context.Background()

		other := testutil.MakeID()
		if _, err := ledger.FundWallet(ctx, other, 10); err != nil {
			t.Fatalf("FundWallet() returned unexpected error: %v", err)
		}

		transactions, err := svc.GetHistory(ctx, testutil.MakeID(), 0)
		if err != nil {
			t.Fatalf("GetHistory() returned unexpected error: %v", err)
		}
		if len(transactions) != 0 {
			t.Errorf("Expected no transactions, got %d", len(transactions))
		}
	})
}
