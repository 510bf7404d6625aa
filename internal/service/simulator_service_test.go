package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/ade-gb/investlite-demo-platform/internal/service"
	"github.com/ade-gb/investlite-demo-platform/internal/testutil"
)

// TestNextPrice tests one step of the price simulation.
//
// WHY: The simulation step defines how every displayed price evolves. The
// rounding, the price floor, and the smoothing of the 24h indicator must
// match exactly or prices drift in ways the rest of the system cannot
// explain.
func TestNextPrice(t *testing.T) {
	t.Run("applies percentage delta and smooths 24h change", func(t *testing.T) {
		price, change := service.NextPrice(100.00, 0, 1.2, 0.01)

		if price != 101.20 {
			t.Errorf("Expected price 101.20, got %v", price)
		}
		if change != 0.6 {
			t.Errorf("Expected 24h change 0.6, got %v", change)
		}
	})

	t.Run("decays previous 24h change", func(t *testing.T) {
		_, change := service.NextPrice(100.00, 10.0, 0, 0.01)

		// 10.0*0.95 + 0*0.5
		if change != 9.5 {
			t.Errorf("Expected 24h change 9.5, got %v", change)
		}
	})

	t.Run("never drops below the price floor", func(t *testing.T) {
		price, _ := service.NextPrice(0.01, 0, -60, 0.01)

		if price != 0.01 {
			t.Errorf("Expected floored price 0.01, got %v", price)
		}
	})

	t.Run("clamps 24h change to [-99, 99]", func(t *testing.T) {
		_, change := service.NextPrice(100.00, 104, 2, 0.01)
		if change != 99 {
			t.Errorf("Expected clamped change 99, got %v", change)
		}

		_, change = service.NextPrice(100.00, -104, -2, 0.01)
		if change != -99 {
			t.Errorf("Expected clamped change -99, got %v", change)
		}
	})

	t.Run("rounds price to the cent", func(t *testing.T) {
		price, _ := service.NextPrice(33.33, 0, 1, 0.01)

		// 33.33 * 1.01 = 33.6633
		if price != 33.66 {
			t.Errorf("Expected price 33.66, got %v", price)
		}
	})
}

// TestSimulatorService_Tick tests a full tick across the catalog.
//
// WHY: A tick must update every active asset exactly once, persist the new
// price and 24h change together, leave inactive assets untouched, and
// publish updates to stream subscribers.
func TestSimulatorService_Tick(t *testing.T) {
	t.Run("updates every active asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sim, _ := testutil.NewTestSimulatorService(t, db)
		sim.SetRandPercent(func() float64 { return 1.0 })

		testutil.NewAsset().WithPrice(100).Build(t, db)
		testutil.NewAsset().WithPrice(200).Build(t, db)

		if err := sim.Tick(context.Background()); err != nil {
			t.Fatalf("Tick() returned unexpected error: %v", err)
		}

		rows, err := db.Query(`SELECT current_price, price_change_24h FROM asset ORDER BY current_price`)
		if err != nil {
			t.Fatalf("Failed to query assets: %v", err)
		}
		defer rows.Close()

		var prices []float64
		for rows.Next() {
			var price, change float64
			if err := rows.Scan(&price, &change); err != nil {
				t.Fatalf("Failed to scan asset: %v", err)
			}
			if change != 0.5 {
				t.Errorf("Expected 24h change 0.5, got %v", change)
			}
			prices = append(prices, price)
		}

		if len(prices) != 2 || prices[0] != 101.00 || prices[1] != 202.00 {
			t.Errorf("Expected prices [101, 202], got %v", prices)
		}
	})

	t.Run("skips inactive assets", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sim, _ := testutil.NewTestSimulatorService(t, db)
		sim.SetRandPercent(func() float64 { return 2.0 })

		inactive := testutil.NewAsset().WithPrice(100).Inactive().Build(t, db)

		if err := sim.Tick(context.Background()); err != nil {
			t.Fatalf("Tick() returned unexpected error: %v", err)
		}

		var price float64
		if err := db.QueryRow(`SELECT current_price FROM asset WHERE id = ?`, inactive.ID).Scan(&price); err != nil {
			t.Fatalf("Failed to read asset: %v", err)
		}
		if price != 100 {
			t.Errorf("Expected inactive asset price unchanged at 100, got %v", price)
		}
	})

	t.Run("publishes updates to subscribers", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sim, hub := testutil.NewTestSimulatorService(t, db)
		sim.SetRandPercent(func() float64 { return 1.0 })

		asset := testutil.NewAsset().WithPrice(100).Build(t, db)

		subID, updates := hub.Subscribe()
		defer hub.Unsubscribe(subID)

		if err := sim.Tick(context.Background()); err != nil {
			t.Fatalf("Tick() returned unexpected error: %v", err)
		}

		select {
		case update := <-updates:
			if update.ID != asset.ID {
				t.Errorf("Expected update for asset %s, got %s", asset.ID, update.ID)
			}
			if update.CurrentPrice != 101.00 {
				t.Errorf("Expected published price 101.00, got %v", update.CurrentPrice)
			}
		default:
			t.Error("Expected a published price update, got none")
		}
	})

	t.Run("continues past a failing asset", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sim, _ := testutil.NewTestSimulatorService(t, db)
		sim.SetRandPercent(func() float64 { return 1.0 })

		failing := testutil.NewAsset().WithPrice(100).Build(t, db)
		healthy := []float64{200, 300, 400}
		updated := []float64{202, 303, 404}
		var healthyIDs []string
		for _, p := range healthy {
			healthyIDs = append(healthyIDs, testutil.NewAsset().WithPrice(p).Build(t, db).ID)
		}

		// Make writes to one specific row fail.
		stmt := fmt.Sprintf(`
			CREATE TRIGGER block_one_asset BEFORE UPDATE ON asset
			WHEN NEW.id = '%s'
			BEGIN SELECT RAISE(ABORT, 'blocked'); END
		`, failing.ID)
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("Failed to create trigger: %v", err)
		}

		if err := sim.Tick(context.Background()); err == nil {
			t.Error("Expected Tick to report the failed asset")
		}

		for i, id := range healthyIDs {
			var price float64
			if err := db.QueryRow(`SELECT current_price FROM asset WHERE id = ?`, id).Scan(&price); err != nil {
				t.Fatalf("Failed to read asset: %v", err)
			}
			if price != updated[i] {
				t.Errorf("Expected asset %d updated to %v, got %v", i, updated[i], price)
			}
		}

		var price float64
		if err := db.QueryRow(`SELECT current_price FROM asset WHERE id = ?`, failing.ID).Scan(&price); err != nil {
			t.Fatalf("Failed to read asset: %v", err)
		}
		if price != 100 {
			t.Errorf("Expected failing asset price unchanged at 100, got %v", price)
		}
	})

	t.Run("reports an error when the store is unavailable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sim, _ := testutil.NewTestSimulatorService(t, db)

		db.Close()

		if err := sim.Tick(context.Background()); err == nil {
			t.Error("Expected Tick to fail against a closed database")
		}
	})
}

// TestSimulatorService_Start tests the lifecycle guard.
//
// WHY: Two running simulators would compound the random drift on every
// asset. Start must refuse a second call on the same instance.
func TestSimulatorService_Start(t *testing.T) {
	t.Run("rejects a second start", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sim, _ := testutil.NewTestSimulatorService(t, db)

		if err := sim.Start(); err != nil {
			t.Fatalf("First Start() returned unexpected error: %v", err)
		}
		defer sim.Stop()

		if err := sim.Start(); err == nil {
			t.Error("Expected second Start() to fail")
		}
	})

	t.Run("stop is safe when never started", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		sim, _ := testutil.NewTestSimulatorService(t, db)

		sim.Stop()
	})
}
