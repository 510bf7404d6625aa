package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/ade-gb/investlite-demo-platform/internal/config"
	"github.com/ade-gb/investlite-demo-platform/internal/metrics"
	"github.com/ade-gb/investlite-demo-platform/internal/repository"
)

// tickWorkers bounds the per-asset update fan-out within one tick.
const tickWorkers = 4

// SimulatorService is the price simulator: a recurring background task
// that perturbs every active asset's price and its smoothed 24h-change
// indicator once per tick.
//
// Exactly one instance must run per deployment: it is constructed and
// started by cmd/server, never per connected client. Independent instances
// would compound the random drift multiplicatively and corrupt the
// simulation. A tick still running when the next is due is skipped; a
// failed tick is logged and the schedule continues.
type SimulatorService struct {
	assetRepo *repository.AssetRepository
	hub       *AssetHub
	cfg       config.SimulatorConfig

	// randPercent returns the bounded symmetric percentage delta for one
	// asset update. Injectable for deterministic tests.
	randPercent func() float64

	mu      sync.Mutex
	cron    *cron.Cron
	started bool
}

// NewSimulatorService creates a new SimulatorService with the provided
// repository, hub, and configuration.
func NewSimulatorService(assetRepo *repository.AssetRepository, hub *AssetHub, cfg config.SimulatorConfig) *SimulatorService {
	s := &SimulatorService{
		assetRepo: assetRepo,
		hub:       hub,
		cfg:       cfg,
	}
	s.randPercent = func() float64 {
		// Uniform in [-MaxDriftPercent, +MaxDriftPercent].
		//nolint:gosec // G404: simulation noise, not security material
		return (rand.Float64()*2 - 1) * cfg.MaxDriftPercent
	}
	return s
}

// Start begins the tick schedule. Safe to call at most once; a second call
// returns an error rather than spawning a second writer per asset.
func (s *SimulatorService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("price simulator already started")
	}

	// SkipIfStillRunning gives the required behavior for slow ticks: the
	// overdue run is dropped, never executed concurrently with itself.
	c := cron.New(
		cron.WithSeconds(),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	schedule := fmt.Sprintf("@every %ds", s.cfg.TickSeconds)
	if _, err := c.AddFunc(schedule, s.runTick); err != nil {
		return fmt.Errorf("failed to schedule price simulator: %w", err)
	}

	c.Start()
	s.cron = c
	s.started = true
	log.Printf("price simulator started (tick every %ds, drift ±%.1f%%)", s.cfg.TickSeconds, s.cfg.MaxDriftPercent)
	return nil
}

// Stop halts the schedule and waits for a running tick to finish.
// Tied to process lifetime, not to any session.
func (s *SimulatorService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	<-s.cron.Stop().Done()
	s.started = false
	log.Printf("price simulator stopped")
}

// runTick is the scheduled entry point. Tick failures are logged and
// swallowed; the next tick proceeds independently.
func (s *SimulatorService) runTick() {
	start := time.Now()
	if err := s.Tick(context.Background()); err != nil {
		metrics.SimulatorTickErrors.Inc()
		log.Printf("price simulation tick failed: %v", err)
		return
	}
	metrics.SimulatorTicks.Inc()
	metrics.SimulatorTickDuration.Observe(time.Since(start).Seconds())
}

// Tick perturbs every active asset once. Each asset row updates
// atomically and independently; one failed asset does not stop the
// others, and the first error is reported after the fan-out completes.
func (s *SimulatorService) Tick(ctx context.Context) error {
	assets, err := s.assetRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active assets: %w", err)
	}

	// A plain group without context cancellation: one asset's failure
	// must not abort the remaining updates mid-tick.
	var g errgroup.Group
	g.SetLimit(tickWorkers)

	for _, asset := range assets {
		g.Go(func() error {
			delta := s.randPercent()
			newPrice, newChange := NextPrice(asset.CurrentPrice, asset.PriceChange24h, delta, s.cfg.PriceFloor)

			if err := s.assetRepo.UpdatePrice(ctx, asset.ID, newPrice, newChange); err != nil {
				return fmt.Errorf("asset %s: %w", asset.Symbol, err)
			}

			updated := asset
			updated.CurrentPrice = newPrice
			updated.PriceChange24h = newChange
			s.hub.Publish(updated)
			return nil
		})
	}

	return g.Wait()
}

// NextPrice applies one simulation step to a price and its 24h-change
// indicator, given the sampled percentage delta.
//
// The price moves by delta percent, is rounded to the cent, and never
// drops below the floor. The 24h indicator is exponentially smoothed
// (new = old*0.95 + delta*0.5) and clamped to [-99, 99].
func NextPrice(price, change24h, delta, floor float64) (newPrice, newChange float64) {
	newPrice = round(price * (1 + delta/100))
	if newPrice < floor {
		newPrice = floor
	}

	newChange = clamp(round(change24h*0.95+delta*0.5), -99, 99)
	return newPrice, newChange
}
