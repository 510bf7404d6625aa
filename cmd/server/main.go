package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ade-gb/investlite-demo-platform/internal/api"
	"github.com/ade-gb/investlite-demo-platform/internal/assistant"
	"github.com/ade-gb/investlite-demo-platform/internal/config"
	"github.com/ade-gb/investlite-demo-platform/internal/database"
	"github.com/ade-gb/investlite-demo-platform/internal/repository"
	"github.com/ade-gb/investlite-demo-platform/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	walletRepo := repository.NewWalletRepository(db)
	assetRepo := repository.NewAssetRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Create services
	hub := service.NewAssetHub()
	systemService := service.NewSystemService(db)
	ledgerService := service.NewLedgerService(db, walletRepo, assetRepo, positionRepo, transactionRepo)
	catalogService := service.NewCatalogService(assetRepo, hub)
	portfolioService := service.NewPortfolioService(positionRepo)
	transactionService := service.NewTransactionService(transactionRepo)
	settingsService, err := service.NewSettingsService(settingsRepo, cfg.Assistant.SettingsKey)
	if err != nil {
		log.Fatalf("Failed to initialize settings service: %v", err)
	}
	gatewayClient := assistant.NewGatewayClient(cfg.Assistant.GatewayURL, cfg.Assistant.Model)
	assistantService := service.NewAssistantService(gatewayClient, settingsService)

	// Start the price simulator; it runs for the lifetime of the process.
	simulator := service.NewSimulatorService(assetRepo, hub, cfg.Simulator)
	if err := simulator.Start(); err != nil {
		log.Fatalf("Failed to start price simulator: %v", err)
	}
	defer simulator.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:      systemService,
		Ledger:      ledgerService,
		Catalog:     catalogService,
		Portfolio:   portfolioService,
		Transaction: transactionService,
		Assistant:   assistantService,
		Settings:    settingsService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
