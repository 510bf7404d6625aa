package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ade-gb/investlite-demo-platform/internal/api/handlers"
	custommiddleware "github.com/ade-gb/investlite-demo-platform/internal/api/middleware"
	"github.com/ade-gb/investlite-demo-platform/internal/config"
	"github.com/ade-gb/investlite-demo-platform/internal/metrics"
	"github.com/ade-gb/investlite-demo-platform/internal/service"
)

// Services bundles the service layer dependencies of the router.
type Services struct {
	System      *service.SystemService
	Ledger      *service.LedgerService
	Catalog     *service.CatalogService
	Portfolio   *service.PortfolioService
	Transaction *service.TransactionService
	Assistant   *service.AssistantService
	Settings    *service.SettingsService
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace, no authentication
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		// Owner-scoped routes; the identity provider in front of the
		// service supplies X-User-Id.
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RequireOwner)

			r.Route("/wallet", func(r chi.Router) {
				walletHandler := handlers.NewWalletHandler(svc.Ledger)
				r.Get("/", walletHandler.GetWallet)
				r.Post("/fund", walletHandler.FundWallet)
			})

			r.Route("/asset", func(r chi.Router) {
				assetHandler := handlers.NewAssetHandler(svc.Catalog)
				r.Get("/", assetHandler.ListAssets)
				r.Get("/stream", assetHandler.Stream)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", assetHandler.GetAsset)
				})
			})

			r.Route("/position", func(r chi.Router) {
				positionHandler := handlers.NewPositionHandler(svc.Ledger, svc.Catalog, svc.Portfolio)
				r.Get("/", positionHandler.GetPositions)
				r.Post("/invest", positionHandler.Invest)
				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Post("/sell", positionHandler.Sell)
				})
			})

			r.Route("/portfolio", func(r chi.Router) {
				portfolioHandler := handlers.NewPortfolioHandler(svc.Portfolio)
				r.Get("/summary", portfolioHandler.Summary)
			})

			r.Route("/transaction", func(r chi.Router) {
				transactionHandler := handlers.NewTransactionHandler(svc.Transaction)
				r.Get("/", transactionHandler.GetHistory)
			})

			r.Route("/assistant", func(r chi.Router) {
				assistantHandler := handlers.NewAssistantHandler(svc.Assistant, svc.Settings)
				r.Post("/message", assistantHandler.Message)
			})
		})

		// Administrative routes, shared-secret protected
		r.Route("/admin", func(r chi.Router) {
			r.Use(custommiddleware.APIKeyMiddleware)

			assetHandler := handlers.NewAssetHandler(svc.Catalog)
			r.Post("/asset", assetHandler.CreateAsset)
			r.Route("/asset/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Put("/price", assetHandler.AdjustPrice)
				r.Put("/active", assetHandler.SetActive)
			})

			walletHandler := handlers.NewWalletHandler(svc.Ledger)
			r.Route("/wallet/{uuid}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateUUIDMiddleware)
				r.Get("/reconcile", walletHandler.Reconcile)
			})

			assistantHandler := handlers.NewAssistantHandler(svc.Assistant, svc.Settings)
			r.Put("/assistant/key", assistantHandler.SetKey)
		})
	})

	return r
}
