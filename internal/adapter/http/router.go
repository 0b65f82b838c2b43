package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/corebank/internal/adapter/http/handler"
	"github.com/iho/corebank/internal/adapter/http/middleware"
	"github.com/iho/corebank/internal/infrastructure/metrics"
	"github.com/iho/corebank/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	HealthHandler      *handler.HealthHandler
	BatchHandler       *handler.BatchHandler
	TransactionHandler *handler.TransactionHandler
	AccountHandler     *handler.AccountHandler
	GLHandler          *handler.GLHandler
	RateHandler        *handler.RateHandler
	SystemDateHandler  *handler.SystemDateHandler
	SettlementHandler  *handler.SettlementHandler

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
	Metrics          *metrics.Metrics
	Gatherer         prometheus.Gatherer
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestContext(cfg.Logger))
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Metrics(cfg.Metrics))
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL, cfg.Logger).Wrap)
		}

		r.Post("/eod/run", cfg.BatchHandler.RunEOD)
		r.Get("/eod/{date}", cfg.BatchHandler.EODSummary)
		r.Post("/bod/run", cfg.BatchHandler.RunBOD)
		r.Post("/batches/movements", cfg.BatchHandler.PostMovements)
		r.Post("/batches/accruals", cfg.BatchHandler.PostAccruals)

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", cfg.TransactionHandler.Create)
			r.Get("/{id}", cfg.TransactionHandler.Get)
			r.Post("/{id}/verify", cfg.TransactionHandler.Verify)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/customer", cfg.AccountHandler.OpenCustomer)
			r.Post("/office", cfg.AccountHandler.OpenOffice)
			r.Post("/generic-number", cfg.AccountHandler.AllocateGenericAccountNo)
			r.Get("/{accountNo}", cfg.AccountHandler.Get)
		})
		r.Post("/customers/id", cfg.AccountHandler.AllocateCustomerID)

		r.Post("/gl", cfg.GLHandler.Create)
		r.Get("/gl/{glNum}", cfg.GLHandler.Get)
		r.Get("/gl/{glNum}/path", cfg.GLHandler.Path)
		r.Get("/gl/{glNum}/children", cfg.GLHandler.Children)
		r.Post("/sub-products", cfg.GLHandler.CreateSubProduct)

		r.Route("/rates", func(r chi.Router) {
			r.Post("/", cfg.RateHandler.Create)
			r.Put("/", cfg.RateHandler.Update)
			r.Get("/convert", cfg.RateHandler.Convert)
		})

		r.Get("/system-date", cfg.SystemDateHandler.Get)
		r.Put("/system-date", cfg.SystemDateHandler.Set)

		r.Post("/settlements/check", cfg.SettlementHandler.Check)
	})

	return r
}
