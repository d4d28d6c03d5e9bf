package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/fintra/corebank/internal/adapter/http/handler"
	"github.com/fintra/corebank/internal/adapter/http/middleware"
	"github.com/fintra/corebank/internal/infrastructure/auth"
	"github.com/fintra/corebank/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler        *handler.AuthHandler
	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	TransferHandler    *handler.TransferHandler
	EntryHandler       *handler.EntryHandler
	LedgerHandler      *handler.LedgerHandler
	HealthHandler      *handler.HealthHandler
	JWTManager         *auth.JWTManager
	IdempotencyStore   usecase.IdempotencyStore
	RateLimiter        *middleware.RateLimiter
	Logger             zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Public auth endpoints
		r.Post("/auth/register", cfg.AuthHandler.Register)
		r.Post("/auth/login", cfg.AuthHandler.Login)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))

			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
				r.Use(idempotencyMiddleware.Wrap)
			}

			r.Get("/users/me", cfg.AuthHandler.Me)

			// Accounts
			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", cfg.AccountHandler.Create)
				r.Post("/fund", cfg.TransactionHandler.Fund)
				r.Post("/withdraw", cfg.TransactionHandler.Withdraw)
				r.Get("/me", cfg.AccountHandler.GetOwn)
				r.Get("/{id}", cfg.AccountHandler.Get)
				r.Get("/{id}/audit", cfg.LedgerHandler.AuditAccount)
				r.Get("/{id}/entries", cfg.EntryHandler.ListByAccount)
				r.Get("/{id}/transfers", cfg.TransferHandler.ListByAccount)
			})

			// Transfers
			r.Route("/transfers", func(r chi.Router) {
				r.Post("/", cfg.TransferHandler.Create)
				r.Get("/{reference}", cfg.TransferHandler.Get)
			})

			// Ledger
			r.Get("/ledger/consistency", cfg.LedgerHandler.CheckConsistency)
		})
	})

	return r
}
