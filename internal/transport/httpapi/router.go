// Package httpapi wires the engine's read-only HTTP surface.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/growvest/ledger-engine/internal/transport/httpapi/handler"
	"github.com/growvest/ledger-engine/internal/transport/httpapi/middleware"
	"github.com/growvest/ledger-engine/pkg/logger"
)

// Config holds router configuration
type Config struct {
	Logger          *logger.Logger
	AllowedOrigins  []string
	LedgerHandler   *handler.LedgerHandler
	ReferralHandler *handler.ReferralHandler
	HealthHandler   *handler.HealthHandler
	JWTMiddleware   func(http.Handler) http.Handler
}

// NewRouter creates a new HTTP router
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.RateLimit())

	// Health check endpoints (no authentication required)
	r.Get("/health", handler.GetHealth)
	r.Get("/health/live", handler.GetLiveness)
	if cfg.HealthHandler != nil {
		r.Get("/health/ready", cfg.HealthHandler.GetReadiness)
	}

	// API routes (require JWT authentication)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cfg.JWTMiddleware)

		r.Get("/ledger/transactions", cfg.LedgerHandler.GetTransactions)
		r.Get("/ledger/transactions/grouped", cfg.LedgerHandler.GetGroupedTransactions)
		r.Get("/ledger/summary", cfg.LedgerHandler.GetSummary)

		r.Get("/referrals/stats", cfg.ReferralHandler.GetStats)
	})

	return r
}
