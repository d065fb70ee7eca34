package http

import (
	"net/http"

	"github.com/exposure-verify-api/internal/application/issuance"
	"github.com/exposure-verify-api/internal/config"
	"github.com/exposure-verify-api/internal/transport/http/handler"
	appmiddleware "github.com/exposure-verify-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// ScopePush is the JWT scope required to issue verification codes.
const ScopePush = "push"

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — issuance is operator-driven, anything
	// faster than this is a runaway client.
	issueRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	issueSvc := issuance.NewService(deps.VerificationRepo, deps.MetricRepo, deps.DeliveryRouter, cfg)

	healthH := handler.NewHealthHandler()
	issueH := handler.NewIssuanceHandler(issueSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		// ── Issuance ─────────────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			if deps.JWTProvider != nil {
				r.Use(appmiddleware.Auth(deps.JWTProvider))
				r.Use(appmiddleware.RequireScope(ScopePush))
			}
			r.With(issueRL.Limit).Post("/notify/positive", issueH.NotifyPositive)
		})
	})

	return r
}
