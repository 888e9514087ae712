package controllers

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/blogem/form-intake/authenticator"
	"github.com/blogem/form-intake/middleware"
)

// NewRouter configures all routes. verifier may be nil when no admin issuer
// is configured; timeout 0 disables the request timeout.
func NewRouter(ctrl *Controllers, verifier authenticator.Verifier, timeout time.Duration, log *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.ResponseLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS)
	if timeout > 0 {
		r.Use(chimiddleware.Timeout(timeout))
	}
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.AdminToken(verifier, log))

	r.NotFound(ctrl.Health.NotFound)
	r.MethodNotAllowed(ctrl.Health.NotFound)

	r.Get("/", ctrl.Health.Index)
	r.Get("/health", ctrl.Health.Health)

	r.Route("/forms/{form}", func(r chi.Router) {
		r.Get("/", ctrl.Forms.Handle)
		r.Post("/", ctrl.Forms.Handle)
	})

	return r
}
