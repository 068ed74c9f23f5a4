/*
server.go - HTTP router and middleware configuration

ROUTER: chi

MIDDLEWARE STACK:
  1. Logger:     request logging
  2. Recoverer:  panic recovery (500 instead of crash)
  3. RequestID:  unique ID per request for tracing
  4. CORS:       cross-origin requests for the upload frontend

ROUTE GROUPS:
  /api/calendar/*   calendar listing, reconciliation, reset
  /api/uploads/*    spreadsheet uploads (planning plan, rosters)
  /api/history      roster history log
  /metrics          prometheus metrics

SECURITY NOTE:
  No authentication middleware. Deploy behind the organization gateway.
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/", h.ListCalendar)
			r.Post("/reconcile", h.Reconcile)
			r.Post("/reset", h.ResetCalendar)
		})

		r.Route("/uploads", func(r chi.Router) {
			r.Post("/plan", h.UploadPlan)
			r.Post("/roster", h.UploadRoster)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", h.ListHistory)
			r.Delete("/", h.ClearHistory)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
