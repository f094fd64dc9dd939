package handlers

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RegisterRoutes registers the analysis routes on the API route group.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		// Analysis pulls from external providers; allow generous time
		r.Use(middleware.Timeout(60 * time.Second))

		r.Post("/analyze", h.HandleAnalyze)
		r.Get("/companies", h.HandleCompanies)
	})
}
