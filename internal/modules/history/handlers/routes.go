package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers the history routes on the API route group.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/companies/{symbol}/history", h.HandleCompanyHistory)
	r.Get("/market/trending", h.HandleTrending)
	r.Get("/market/sectors", h.HandleSectors)
}
