// Package handlers provides HTTP handlers for historical ESG data.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/aristath/esglens/internal/modules/history"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles history HTTP requests
type Handler struct {
	service *history.Service
	log     zerolog.Logger
}

// NewHandler creates a new history handler
func NewHandler(service *history.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "history").Logger(),
	}
}

// HandleCompanyHistory handles GET /api/companies/{symbol}/history
func (h *Handler) HandleCompanyHistory(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(chi.URLParam(r, "symbol"))
	if symbol == "" {
		h.writeError(w, http.StatusBadRequest, "Symbol is required")
		return
	}

	days := 90
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	entries, err := h.service.CompanyHistory(symbol, days)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to load history: "+err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":  symbol,
		"history": entries,
	})
}

// HandleTrending handles GET /api/market/trending
func (h *Handler) HandleTrending(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			h.writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	trending, err := h.service.Trending(limit)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to load trending companies: "+err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"trending_companies": trending})
}

// HandleSectors handles GET /api/market/sectors
func (h *Handler) HandleSectors(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.service.Sectors()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to load sector analysis: "+err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{"sector_analysis": sectors})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
