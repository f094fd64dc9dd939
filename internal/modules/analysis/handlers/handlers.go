// Package handlers provides HTTP handlers for company analysis.
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/aristath/esglens/internal/modules/analysis"
	"github.com/rs/zerolog"
)

// Handler handles analysis HTTP requests
type Handler struct {
	service *analysis.Service
	log     zerolog.Logger
}

// NewHandler creates a new analysis handler
func NewHandler(service *analysis.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "analysis").Logger(),
	}
}

// HandleAnalyze handles POST /api/analyze
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	var request analysis.Request

	// A malformed body (wrong types, bad JSON) fails fast with a
	// descriptive error instead of being coerced.
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	request.Symbol = strings.ToUpper(strings.TrimSpace(request.Symbol))
	if request.Symbol == "" {
		h.writeError(w, http.StatusBadRequest, "Symbol is required")
		return
	}
	if request.DaysBack < 0 || request.DaysBack > 365 {
		h.writeError(w, http.StatusBadRequest, "days_back must be between 0 and 365")
		return
	}

	startTime := time.Now()
	response, err := h.service.Analyze(r.Context(), request.Symbol, request.DaysBack)
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}

	h.log.Info().
		Str("symbol", request.Symbol).
		Dur("elapsed", time.Since(startTime)).
		Msg("Analysis request completed")

	h.writeJSON(w, http.StatusOK, response)
}

// HandleCompanies handles GET /api/companies
func (h *Handler) HandleCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.Companies()
	if err != nil {
		h.writeError(w, http.StatusInternalServerError, "Failed to list companies: "+err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"companies": companies})
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
