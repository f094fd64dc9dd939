package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/esglens/internal/modules/history"

	_ "modernc.org/sqlite"
)

func newTestRouter(t *testing.T) (*chi.Mux, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	statements := []string{
		`CREATE TABLE companies (
			symbol TEXT PRIMARY KEY,
			name TEXT,
			sector TEXT,
			industry TEXT,
			market_cap REAL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE esg_analyses (
			id TEXT PRIMARY KEY,
			symbol TEXT NOT NULL,
			environmental_score REAL,
			social_score REAL,
			governance_score REAL,
			overall_score REAL,
			risk_rating TEXT,
			benchmark_used TEXT,
			sentiment_data TEXT,
			financial_data TEXT,
			analysis_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE price_history (
			symbol TEXT NOT NULL,
			date TEXT NOT NULL,
			close REAL NOT NULL,
			PRIMARY KEY (symbol, date)
		)`,
	}
	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	log := zerolog.Nop()
	service := history.NewService(history.NewRepository(db), log)
	handler := NewHandler(service, log)

	router := chi.NewRouter()
	router.Route("/api", handler.RegisterRoutes)
	return router, db
}

func seedAnalysis(t *testing.T, db *sql.DB, symbol, sector string, overall float64, daysAgo int) {
	t.Helper()

	_, err := db.Exec(
		`INSERT INTO companies (symbol, name, sector) VALUES (?, ?, ?)
		 ON CONFLICT(symbol) DO NOTHING`,
		symbol, symbol+" Inc", sector,
	)
	require.NoError(t, err)

	_, err = db.Exec(
		`INSERT INTO esg_analyses
		 (id, symbol, environmental_score, social_score, governance_score,
		  overall_score, risk_rating, benchmark_used, analysis_date)
		 VALUES (?, ?, ?, ?, ?, ?, 'MEDIUM', ?, datetime('now', ?))`,
		fmt.Sprintf("%s-%d", symbol, daysAgo), symbol,
		overall, overall, overall, overall, sector,
		fmt.Sprintf("-%d days", daysAgo),
	)
	require.NoError(t, err)
}

func TestHandleCompanyHistory(t *testing.T) {
	router, db := newTestRouter(t)
	seedAnalysis(t, db, "AAPL", "Technology", 70, 10)
	seedAnalysis(t, db, "AAPL", "Technology", 75, 1)

	req := httptest.NewRequest("GET", "/api/companies/aapl/history", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Symbol  string `json:"symbol"`
		History []struct {
			OverallScore float64 `json:"overall_score"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "AAPL", response.Symbol) // symbol from the path is uppercased
	require.Len(t, response.History, 2)
	assert.Equal(t, 75.0, response.History[0].OverallScore) // newest first
}

func TestHandleCompanyHistory_DaysWindow(t *testing.T) {
	router, db := newTestRouter(t)
	seedAnalysis(t, db, "AAPL", "Technology", 70, 20)
	seedAnalysis(t, db, "AAPL", "Technology", 75, 1)

	req := httptest.NewRequest("GET", "/api/companies/AAPL/history?days=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		History []json.RawMessage `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.History, 1)
}

func TestHandleCompanyHistory_InvalidDays(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, raw := range []string{"abc", "0", "-5"} {
		req := httptest.NewRequest("GET", "/api/companies/AAPL/history?days="+raw, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "days=%s", raw)
	}
}

func TestHandleTrending(t *testing.T) {
	router, db := newTestRouter(t)
	seedAnalysis(t, db, "AAPL", "Technology", 70, 10)
	seedAnalysis(t, db, "AAPL", "Technology", 72, 1)
	seedAnalysis(t, db, "XOM", "Energy", 60, 10)
	seedAnalysis(t, db, "XOM", "Energy", 52, 1)

	req := httptest.NewRequest("GET", "/api/market/trending", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Trending []struct {
			Symbol      string  `json:"symbol"`
			ScoreChange float64 `json:"score_change"`
		} `json:"trending_companies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Trending, 2)
	// Largest absolute change first.
	assert.Equal(t, "XOM", response.Trending[0].Symbol)
	assert.InDelta(t, -8.0, response.Trending[0].ScoreChange, 1e-9)
}

func TestHandleTrending_InvalidLimit(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, raw := range []string{"abc", "0", "101"} {
		req := httptest.NewRequest("GET", "/api/market/trending?limit="+raw, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", raw)
	}
}

func TestHandleSectors(t *testing.T) {
	router, db := newTestRouter(t)
	seedAnalysis(t, db, "AAPL", "Technology", 70, 1)
	seedAnalysis(t, db, "XOM", "Energy", 50, 1)

	req := httptest.NewRequest("GET", "/api/market/sectors", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Sectors []struct {
			Sector     string  `json:"sector"`
			AvgOverall float64 `json:"avg_overall"`
			Companies  int     `json:"company_count"`
		} `json:"sector_analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Sectors, 2)
	assert.Equal(t, "Technology", response.Sectors[0].Sector) // best average first
	assert.Equal(t, 70.0, response.Sectors[0].AvgOverall)
	assert.Equal(t, 1, response.Sectors[0].Companies)
}
