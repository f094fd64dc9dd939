package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/esglens/internal/config"
	"github.com/aristath/esglens/internal/events"
	"github.com/aristath/esglens/internal/modules/analysis"
	analysishandlers "github.com/aristath/esglens/internal/modules/analysis/handlers"
	"github.com/aristath/esglens/internal/modules/history"
	historyhandlers "github.com/aristath/esglens/internal/modules/history/handlers"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	log := zerolog.Nop()
	analysisService := analysis.NewService(nil, nil, nil, nil, nil, nil, log)
	historyService := history.NewService(history.NewRepository(nil), log)

	var srv *Server
	// Route registration must not panic; both handler groups share the
	// single /api group.
	require.NotPanics(t, func() {
		srv = New(Config{
			Log: log,
			Config: &config.Config{
				DataDir: t.TempDir(),
				Port:    0,
				DevMode: true,
			},
			Bus:              events.NewBus(log),
			AnalysisHandlers: analysishandlers.NewHandler(analysisService, log),
			HistoryHandlers:  historyhandlers.NewHandler(historyService, log),
		})
	})
	return srv
}

func TestNew_RegistersAllRoutes(t *testing.T) {
	srv := newTestServer(t)

	routes := map[string]bool{}
	err := chi.Walk(srv.router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		route = strings.TrimSuffix(route, "/")
		if route == "" {
			route = "/"
		}
		routes[method+" "+route] = true
		return nil
	})
	require.NoError(t, err)

	for _, want := range []string{
		"GET /",
		"GET /health",
		"POST /api/analyze",
		"GET /api/companies",
		"GET /api/companies/{symbol}/history",
		"GET /api/market/trending",
		"GET /api/market/sectors",
		"GET /api/system/status",
		"GET /api/system/databases",
		"GET /ws",
	} {
		assert.True(t, routes[want], "missing route %q", want)
	}
}

func TestServer_RoutesDispatch(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"health", "GET", "/health", "", http.StatusOK},
		{"root", "GET", "/", "", http.StatusOK},
		{"analyze rejects bad body", "POST", "/api/analyze", `{"symbol":`, http.StatusBadRequest},
		{"history rejects bad days", "GET", "/api/companies/AAPL/history?days=abc", "", http.StatusBadRequest},
		{"trending rejects bad limit", "GET", "/api/market/trending?limit=0", "", http.StatusBadRequest},
		{"unknown path", "GET", "/api/nope", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			srv.router.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
