// Package server provides the HTTP server and routing for esglens.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/esglens/internal/clients/alphavantage"
	"github.com/aristath/esglens/internal/config"
	"github.com/aristath/esglens/internal/database"
	"github.com/aristath/esglens/internal/events"
	analysishandlers "github.com/aristath/esglens/internal/modules/analysis/handlers"
	historyhandlers "github.com/aristath/esglens/internal/modules/history/handlers"
)

// Config holds everything the server needs to route requests.
type Config struct {
	Log              zerolog.Logger
	Config           *config.Config
	AnalysisDB       *database.DB
	CacheDB          *database.DB
	Bus              *events.Bus
	AnalysisHandlers *analysishandlers.Handler
	HistoryHandlers  *historyhandlers.Handler
	MarketClient     *alphavantage.Client
}

// Server is the HTTP server.
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	cfg            *config.Config
	systemHandlers *SystemHandlers
	hub            *Hub
}

// New creates a new HTTP server.
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		cfg:    cfg.Config,
		systemHandlers: NewSystemHandlers(
			cfg.Log,
			cfg.Config.DataDir,
			cfg.AnalysisDB,
			cfg.CacheDB,
			cfg.MarketClient,
		),
		hub: NewHub(cfg.Bus, cfg.Log),
	}

	s.setupMiddleware(cfg.Config.DevMode, cfg.Config.AllowedOrigins)
	s.setupRoutes(cfg.AnalysisHandlers, cfg.HistoryHandlers)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool, allowedOrigins []string) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(analysisH *analysishandlers.Handler, historyH *historyhandlers.Handler) {
	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealth)

	// Single /api group; handler packages register relative to it.
	s.router.Route("/api", func(r chi.Router) {
		analysisH.RegisterRoutes(r)
		historyH.RegisterRoutes(r)

		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.systemHandlers.HandleSystemStatus)
			r.Get("/databases", s.systemHandlers.HandleDatabaseStats)
		})
	})

	// WebSocket endpoint must bypass the timeout middleware, so it is
	// registered on the root router.
	s.router.Get("/ws", s.hub.HandleWebSocket)
}

// handleRoot describes the service.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"service": "esglens",
		"status":  "running",
	})
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("Request")
	})
}

// Start starts the HTTP server and the event broadcaster.
func (s *Server) Start() error {
	s.hub.Start()
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	s.hub.Stop()
	return s.server.Shutdown(ctx)
}
