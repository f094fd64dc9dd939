// Package main is the entry point for the esglens ESG analysis server.
// It wires the sentiment and scoring pipeline, external data clients,
// persistence, scheduled jobs and the HTTP API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/aristath/esglens/internal/clientdata"
	"github.com/aristath/esglens/internal/clients/alphavantage"
	"github.com/aristath/esglens/internal/clients/newsapi"
	"github.com/aristath/esglens/internal/config"
	"github.com/aristath/esglens/internal/database"
	"github.com/aristath/esglens/internal/esg"
	"github.com/aristath/esglens/internal/events"
	"github.com/aristath/esglens/internal/modules/analysis"
	analysishandlers "github.com/aristath/esglens/internal/modules/analysis/handlers"
	"github.com/aristath/esglens/internal/modules/history"
	historyhandlers "github.com/aristath/esglens/internal/modules/history/handlers"
	"github.com/aristath/esglens/internal/reliability"
	"github.com/aristath/esglens/internal/scheduler"
	"github.com/aristath/esglens/internal/sentiment"
	"github.com/aristath/esglens/internal/server"
	"github.com/aristath/esglens/pkg/logger"
)

// refreshDaysBack is the news lookback window used by the scheduled
// re-analysis job. Matches the API default.
const refreshDaysBack = 30

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting esglens")

	// Databases: analysis.db holds companies, scores and sentiment history;
	// cache.db holds ephemeral client response blobs.
	analysisDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "analysis.db"),
		Profile: database.ProfileStandard,
		Name:    "analysis",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open analysis database")
	}
	defer analysisDB.Close()

	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	if err := analysisDB.InitAnalysisSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize analysis schema")
	}
	if err := cacheDB.InitCacheSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache schema")
	}

	cacheRepo := clientdata.NewRepository(cacheDB.Conn())

	// External data clients. Both fall back to deterministic sample data
	// when no API key is configured. Market responses are cached durably so
	// restarts do not re-spend the daily request budget.
	newsClient := newsapi.NewClient(cfg.NewsAPIKey, log)
	marketClient := alphavantage.NewClient(cfg.AlphaVantageAPIKey, log)
	marketClient.SetPersistentCache(cacheRepo)

	// Core pipeline.
	bus := events.NewBus(log)
	analyzer := sentiment.NewAnalyzer(sentiment.NewLexiconEngine(), log)
	calculator := esg.NewCalculator(log)

	analysisRepo := analysis.NewRepository(analysisDB.Conn())
	analysisService := analysis.NewService(newsClient, marketClient, analyzer, calculator, analysisRepo, bus, log)

	historyRepo := history.NewRepository(analysisDB.Conn())
	historyService := history.NewService(historyRepo, log)

	// Scheduled jobs.
	sched := scheduler.New(log)
	if len(cfg.TrackedSymbols) > 0 {
		refreshJob := scheduler.NewRefreshJob(analysisService, cfg.TrackedSymbols, refreshDaysBack, log)
		if err := sched.AddJob(cfg.RefreshSchedule, refreshJob); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule refresh job")
		}
	}
	if err := sched.AddJob("0 0 * * * *", scheduler.NewCacheCleanupJob(cacheRepo, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule cache cleanup job")
	}

	if cfg.Backup.Enabled() {
		s3Client, err := reliability.NewS3Client(context.Background(), cfg.Backup, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 client")
		}
		backupService := reliability.NewBackupService(s3Client, cfg.DataDir, map[string]string{
			"analysis": analysisDB.Path(),
			"cache":    cacheDB.Path(),
		}, bus, log)
		if err := sched.AddJob(cfg.Backup.Schedule, scheduler.NewBackupJob(backupService, log)); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule backup job")
		}
		log.Info().Str("bucket", cfg.Backup.Bucket).Msg("S3 backups enabled")
	}

	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Log:              log,
		Config:           cfg,
		AnalysisDB:       analysisDB,
		CacheDB:          cacheDB,
		Bus:              bus,
		AnalysisHandlers: analysishandlers.NewHandler(analysisService, log),
		HistoryHandlers:  historyhandlers.NewHandler(historyService, log),
		MarketClient:     marketClient,
	})

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()
	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
