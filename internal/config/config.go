// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir            string // Base directory for the analysis database and backups (always absolute)
	LogLevel           string
	Port               int
	DevMode            bool
	NewsAPIKey         string // NewsAPI key; sample articles are served when empty
	AlphaVantageAPIKey string // Alpha Vantage key; sample metrics are served when empty
	TrackedSymbols     []string
	RefreshSchedule    string // cron expression for the periodic re-analysis job
	AllowedOrigins     []string
	Backup             *BackupConfig
}

// BackupConfig holds S3 backup configuration. Backups are disabled when
// the bucket is empty.
type BackupConfig struct {
	Bucket          string
	Endpoint        string // Optional custom endpoint (e.g. Cloudflare R2, MinIO)
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Schedule        string // cron expression for the backup job
}

// Enabled reports whether S3 backups are configured.
func (b *BackupConfig) Enabled() bool {
	return b != nil && b.Bucket != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Determine data directory with fallback logic:
	// 1. ESGLENS_DATA_DIR environment variable
	// 2. ./data relative to the working directory
	// Always resolved to an absolute path, created if missing.
	dataDir := getEnv("ESGLENS_DATA_DIR", "data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}
	if err := os.MkdirAll(absDataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	port, err := strconv.Atoi(getEnv("PORT", "8000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	cfg := &Config{
		DataDir:            absDataDir,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Port:               port,
		DevMode:            getEnvBool("DEV_MODE", false),
		NewsAPIKey:         getEnv("NEWS_API_KEY", ""),
		AlphaVantageAPIKey: getEnv("ALPHA_VANTAGE_API_KEY", ""),
		TrackedSymbols:     splitList(getEnv("TRACKED_SYMBOLS", "")),
		RefreshSchedule:    getEnv("REFRESH_SCHEDULE", "@every 1h"),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		Backup: &BackupConfig{
			Bucket:          getEnv("BACKUP_S3_BUCKET", ""),
			Endpoint:        getEnv("BACKUP_S3_ENDPOINT", ""),
			Region:          getEnv("BACKUP_S3_REGION", "auto"),
			AccessKeyID:     getEnv("BACKUP_S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("BACKUP_S3_SECRET_ACCESS_KEY", ""),
			Schedule:        getEnv("BACKUP_SCHEDULE", "0 0 3 * * *"),
		},
	}

	return cfg, nil
}

// getEnv retrieves an environment variable value, returning a fallback if
// the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvBool parses a boolean environment variable.
func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

// splitList parses a comma-separated environment value into a slice,
// trimming whitespace and dropping empty entries.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
