package database

import "fmt"

// analysisSchema holds the DDL for the analysis database. Statements use
// IF NOT EXISTS so initialization is idempotent across restarts.
var analysisSchema = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		symbol TEXT PRIMARY KEY,
		name TEXT,
		sector TEXT,
		industry TEXT,
		market_cap REAL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS esg_analyses (
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
		analysis_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (symbol) REFERENCES companies (symbol)
	)`,
	`CREATE TABLE IF NOT EXISTS news_sentiment (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		article_title TEXT,
		source TEXT,
		sentiment_score REAL,
		sentiment_label TEXT,
		published_at TEXT,
		analyzed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS price_history (
		symbol TEXT NOT NULL,
		date TEXT NOT NULL,
		close REAL NOT NULL,
		PRIMARY KEY (symbol, date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_symbol_date ON esg_analyses (symbol, analysis_date)`,
	`CREATE INDEX IF NOT EXISTS idx_sentiment_symbol ON news_sentiment (symbol, analyzed_at)`,
}

// cacheSchema holds the DDL for the client cache database.
var cacheSchema = []string{
	`CREATE TABLE IF NOT EXISTS client_cache (
		cache_key TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expires_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_cache_expires ON client_cache (expires_at)`,
}

// InitAnalysisSchema creates the analysis database tables and indexes.
func (db *DB) InitAnalysisSchema() error {
	return db.applySchema(analysisSchema)
}

// InitCacheSchema creates the client cache tables.
func (db *DB) InitCacheSchema() error {
	return db.applySchema(cacheSchema)
}

func (db *DB) applySchema(statements []string) error {
	for _, stmt := range statements {
		if _, err := db.conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema for %s: %w", db.name, err)
		}
	}
	return nil
}
