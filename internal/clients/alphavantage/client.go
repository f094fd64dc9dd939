// Package alphavantage provides a client for the Alpha Vantage company
// fundamentals API. The free tier allows 25 requests per day, so responses
// are cached aggressively and the client degrades to deterministic sample
// metrics when no API key is configured.
package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aristath/esglens/internal/domain"
	"github.com/rs/zerolog"
)

const (
	baseURL        = "https://www.alphavantage.co/query"
	dailyLimit     = 25
	requestTimeout = 30 * time.Second
	overviewTTL    = 24 * time.Hour
)

// ErrRateLimitExceeded is returned when the daily request budget is spent.
type ErrRateLimitExceeded struct {
	Limit int
}

func (e ErrRateLimitExceeded) Error() string {
	return fmt.Sprintf("alpha vantage daily rate limit of %d requests exceeded", e.Limit)
}

// cacheEntry holds a cached response with its expiration.
type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// PersistentCache is an optional second-level cache that survives process
// restarts, so the daily request budget is not re-spent on startup.
type PersistentCache interface {
	Store(key string, data interface{}, ttl time.Duration) error
	Get(key string, dest interface{}) (bool, error)
}

// Client is the Alpha Vantage API client.
type Client struct {
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
	persistent PersistentCache

	mu           sync.Mutex
	requestsUsed int
	counterDay   time.Time

	cacheMu sync.RWMutex
	cache   map[string]cacheEntry
}

// NewClient creates an Alpha Vantage client. An empty API key switches the
// client to sample-data mode.
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        log.With().Str("client", "alphavantage").Logger(),
		counterDay: time.Now().Truncate(24 * time.Hour),
		cache:      make(map[string]cacheEntry),
	}
}

// SetPersistentCache attaches a durable cache backing the in-memory one.
func (c *Client) SetPersistentCache(cache PersistentCache) {
	c.persistent = cache
}

// overviewResponse mirrors the OVERVIEW endpoint payload. All numeric
// fields arrive as strings ("None" when unavailable).
type overviewResponse struct {
	Symbol                     string `json:"Symbol"`
	Name                       string `json:"Name"`
	Sector                     string `json:"Sector"`
	Industry                   string `json:"Industry"`
	MarketCapitalization       string `json:"MarketCapitalization"`
	PERatio                    string `json:"PERatio"`
	ReturnOnEquityTTM          string `json:"ReturnOnEquityTTM"`
	QuarterlyRevenueGrowthYOY  string `json:"QuarterlyRevenueGrowthYOY"`
	AnalystTargetPrice         string `json:"AnalystTargetPrice"`
	EVToEBITDA                 string `json:"EVToEBITDA"`
	DebtToEquityRatio          string `json:"DebtToEquity"`
	FiftyTwoWeekHigh           string `json:"52WeekHigh"`
	SharesOutstandingRaw       string `json:"SharesOutstanding"`
	LatestQuarter              string `json:"LatestQuarter"`
	PriceToSalesRatioTTM       string `json:"PriceToSalesRatioTTM"`
	QuarterlyEarningsGrowthYOY string `json:"QuarterlyEarningsGrowthYOY"`
}

// CompanyOverview fetches company fundamentals mapped to FinancialMetrics.
// Missing numeric fields stay nil so downstream scoring treats them as
// "no adjustment".
func (c *Client) CompanyOverview(ctx context.Context, symbol string) (domain.FinancialMetrics, error) {
	if c.apiKey == "" {
		return sampleMetrics(symbol), nil
	}

	cacheKey := "overview:" + symbol
	if cached, ok := c.getFromCache(cacheKey); ok {
		if metrics, ok := cached.(domain.FinancialMetrics); ok {
			return metrics, nil
		}
	}
	if c.persistent != nil {
		var metrics domain.FinancialMetrics
		ok, err := c.persistent.Get(cacheKey, &metrics)
		if err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Persistent cache read failed")
		} else if ok {
			c.setCache(cacheKey, metrics, overviewTTL)
			return metrics, nil
		}
	}

	if err := c.checkRateLimit(); err != nil {
		return domain.FinancialMetrics{}, err
	}

	params := url.Values{}
	params.Set("function", "OVERVIEW")
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.FinancialMetrics{}, fmt.Errorf("failed to build overview request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.FinancialMetrics{}, fmt.Errorf("overview request failed for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.FinancialMetrics{}, fmt.Errorf("overview request for %s returned status %d", symbol, resp.StatusCode)
	}

	var raw overviewResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return domain.FinancialMetrics{}, fmt.Errorf("failed to decode overview for %s: %w", symbol, err)
	}

	metrics := domain.FinancialMetrics{
		Symbol:        symbol,
		CompanyName:   raw.Name,
		Sector:        normalizeSector(raw.Sector),
		Industry:      raw.Industry,
		MarketCap:     parseOptionalFloat(raw.MarketCapitalization),
		PERatio:       parseOptionalFloat(raw.PERatio),
		ROE:           parseOptionalFloat(raw.ReturnOnEquityTTM),
		DebtToEquity:  parseOptionalFloat(raw.DebtToEquityRatio),
		RevenueGrowth: toPercent(parseOptionalFloat(raw.QuarterlyRevenueGrowthYOY)),
		CurrentPrice:  parseOptionalFloat(raw.AnalystTargetPrice),
	}

	c.setCache(cacheKey, metrics, overviewTTL)
	if c.persistent != nil {
		if err := c.persistent.Store(cacheKey, metrics, overviewTTL); err != nil {
			c.log.Warn().Err(err).Str("symbol", symbol).Msg("Persistent cache write failed")
		}
	}

	c.log.Debug().
		Str("symbol", symbol).
		Str("sector", metrics.Sector).
		Int("remaining_requests", c.GetRemainingRequests()).
		Msg("Fetched company overview")

	return metrics, nil
}

// checkRateLimit consumes one request from the daily budget.
func (c *Client) checkRateLimit() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := time.Now().Truncate(24 * time.Hour)
	if today.After(c.counterDay) {
		c.counterDay = today
		c.requestsUsed = 0
	}

	if c.requestsUsed >= dailyLimit {
		return ErrRateLimitExceeded{Limit: dailyLimit}
	}
	c.requestsUsed++
	return nil
}

// GetRemainingRequests returns how many requests are left today.
func (c *Client) GetRemainingRequests() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return dailyLimit - c.requestsUsed
}

// ResetDailyCounter resets the daily request budget.
func (c *Client) ResetDailyCounter() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestsUsed = 0
}

func (c *Client) setCache(key string, data interface{}, ttl time.Duration) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	c.cache[key] = cacheEntry{data: data, expiresAt: time.Now().Add(ttl)}
}

func (c *Client) getFromCache(key string) (interface{}, bool) {
	c.cacheMu.RLock()
	defer c.cacheMu.RUnlock()
	entry, ok := c.cache[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.data, true
}

// ClearCache drops all cached responses.
func (c *Client) ClearCache() {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	c.cache = make(map[string]cacheEntry)
}

// parseOptionalFloat converts an Alpha Vantage numeric string into a float
// pointer. Empty, "None" and "-" values map to nil rather than zero.
func parseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "None" || s == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// toPercent scales a fractional growth rate (0.12) to percent (12).
func toPercent(v *float64) *float64 {
	if v == nil {
		return nil
	}
	p := *v * 100
	return &p
}

// normalizeSector maps Alpha Vantage sector spellings onto the benchmark
// table keys. Unmapped sectors pass through and fall back to the Default
// benchmark downstream.
func normalizeSector(sector string) string {
	switch strings.ToUpper(strings.TrimSpace(sector)) {
	case "TECHNOLOGY", "INFORMATION TECHNOLOGY":
		return "Technology"
	case "ENERGY", "OIL & GAS":
		return "Energy"
	case "HEALTHCARE", "HEALTH CARE", "LIFE SCIENCES":
		return "Healthcare"
	case "FINANCE", "FINANCIALS", "FINANCIAL SERVICES":
		return "Financials"
	default:
		return strings.TrimSpace(sector)
	}
}

// sampleSectors provides deterministic sample data for well-known symbols
// when the service runs without an API key.
var sampleSectors = map[string]string{
	"AAPL": "Technology", "MSFT": "Technology", "GOOGL": "Technology", "META": "Technology", "NVDA": "Technology",
	"XOM": "Energy", "CVX": "Energy", "COP": "Energy",
	"JNJ": "Healthcare", "PFE": "Healthcare", "UNH": "Healthcare",
	"JPM": "Financials", "BAC": "Financials", "GS": "Financials",
}

// sampleMetrics returns deterministic placeholder fundamentals so the rest
// of the pipeline can run without credentials.
func sampleMetrics(symbol string) domain.FinancialMetrics {
	sector, ok := sampleSectors[symbol]
	if !ok {
		sector = "Unknown"
	}
	return domain.FinancialMetrics{
		Symbol:        symbol,
		CompanyName:   symbol + " Inc.",
		Sector:        sector,
		Industry:      sector,
		MarketCap:     domain.Float64Ptr(50e9),
		PERatio:       domain.Float64Ptr(22),
		DebtToEquity:  domain.Float64Ptr(0.6),
		ROE:           domain.Float64Ptr(0.14),
		RevenueGrowth: domain.Float64Ptr(6),
		CurrentPrice:  domain.Float64Ptr(120),
	}
}
