// Package newsapi provides a client for the NewsAPI "everything" endpoint.
// It returns company news as domain Documents and degrades to a
// deterministic sample feed when no API key is configured.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aristath/esglens/internal/domain"
	"github.com/rs/zerolog"
)

const (
	baseURL        = "https://newsapi.org/v2/everything"
	requestTimeout = 10 * time.Second
	pageSize       = 30
	maxArticles    = 50
)

// Client is the NewsAPI client.
type Client struct {
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a NewsAPI client. An empty API key switches the client
// to sample-data mode.
func NewClient(apiKey string, log zerolog.Logger) *Client {
	return &Client{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        log.With().Str("client", "newsapi").Logger(),
	}
}

// apiResponse mirrors the NewsAPI everything payload.
type apiResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// CompanyNews fetches recent articles mentioning the symbol or company
// name, newest window first, capped at maxArticles.
func (c *Client) CompanyNews(ctx context.Context, symbol, companyName string, daysBack int) ([]domain.Document, error) {
	if c.apiKey == "" {
		return sampleNews(symbol), nil
	}

	if daysBack <= 0 {
		daysBack = 30
	}
	from := time.Now().AddDate(0, 0, -daysBack).Format("2006-01-02")

	query := symbol
	if companyName != "" && companyName != symbol {
		query = fmt.Sprintf("%s OR %q", symbol, companyName)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("from", from)
	params.Set("sortBy", "relevancy")
	params.Set("language", "en")
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build news request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request failed for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news request for %s returned status %d", symbol, resp.StatusCode)
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode news response for %s: %w", symbol, err)
	}
	if raw.Status != "ok" {
		return nil, fmt.Errorf("news request for %s rejected: %s", symbol, raw.Message)
	}

	docs := make([]domain.Document, 0, len(raw.Articles))
	for _, article := range raw.Articles {
		docs = append(docs, domain.Document{
			Title:       article.Title,
			Description: article.Description,
			PublishedAt: article.PublishedAt,
			Source:      article.Source.Name,
		})
		if len(docs) == maxArticles {
			break
		}
	}

	c.log.Debug().
		Str("symbol", symbol).
		Int("articles", len(docs)).
		Msg("Fetched company news")

	return docs, nil
}

// sampleHeadlines feeds the no-credentials mode. The set intentionally
// covers all three ESG categories with mixed tone.
var sampleHeadlines = []struct {
	title       string
	description string
	source      string
}{
	{"%s Announces New Sustainability Initiative", "The company committed to reduce emissions and expand renewable energy use across operations.", "Reuters"},
	{"%s Reports Strong Quarterly Earnings Beat", "Revenue growth and record profit drove an upgrade from several analysts.", "Bloomberg"},
	{"%s Sets Net-Zero Carbon Emissions Target", "A major climate milestone: the green transition plan covers the full supply chain.", "Financial Times"},
	{"%s Improves Corporate Governance Practices", "The board strengthened audit and compliance oversight to improve transparency.", "Wall Street Journal"},
	{"%s Enhances Employee Diversity Programs", "New workplace inclusion and community safety programs benefit employees worldwide.", "Reuters"},
	{"%s Faces Questions Over Supply Chain Labor", "Investors raised concerns about workplace conditions at overseas suppliers.", "Financial Times"},
	{"%s Launches Green Bond Program", "Proceeds will fund renewable energy and waste reduction projects.", "Bloomberg"},
	{"%s CEO Discusses Climate Change Strategy", "Leadership outlined the company's carbon reduction commitments for the decade.", "Reuters"},
}

// sampleNews generates a deterministic article feed for a symbol. Dates
// step back one day per article so trend ordering is exercised.
func sampleNews(symbol string) []domain.Document {
	now := time.Now().UTC()
	docs := make([]domain.Document, 0, len(sampleHeadlines))
	for i, h := range sampleHeadlines {
		docs = append(docs, domain.Document{
			Title:       fmt.Sprintf(h.title, symbol),
			Description: h.description,
			PublishedAt: now.AddDate(0, 0, -i).Format(time.RFC3339),
			Source:      h.source,
		})
	}
	return docs
}
