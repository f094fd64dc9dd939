// Package sentiment implements the text sentiment and ESG topic relevance
// pipeline: preprocessing, per-document scoring and batch aggregation.
package sentiment

import (
	"math"
	"runtime"
	"sort"
	"strings"

	"github.com/aristath/esglens/internal/domain"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// maxKeyTopics caps the ranked key-topic list.
const maxKeyTopics = 5

// Analyzer scores batches of news documents.
type Analyzer struct {
	engine Engine
	log    zerolog.Logger
}

// NewAnalyzer creates a batch analyzer backed by the given engine.
func NewAnalyzer(engine Engine, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		engine: engine,
		log:    log.With().Str("component", "sentiment_analyzer").Logger(),
	}
}

// AnalyzeBatch computes the sentiment summary for a batch of documents.
// An empty batch yields the canonical zero summary. Documents are scored
// independently and in parallel; all ordering in the result is derived from
// the input order, never from completion order.
func (a *Analyzer) AnalyzeBatch(docs []domain.Document) Summary {
	if len(docs) == 0 {
		return EmptySummary()
	}

	results := make([]DocumentSentiment, len(docs))

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i := range docs {
		i := i
		g.Go(func() error {
			text := Preprocess(docs[i].Title + " " + docs[i].Description)
			results[i] = ScoreDocument(a.engine, text)
			return nil
		})
	}
	// Scoring never returns an error; Wait only synchronizes the workers.
	_ = g.Wait()

	summary := a.aggregate(docs, results)

	a.log.Debug().
		Int("articles", summary.TotalArticles).
		Float64("overall_sentiment", summary.OverallSentiment).
		Strs("key_topics", summary.KeyTopics).
		Msg("Batch sentiment analysis completed")

	return summary
}

// aggregate reduces per-document results into a Summary.
func (a *Analyzer) aggregate(docs []domain.Document, results []DocumentSentiment) Summary {
	n := len(results)

	polarities := make([]float64, n)
	relevanceSums := map[string]float64{}
	positive, negative := 0, 0

	trend := make([]TrendPoint, n)
	for i, res := range results {
		polarities[i] = res.Polarity
		switch res.Label {
		case LabelPositive:
			positive++
		case LabelNegative:
			negative++
		}
		for _, category := range Categories {
			relevanceSums[category] += res.TopicRelevance[category]
		}
		trend[i] = TrendPoint{
			Date:      docs[i].PublishedAt,
			Sentiment: res.Polarity,
			Title:     docs[i].Title,
			Source:    docs[i].Source,
		}
	}

	// Newest first; the sort is stable so equal dates keep input order.
	sort.SliceStable(trend, func(i, j int) bool {
		return trend[i].Date > trend[j].Date
	})

	relevanceAvg := make(map[string]float64, len(Categories))
	for _, category := range Categories {
		relevanceAvg[category] = round3(relevanceSums[category] / float64(n))
	}

	return Summary{
		OverallSentiment:  round3(stat.Mean(polarities, nil)),
		PositiveCount:     positive,
		NegativeCount:     negative,
		NeutralCount:      n - positive - negative,
		SentimentTrend:    trend,
		KeyTopics:         rankKeyTopics(docs),
		TopicRelevanceAvg: relevanceAvg,
		TotalArticles:     n,
	}
}

// rankKeyTopics ranks ESG categories by raw keyword occurrence counts over
// the concatenated raw corpus. Zero-count categories are excluded, the list
// is capped at maxKeyTopics, and ties keep the fixed category declaration
// order (Environmental, Social, Governance).
func rankKeyTopics(docs []domain.Document) []string {
	parts := make([]string, 0, len(docs))
	for _, doc := range docs {
		parts = append(parts, doc.Title+" "+doc.Description)
	}
	counts := KeyTopicCounts(strings.Join(parts, " "))

	ranked := make([]string, len(Categories))
	copy(ranked, Categories)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	topics := make([]string, 0, maxKeyTopics)
	for _, category := range ranked {
		if counts[category] == 0 {
			continue
		}
		topics = append(topics, category)
		if len(topics) == maxKeyTopics {
			break
		}
	}
	return topics
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
