package sentiment

// Label classifies the overall tone of a single document.
type Label string

const (
	LabelPositive Label = "POSITIVE"
	LabelNegative Label = "NEGATIVE"
	LabelNeutral  Label = "NEUTRAL"
)

// ESG categories. The declaration order is significant: it is the
// tie-break order used when ranking key topics.
const (
	CategoryEnvironmental = "Environmental"
	CategorySocial        = "Social"
	CategoryGovernance    = "Governance"
)

// Categories lists the ESG categories in tie-break order.
var Categories = []string{CategoryEnvironmental, CategorySocial, CategoryGovernance}

// DocumentSentiment is the per-document analysis result.
type DocumentSentiment struct {
	Label          Label              `json:"sentiment_label"`
	Score          float64            `json:"sentiment_score"`
	Polarity       float64            `json:"polarity"`     // -1 (most negative) .. +1 (most positive)
	Subjectivity   float64            `json:"subjectivity"` // 0 (objective) .. 1 (subjective)
	TopicRelevance map[string]float64 `json:"topic_relevance"`
}

// TrendPoint is one entry of the chronological sentiment trend.
type TrendPoint struct {
	Date      string  `json:"date"`
	Sentiment float64 `json:"sentiment"` // document polarity
	Title     string  `json:"title"`
	Source    string  `json:"source"`
}

// Summary aggregates sentiment across a batch of documents.
//
// KeyTopics and TopicRelevanceAvg use different aggregation bases on
// purpose: KeyTopics ranks categories by raw keyword occurrence counts over
// the whole corpus, while TopicRelevanceAvg averages the per-document
// normalized relevance scores.
type Summary struct {
	OverallSentiment  float64            `json:"overall_sentiment"`
	PositiveCount     int                `json:"positive_count"`
	NegativeCount     int                `json:"negative_count"`
	NeutralCount      int                `json:"neutral_count"`
	SentimentTrend    []TrendPoint       `json:"sentiment_trend"`
	KeyTopics         []string           `json:"key_topics"`
	TopicRelevanceAvg map[string]float64 `json:"topic_relevance_avg"`
	TotalArticles     int                `json:"total_articles"`
}

// EmptySummary returns the canonical summary for a batch with no documents:
// zero counts, zero averages, empty sequences.
func EmptySummary() Summary {
	return Summary{
		SentimentTrend: []TrendPoint{},
		KeyTopics:      []string{},
		TopicRelevanceAvg: map[string]float64{
			CategoryEnvironmental: 0,
			CategorySocial:        0,
			CategoryGovernance:    0,
		},
	}
}
