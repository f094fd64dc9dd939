package sentiment

import "strings"

// relevanceNormalizer is the raw-count divisor used to map keyword
// occurrences into [0, 1]. Five or more occurrences saturate the score.
const relevanceNormalizer = 5.0

// TopicRelevance scores how relevant a document is to each ESG category.
// Occurrences of every lexicon keyword are counted as case-insensitive
// substrings, so overlapping vocabulary entries count independently. The
// per-category score is min(1, count/5).
func TopicRelevance(text string) map[string]float64 {
	lower := strings.ToLower(text)
	scores := make(map[string]float64, len(Categories))

	for _, category := range Categories {
		count := 0
		for _, keyword := range relevanceLexicons[category] {
			count += strings.Count(lower, keyword)
		}
		score := float64(count) / relevanceNormalizer
		if score > 1.0 {
			score = 1.0
		}
		scores[category] = score
	}

	return scores
}

// KeyTopicCounts counts raw key-topic keyword occurrences per category over
// the concatenated corpus text. This intentionally recounts the full corpus
// rather than reducing per-document scores: the ranking base is the total
// occurrence count, not an average of normalized values.
func KeyTopicCounts(corpus string) map[string]int {
	lower := strings.ToLower(corpus)
	counts := make(map[string]int, len(Categories))

	for _, category := range Categories {
		for _, keyword := range keyTopicLexicons[category] {
			counts[category] += strings.Count(lower, keyword)
		}
	}

	return counts
}

func zeroRelevance() map[string]float64 {
	return map[string]float64{
		CategoryEnvironmental: 0,
		CategorySocial:        0,
		CategoryGovernance:    0,
	}
}
