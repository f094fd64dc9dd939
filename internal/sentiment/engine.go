package sentiment

import (
	"strings"
	"unicode"
)

// Engine computes polarity and subjectivity for a piece of normalized text.
// Exactly one implementation ships with the service (the deterministic
// lexicon engine); alternative engines can be substituted without touching
// the aggregator or the score calculator.
type Engine interface {
	// Score returns polarity in [-1, 1] and subjectivity in [0, 1].
	Score(text string) (polarity, subjectivity float64)
}

// LexiconEngine is a deterministic rule-plus-lexicon sentiment engine.
// It averages the valence of matched vocabulary words, with simple handling
// of negators and intensifiers on the preceding tokens.
type LexiconEngine struct{}

// NewLexiconEngine creates a lexicon-based sentiment engine.
func NewLexiconEngine() *LexiconEngine {
	return &LexiconEngine{}
}

// negationWindow is how many tokens a negator or intensifier looks ahead.
const negationWindow = 3

// Score implements Engine.
func (e *LexiconEngine) Score(text string) (float64, float64) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return 0, 0
	}

	var (
		polaritySum     float64
		subjectivitySum float64
		matched         int

		pendingNegation  int     // tokens remaining in the negation window
		pendingIntensity float64 // multiplier from a preceding intensifier
		intensityWindow  int
	)

	for _, tok := range tokens {
		if negators[tok] {
			pendingNegation = negationWindow
			continue
		}
		if boost, ok := intensifiers[tok]; ok {
			pendingIntensity = boost
			intensityWindow = negationWindow
			continue
		}

		if valence, ok := valenceLexicon[tok]; ok {
			p := valence.Polarity
			if intensityWindow > 0 && pendingIntensity != 0 {
				p *= pendingIntensity
				pendingIntensity = 0
				intensityWindow = 0
			}
			if pendingNegation > 0 {
				// Negation inverts and dampens, it does not simply flip sign.
				p *= -0.5
				pendingNegation = 0
			}
			polaritySum += clamp(p, -1, 1)
			subjectivitySum += valence.Subjectivity
			matched++
		}

		if pendingNegation > 0 {
			pendingNegation--
		}
		if intensityWindow > 0 {
			intensityWindow--
		}
	}

	if matched == 0 {
		return 0, 0
	}

	polarity := clamp(polaritySum/float64(matched), -1, 1)
	subjectivity := clamp(subjectivitySum/float64(matched), 0, 1)
	return polarity, subjectivity
}

// ScoreDocument classifies normalized text into a labeled per-document
// result. Polarity within the ±0.1 dead zone is treated as neutral noise
// and assigned the fixed neutral score of 0.5. Empty text short-circuits
// without invoking the engine.
func ScoreDocument(engine Engine, text string) DocumentSentiment {
	if strings.TrimSpace(text) == "" {
		return DocumentSentiment{
			Label:          LabelNeutral,
			Score:          0.5,
			TopicRelevance: zeroRelevance(),
		}
	}

	polarity, subjectivity := engine.Score(text)

	var label Label
	var score float64
	switch {
	case polarity > 0.1:
		label = LabelPositive
		score = polarity
	case polarity < -0.1:
		label = LabelNegative
		score = -polarity
	default:
		label = LabelNeutral
		score = 0.5
	}

	return DocumentSentiment{
		Label:          label,
		Score:          score,
		Polarity:       polarity,
		Subjectivity:   subjectivity,
		TopicRelevance: TopicRelevance(text),
	}
}

// tokenize lowercases text and splits it into word tokens.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
