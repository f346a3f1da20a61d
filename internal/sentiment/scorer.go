// Package sentiment implements a keyword-based polarity scorer for news
// headlines. It is offline and deterministic: no model, no network.
package sentiment

import "strings"

// Polarity thresholds for labeling. A score above Positive is "positive",
// below Negative is "negative", anything between is "neutral".
const (
	PositiveThreshold = 0.1
	NegativeThreshold = -0.1
)

// positive / negative keyword dictionaries (lowercase).
var positiveWords = map[string]float64{
	"surge": 0.7, "soar": 0.7, "rally": 0.6, "record high": 0.7,
	"beat": 0.5, "beats": 0.5, "exceeds": 0.5, "upgrade": 0.6,
	"outperform": 0.6, "strong": 0.4, "growth": 0.4, "gain": 0.4,
	"profit": 0.3, "buy": 0.5, "bullish": 0.7, "breakthrough": 0.6,
	"innovative": 0.4, "expansion": 0.4, "dividend": 0.3,
	"partnership": 0.3, "milestone": 0.4, "optimistic": 0.5,
}

var negativeWords = map[string]float64{
	"plunge": 0.7, "crash": 0.8, "slump": 0.6, "tumble": 0.6,
	"miss": 0.5, "misses": 0.5, "downgrade": 0.6, "underperform": 0.6,
	"weak": 0.4, "decline": 0.5, "loss": 0.4, "lawsuit": 0.6,
	"sell": 0.5, "bearish": 0.7, "fraud": 0.8, "investigation": 0.5,
	"layoff": 0.6, "recall": 0.5, "warning": 0.5, "concern": 0.3,
	"cut": 0.3, "fall": 0.4,
}

// Score returns the polarity of a piece of text in [-1, 1]. Text with no
// lexicon hits scores 0.
func Score(text string) float64 {
	lower := strings.ToLower(text)

	posScore := 0.0
	negScore := 0.0

	for word, weight := range positiveWords {
		if strings.Contains(lower, word) {
			posScore += weight
		}
	}
	for word, weight := range negativeWords {
		if strings.Contains(lower, word) {
			negScore += weight
		}
	}

	total := posScore + negScore
	if total == 0 {
		return 0
	}

	return (posScore - negScore) / total
}

// Label maps a polarity to its display label via the fixed thresholds.
func Label(polarity float64) string {
	switch {
	case polarity > PositiveThreshold:
		return "positive"
	case polarity < NegativeThreshold:
		return "negative"
	default:
		return "neutral"
	}
}
