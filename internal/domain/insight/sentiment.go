package insight

import (
	"strings"
)

// SentimentLabel classifies the overall tone of a piece of text.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// TextAnalysisResult is the outcome of sentiment classification. Score is a
// confidence in [0, 0.95]; it grows with the number of matched
// sentiment-bearing words and again with matched medical terms.
type TextAnalysisResult struct {
	Label SentimentLabel `json:"label"`
	Score float64        `json:"score"`
}

const (
	baseConfidence    = 0.5
	perWordConfidence = 0.1
	wordConfidenceCap = 0.9
	perTermBoost      = 0.05
	confidenceCap     = 0.95
)

// AnalyzeSentiment classifies text by counting words that match the fixed
// positive, negative and neutral buckets (substring match, case
// insensitive). Matched medical terms add a small confidence boost on top
// of the winning bucket's count.
func AnalyzeSentiment(text string) TextAnalysisResult {
	words := strings.Fields(strings.ToLower(text))

	var positive, negative, neutral int
	for _, word := range words {
		if containsAny(word, positiveWords) {
			positive++
		}
		if containsAny(word, negativeWords) {
			negative++
		}
		if containsAny(word, neutralWords) {
			neutral++
		}
	}

	label := SentimentNeutral
	winning := neutral
	switch {
	case positive > negative:
		label = SentimentPositive
		winning = positive
	case negative > positive:
		label = SentimentNegative
		winning = negative
	}

	confidence := baseConfidence + perWordConfidence*float64(winning)
	if confidence > wordConfidenceCap {
		confidence = wordConfidenceCap
	}

	confidence += perTermBoost * float64(len(ExtractMedicalTerms(text)))
	if confidence > confidenceCap {
		confidence = confidenceCap
	}

	return TextAnalysisResult{Label: label, Score: confidence}
}
