package insight

import (
	"sort"
	"strings"
)

const summarySentenceLimit = 3

// longSentenceThreshold is the character length past which a sentence gets
// a scoring bonus, on the assumption that longer clinical sentences carry
// more of the narrative.
const longSentenceThreshold = 50

// Summarize produces an extractive pseudo-summary of a clinical narrative:
// each sentence is scored by its medical-keyword matches plus a length
// bonus, and the top three sentences are joined in score order. Ties keep
// the original sentence order. Empty or whitespace-only input yields an
// empty string.
func Summarize(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return ""
	}

	type scored struct {
		sentence string
		score    int
	}
	ranked := make([]scored, 0, len(sentences))
	for _, sentence := range sentences {
		score := 0
		for _, word := range strings.Fields(strings.ToLower(sentence)) {
			if containsAny(word, medicalKeywords) {
				score++
			}
		}
		if len(sentence) > longSentenceThreshold {
			score++
		}
		ranked = append(ranked, scored{sentence: sentence, score: score})
	}

	// Stable sort so equally scored sentences keep their input order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	limit := summarySentenceLimit
	if len(ranked) < limit {
		limit = len(ranked)
	}

	parts := make([]string, 0, limit)
	for _, entry := range ranked[:limit] {
		parts = append(parts, entry.sentence)
	}
	return strings.Join(parts, ". ") + "."
}
