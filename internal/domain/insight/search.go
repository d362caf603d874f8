package insight

import (
	"sort"
	"strings"
)

const relevanceBoostPerMatch = 0.2

// SearchResult is a candidate returned by the external full-text search,
// carrying its baseline relevance plus the re-ranked score computed here.
type SearchResult struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Content          string  `json:"content"`
	RelevanceScore   float64 `json:"relevance_score"`
	AIRelevanceScore float64 `json:"ai_relevance_score"`
}

// ExpandQuery appends the fixed synonym set of every keyword found in the
// query (substring match, case insensitive). Multiple keywords each
// contribute their synonyms, in table order.
func ExpandQuery(query string) string {
	lower := strings.ToLower(query)
	expanded := query
	for _, entry := range querySynonyms {
		if strings.Contains(lower, entry.key) {
			expanded += " " + strings.Join(entry.synonyms, " ")
		}
	}
	return expanded
}

// RankResults re-scores externally fetched candidates: each medical term
// found in a result's title or content adds a fixed boost to the baseline
// relevance, capped at 1.0, and results are re-sorted by the boosted score.
// The query itself is not re-matched here; it already drove the external
// retrieval. With no medical terms the baseline ordering is preserved.
func RankResults(results []SearchResult, query string, medicalTerms []string) []SearchResult {
	ranked := make([]SearchResult, len(results))
	copy(ranked, results)

	for i := range ranked {
		score := ranked[i].RelevanceScore
		if len(medicalTerms) > 0 {
			text := strings.ToLower(ranked[i].Title + " " + ranked[i].Content)
			matches := 0
			for _, term := range medicalTerms {
				if strings.Contains(text, term) {
					matches++
				}
			}
			score += relevanceBoostPerMatch * float64(matches)
		}
		if score > 1.0 {
			score = 1.0
		}
		ranked[i].AIRelevanceScore = score
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AIRelevanceScore > ranked[j].AIRelevanceScore
	})
	return ranked
}
