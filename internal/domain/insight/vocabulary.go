// Package insight bundles the heuristic text-processing routines behind the
// application's content-intelligence features: readability and sentiment
// scoring, extractive summarization, topic tagging and trend ranking, search
// query expansion and re-ranking, and the fixed medical-insight lookup.
//
// Every function in this package is a pure, synchronous function over
// in-memory data. Fetching the data (recent posts, search candidates) is the
// caller's job; see internal/service/intelligence for the orchestration and the
// fallback policy on fetch failure.
package insight

import "strings"

// Fixed lookup tables. These are initialized once and never mutated.

// medicalKeywords is matched by substring containment against lowercased
// words, so "medication" matches the "medic" entry.
var medicalKeywords = []string{
	"diagnos", "treatment", "symptom", "patient", "medic", "therap",
	"clinical", "disease", "syndrome", "acute", "chronic", "surg",
	"prescri", "dosage", "infection", "inflammat", "cardio", "neuro",
	"oncolog", "pediatric", "radiolog", "patholog", "vaccine", "antibiotic",
	"prognosis", "remission", "biopsy", "anesthe", "sepsis", "hypertension",
	"diabet",
}

// Sentiment word buckets, matched by substring containment against
// lowercased words.
var positiveWords = []string{
	"excellent", "successful", "success", "improved", "improvement",
	"recover", "effective", "beneficial", "breakthrough", "promising",
	"healed", "healthy", "positive", "relief", "stable",
}

var negativeWords = []string{
	"failed", "failure", "severe", "complication", "adverse", "worsen",
	"critical", "decline", "fatal", "deteriorat", "negative", "risk",
	"emergency", "relapse", "terminal",
}

var neutralWords = []string{
	"unchanged", "ongoing", "moderate", "routine", "standard", "typical",
	"observed", "monitored",
}

// specialtyTopics are the fixed specialty names the topic extractor scans
// post text for.
var specialtyTopics = []string{
	"cardiology", "neurology", "oncology", "pediatrics", "surgery",
	"radiology", "psychiatry", "dermatology", "orthopedics", "emergency",
}

// synonymEntry pairs a query keyword with the terms appended when the
// keyword appears in a search query. A slice keeps expansion order fixed.
type synonymEntry struct {
	key      string
	synonyms []string
}

var querySynonyms = []synonymEntry{
	{key: "heart", synonyms: []string{"cardiac", "cardiovascular", "coronary"}},
	{key: "brain", synonyms: []string{"cerebral", "neurological", "cranial"}},
	{key: "lung", synonyms: []string{"pulmonary", "respiratory", "bronchial"}},
	{key: "pain", synonyms: []string{"discomfort", "ache", "soreness"}},
}

// containsAny reports whether any keyword appears in the word as a
// substring. Matching is deliberately not whole-word: "medication" matches
// the "medic" entry.
func containsAny(word string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(word, kw) {
			return true
		}
	}
	return false
}
