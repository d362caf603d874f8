package intelligence

import (
	"medlink-backend/internal/domain/insight"
)

// Fixed demo data served when the upstream store is unreachable. The
// deliberate policy is to always show something rather than surface a 5xx
// to the feed; responses carry a fallback marker so clients can badge it.

func demoTrendingTopics() []insight.TrendingTopic {
	return []insight.TrendingTopic{
		{Topic: "cardiology", Mentions: 24, Sentiment: insight.SentimentPositive, GrowthRate: 100, RelatedPosts: []string{}},
		{Topic: "oncology", Mentions: 18, Sentiment: insight.SentimentNeutral, GrowthRate: 100, RelatedPosts: []string{}},
		{Topic: "neurology", Mentions: 12, Sentiment: insight.SentimentPositive, GrowthRate: 100, RelatedPosts: []string{}},
		{Topic: "pediatrics", Mentions: 9, Sentiment: insight.SentimentNeutral, GrowthRate: 90, RelatedPosts: []string{}},
		{Topic: "emergency", Mentions: 7, Sentiment: insight.SentimentNegative, GrowthRate: 70, RelatedPosts: []string{}},
	}
}

func demoSearchResults() []insight.SearchResult {
	return []insight.SearchResult{
		{
			ID:             "demo-1",
			Title:          "New guidelines for hypertension management",
			Content:        "Updated blood pressure targets and first-line treatment recommendations for adult patients.",
			RelevanceScore: 0.9,
		},
		{
			ID:             "demo-2",
			Title:          "Case discussion: atypical chest pain in a young patient",
			Content:        "A cardiology case walk-through covering differential diagnosis and ECG interpretation.",
			RelevanceScore: 0.8,
		},
		{
			ID:             "demo-3",
			Title:          "Antibiotic stewardship in outpatient settings",
			Content:        "Practical prescribing advice to reduce resistance while treating common infections.",
			RelevanceScore: 0.7,
		},
	}
}
