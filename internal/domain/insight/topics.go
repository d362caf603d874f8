package insight

import (
	"sort"
	"strings"

	"medlink-backend/internal/domain/content"
)

const (
	trendingTopicLimit = 10
	relatedPostLimit   = 5

	positiveVoteRatio = 0.6
	negativeVoteRatio = 0.4
)

// TrendingTopic is the aggregate of one topic across the window of posts
// handed to AnalyzeTrendingTopics.
type TrendingTopic struct {
	Topic        string         `json:"topic"`
	Mentions     int            `json:"mentions"`
	Sentiment    SentimentLabel `json:"sentiment"`
	GrowthRate   float64        `json:"growth_rate"`
	RelatedPosts []string       `json:"related_posts"`
}

// ExtractTopics tags a post with every fixed specialty name appearing in
// its title or content plus all of its free-form tags, deduplicated.
func ExtractTopics(post content.Post) []string {
	text := strings.ToLower(post.Title + " " + post.Content)

	seen := make(map[string]bool)
	topics := make([]string, 0)
	for _, specialty := range specialtyTopics {
		if strings.Contains(text, specialty) && !seen[specialty] {
			seen[specialty] = true
			topics = append(topics, specialty)
		}
	}
	for _, tag := range post.Tags {
		tag = strings.ToLower(tag)
		if tag != "" && !seen[tag] {
			seen[tag] = true
			topics = append(topics, tag)
		}
	}
	return topics
}

// AnalyzeTrendingTopics aggregates topic mentions across the given posts
// and returns the top ten topics by mention count. The caller is expected
// to restrict the input to the desired time window (and cap its size) at
// the query layer.
//
// Sentiment is derived from the summed votes of the contributing posts.
// GrowthRate is a mention-count proxy, min(100, mentions*10), not a true
// time-series rate; the simplification is intentional.
func AnalyzeTrendingTopics(posts []content.Post) []TrendingTopic {
	type aggregate struct {
		mentions  int
		postIDs   []string
		upvotes   int
		downvotes int
	}

	byTopic := make(map[string]*aggregate)
	order := make([]string, 0)
	for _, post := range posts {
		for _, topic := range ExtractTopics(post) {
			agg, ok := byTopic[topic]
			if !ok {
				agg = &aggregate{}
				byTopic[topic] = agg
				order = append(order, topic)
			}
			agg.mentions++
			agg.postIDs = append(agg.postIDs, post.ID)
			agg.upvotes += post.Upvotes
			agg.downvotes += post.Downvotes
		}
	}

	topics := make([]TrendingTopic, 0, len(byTopic))
	for _, topic := range order {
		agg := byTopic[topic]

		ratio := float64(agg.upvotes) / float64(agg.upvotes+agg.downvotes+1)
		sentiment := SentimentNeutral
		switch {
		case ratio > positiveVoteRatio:
			sentiment = SentimentPositive
		case ratio < negativeVoteRatio:
			sentiment = SentimentNegative
		}

		growth := float64(agg.mentions * 10)
		if growth > 100 {
			growth = 100
		}

		related := agg.postIDs
		if len(related) > relatedPostLimit {
			related = related[:relatedPostLimit]
		}

		topics = append(topics, TrendingTopic{
			Topic:        topic,
			Mentions:     agg.mentions,
			Sentiment:    sentiment,
			GrowthRate:   growth,
			RelatedPosts: related,
		})
	}

	// Mention count descending; first-seen order breaks ties so the
	// ranking is deterministic.
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Mentions > topics[j].Mentions
	})

	if len(topics) > trendingTopicLimit {
		topics = topics[:trendingTopicLimit]
	}
	return topics
}
