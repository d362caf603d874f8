package insight

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medlink-backend/internal/domain/content"
)

func TestExtractTopics(t *testing.T) {
	post := content.Post{
		ID:      "p1",
		Title:   "Advances in Cardiology",
		Content: "A review of neurology imaging techniques.",
		Tags:    []string{"Hypertension", "cardiology"},
	}

	topics := ExtractTopics(post)
	assert.ElementsMatch(t, []string{"cardiology", "neurology", "hypertension"}, topics)
}

func TestExtractTopicsNoMatches(t *testing.T) {
	post := content.Post{ID: "p1", Title: "Lunch menu", Content: "Soup and salad."}
	assert.Empty(t, ExtractTopics(post))
}

func TestAnalyzeTrendingTopicsEmpty(t *testing.T) {
	assert.Empty(t, AnalyzeTrendingTopics(nil))
	assert.Empty(t, AnalyzeTrendingTopics([]content.Post{}))
}

func TestAnalyzeTrendingTopicsAggregatesVotes(t *testing.T) {
	posts := []content.Post{
		{ID: "p1", Tags: []string{"cardiology"}, Upvotes: 10, Downvotes: 0},
		{ID: "p2", Tags: []string{"cardiology"}, Upvotes: 0, Downvotes: 10},
	}

	topics := AnalyzeTrendingTopics(posts)
	require.Len(t, topics, 1)

	topic := topics[0]
	assert.Equal(t, "cardiology", topic.Topic)
	assert.Equal(t, 2, topic.Mentions)
	// Summed votes: 10 up, 10 down -> ratio 10/21, squarely neutral.
	assert.Equal(t, SentimentNeutral, topic.Sentiment)
	assert.Equal(t, 20.0, topic.GrowthRate)
	assert.Equal(t, []string{"p1", "p2"}, topic.RelatedPosts)
}

func TestAnalyzeTrendingTopicsSentimentThresholds(t *testing.T) {
	tests := []struct {
		name      string
		upvotes   int
		downvotes int
		want      SentimentLabel
	}{
		{name: "well upvoted", upvotes: 10, downvotes: 0, want: SentimentPositive},
		{name: "heavily downvoted", upvotes: 0, downvotes: 10, want: SentimentNegative},
		{name: "no votes", upvotes: 0, downvotes: 0, want: SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := []content.Post{{ID: "p1", Tags: []string{"oncology"}, Upvotes: tt.upvotes, Downvotes: tt.downvotes}}
			topics := AnalyzeTrendingTopics(posts)
			require.Len(t, topics, 1)
			assert.Equal(t, tt.want, topics[0].Sentiment)
		})
	}
}

func TestAnalyzeTrendingTopicsRankingAndTruncation(t *testing.T) {
	posts := make([]content.Post, 0)
	// Twelve distinct single-mention topics plus one dominant topic.
	for i := 0; i < 12; i++ {
		posts = append(posts, content.Post{
			ID:   fmt.Sprintf("p%d", i),
			Tags: []string{fmt.Sprintf("topic-%02d", i)},
		})
	}
	for i := 0; i < 3; i++ {
		posts = append(posts, content.Post{
			ID:   fmt.Sprintf("d%d", i),
			Tags: []string{"dominant"},
		})
	}

	topics := AnalyzeTrendingTopics(posts)
	require.Len(t, topics, 10)
	assert.Equal(t, "dominant", topics[0].Topic)
	assert.Equal(t, 3, topics[0].Mentions)
	for i := 1; i < len(topics); i++ {
		assert.LessOrEqual(t, topics[i].Mentions, topics[i-1].Mentions)
	}
}

func TestAnalyzeTrendingTopicsRelatedPostsCapped(t *testing.T) {
	posts := make([]content.Post, 0, 7)
	for i := 0; i < 7; i++ {
		posts = append(posts, content.Post{
			ID:   fmt.Sprintf("p%d", i),
			Tags: []string{"surgery"},
		})
	}

	topics := AnalyzeTrendingTopics(posts)
	require.Len(t, topics, 1)
	assert.Equal(t, 7, topics[0].Mentions)
	assert.Len(t, topics[0].RelatedPosts, 5)
	assert.Equal(t, 70.0, topics[0].GrowthRate)
}

func TestAnalyzeTrendingTopicsGrowthRateCapped(t *testing.T) {
	posts := make([]content.Post, 0, 11)
	for i := 0; i < 11; i++ {
		posts = append(posts, content.Post{
			ID:   fmt.Sprintf("p%d", i),
			Tags: []string{"pediatrics"},
		})
	}

	topics := AnalyzeTrendingTopics(posts)
	require.Len(t, topics, 1)
	assert.Equal(t, 100.0, topics[0].GrowthRate)
}
