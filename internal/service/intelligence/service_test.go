package intelligence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medlink-backend/internal/domain/content"
	"medlink-backend/internal/domain/insight"
	"medlink-backend/internal/repository"
	"medlink-backend/internal/repository/mocks"
	appErrors "medlink-backend/pkg/errors"
)

type fixture struct {
	posts    *mocks.MockPostRepository
	search   *mocks.MockSearchRepository
	analyses *mocks.MockAnalysisRepository
	svc      Service
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	f := &fixture{
		posts:    mocks.NewMockPostRepository(),
		search:   mocks.NewMockSearchRepository(),
		analyses: mocks.NewMockAnalysisRepository(),
	}
	f.svc = NewService(f.posts, f.search, f.analyses, nil, cfg, nil, zap.NewNop())
	return f
}

func seedPost(t *testing.T, f *fixture, title, body string, tags []string) *content.Post {
	t.Helper()
	post, err := content.NewPost("author-1", "", title, body, tags)
	require.NoError(t, err)
	require.NoError(t, f.posts.Save(context.Background(), post))
	return post
}

func TestAnalyze(t *testing.T) {
	f := newFixture(t, Config{AnalysisAudit: true})

	analysis, err := f.svc.Analyze(context.Background(), "user-1",
		"The new protocol improved outcomes for patients with hypertension across the clinic.")
	require.NoError(t, err)
	assert.Equal(t, insight.SentimentPositive, analysis.Sentiment.Label)
	assert.NotEmpty(t, analysis.Summary)
	assert.Greater(t, analysis.Readability, 0.0)
	assert.Contains(t, analysis.MedicalTerms, "hypertension")

	records := f.analyses.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "user-1", records[0].UserID)
	assert.Equal(t, analysis.Sentiment.Label, records[0].Label)
}

func TestAnalyzeAuditFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, Config{AnalysisAudit: true})
	f.analyses.SetError("SaveAnalysis", assert.AnError)

	_, err := f.svc.Analyze(context.Background(), "user-1", "some clinical note")
	assert.NoError(t, err)
}

func TestAnalyzeAuditDisabled(t *testing.T) {
	f := newFixture(t, Config{AnalysisAudit: false})

	_, err := f.svc.Analyze(context.Background(), "user-1", "some clinical note")
	require.NoError(t, err)
	assert.Empty(t, f.analyses.Records())
}

func TestAnalyzeEmptyText(t *testing.T) {
	f := newFixture(t, Config{})
	_, err := f.svc.Analyze(context.Background(), "user-1", "")
	assert.True(t, appErrors.IsValidation(err))
}

func TestSummarizeEmptyText(t *testing.T) {
	f := newFixture(t, Config{})
	_, err := f.svc.Summarize(context.Background(), "")
	assert.True(t, appErrors.IsValidation(err))
}

func TestTrendingTopics(t *testing.T) {
	f := newFixture(t, Config{})
	seedPost(t, f, "Cardiology rounds", "Interesting cardiology case today", nil)
	seedPost(t, f, "More cardiology", "ECG findings in cardiology clinic", nil)
	seedPost(t, f, "Oncology update", "New oncology trial results", nil)

	report, err := f.svc.TrendingTopics(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Fallback)
	require.NotEmpty(t, report.Topics)
	assert.Equal(t, "cardiology", report.Topics[0].Topic)
	assert.Equal(t, 2, report.Topics[0].Mentions)
}

func TestTrendingTopicsDemoFallback(t *testing.T) {
	f := newFixture(t, Config{DemoFallback: true})
	f.posts.SetError("RecentSince", repository.NewFetchError("posts.recent", assert.AnError))

	report, err := f.svc.TrendingTopics(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Fallback)
	require.Len(t, report.Topics, 5)
	assert.Equal(t, "cardiology", report.Topics[0].Topic)
}

func TestTrendingTopicsFallbackDisabled(t *testing.T) {
	f := newFixture(t, Config{DemoFallback: false})
	f.posts.SetError("RecentSince", repository.NewFetchError("posts.recent", assert.AnError))

	_, err := f.svc.TrendingTopics(context.Background())
	assert.True(t, appErrors.IsUnavailable(err))
}

func TestTrendingTopicsNonUnavailableErrorPropagates(t *testing.T) {
	f := newFixture(t, Config{DemoFallback: true})
	f.posts.SetError("RecentSince", appErrors.NewInternal("boom", assert.AnError))

	_, err := f.svc.TrendingTopics(context.Background())
	require.Error(t, err)
	assert.False(t, appErrors.IsUnavailable(err))
}

func TestSearch(t *testing.T) {
	f := newFixture(t, Config{})
	f.search.Results = []insight.SearchResult{
		{ID: "p1", Title: "General discussion", Content: "nothing medical here", RelevanceScore: 0.5},
		{ID: "p2", Title: "Managing hypertension", Content: "blood pressure control strategies", RelevanceScore: 0.5},
	}

	response, err := f.svc.Search(context.Background(), "hypertension")
	require.NoError(t, err)
	assert.False(t, response.Fallback)
	assert.Contains(t, response.ExpandedQuery, "hypertension")
	require.Len(t, response.Results, 2)
	// Term matches outrank the baseline score.
	assert.Equal(t, "p2", response.Results[0].ID)
}

func TestSearchDemoFallback(t *testing.T) {
	f := newFixture(t, Config{DemoFallback: true})
	f.search.SetError("SearchPosts", repository.NewFetchError("posts.search", assert.AnError))

	response, err := f.svc.Search(context.Background(), "hypertension")
	require.NoError(t, err)
	assert.True(t, response.Fallback)
	require.NotEmpty(t, response.Results)
	assert.Equal(t, "demo-1", response.Results[0].ID)
}

func TestSearchEmptyQuery(t *testing.T) {
	f := newFixture(t, Config{})
	_, err := f.svc.Search(context.Background(), "")
	assert.True(t, appErrors.IsValidation(err))
}

func TestInsights(t *testing.T) {
	f := newFixture(t, Config{})

	insights, err := f.svc.Insights(context.Background(), "diabetes")
	require.NoError(t, err)
	require.NotEmpty(t, insights)
	for _, entry := range insights {
		assert.NotEmpty(t, entry.Condition)
	}

	_, err = f.svc.Insights(context.Background(), "")
	assert.True(t, appErrors.IsValidation(err))
}
