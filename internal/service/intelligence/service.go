// Package intelligence provides the content-analysis operations: sentiment
// and readability analysis, summaries, trending topics, expanded search,
// and condition insights. The heuristics themselves live in the insight
// domain package; this layer adds persistence, caching, and the demo-data
// fallback used when the upstream store is unreachable.
package intelligence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"medlink-backend/internal/domain/insight"
	"medlink-backend/internal/infrastructure/cache"
	"medlink-backend/internal/infrastructure/observability"
	"medlink-backend/internal/repository"
	appErrors "medlink-backend/pkg/errors"
)

const (
	// Trend analysis scans at most trendWindow of history, capped at
	// trendPostLimit posts.
	trendWindow    = 7 * 24 * time.Hour
	trendPostLimit = 100

	searchResultLimit = 25
)

// ContentAnalysis is the full analysis of one piece of text.
type ContentAnalysis struct {
	Sentiment    insight.TextAnalysisResult `json:"sentiment"`
	Summary      string                     `json:"summary"`
	Readability  float64                    `json:"readability"`
	MedicalTerms []string                   `json:"medical_terms"`
}

// SearchResponse is a ranked search result set. Fallback is true when the
// results are demo data served after an upstream failure.
type SearchResponse struct {
	Query         string                 `json:"query"`
	ExpandedQuery string                 `json:"expanded_query"`
	Results       []insight.SearchResult `json:"results"`
	Fallback      bool                   `json:"fallback,omitempty"`
}

// TrendReport is the trending topic list. Fallback is true when it is demo
// data.
type TrendReport struct {
	Topics   []insight.TrendingTopic `json:"topics"`
	Fallback bool                    `json:"fallback,omitempty"`
}

// Service defines the content-intelligence operations.
type Service interface {
	// Analyze runs sentiment, summary, readability and term extraction
	// over the text, persisting an audit copy of the sentiment result.
	Analyze(ctx context.Context, userID, text string) (*ContentAnalysis, error)

	// Summarize returns an extractive summary of the text.
	Summarize(ctx context.Context, text string) (string, error)

	// TrendingTopics ranks topics across recent posts. Results are cached
	// briefly; on upstream failure the documented demo list is served.
	TrendingTopics(ctx context.Context) (*TrendReport, error)

	// Search expands the query, fetches candidates, and re-ranks them by
	// medical-term matches. On upstream failure demo results are served.
	Search(ctx context.Context, query string) (*SearchResponse, error)

	// Insights returns curated condition insights matching the query.
	Insights(ctx context.Context, query string) ([]insight.MedicalInsight, error)
}

// Config toggles the optional behaviors wired in from app configuration.
type Config struct {
	DemoFallback  bool
	AnalysisAudit bool
}

type service struct {
	posts    repository.PostRepository
	search   repository.SearchRepository
	analyses repository.AnalysisRepository
	trends   *cache.TrendCache
	cfg      Config
	metrics  *observability.Collector
	logger   *zap.Logger
}

// NewService creates the intelligence service. The trend cache may be nil,
// which disables caching.
func NewService(
	posts repository.PostRepository,
	search repository.SearchRepository,
	analyses repository.AnalysisRepository,
	trends *cache.TrendCache,
	cfg Config,
	metrics *observability.Collector,
	logger *zap.Logger,
) Service {
	return &service{
		posts:    posts,
		search:   search,
		analyses: analyses,
		trends:   trends,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *service) Analyze(ctx context.Context, userID, text string) (*ContentAnalysis, error) {
	if text == "" {
		return nil, appErrors.NewValidation("text cannot be empty")
	}

	analysis := &ContentAnalysis{
		Sentiment:    insight.AnalyzeSentiment(text),
		Summary:      insight.Summarize(text),
		Readability:  insight.CalculateReadability(text),
		MedicalTerms: insight.ExtractMedicalTerms(text),
	}
	if s.metrics != nil {
		s.metrics.AnalysesRun.Inc()
	}

	if s.cfg.AnalysisAudit && s.analyses != nil {
		record := &repository.AnalysisRecord{
			ID:        uuid.New().String(),
			UserID:    userID,
			Label:     analysis.Sentiment.Label,
			Score:     analysis.Sentiment.Score,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.analyses.SaveAnalysis(ctx, record); err != nil {
			// The audit copy is best effort; the analysis still stands.
			s.logger.Warn("analysis audit write failed", zap.Error(err))
		}
	}
	return analysis, nil
}

func (s *service) Summarize(ctx context.Context, text string) (string, error) {
	if text == "" {
		return "", appErrors.NewValidation("text cannot be empty")
	}
	return insight.Summarize(text), nil
}

func (s *service) TrendingTopics(ctx context.Context) (*TrendReport, error) {
	if s.trends != nil {
		if topics, ok := s.trends.Get(ctx); ok {
			if s.metrics != nil {
				s.metrics.TrendCacheHits.Inc()
			}
			return &TrendReport{Topics: topics}, nil
		}
		if s.metrics != nil {
			s.metrics.TrendCacheMisses.Inc()
		}
	}

	since := time.Now().UTC().Add(-trendWindow)
	posts, err := s.posts.RecentSince(ctx, since, trendPostLimit)
	if err != nil {
		if s.cfg.DemoFallback && appErrors.IsUnavailable(err) {
			s.fallback("trending_topics", err)
			return &TrendReport{Topics: demoTrendingTopics(), Fallback: true}, nil
		}
		return nil, err
	}

	topics := insight.AnalyzeTrendingTopics(posts)
	if s.trends != nil {
		s.trends.Set(ctx, topics)
	}
	return &TrendReport{Topics: topics}, nil
}

func (s *service) Search(ctx context.Context, query string) (*SearchResponse, error) {
	if query == "" {
		return nil, appErrors.NewValidation("query cannot be empty")
	}
	expanded := insight.ExpandQuery(query)
	terms := insight.ExtractMedicalTerms(query)
	if s.metrics != nil {
		s.metrics.SearchesRun.Inc()
	}

	candidates, err := s.search.SearchPosts(ctx, expanded, searchResultLimit)
	if err != nil {
		if s.cfg.DemoFallback && appErrors.IsUnavailable(err) {
			s.fallback("search", err)
			return &SearchResponse{
				Query:         query,
				ExpandedQuery: expanded,
				Results:       insight.RankResults(demoSearchResults(), query, terms),
				Fallback:      true,
			}, nil
		}
		return nil, err
	}

	return &SearchResponse{
		Query:         query,
		ExpandedQuery: expanded,
		Results:       insight.RankResults(candidates, query, terms),
	}, nil
}

func (s *service) Insights(ctx context.Context, query string) ([]insight.MedicalInsight, error) {
	if query == "" {
		return nil, appErrors.NewValidation("query cannot be empty")
	}
	return insight.LookupInsights(query), nil
}

func (s *service) fallback(operation string, err error) {
	s.logger.Warn("serving demo data after upstream failure",
		zap.String("operation", operation),
		zap.Error(err),
	)
	if s.metrics != nil {
		s.metrics.DemoFallbacks.WithLabelValues(operation).Inc()
	}
}
