package supabase

import (
	"context"
	"encoding/json"

	"medlink-backend/internal/domain/insight"
	"medlink-backend/internal/repository"
)

// SearchStore implements repository.SearchRepository through the
// search_posts SQL function, which runs websearch_to_tsquery over the posts
// table and returns ts_rank as the baseline relevance score.
type SearchStore struct {
	store *Store
}

// NewSearchStore creates the full-text search adapter.
func NewSearchStore(store *Store) *SearchStore {
	return &SearchStore{store: store}
}

type searchRow struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	RelevanceScore float64 `json:"relevance_score"`
}

func (s *SearchStore) SearchPosts(ctx context.Context, query string, limit int) ([]insight.SearchResult, error) {
	payload := s.store.rest.Rpc("search_posts", "", map[string]interface{}{
		"search_query": query,
		"max_rows":     limit,
	})
	if s.store.rest.ClientError != nil {
		return nil, repository.NewFetchError("search.posts", s.store.rest.ClientError)
	}

	var rows []searchRow
	if err := json.Unmarshal([]byte(payload), &rows); err != nil {
		return nil, repository.NewFetchError("search.posts", err)
	}
	out := make([]insight.SearchResult, 0, len(rows))
	for _, row := range rows {
		out = append(out, insight.SearchResult{
			ID:             row.ID,
			Title:          row.Title,
			Content:        row.Content,
			RelevanceScore: row.RelevanceScore,
		})
	}
	return out, nil
}
