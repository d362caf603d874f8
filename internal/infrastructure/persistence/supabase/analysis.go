package supabase

import (
	"context"
	"time"

	"medlink-backend/internal/repository"
)

// AnalysisStore implements repository.AnalysisRepository. Rows are audit
// copies only; nothing in the application reads them back.
type AnalysisStore struct {
	store *Store
}

// NewAnalysisStore creates the analysis audit adapter.
func NewAnalysisStore(store *Store) *AnalysisStore {
	return &AnalysisStore{store: store}
}

type analysisRow struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Label     string    `json:"label"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *AnalysisStore) SaveAnalysis(ctx context.Context, record *repository.AnalysisRecord) error {
	row := analysisRow{
		ID:        record.ID,
		UserID:    record.UserID,
		Label:     string(record.Label),
		Score:     record.Score,
		CreatedAt: record.CreatedAt,
	}
	_, _, err := s.store.rest.From(tableContentAnalyses).
		Insert(row, false, "", "", "").
		Execute()
	if err != nil {
		return repository.NewFetchError("analyses.save", err)
	}
	return nil
}
