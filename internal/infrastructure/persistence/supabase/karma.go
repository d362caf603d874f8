package supabase

import (
	"context"
	"time"

	"github.com/supabase-community/postgrest-go"

	"medlink-backend/internal/domain/karma"
	"medlink-backend/internal/repository"
)

// KarmaStore implements repository.KarmaRepository over the append-only
// karma_activities table.
type KarmaStore struct {
	store *Store
}

// NewKarmaStore creates the karma ledger adapter.
func NewKarmaStore(store *Store) *KarmaStore {
	return &KarmaStore{store: store}
}

type activityRow struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	ActivityType string    `json:"activity_type"`
	Points       int       `json:"points"`
	CreatedAt    time.Time `json:"created_at"`
}

func (s *KarmaStore) Append(ctx context.Context, activity *karma.Activity) error {
	row := activityRow{
		ID:           activity.ID,
		UserID:       activity.UserID,
		ActivityType: string(activity.Type),
		Points:       activity.Points,
		CreatedAt:    activity.CreatedAt,
	}
	// Plain insert, never upsert: the ledger is append-only.
	_, _, err := s.store.rest.From(tableKarmaLedger).
		Insert(row, false, "", "", "").
		Execute()
	if err != nil {
		return repository.NewFetchError("karma.append", err)
	}
	return nil
}

func (s *KarmaStore) ListByUser(ctx context.Context, userID string) ([]karma.Activity, error) {
	var rows []activityRow
	_, err := s.store.rest.From(tableKarmaLedger).
		Select("*", "", false).
		Eq("user_id", userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.NewFetchError("karma.list", err)
	}
	out := make([]karma.Activity, 0, len(rows))
	for _, row := range rows {
		out = append(out, karma.Activity{
			ID:        row.ID,
			UserID:    row.UserID,
			Type:      karma.ActivityType(row.ActivityType),
			Points:    row.Points,
			CreatedAt: row.CreatedAt,
		})
	}
	return out, nil
}
