package supabase

import (
	"context"
	"time"

	"medlink-backend/internal/domain/content"
	"medlink-backend/internal/repository"
)

// VoteStore implements repository.VoteRepository. One row per user and
// target; the unique constraint on (user_id, target_type, target_id) makes
// Save an upsert.
type VoteStore struct {
	store *Store
}

// NewVoteStore creates the votes adapter.
func NewVoteStore(store *Store) *VoteStore {
	return &VoteStore{store: store}
}

type voteRow struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	Value      int       `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
}

func (s *VoteStore) Get(ctx context.Context, userID string, targetType content.VoteTarget, targetID string) (*content.Vote, error) {
	var rows []voteRow
	_, err := s.store.rest.From(tableVotes).
		Select("*", "", false).
		Eq("user_id", userID).
		Eq("target_type", string(targetType)).
		Eq("target_id", targetID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.NewFetchError("votes.get", err)
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	row := rows[0]
	return &content.Vote{
		ID:         row.ID,
		UserID:     row.UserID,
		TargetType: content.VoteTarget(row.TargetType),
		TargetID:   row.TargetID,
		Value:      row.Value,
		CreatedAt:  row.CreatedAt,
	}, nil
}

func (s *VoteStore) Save(ctx context.Context, vote *content.Vote) error {
	row := voteRow{
		ID:         vote.ID,
		UserID:     vote.UserID,
		TargetType: string(vote.TargetType),
		TargetID:   vote.TargetID,
		Value:      vote.Value,
		CreatedAt:  vote.CreatedAt,
	}
	_, _, err := s.store.rest.From(tableVotes).
		Insert(row, true, "user_id,target_type,target_id", "", "").
		Execute()
	if err != nil {
		return repository.NewFetchError("votes.save", err)
	}
	return nil
}

func (s *VoteStore) Delete(ctx context.Context, id string) error {
	_, _, err := s.store.rest.From(tableVotes).
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return repository.NewFetchError("votes.delete", err)
	}
	return nil
}
