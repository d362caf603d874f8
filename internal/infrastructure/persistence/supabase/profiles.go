package supabase

import (
	"context"
	"time"

	"medlink-backend/internal/domain/user"
	"medlink-backend/internal/repository"
)

// ProfileStore implements repository.ProfileRepository. Profile rows
// mirror the auth provider's users, keyed by the same UUID.
type ProfileStore struct {
	store *Store
}

// NewProfileStore creates the profiles adapter.
func NewProfileStore(store *Store) *ProfileStore {
	return &ProfileStore{store: store}
}

type profileRow struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Specialty   string    `json:"specialty,omitempty"`
	Credentials string    `json:"credentials,omitempty"`
	Verified    bool      `json:"verified"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *ProfileStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	var rows []profileRow
	_, err := s.store.rest.From(tableProfiles).
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.NewFetchError("profiles.get", err)
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	row := rows[0]
	return &user.User{
		ID:          row.ID,
		Email:       row.Email,
		DisplayName: row.DisplayName,
		Specialty:   row.Specialty,
		Credentials: row.Credentials,
		Verified:    row.Verified,
		AvatarURL:   row.AvatarURL,
		CreatedAt:   row.CreatedAt,
	}, nil
}

func (s *ProfileStore) Upsert(ctx context.Context, profile *user.User) error {
	row := profileRow{
		ID:          profile.ID,
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		Specialty:   profile.Specialty,
		Credentials: profile.Credentials,
		Verified:    profile.Verified,
		AvatarURL:   profile.AvatarURL,
		CreatedAt:   profile.CreatedAt,
	}
	_, _, err := s.store.rest.From(tableProfiles).
		Insert(row, true, "id", "", "").
		Execute()
	if err != nil {
		return repository.NewFetchError("profiles.upsert", err)
	}
	return nil
}
