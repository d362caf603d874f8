package supabase

import (
	"context"
	"time"

	"github.com/supabase-community/postgrest-go"

	"medlink-backend/internal/domain/content"
	"medlink-backend/internal/repository"
)

// CommunityStore implements repository.CommunityRepository.
type CommunityStore struct {
	store *Store
}

// NewCommunityStore creates the communities adapter.
func NewCommunityStore(store *Store) *CommunityStore {
	return &CommunityStore{store: store}
}

type communityRow struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Specialty   string    `json:"specialty,omitempty"`
	CreatorID   string    `json:"creator_id"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type membershipRow struct {
	ID          string    `json:"id"`
	CommunityID string    `json:"community_id"`
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

func communityFromRow(row communityRow) content.Community {
	return content.Community{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Specialty:   row.Specialty,
		CreatorID:   row.CreatorID,
		MemberCount: row.MemberCount,
		CreatedAt:   row.CreatedAt,
	}
}

func (s *CommunityStore) Save(ctx context.Context, community *content.Community) error {
	row := communityRow{
		ID:          community.ID,
		Name:        community.Name,
		Description: community.Description,
		Specialty:   community.Specialty,
		CreatorID:   community.CreatorID,
		MemberCount: community.MemberCount,
		CreatedAt:   community.CreatedAt,
	}
	_, _, err := s.store.rest.From(tableCommunities).
		Insert(row, true, "id", "", "").
		Execute()
	if err != nil {
		return repository.NewFetchError("communities.save", err)
	}
	return nil
}

func (s *CommunityStore) GetByID(ctx context.Context, id string) (*content.Community, error) {
	var rows []communityRow
	_, err := s.store.rest.From(tableCommunities).
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.NewFetchError("communities.get", err)
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	community := communityFromRow(rows[0])
	return &community, nil
}

func (s *CommunityStore) List(ctx context.Context, limit, offset int) ([]content.Community, error) {
	builder := s.store.rest.From(tableCommunities).
		Select("*", "", false).
		Order("member_count", &postgrest.OrderOpts{Ascending: false})
	if limit > 0 {
		builder = builder.Limit(limit, "")
	}
	if offset > 0 {
		end := offset + limit - 1
		if limit <= 0 {
			end = offset + 99
		}
		builder = builder.Range(offset, end, "")
	}

	var rows []communityRow
	if _, err := builder.ExecuteTo(&rows); err != nil {
		return nil, repository.NewFetchError("communities.list", err)
	}
	out := make([]content.Community, 0, len(rows))
	for _, row := range rows {
		out = append(out, communityFromRow(row))
	}
	return out, nil
}

func (s *CommunityStore) GetMembership(ctx context.Context, communityID, userID string) (*content.Membership, error) {
	var rows []membershipRow
	_, err := s.store.rest.From(tableMemberships).
		Select("*", "", false).
		Eq("community_id", communityID).
		Eq("user_id", userID).
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.NewFetchError("memberships.get", err)
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	row := rows[0]
	return &content.Membership{
		ID:          row.ID,
		CommunityID: row.CommunityID,
		UserID:      row.UserID,
		Role:        row.Role,
		JoinedAt:    row.JoinedAt,
	}, nil
}

func (s *CommunityStore) SaveMembership(ctx context.Context, membership *content.Membership) error {
	row := membershipRow{
		ID:          membership.ID,
		CommunityID: membership.CommunityID,
		UserID:      membership.UserID,
		Role:        membership.Role,
		JoinedAt:    membership.JoinedAt,
	}
	_, _, err := s.store.rest.From(tableMemberships).
		Insert(row, true, "community_id,user_id", "", "").
		Execute()
	if err != nil {
		return repository.NewFetchError("memberships.save", err)
	}
	return nil
}

func (s *CommunityStore) DeleteMembership(ctx context.Context, communityID, userID string) error {
	_, _, err := s.store.rest.From(tableMemberships).
		Delete("", "").
		Eq("community_id", communityID).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return repository.NewFetchError("memberships.delete", err)
	}
	return nil
}

func (s *CommunityStore) AdjustMemberCount(ctx context.Context, communityID string, delta int) error {
	type counter struct {
		MemberCount int `json:"member_count"`
	}
	var rows []counter
	_, err := s.store.rest.From(tableCommunities).
		Select("member_count", "", false).
		Eq("id", communityID).
		ExecuteTo(&rows)
	if err != nil {
		return repository.NewFetchError("communities.adjust_members", err)
	}
	if len(rows) == 0 {
		return repository.ErrNotFound
	}

	update := map[string]interface{}{"member_count": rows[0].MemberCount + delta}
	_, _, err = s.store.rest.From(tableCommunities).
		Update(update, "", "").
		Eq("id", communityID).
		Execute()
	if err != nil {
		return repository.NewFetchError("communities.adjust_members", err)
	}
	return nil
}
