package supabase

import (
	"context"
	"time"

	"github.com/supabase-community/postgrest-go"

	"medlink-backend/internal/domain/social"
	"medlink-backend/internal/repository"
)

// SocialStore implements repository.SocialRepository.
type SocialStore struct {
	store *Store
}

// NewSocialStore creates the friend-request and invite adapter.
func NewSocialStore(store *Store) *SocialStore {
	return &SocialStore{store: store}
}

type friendRequestRow struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"sender_id"`
	RecipientID string     `json:"recipient_id"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

type inviteRow struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	CreatorID   string    `json:"creator_id"`
	CommunityID string    `json:"community_id,omitempty"`
	MaxUses     int       `json:"max_uses"`
	Uses        int       `json:"uses"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func friendRequestFromRow(row friendRequestRow) social.FriendRequest {
	return social.FriendRequest{
		ID:          row.ID,
		SenderID:    row.SenderID,
		RecipientID: row.RecipientID,
		Status:      social.FriendRequestStatus(row.Status),
		CreatedAt:   row.CreatedAt,
		RespondedAt: row.RespondedAt,
	}
}

func friendRequestToRow(request *social.FriendRequest) friendRequestRow {
	return friendRequestRow{
		ID:          request.ID,
		SenderID:    request.SenderID,
		RecipientID: request.RecipientID,
		Status:      string(request.Status),
		CreatedAt:   request.CreatedAt,
		RespondedAt: request.RespondedAt,
	}
}

func (s *SocialStore) SaveFriendRequest(ctx context.Context, request *social.FriendRequest) error {
	_, _, err := s.store.rest.From(tableFriendRequests).
		Insert(friendRequestToRow(request), false, "", "", "").
		Execute()
	if err != nil {
		return repository.NewFetchError("friend_requests.save", err)
	}
	return nil
}

func (s *SocialStore) GetFriendRequest(ctx context.Context, id string) (*social.FriendRequest, error) {
	var rows []friendRequestRow
	_, err := s.store.rest.From(tableFriendRequests).
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.NewFetchError("friend_requests.get", err)
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	request := friendRequestFromRow(rows[0])
	return &request, nil
}

func (s *SocialStore) UpdateFriendRequest(ctx context.Context, request *social.FriendRequest) error {
	_, _, err := s.store.rest.From(tableFriendRequests).
		Update(friendRequestToRow(request), "", "").
		Eq("id", request.ID).
		Execute()
	if err != nil {
		return repository.NewFetchError("friend_requests.update", err)
	}
	return nil
}

func (s *SocialStore) ListFriendRequests(ctx context.Context, userID string, status social.FriendRequestStatus) ([]social.FriendRequest, error) {
	// Requests where the user is sender and where they are recipient are
	// fetched separately; PostgREST or-filters across columns get awkward
	// once a status filter joins in.
	sent, err := s.listRequestsBy("sender_id", userID, status)
	if err != nil {
		return nil, err
	}
	received, err := s.listRequestsBy("recipient_id", userID, status)
	if err != nil {
		return nil, err
	}
	return append(sent, received...), nil
}

func (s *SocialStore) listRequestsBy(column, userID string, status social.FriendRequestStatus) ([]social.FriendRequest, error) {
	builder := s.store.rest.From(tableFriendRequests).
		Select("*", "", false).
		Eq(column, userID).
		Order("created_at", &postgrest.OrderOpts{Ascending: false})
	if status != "" {
		builder = builder.Eq("status", string(status))
	}

	var rows []friendRequestRow
	if _, err := builder.ExecuteTo(&rows); err != nil {
		return nil, repository.NewFetchError("friend_requests.list", err)
	}
	out := make([]social.FriendRequest, 0, len(rows))
	for _, row := range rows {
		out = append(out, friendRequestFromRow(row))
	}
	return out, nil
}

func (s *SocialStore) FindRequestBetween(ctx context.Context, userA, userB string) (*social.FriendRequest, error) {
	for _, pair := range [][2]string{{userA, userB}, {userB, userA}} {
		var rows []friendRequestRow
		_, err := s.store.rest.From(tableFriendRequests).
			Select("*", "", false).
			Eq("sender_id", pair[0]).
			Eq("recipient_id", pair[1]).
			ExecuteTo(&rows)
		if err != nil {
			return nil, repository.NewFetchError("friend_requests.find", err)
		}
		if len(rows) > 0 {
			request := friendRequestFromRow(rows[0])
			return &request, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *SocialStore) SaveInvite(ctx context.Context, invite *social.InviteLink) error {
	_, _, err := s.store.rest.From(tableInviteLinks).
		Insert(inviteToRow(invite), false, "", "", "").
		Execute()
	if err != nil {
		return repository.NewFetchError("invites.save", err)
	}
	return nil
}

func (s *SocialStore) GetInviteByCode(ctx context.Context, code string) (*social.InviteLink, error) {
	var rows []inviteRow
	_, err := s.store.rest.From(tableInviteLinks).
		Select("*", "", false).
		Eq("code", code).
		ExecuteTo(&rows)
	if err != nil {
		return nil, repository.NewFetchError("invites.get", err)
	}
	if len(rows) == 0 {
		return nil, repository.ErrNotFound
	}
	invite := inviteFromRow(rows[0])
	return &invite, nil
}

func (s *SocialStore) UpdateInvite(ctx context.Context, invite *social.InviteLink) error {
	_, _, err := s.store.rest.From(tableInviteLinks).
		Update(inviteToRow(invite), "", "").
		Eq("id", invite.ID).
		Execute()
	if err != nil {
		return repository.NewFetchError("invites.update", err)
	}
	return nil
}

func inviteFromRow(row inviteRow) social.InviteLink {
	return social.InviteLink{
		ID:          row.ID,
		Code:        row.Code,
		CreatorID:   row.CreatorID,
		CommunityID: row.CommunityID,
		MaxUses:     row.MaxUses,
		Uses:        row.Uses,
		ExpiresAt:   row.ExpiresAt,
		CreatedAt:   row.CreatedAt,
	}
}

func inviteToRow(invite *social.InviteLink) inviteRow {
	return inviteRow{
		ID:          invite.ID,
		Code:        invite.Code,
		CreatorID:   invite.CreatorID,
		CommunityID: invite.CommunityID,
		MaxUses:     invite.MaxUses,
		Uses:        invite.Uses,
		ExpiresAt:   invite.ExpiresAt,
		CreatedAt:   invite.CreatedAt,
	}
}
