// Package connections provides business logic for friend requests and
// invite links.
package connections

import (
	"context"
	"time"

	"go.uber.org/zap"

	"medlink-backend/internal/domain/social"
	"medlink-backend/internal/repository"
	appErrors "medlink-backend/pkg/errors"
)

// Service defines the social-graph business operations.
type Service interface {
	// SendFriendRequest creates a pending request unless one already
	// connects the pair.
	SendFriendRequest(ctx context.Context, senderID, recipientID string) (*social.FriendRequest, error)

	// RespondToFriendRequest accepts or declines a pending request. Only
	// the recipient may respond.
	RespondToFriendRequest(ctx context.Context, userID, requestID string, accept bool) (*social.FriendRequest, error)

	// ListFriendRequests returns requests involving the user, optionally
	// filtered by status.
	ListFriendRequests(ctx context.Context, userID string, status social.FriendRequestStatus) ([]social.FriendRequest, error)

	// Friends returns the IDs of users connected by an accepted request.
	Friends(ctx context.Context, userID string) ([]string, error)

	// CreateInvite mints an invite link for the platform or a community.
	CreateInvite(ctx context.Context, creatorID, communityID string, ttl time.Duration, maxUses int) (*social.InviteLink, error)

	// RedeemInvite consumes one use of the invite identified by code.
	RedeemInvite(ctx context.Context, userID, code string) (*social.InviteLink, error)
}

type service struct {
	social repository.SocialRepository
	logger *zap.Logger
}

// NewService creates the connections service.
func NewService(socialRepo repository.SocialRepository, logger *zap.Logger) Service {
	return &service{social: socialRepo, logger: logger}
}

func (s *service) SendFriendRequest(ctx context.Context, senderID, recipientID string) (*social.FriendRequest, error) {
	request, err := social.NewFriendRequest(senderID, recipientID)
	if err != nil {
		return nil, err
	}

	existing, err := s.social.FindRequestBetween(ctx, senderID, recipientID)
	if err != nil && !appErrors.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		switch existing.Status {
		case social.FriendRequestAccepted:
			return nil, appErrors.NewConflict("already friends")
		case social.FriendRequestPending:
			return nil, appErrors.NewConflict("a request between these users is already pending")
		}
		// A declined request does not block a fresh attempt.
	}

	if err := s.social.SaveFriendRequest(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, "failed to save friend request")
	}
	return request, nil
}

func (s *service) RespondToFriendRequest(ctx context.Context, userID, requestID string, accept bool) (*social.FriendRequest, error) {
	if requestID == "" {
		return nil, appErrors.NewValidation("request id cannot be empty")
	}
	request, err := s.social.GetFriendRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if err := request.Respond(userID, accept); err != nil {
		return nil, err
	}
	if err := s.social.UpdateFriendRequest(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, "failed to update friend request")
	}
	return request, nil
}

func (s *service) ListFriendRequests(ctx context.Context, userID string, status social.FriendRequestStatus) ([]social.FriendRequest, error) {
	if userID == "" {
		return nil, appErrors.NewValidation("userID cannot be empty")
	}
	return s.social.ListFriendRequests(ctx, userID, status)
}

func (s *service) Friends(ctx context.Context, userID string) ([]string, error) {
	accepted, err := s.ListFriendRequests(ctx, userID, social.FriendRequestAccepted)
	if err != nil {
		return nil, err
	}
	friends := make([]string, 0, len(accepted))
	for _, request := range accepted {
		friends = append(friends, request.OtherSide(userID))
	}
	return friends, nil
}

func (s *service) CreateInvite(ctx context.Context, creatorID, communityID string, ttl time.Duration, maxUses int) (*social.InviteLink, error) {
	invite, err := social.NewInviteLink(creatorID, communityID, ttl, maxUses)
	if err != nil {
		return nil, err
	}
	if err := s.social.SaveInvite(ctx, invite); err != nil {
		return nil, appErrors.Wrap(err, "failed to save invite")
	}
	return invite, nil
}

func (s *service) RedeemInvite(ctx context.Context, userID, code string) (*social.InviteLink, error) {
	if userID == "" || code == "" {
		return nil, appErrors.NewValidation("user and code are required")
	}
	invite, err := s.social.GetInviteByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := invite.Redeem(time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.social.UpdateInvite(ctx, invite); err != nil {
		return nil, appErrors.Wrap(err, "failed to update invite")
	}

	s.logger.Info("invite redeemed",
		zap.String("code", invite.Code),
		zap.String("user_id", userID),
	)
	return invite, nil
}
