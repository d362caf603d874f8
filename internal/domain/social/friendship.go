// Package social holds the friend-request and invite-link entities.
package social

import (
	"time"

	"github.com/google/uuid"

	appErrors "medlink-backend/pkg/errors"
)

// FriendRequestStatus is the lifecycle state of a friend request.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestDeclined FriendRequestStatus = "declined"
)

// FriendRequest connects two users. An accepted request is the friendship;
// there is no separate friendship row.
type FriendRequest struct {
	ID          string              `json:"id"`
	SenderID    string              `json:"sender_id"`
	RecipientID string              `json:"recipient_id"`
	Status      FriendRequestStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	RespondedAt *time.Time          `json:"responded_at,omitempty"`
}

// NewFriendRequest creates a pending request from sender to recipient.
func NewFriendRequest(senderID, recipientID string) (*FriendRequest, error) {
	if senderID == "" || recipientID == "" {
		return nil, appErrors.NewValidation("sender and recipient are required")
	}
	if senderID == recipientID {
		return nil, appErrors.NewValidation("cannot send a friend request to yourself")
	}
	return &FriendRequest{
		ID:          uuid.New().String(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Status:      FriendRequestPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Respond moves a pending request to accepted or declined. Only the
// recipient may respond, and only once.
func (r *FriendRequest) Respond(userID string, accept bool) error {
	if userID != r.RecipientID {
		return appErrors.NewValidation("only the recipient can respond to a friend request")
	}
	if r.Status != FriendRequestPending {
		return appErrors.NewConflict("friend request already responded to")
	}
	now := time.Now().UTC()
	r.RespondedAt = &now
	if accept {
		r.Status = FriendRequestAccepted
	} else {
		r.Status = FriendRequestDeclined
	}
	return nil
}

// Involves reports whether the given user is either side of the request.
func (r *FriendRequest) Involves(userID string) bool {
	return r.SenderID == userID || r.RecipientID == userID
}

// OtherSide returns the counterpart of the given user in the request.
func (r *FriendRequest) OtherSide(userID string) string {
	if r.SenderID == userID {
		return r.RecipientID
	}
	return r.SenderID
}
