// Package karma implements the point ledger and rank derivation. Activities
// are append-only rows with a fixed point value per type; totals and ranks
// are recomputed from the ledger on every read, so a displayed rank is only
// eventually consistent with the most recent appends.
package karma

import (
	"time"

	"github.com/google/uuid"

	appErrors "medlink-backend/pkg/errors"
)

// ActivityType enumerates the actions that earn or cost karma.
type ActivityType string

const (
	ActivityCreatePost        ActivityType = "CREATE_POST"
	ActivityCreateComment     ActivityType = "CREATE_COMMENT"
	ActivityGiveUpvote        ActivityType = "GIVE_UPVOTE"
	ActivityJoinCommunity     ActivityType = "JOIN_COMMUNITY"
	ActivityCreateCommunity   ActivityType = "CREATE_COMMUNITY"
	ActivityReceiveUpvote     ActivityType = "RECEIVE_UPVOTE"
	ActivityReceiveDownvote   ActivityType = "RECEIVE_DOWNVOTE"
	ActivityModerationPenalty ActivityType = "MODERATION_PENALTY"
)

// pointValues is the fixed point table. It is never mutated at runtime.
var pointValues = map[ActivityType]int{
	ActivityCreatePost:        10,
	ActivityCreateComment:     3,
	ActivityGiveUpvote:        1,
	ActivityJoinCommunity:     5,
	ActivityCreateCommunity:   15,
	ActivityReceiveUpvote:     5,
	ActivityReceiveDownvote:   -2,
	ActivityModerationPenalty: -20,
}

// Points returns the fixed point value for an activity type.
func Points(t ActivityType) (int, bool) {
	points, ok := pointValues[t]
	return points, ok
}

// Activity is one append-only ledger row. Rows are never mutated or deleted
// after insertion.
type Activity struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Type      ActivityType `json:"activity_type"`
	Points    int          `json:"points"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewActivity creates a ledger row for the given user and activity type,
// stamping it with the type's fixed point value.
func NewActivity(userID string, t ActivityType) (*Activity, error) {
	if userID == "" {
		return nil, appErrors.NewValidation("user is required")
	}
	points, ok := Points(t)
	if !ok {
		return nil, appErrors.NewValidation("unknown activity type")
	}
	return &Activity{
		ID:        uuid.New().String(),
		UserID:    userID,
		Type:      t,
		Points:    points,
		CreatedAt: time.Now().UTC(),
	}, nil
}
