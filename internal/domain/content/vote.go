package content

import (
	"time"

	"github.com/google/uuid"

	appErrors "medlink-backend/pkg/errors"
)

// VoteTarget distinguishes what a vote was cast on.
type VoteTarget string

const (
	VoteTargetPost    VoteTarget = "post"
	VoteTargetComment VoteTarget = "comment"
)

// Vote values. A vote row is either an upvote or a downvote; toggling and
// flipping are handled by comparing the stored row against the new request.
const (
	VoteUp   = 1
	VoteDown = -1
)

// Vote records a single user's vote on a post or comment.
type Vote struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	TargetType VoteTarget `json:"target_type"`
	TargetID   string     `json:"target_id"`
	Value      int        `json:"value"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewVote creates a vote row for the given target.
func NewVote(userID string, targetType VoteTarget, targetID string, value int) (*Vote, error) {
	if userID == "" || targetID == "" {
		return nil, appErrors.NewValidation("voter and target are required")
	}
	if targetType != VoteTargetPost && targetType != VoteTargetComment {
		return nil, appErrors.NewValidation("unknown vote target")
	}
	if value != VoteUp && value != VoteDown {
		return nil, appErrors.NewValidation("vote value must be +1 or -1")
	}
	return &Vote{
		ID:         uuid.New().String(),
		UserID:     userID,
		TargetType: targetType,
		TargetID:   targetID,
		Value:      value,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
