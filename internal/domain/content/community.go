package content

import (
	"strings"
	"time"

	"github.com/google/uuid"

	appErrors "medlink-backend/pkg/errors"
)

// Community is a topical group that posts can be scoped to, typically one
// per specialty or sub-specialty.
type Community struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Specialty   string    `json:"specialty,omitempty"`
	CreatorID   string    `json:"creator_id"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Membership links a user to a community.
type Membership struct {
	ID          string    `json:"id"`
	CommunityID string    `json:"community_id"`
	UserID      string    `json:"user_id"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joined_at"`
}

const (
	RoleMember    = "member"
	RoleModerator = "moderator"
)

// NewCommunity creates a community after validating its name.
func NewCommunity(creatorID, name, description, specialty string) (*Community, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.NewValidation("community name cannot be empty")
	}
	if len(name) > MaxTitleLength {
		return nil, appErrors.NewValidation("community name exceeds maximum length")
	}
	if creatorID == "" {
		return nil, appErrors.NewValidation("creator is required")
	}
	return &Community{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Specialty:   strings.ToLower(strings.TrimSpace(specialty)),
		CreatorID:   creatorID,
		MemberCount: 1,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// NewMembership links a user to a community with the given role.
func NewMembership(communityID, userID, role string) (*Membership, error) {
	if communityID == "" || userID == "" {
		return nil, appErrors.NewValidation("community and user are required")
	}
	if role == "" {
		role = RoleMember
	}
	return &Membership{
		ID:          uuid.New().String(),
		CommunityID: communityID,
		UserID:      userID,
		Role:        role,
		JoinedAt:    time.Now().UTC(),
	}, nil
}
