package social

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	appErrors "medlink-backend/pkg/errors"
)

// DefaultInviteTTL is how long an invite link stays valid when the creator
// does not pick an expiry.
const DefaultInviteTTL = 7 * 24 * time.Hour

// InviteLink lets a verified professional invite a colleague, optionally
// straight into a community. Expiry and exhaustion are re-checked on every
// redemption attempt; nothing expires links proactively.
type InviteLink struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	CreatorID   string    `json:"creator_id"`
	CommunityID string    `json:"community_id,omitempty"`
	MaxUses     int       `json:"max_uses"`
	Uses        int       `json:"uses"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewInviteLink creates an invite with a random code. A zero ttl uses the
// default; maxUses <= 0 means unlimited.
func NewInviteLink(creatorID, communityID string, ttl time.Duration, maxUses int) (*InviteLink, error) {
	if creatorID == "" {
		return nil, appErrors.NewValidation("creator is required")
	}
	if ttl <= 0 {
		ttl = DefaultInviteTTL
	}

	code, err := generateCode()
	if err != nil {
		return nil, appErrors.NewInternal("failed to generate invite code", err)
	}

	now := time.Now().UTC()
	return &InviteLink{
		ID:          uuid.New().String(),
		Code:        code,
		CreatorID:   creatorID,
		CommunityID: communityID,
		MaxUses:     maxUses,
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
	}, nil
}

// IsExpired reports whether the link has passed its expiry.
func (l *InviteLink) IsExpired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}

// IsExhausted reports whether the link has reached its use limit.
func (l *InviteLink) IsExhausted() bool {
	return l.MaxUses > 0 && l.Uses >= l.MaxUses
}

// Redeem consumes one use of the link, re-validating expiry and exhaustion
// at redemption time.
func (l *InviteLink) Redeem(now time.Time) error {
	if l.IsExpired(now) {
		return appErrors.NewConflict("invite link has expired")
	}
	if l.IsExhausted() {
		return appErrors.NewConflict("invite link has no uses left")
	}
	l.Uses++
	return nil
}

func generateCode() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
