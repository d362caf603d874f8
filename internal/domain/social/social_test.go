package social

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFriendRequest(t *testing.T) {
	request, err := NewFriendRequest("alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, FriendRequestPending, request.Status)
	assert.True(t, request.Involves("alice"))
	assert.True(t, request.Involves("bob"))
	assert.Equal(t, "bob", request.OtherSide("alice"))

	_, err = NewFriendRequest("alice", "alice")
	assert.Error(t, err)

	_, err = NewFriendRequest("", "bob")
	assert.Error(t, err)
}

func TestFriendRequestRespond(t *testing.T) {
	request, err := NewFriendRequest("alice", "bob")
	require.NoError(t, err)

	// Only the recipient may respond.
	err = request.Respond("alice", true)
	assert.Error(t, err)

	require.NoError(t, request.Respond("bob", true))
	assert.Equal(t, FriendRequestAccepted, request.Status)
	assert.NotNil(t, request.RespondedAt)

	// A second response is rejected.
	err = request.Respond("bob", false)
	assert.Error(t, err)
}

func TestFriendRequestDecline(t *testing.T) {
	request, err := NewFriendRequest("alice", "bob")
	require.NoError(t, err)
	require.NoError(t, request.Respond("bob", false))
	assert.Equal(t, FriendRequestDeclined, request.Status)
}

func TestNewInviteLink(t *testing.T) {
	link, err := NewInviteLink("alice", "community-1", 0, 3)
	require.NoError(t, err)
	assert.Len(t, link.Code, 16)
	assert.Equal(t, 3, link.MaxUses)
	assert.WithinDuration(t, time.Now().Add(DefaultInviteTTL), link.ExpiresAt, time.Minute)
}

func TestInviteLinkRedeem(t *testing.T) {
	link, err := NewInviteLink("alice", "", time.Hour, 2)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, link.Redeem(now))
	require.NoError(t, link.Redeem(now))
	assert.Equal(t, 2, link.Uses)

	// Third redemption exhausts the link.
	err = link.Redeem(now)
	assert.Error(t, err)
	assert.True(t, link.IsExhausted())
}

func TestInviteLinkExpiry(t *testing.T) {
	link, err := NewInviteLink("alice", "", time.Hour, 0)
	require.NoError(t, err)

	later := time.Now().Add(2 * time.Hour)
	assert.True(t, link.IsExpired(later))
	assert.Error(t, link.Redeem(later))

	// Unlimited uses never exhaust.
	assert.False(t, link.IsExhausted())
}
