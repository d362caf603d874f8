package connections

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medlink-backend/internal/domain/social"
	"medlink-backend/internal/repository/mocks"
	appErrors "medlink-backend/pkg/errors"
)

func newService() (Service, *mocks.MockSocialRepository) {
	repo := mocks.NewMockSocialRepository()
	return NewService(repo, zap.NewNop()), repo
}

func TestSendFriendRequest(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	request, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, social.FriendRequestPending, request.Status)

	// A second request while one is pending is a conflict, from either side.
	_, err = svc.SendFriendRequest(ctx, "alice", "bob")
	assert.True(t, appErrors.IsConflict(err))
	_, err = svc.SendFriendRequest(ctx, "bob", "alice")
	assert.True(t, appErrors.IsConflict(err))
}

func TestSendFriendRequestToSelf(t *testing.T) {
	svc, _ := newService()
	_, err := svc.SendFriendRequest(context.Background(), "alice", "alice")
	assert.True(t, appErrors.IsValidation(err))
}

func TestSendFriendRequestAlreadyFriends(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	request, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = svc.RespondToFriendRequest(ctx, "bob", request.ID, true)
	require.NoError(t, err)

	_, err = svc.SendFriendRequest(ctx, "bob", "alice")
	assert.True(t, appErrors.IsConflict(err))
}

func TestDeclinedRequestDoesNotBlockRetry(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	request, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = svc.RespondToFriendRequest(ctx, "bob", request.ID, false)
	require.NoError(t, err)

	retry, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.NotEqual(t, request.ID, retry.ID)
}

func TestRespondRecipientOnly(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	request, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	_, err = svc.RespondToFriendRequest(ctx, "alice", request.ID, true)
	assert.True(t, appErrors.IsValidation(err))

	_, err = svc.RespondToFriendRequest(ctx, "bob", "missing", true)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestRespondOnlyOnce(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	request, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = svc.RespondToFriendRequest(ctx, "bob", request.ID, true)
	require.NoError(t, err)

	_, err = svc.RespondToFriendRequest(ctx, "bob", request.ID, false)
	assert.True(t, appErrors.IsConflict(err))
}

func TestFriends(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	accepted, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = svc.RespondToFriendRequest(ctx, "bob", accepted.ID, true)
	require.NoError(t, err)

	// Pending and declined requests are not friendships.
	_, err = svc.SendFriendRequest(ctx, "alice", "carol")
	require.NoError(t, err)
	declined, err := svc.SendFriendRequest(ctx, "dave", "alice")
	require.NoError(t, err)
	_, err = svc.RespondToFriendRequest(ctx, "alice", declined.ID, false)
	require.NoError(t, err)

	friends, err := svc.Friends(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"bob"}, friends)
}

func TestCreateAndRedeemInvite(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	invite, err := svc.CreateInvite(ctx, "alice", "community-1", time.Hour, 2)
	require.NoError(t, err)
	assert.NotEmpty(t, invite.Code)

	redeemed, err := svc.RedeemInvite(ctx, "bob", invite.Code)
	require.NoError(t, err)
	assert.Equal(t, 1, redeemed.Uses)

	// The use count persists between redemptions.
	stored, err := repo.GetInviteByCode(ctx, invite.Code)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Uses)

	_, err = svc.RedeemInvite(ctx, "carol", invite.Code)
	require.NoError(t, err)

	_, err = svc.RedeemInvite(ctx, "dave", invite.Code)
	assert.True(t, appErrors.IsConflict(err))
}

func TestRedeemExpiredInvite(t *testing.T) {
	svc, repo := newService()
	ctx := context.Background()

	invite, err := svc.CreateInvite(ctx, "alice", "", time.Hour, 0)
	require.NoError(t, err)

	invite.ExpiresAt = time.Now().UTC().Add(-time.Minute)
	require.NoError(t, repo.SaveInvite(ctx, invite))

	_, err = svc.RedeemInvite(ctx, "bob", invite.Code)
	assert.True(t, appErrors.IsConflict(err))
}

func TestRedeemUnknownCode(t *testing.T) {
	svc, _ := newService()
	_, err := svc.RedeemInvite(context.Background(), "bob", "nope")
	assert.True(t, appErrors.IsNotFound(err))
}
