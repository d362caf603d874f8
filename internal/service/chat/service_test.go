package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medlink-backend/internal/domain/messaging"
	"medlink-backend/internal/repository/mocks"
	appErrors "medlink-backend/pkg/errors"
)

func newService() (Service, *mocks.MockMessageRepository) {
	repo := mocks.NewMockMessageRepository()
	return NewService(repo, zap.NewNop()), repo
}

func startConversation(t *testing.T, svc Service, creator string, others ...string) *messaging.Conversation {
	t.Helper()
	conversation, err := svc.StartConversation(context.Background(), creator, "", others)
	require.NoError(t, err)
	return conversation
}

func TestStartConversationDirectVsGroup(t *testing.T) {
	svc, _ := newService()

	direct := startConversation(t, svc, "alice", "bob")
	assert.False(t, direct.IsGroup)
	assert.ElementsMatch(t, []string{"alice", "bob"}, direct.ParticipantIDs)

	group := startConversation(t, svc, "alice", "bob", "carol")
	assert.True(t, group.IsGroup)
}

func TestSendRequiresMembership(t *testing.T) {
	svc, _ := newService()
	conversation := startConversation(t, svc, "alice", "bob")

	_, err := svc.Send(context.Background(), "mallory", conversation.ID, "hello")
	assert.True(t, appErrors.IsNotFound(err))

	message, err := svc.Send(context.Background(), "alice", conversation.ID, "hello bob")
	require.NoError(t, err)
	assert.Equal(t, conversation.ID, message.ConversationID)
}

func TestMessagesOrderedOldestFirst(t *testing.T) {
	svc, _ := newService()
	conversation := startConversation(t, svc, "alice", "bob")
	ctx := context.Background()

	_, err := svc.Send(ctx, "alice", conversation.ID, "first")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "bob", conversation.ID, "second")
	require.NoError(t, err)

	messages, err := svc.Messages(ctx, "alice", conversation.ID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Body)
	assert.Equal(t, "second", messages[1].Body)
}

func TestMarkReadCountsOnlyOthersMessages(t *testing.T) {
	svc, _ := newService()
	conversation := startConversation(t, svc, "alice", "bob")
	ctx := context.Background()

	_, err := svc.Send(ctx, "alice", conversation.ID, "one")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "alice", conversation.ID, "two")
	require.NoError(t, err)
	_, err = svc.Send(ctx, "bob", conversation.ID, "reply")
	require.NoError(t, err)

	// Bob has two unread (alice's); his own message doesn't count.
	marked, err := svc.MarkRead(ctx, "bob", conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, marked)

	// Idempotent: a second pass has nothing left to mark.
	marked, err = svc.MarkRead(ctx, "bob", conversation.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, marked)
}

func TestListConversationsUnreadBadge(t *testing.T) {
	svc, _ := newService()
	conversation := startConversation(t, svc, "alice", "bob")
	ctx := context.Background()

	_, err := svc.Send(ctx, "alice", conversation.ID, "ping")
	require.NoError(t, err)

	views, err := svc.ListConversations(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 1, views[0].UnreadCount)

	_, err = svc.MarkRead(ctx, "bob", conversation.ID)
	require.NoError(t, err)

	views, err = svc.ListConversations(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, 0, views[0].UnreadCount)
}

func TestListConversationsExcludesOutsiders(t *testing.T) {
	svc, _ := newService()
	startConversation(t, svc, "alice", "bob")

	views, err := svc.ListConversations(context.Background(), "mallory")
	require.NoError(t, err)
	assert.Empty(t, views)
}
