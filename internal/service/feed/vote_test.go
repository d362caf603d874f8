package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medlink-backend/internal/domain/content"
	"medlink-backend/internal/domain/karma"
	appErrors "medlink-backend/pkg/errors"
)

func TestVoteCreateToggleRemove(t *testing.T) {
	f := newFixture()
	post := f.seedPost(t, "author-1")
	ctx := context.Background()

	result, err := f.svc.Vote(ctx, "voter-1", content.VoteTargetPost, post.ID, content.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, VoteCreated, result.Action)
	assert.Equal(t, 1, result.Upvotes)

	// Same vote again removes it.
	result, err = f.svc.Vote(ctx, "voter-1", content.VoteTargetPost, post.ID, content.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, VoteRemoved, result.Action)
	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 0, result.Downvotes)
}

func TestVoteFlipMovesCounters(t *testing.T) {
	f := newFixture()
	post := f.seedPost(t, "author-1")
	ctx := context.Background()

	_, err := f.svc.Vote(ctx, "voter-1", content.VoteTargetPost, post.ID, content.VoteUp)
	require.NoError(t, err)

	result, err := f.svc.Vote(ctx, "voter-1", content.VoteTargetPost, post.ID, content.VoteDown)
	require.NoError(t, err)
	assert.Equal(t, VoteFlipped, result.Action)
	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 1, result.Downvotes)
}

func TestVoteKarmaOnlyOnCreate(t *testing.T) {
	f := newFixture()
	post := f.seedPost(t, "author-1")
	ctx := context.Background()

	_, err := f.svc.Vote(ctx, "voter-1", content.VoteTargetPost, post.ID, content.VoteUp)
	require.NoError(t, err)
	// Flip and toggle off write no further ledger rows.
	_, err = f.svc.Vote(ctx, "voter-1", content.VoteTargetPost, post.ID, content.VoteDown)
	require.NoError(t, err)
	_, err = f.svc.Vote(ctx, "voter-1", content.VoteTargetPost, post.ID, content.VoteDown)
	require.NoError(t, err)

	assert.Equal(t,
		[]karma.ActivityType{karma.ActivityGiveUpvote, karma.ActivityReceiveUpvote},
		karmaTypes(f.ledger.Activities()))
}

func TestDownvoteKarma(t *testing.T) {
	f := newFixture()
	post := f.seedPost(t, "author-1")

	_, err := f.svc.Vote(context.Background(), "voter-1", content.VoteTargetPost, post.ID, content.VoteDown)
	require.NoError(t, err)

	activities := f.ledger.Activities()
	require.Len(t, activities, 1)
	assert.Equal(t, karma.ActivityReceiveDownvote, activities[0].Type)
	assert.Equal(t, "author-1", activities[0].UserID)
	assert.Equal(t, -2, activities[0].Points)
}

func TestVoteOnOwnContentRejected(t *testing.T) {
	f := newFixture()
	post := f.seedPost(t, "author-1")

	_, err := f.svc.Vote(context.Background(), "author-1", content.VoteTargetPost, post.ID, content.VoteUp)
	assert.True(t, appErrors.IsValidation(err))
}

func TestVoteOnComment(t *testing.T) {
	f := newFixture()
	post := f.seedPost(t, "author-1")
	comment, err := f.svc.CreateComment(context.Background(), "commenter", post.ID, "", "A useful comment.")
	require.NoError(t, err)

	result, err := f.svc.Vote(context.Background(), "voter-1", content.VoteTargetComment, comment.ID, content.VoteUp)
	require.NoError(t, err)
	assert.Equal(t, VoteCreated, result.Action)
	assert.Equal(t, 1, result.Upvotes)
}

func TestVoteMissingTarget(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Vote(context.Background(), "voter-1", content.VoteTargetPost, "missing", content.VoteUp)
	assert.True(t, appErrors.IsNotFound(err))
}
