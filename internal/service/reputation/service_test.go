package reputation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"medlink-backend/internal/domain/karma"
	"medlink-backend/internal/repository/mocks"
	appErrors "medlink-backend/pkg/errors"
)

func newService() (Service, *mocks.MockKarmaRepository) {
	ledger := mocks.NewMockKarmaRepository()
	return NewService(ledger, nil, zap.NewNop()), ledger
}

func TestRecordStampsPoints(t *testing.T) {
	svc, ledger := newService()

	activity, err := svc.Record(context.Background(), "user-1", karma.ActivityCreatePost)
	require.NoError(t, err)
	assert.Equal(t, 10, activity.Points)
	assert.Len(t, ledger.Activities(), 1)
}

func TestRecordUnknownType(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Record(context.Background(), "user-1", karma.ActivityType("BOGUS"))
	assert.True(t, appErrors.IsValidation(err))
}

func TestRecordLedgerFailure(t *testing.T) {
	svc, ledger := newService()
	ledger.SetError("Append", assert.AnError)

	_, err := svc.Record(context.Background(), "user-1", karma.ActivityCreatePost)
	assert.Error(t, err)
}

func TestStatsAggregatesLedger(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	// 15 + 10 + 10 + 10 + 5 = 50 -> Corporal.
	for _, at := range []karma.ActivityType{
		karma.ActivityCreateCommunity,
		karma.ActivityCreatePost,
		karma.ActivityCreatePost,
		karma.ActivityCreatePost,
		karma.ActivityJoinCommunity,
	} {
		_, err := svc.Record(ctx, "user-1", at)
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 50, stats.TotalKarma)
	assert.Equal(t, "Corporal", stats.Rank)
	assert.Equal(t, "Sergeant", stats.RankProgress.NextRank)
}

func TestStatsEmptyLedger(t *testing.T) {
	svc, _ := newService()

	stats, err := svc.Stats(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalKarma)
	assert.Equal(t, "Rookie", stats.Rank)
}

func TestHistoryScopedToUser(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.Record(ctx, "user-1", karma.ActivityCreatePost)
	require.NoError(t, err)
	_, err = svc.Record(ctx, "user-2", karma.ActivityCreateComment)
	require.NoError(t, err)

	history, err := svc.History(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, karma.ActivityCreatePost, history[0].Type)
}

func TestThresholdsLadder(t *testing.T) {
	svc, _ := newService()

	thresholds := svc.Thresholds()
	require.Len(t, thresholds, 9)
	assert.Equal(t, "Rookie", thresholds[0].Label)
	assert.Equal(t, "General", thresholds[len(thresholds)-1].Label)
}
