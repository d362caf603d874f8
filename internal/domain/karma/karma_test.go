package karma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointValues(t *testing.T) {
	tests := []struct {
		activityType ActivityType
		want         int
	}{
		{ActivityCreatePost, 10},
		{ActivityCreateComment, 3},
		{ActivityGiveUpvote, 1},
		{ActivityJoinCommunity, 5},
		{ActivityCreateCommunity, 15},
		{ActivityReceiveUpvote, 5},
		{ActivityReceiveDownvote, -2},
		{ActivityModerationPenalty, -20},
	}

	for _, tt := range tests {
		t.Run(string(tt.activityType), func(t *testing.T) {
			points, ok := Points(tt.activityType)
			require.True(t, ok)
			assert.Equal(t, tt.want, points)
		})
	}
}

func TestPointsUnknownType(t *testing.T) {
	_, ok := Points(ActivityType("DANCE"))
	assert.False(t, ok)
}

func TestNewActivity(t *testing.T) {
	activity, err := NewActivity("user-1", ActivityCreatePost)
	require.NoError(t, err)
	assert.Equal(t, "user-1", activity.UserID)
	assert.Equal(t, 10, activity.Points)
	assert.NotEmpty(t, activity.ID)
	assert.False(t, activity.CreatedAt.IsZero())
}

func TestNewActivityValidation(t *testing.T) {
	_, err := NewActivity("", ActivityCreatePost)
	assert.Error(t, err)

	_, err = NewActivity("user-1", ActivityType("DANCE"))
	assert.Error(t, err)
}

func TestTotalKarma(t *testing.T) {
	activities := []Activity{
		{Type: ActivityCreatePost, Points: 10},
		{Type: ActivityCreateComment, Points: 3},
		{Type: ActivityReceiveDownvote, Points: -2},
	}
	assert.Equal(t, 11, TotalKarma(activities))
	assert.Zero(t, TotalKarma(nil))
}

func TestDeriveRank(t *testing.T) {
	tests := []struct {
		totalKarma int
		want       string
	}{
		{-5, "Rookie"},
		{0, "Rookie"},
		{9, "Rookie"},
		{10, "Private"},
		{49, "Private"},
		{50, "Corporal"},
		{99, "Corporal"},
		{100, "Sergeant"},
		{499, "Sergeant"},
		{500, "Lieutenant"},
		{1000, "Captain"},
		{2500, "Major"},
		{5000, "Colonel"},
		{9999, "Colonel"},
		{10000, "General"},
		{123456, "General"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveRank(tt.totalKarma), "totalKarma=%d", tt.totalKarma)
	}
}

func TestProgressForMidRank(t *testing.T) {
	progress := ProgressFor(75, "Corporal")
	assert.Equal(t, 50, progress.Current)
	assert.Equal(t, 100, progress.Next)
	assert.Equal(t, 50.0, progress.Progress)
	assert.Equal(t, "Sergeant", progress.NextRank)
}

func TestProgressForTopRank(t *testing.T) {
	progress := ProgressFor(12000, "General")
	assert.Equal(t, 12000, progress.Current)
	assert.Equal(t, 12000, progress.Next)
	assert.Equal(t, 100.0, progress.Progress)
	assert.Equal(t, MaxRankSentinel, progress.NextRank)
}

func TestProgressForClampsToRange(t *testing.T) {
	// Totals outside the bracket still yield a progress within [0, 100].
	low := ProgressFor(5, "Corporal")
	assert.Equal(t, 0.0, low.Progress)

	high := ProgressFor(400, "Corporal")
	assert.Equal(t, 100.0, high.Progress)
}

func TestProgressForUnknownRankDerives(t *testing.T) {
	progress := ProgressFor(75, "Archmage")
	assert.Equal(t, 50.0, progress.Progress)
	assert.Equal(t, "Sergeant", progress.NextRank)
}

func TestStatsFor(t *testing.T) {
	activities := []Activity{
		{Type: ActivityCreatePost, Points: 10},
		{Type: ActivityJoinCommunity, Points: 5},
	}

	stats := StatsFor(activities)
	assert.Equal(t, 15, stats.TotalKarma)
	assert.Equal(t, "Private", stats.Rank)
	assert.Equal(t, "Corporal", stats.RankProgress.NextRank)
	assert.InDelta(t, 12.5, stats.RankProgress.Progress, 1e-9)
}

func TestRankNonDecreasingInTotal(t *testing.T) {
	// Walk the whole table and make sure rank order never goes backwards.
	order := map[string]int{}
	for i, threshold := range Thresholds() {
		order[threshold.Label] = i
	}

	prev := 0
	for total := 0; total <= 11000; total += 7 {
		current := order[DeriveRank(total)]
		assert.GreaterOrEqual(t, current, prev)
		prev = current
	}
}
