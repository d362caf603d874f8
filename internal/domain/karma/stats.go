package karma

// UserKarmaStats is the derived view of a user's ledger, recomputed on
// every read rather than stored.
type UserKarmaStats struct {
	TotalKarma   int          `json:"totalKarma"`
	Rank         string       `json:"rank"`
	RankProgress RankProgress `json:"rankProgress"`
}

// TotalKarma folds a user's ledger into a running point total.
func TotalKarma(activities []Activity) int {
	total := 0
	for _, activity := range activities {
		total += activity.Points
	}
	return total
}

// StatsFor derives the full karma view from a user's ledger rows.
func StatsFor(activities []Activity) UserKarmaStats {
	total := TotalKarma(activities)
	rank := DeriveRank(total)
	return UserKarmaStats{
		TotalKarma:   total,
		Rank:         rank,
		RankProgress: ProgressFor(total, rank),
	}
}
