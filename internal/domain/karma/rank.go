package karma

// MaxRankSentinel is reported as the next rank once the top rank is held.
const MaxRankSentinel = "Max Level"

// RankThreshold maps a minimum karma total to a rank label.
type RankThreshold struct {
	Min   int    `json:"min"`
	Label string `json:"label"`
}

// rankThresholds is the canonical nine-tier table, ordered by ascending
// minimum karma. The profile surface of an earlier iteration carried a
// second four-tier table; that one was a bug, not a second tier system,
// and is not reimplemented.
var rankThresholds = []RankThreshold{
	{Min: 0, Label: "Rookie"},
	{Min: 10, Label: "Private"},
	{Min: 50, Label: "Corporal"},
	{Min: 100, Label: "Sergeant"},
	{Min: 500, Label: "Lieutenant"},
	{Min: 1000, Label: "Captain"},
	{Min: 2500, Label: "Major"},
	{Min: 5000, Label: "Colonel"},
	{Min: 10000, Label: "General"},
}

// Thresholds returns a copy of the rank table.
func Thresholds() []RankThreshold {
	return append([]RankThreshold(nil), rankThresholds...)
}

// DeriveRank returns the label of the highest threshold at or below the
// given karma total. Negative totals map to the lowest rank.
func DeriveRank(totalKarma int) string {
	rank := rankThresholds[0].Label
	for _, threshold := range rankThresholds {
		if totalKarma >= threshold.Min {
			rank = threshold.Label
		}
	}
	return rank
}

// RankProgress describes a user's position between two adjacent rank
// thresholds. At the top rank Progress is clamped to 100 and NextRank is
// the terminal sentinel.
type RankProgress struct {
	Current  int     `json:"current"`
	Next     int     `json:"next"`
	Progress float64 `json:"progress"`
	NextRank string  `json:"nextRank"`
}

// ProgressFor computes progress from the current rank toward the next one.
// An unrecognized rank label falls back to the rank derived from the total.
func ProgressFor(totalKarma int, currentRank string) RankProgress {
	index := -1
	for i, threshold := range rankThresholds {
		if threshold.Label == currentRank {
			index = i
			break
		}
	}
	if index == -1 {
		return ProgressFor(totalKarma, DeriveRank(totalKarma))
	}

	if index == len(rankThresholds)-1 {
		return RankProgress{
			Current:  totalKarma,
			Next:     totalKarma,
			Progress: 100,
			NextRank: MaxRankSentinel,
		}
	}

	current := rankThresholds[index]
	next := rankThresholds[index+1]
	progress := 100 * float64(totalKarma-current.Min) / float64(next.Min-current.Min)
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	return RankProgress{
		Current:  current.Min,
		Next:     next.Min,
		Progress: progress,
		NextRank: next.Label,
	}
}
