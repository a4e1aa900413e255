package leaderboarddomain

import (
	"sort"
	"time"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// ScoreRecord is one scored race for one user, flattened for aggregation.
// Records for a user are expected in chronological race order.
type ScoreRecord struct {
	UserID    sharedtypes.UserID
	RaceID    sharedtypes.RaceID
	Series    sharedtypes.Series
	RaceDate  time.Time
	Points    sharedtypes.Points
	ExactPick bool
}

// ComputeMemberStats aggregates one user's in-filter score records into a
// leaderboard row. Rank is left at zero; RankMembers assigns it.
//
// currentStreak is the unbroken run of exact-pick scores counted backward
// from the most recent race; bestStreak is the longest such run anywhere in
// the history.
func ComputeMemberStats(userID sharedtypes.UserID, records []ScoreRecord) sharedtypes.MemberStats {
	stats := sharedtypes.MemberStats{UserID: userID}

	run := 0
	for _, r := range records {
		stats.Points += r.Points
		stats.TotalPredictions++
		if r.ExactPick {
			stats.CorrectPredictions++
			run++
			if run > stats.BestStreak {
				stats.BestStreak = run
			}
		} else {
			run = 0
		}
	}

	for i := len(records) - 1; i >= 0 && records[i].ExactPick; i-- {
		stats.CurrentStreak++
	}

	if stats.TotalPredictions > 0 {
		stats.Accuracy = float64(stats.CorrectPredictions) / float64(stats.TotalPredictions) * 100
	}
	return stats
}

// RankMembers orders members and assigns dense ranks 1..N.
//
// Sort key, strictly descending: points, then accuracy, then total
// predictions. The sort is stable, so members tied on all three keep their
// incoming relative order. Members with zero predictions are dropped from
// the ranked output; they stay addressable individually with rank 0.
func RankMembers(members []sharedtypes.MemberStats) []sharedtypes.MemberStats {
	ranked := make([]sharedtypes.MemberStats, 0, len(members))
	for _, m := range members {
		if m.TotalPredictions > 0 {
			ranked = append(ranked, m)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Accuracy != b.Accuracy {
			return a.Accuracy > b.Accuracy
		}
		return a.TotalPredictions > b.TotalPredictions
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
