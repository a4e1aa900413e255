package scoringdomain

import (
	"time"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// streakTier is one step of the streak bonus ladder.
type streakTier struct {
	Days       int
	Multiplier float64
}

// streakTiers is ordered descending; the highest qualifying threshold wins.
// The ladder is a step function, not cumulative.
var streakTiers = []streakTier{
	{Days: 100, Multiplier: 3.0},
	{Days: 60, Multiplier: 2.5},
	{Days: 30, Multiplier: 2.0},
	{Days: 14, Multiplier: 1.5},
	{Days: 7, Multiplier: 1.25},
	{Days: 3, Multiplier: 1.10},
}

// StreakMultiplier returns the bonus multiplier for a streak length.
// Streaks under 3 days earn no bonus (1.0).
func StreakMultiplier(streakDays int) float64 {
	for _, tier := range streakTiers {
		if streakDays >= tier.Days {
			return tier.Multiplier
		}
	}
	return 1.0
}

// AdvanceStreak applies one day of qualifying activity to a streak state.
// Same calendar day as the last activity leaves the state untouched;
// exactly one day later extends the streak; any larger gap resets it to 1.
// LongestStreak tracks the high-water mark after the update.
func AdvanceStreak(today time.Time, state sharedtypes.StreakState) sharedtypes.StreakState {
	next := state

	switch {
	case state.LastActivityDate.IsZero():
		next.CurrentStreak = 1
	default:
		gap := calendarDaysBetween(state.LastActivityDate, today)
		switch {
		case gap == 0:
			return state
		case gap == 1:
			next.CurrentStreak = state.CurrentStreak + 1
		default:
			// Streak broken
			next.CurrentStreak = 1
		}
	}

	next.LastActivityDate = today
	if next.CurrentStreak > next.LongestStreak {
		next.LongestStreak = next.CurrentStreak
	}
	return next
}

// calendarDaysBetween counts whole calendar days from a to b, ignoring the
// time of day. Both instants are compared in UTC.
func calendarDaysBetween(a, b time.Time) int {
	aDay := time.Date(a.UTC().Year(), a.UTC().Month(), a.UTC().Day(), 0, 0, 0, 0, time.UTC)
	bDay := time.Date(b.UTC().Year(), b.UTC().Month(), b.UTC().Day(), 0, 0, 0, 0, time.UTC)
	return int(bDay.Sub(aDay).Hours() / 24)
}
