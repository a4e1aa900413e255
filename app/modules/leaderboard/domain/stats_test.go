package leaderboarddomain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

func record(userID string, day int, points int, exact bool) ScoreRecord {
	return ScoreRecord{
		UserID:    sharedtypes.UserID(userID),
		RaceID:    sharedtypes.RaceID("race"),
		Series:    sharedtypes.SeriesSX,
		RaceDate:  time.Date(2026, time.May, day, 0, 0, 0, 0, time.UTC),
		Points:    sharedtypes.Points(points),
		ExactPick: exact,
	}
}

func TestComputeMemberStats(t *testing.T) {
	tests := []struct {
		name    string
		records []ScoreRecord
		want    sharedtypes.MemberStats
	}{
		{
			name:    "no activity yields zero stats",
			records: nil,
			want:    sharedtypes.MemberStats{UserID: "u"},
		},
		{
			name: "mixed history",
			records: []ScoreRecord{
				record("u", 1, 100, true),
				record("u", 2, 50, true),
				record("u", 3, 0, false),
				record("u", 4, 200, true),
				record("u", 5, 150, true),
			},
			want: sharedtypes.MemberStats{
				UserID:             "u",
				Points:             500,
				Accuracy:           80,
				CurrentStreak:      2,
				BestStreak:         2,
				TotalPredictions:   5,
				CorrectPredictions: 4,
			},
		},
		{
			name: "current streak broken by latest miss",
			records: []ScoreRecord{
				record("u", 1, 100, true),
				record("u", 2, 100, true),
				record("u", 3, 100, true),
				record("u", 4, 0, false),
			},
			want: sharedtypes.MemberStats{
				UserID:             "u",
				Points:             300,
				Accuracy:           75,
				CurrentStreak:      0,
				BestStreak:         3,
				TotalPredictions:   4,
				CorrectPredictions: 3,
			},
		},
		{
			name: "best streak found in the middle of history",
			records: []ScoreRecord{
				record("u", 1, 10, false),
				record("u", 2, 10, true),
				record("u", 3, 10, true),
				record("u", 4, 10, true),
				record("u", 5, 10, false),
				record("u", 6, 10, true),
			},
			want: sharedtypes.MemberStats{
				UserID:             "u",
				Points:             60,
				Accuracy:           float64(4) / 6 * 100,
				CurrentStreak:      1,
				BestStreak:         3,
				TotalPredictions:   6,
				CorrectPredictions: 4,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeMemberStats("u", tt.records)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ComputeMemberStats mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRankMembers_AccuracyTiebreak(t *testing.T) {
	// Equal points, accuracy decides.
	a := sharedtypes.MemberStats{UserID: "a", Points: 300, Accuracy: 60, TotalPredictions: 5}
	b := sharedtypes.MemberStats{UserID: "b", Points: 300, Accuracy: 80, TotalPredictions: 5}

	ranked := RankMembers([]sharedtypes.MemberStats{a, b})

	require.Len(t, ranked, 2)
	assert.Equal(t, sharedtypes.UserID("b"), ranked[0].UserID)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, sharedtypes.UserID("a"), ranked[1].UserID)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestRankMembers_DenseRanksOnExactTies(t *testing.T) {
	members := []sharedtypes.MemberStats{
		{UserID: "first", Points: 100, Accuracy: 50, TotalPredictions: 2},
		{UserID: "second", Points: 100, Accuracy: 50, TotalPredictions: 2},
		{UserID: "third", Points: 50, Accuracy: 50, TotalPredictions: 2},
	}

	ranked := RankMembers(members)

	require.Len(t, ranked, 3)
	// Exact ties keep incoming order and still get distinct ranks.
	assert.Equal(t, sharedtypes.UserID("first"), ranked[0].UserID)
	assert.Equal(t, sharedtypes.UserID("second"), ranked[1].UserID)
	assert.Equal(t, []int{1, 2, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank})
}

func TestRankMembers_TotalPredictionsTiebreak(t *testing.T) {
	members := []sharedtypes.MemberStats{
		{UserID: "fewer", Points: 200, Accuracy: 50, TotalPredictions: 4},
		{UserID: "more", Points: 200, Accuracy: 50, TotalPredictions: 8},
	}

	ranked := RankMembers(members)

	assert.Equal(t, sharedtypes.UserID("more"), ranked[0].UserID)
}

func TestRankMembers_ZeroPredictionUsersExcluded(t *testing.T) {
	members := []sharedtypes.MemberStats{
		{UserID: "active", Points: 10, TotalPredictions: 1},
		{UserID: "idle"},
	}

	ranked := RankMembers(members)

	require.Len(t, ranked, 1)
	assert.Equal(t, sharedtypes.UserID("active"), ranked[0].UserID)
}

func TestScopeValidate(t *testing.T) {
	assert.NoError(t, Scope{Kind: ScopeGlobal}.Validate())
	assert.NoError(t, Scope{Kind: ScopeRegional, Region: "us-west"}.Validate())
	assert.NoError(t, Scope{Kind: ScopeGroup, GroupID: "g1"}.Validate())
	assert.ErrorIs(t, Scope{Kind: ScopeFriends}.Validate(), ErrFriendsUnavailable)
	assert.Error(t, Scope{Kind: "galactic"}.Validate())
}

func TestFilterMatches(t *testing.T) {
	now := time.Date(2026, time.May, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filter   Filter
		series   sharedtypes.Series
		raceDate time.Time
		want     bool
	}{
		{"all matches everything", Filter{Window: WindowAll, Series: SeriesFilterAll}, sharedtypes.SeriesMX, now.AddDate(-1, 0, 0), true},
		{"week includes recent race", Filter{Window: WindowWeek, Series: SeriesFilterAll}, sharedtypes.SeriesSX, now.AddDate(0, 0, -3), true},
		{"week excludes older race", Filter{Window: WindowWeek, Series: SeriesFilterAll}, sharedtypes.SeriesSX, now.AddDate(0, 0, -10), false},
		{"month includes three weeks ago", Filter{Window: WindowMonth, Series: SeriesFilterAll}, sharedtypes.SeriesSX, now.AddDate(0, 0, -21), true},
		{"season excludes last year", Filter{Window: WindowSeason, Series: SeriesFilterAll}, sharedtypes.SeriesSX, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), false},
		{"season includes january", Filter{Window: WindowSeason, Series: SeriesFilterAll}, sharedtypes.SeriesSX, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), true},
		{"series filter excludes other series", Filter{Window: WindowAll, Series: SeriesFilterSX}, sharedtypes.SeriesMX, now, false},
		{"series filter includes own series", Filter{Window: WindowAll, Series: SeriesFilterMX}, sharedtypes.SeriesMX, now, true},
		{"future race excluded from windowed query", Filter{Window: WindowWeek, Series: SeriesFilterAll}, sharedtypes.SeriesSX, now.AddDate(0, 0, 2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(tt.series, tt.raceDate, now))
		})
	}
}
