package scoringdomain

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

func confidence(level int) *sharedtypes.ConfidenceLevel {
	l := sharedtypes.ConfidenceLevel(level)
	return &l
}

func fivePicks() []sharedtypes.Pick {
	return []sharedtypes.Pick{
		{RiderID: "rider-a", PredictedPosition: 1},
		{RiderID: "rider-b", PredictedPosition: 2},
		{RiderID: "rider-c", PredictedPosition: 3},
		{RiderID: "rider-d", PredictedPosition: 4},
		{RiderID: "rider-e", PredictedPosition: 5},
	}
}

func exactResult() []sharedtypes.RiderPosition {
	return []sharedtypes.RiderPosition{
		{RiderID: "rider-a", Position: 1},
		{RiderID: "rider-b", Position: 2},
		{RiderID: "rider-c", Position: 3},
		{RiderID: "rider-d", Position: 4},
		{RiderID: "rider-e", Position: 5},
	}
}

func TestBasePoints(t *testing.T) {
	expected := map[int]sharedtypes.Points{0: 100, 1: 50, 2: 25, 3: 10, 4: 5, 5: 0, 6: 0, 20: 0}
	for diff, want := range expected {
		assert.Equal(t, want, BasePoints(diff), "diff %d", diff)
	}
}

func TestCalculateScore_MixedAccuracy(t *testing.T) {
	// Picks A..E for positions 1..5; actual order A, C, B, D, F.
	// Diffs are 0, 1, 1, 0 and E is unscored.
	input := ScoreInput{
		RaceID: "race-1",
		UserID: "user-1",
		Picks:  fivePicks(),
		Positions: []sharedtypes.RiderPosition{
			{RiderID: "rider-a", Position: 1},
			{RiderID: "rider-c", Position: 2},
			{RiderID: "rider-b", Position: 3},
			{RiderID: "rider-d", Position: 4},
			{RiderID: "rider-f", Position: 5},
		},
		ConfidenceLevel: confidence(3),
	}

	score := CalculateScore(input)

	require.Len(t, score.RiderScores, 5)
	assert.Equal(t, sharedtypes.Points(300), score.BaseTotal)
	assert.Equal(t, sharedtypes.Points(300), score.SubtotalAfterConfidence)
	assert.Equal(t, sharedtypes.Points(0), score.ConfidenceBonus)
	assert.Equal(t, sharedtypes.Points(300), score.TotalPoints)
	assert.False(t, score.IsPerfectPrediction)
	assert.Equal(t, sharedtypes.Points(0), score.PerfectPredictionBonus)
	assert.InDelta(t, 60.0, score.Accuracy, 0.001)

	// Unmatched rider stays unscored, not zero-diff.
	e := score.RiderScores[4]
	assert.Equal(t, sharedtypes.RiderID("rider-e"), e.RiderID)
	assert.Nil(t, e.ActualPosition)
	assert.Nil(t, e.PositionDiff)
	assert.Equal(t, sharedtypes.Points(0), e.BasePoints)
}

func TestCalculateScore_PerfectWithConfidenceAndStreak(t *testing.T) {
	// All five exact, confidence 5 (2.0x), streak 5 days (1.10x tier):
	// base 500, subtotal 1000, perfect +500, streak bonus round(1500*0.10)=150.
	input := ScoreInput{
		RaceID:          "race-2",
		UserID:          "user-1",
		Picks:           fivePicks(),
		Positions:       exactResult(),
		ConfidenceLevel: confidence(5),
		StreakDays:      5,
	}

	score := CalculateScore(input)

	assert.Equal(t, sharedtypes.Points(500), score.BaseTotal)
	assert.Equal(t, sharedtypes.Points(1000), score.SubtotalAfterConfidence)
	assert.Equal(t, sharedtypes.Points(500), score.ConfidenceBonus)
	assert.True(t, score.IsPerfectPrediction)
	assert.Equal(t, sharedtypes.Points(500), score.PerfectPredictionBonus)
	assert.Equal(t, 1.10, score.StreakMultiplier)
	assert.Equal(t, sharedtypes.Points(150), score.StreakBonus)
	assert.Equal(t, sharedtypes.Points(1650), score.TotalPoints)
	assert.InDelta(t, 100.0, score.Accuracy, 0.001)
}

func TestCalculateScore_StreakBeyondWeekUsesWeekTier(t *testing.T) {
	// 10 days clears the 7-day threshold, so the 1.25x tier applies:
	// subtotal 1000 + perfect 500, streak bonus round(1500*0.25)=375.
	input := ScoreInput{
		RaceID:          "race-2",
		UserID:          "user-1",
		Picks:           fivePicks(),
		Positions:       exactResult(),
		ConfidenceLevel: confidence(5),
		StreakDays:      10,
	}

	score := CalculateScore(input)

	assert.Equal(t, 1.25, score.StreakMultiplier)
	assert.Equal(t, sharedtypes.Points(375), score.StreakBonus)
	assert.Equal(t, sharedtypes.Points(1875), score.TotalPoints)
}

func TestCalculateScore_PerfectBonusIndependentOfConfidence(t *testing.T) {
	for level := 1; level <= 5; level++ {
		score := CalculateScore(ScoreInput{
			RaceID:          "race-3",
			UserID:          "user-1",
			Picks:           fivePicks(),
			Positions:       exactResult(),
			ConfidenceLevel: confidence(level),
		})
		assert.True(t, score.IsPerfectPrediction, "confidence %d", level)
		assert.Equal(t, sharedtypes.Points(500), score.PerfectPredictionBonus, "confidence %d", level)
	}
}

func TestCalculateScore_NoPerfectBonusWithFewerPicks(t *testing.T) {
	score := CalculateScore(ScoreInput{
		RaceID:    "race-4",
		UserID:    "user-1",
		Picks:     fivePicks()[:3],
		Positions: exactResult(),
	})
	assert.False(t, score.IsPerfectPrediction)
	assert.Equal(t, sharedtypes.Points(0), score.PerfectPredictionBonus)
	assert.Equal(t, sharedtypes.Points(300), score.TotalPoints)
	assert.InDelta(t, 100.0, score.Accuracy, 0.001)
}

func TestCalculateScore_EarnedPointsMonotoneInDiff(t *testing.T) {
	for level := 1; level <= 5; level++ {
		prev := sharedtypes.Points(1 << 30)
		for diff := 0; diff <= 6; diff++ {
			score := CalculateScore(ScoreInput{
				Picks: []sharedtypes.Pick{{RiderID: "rider-a", PredictedPosition: sharedtypes.Position(1 + diff)}},
				Positions: []sharedtypes.RiderPosition{
					{RiderID: "rider-a", Position: 1},
				},
				ConfidenceLevel: confidence(level),
			})
			earned := score.RiderScores[0].EarnedPoints
			assert.LessOrEqual(t, earned, prev, "confidence %d diff %d", level, diff)
			prev = earned
		}
	}
}

func TestCalculateScore_PerPickRounding(t *testing.T) {
	// Two picks with diff 3 (10 base) at confidence 2 (0.75x) earn
	// round(7.5)=8 each, 16 total. Rounding the sum would give 15.
	score := CalculateScore(ScoreInput{
		Picks: []sharedtypes.Pick{
			{RiderID: "rider-a", PredictedPosition: 4},
			{RiderID: "rider-b", PredictedPosition: 5},
		},
		Positions: []sharedtypes.RiderPosition{
			{RiderID: "rider-a", Position: 1},
			{RiderID: "rider-b", Position: 2},
		},
		ConfidenceLevel: confidence(2),
	})
	assert.Equal(t, sharedtypes.Points(8), score.RiderScores[0].EarnedPoints)
	assert.Equal(t, sharedtypes.Points(8), score.RiderScores[1].EarnedPoints)
	assert.Equal(t, sharedtypes.Points(16), score.SubtotalAfterConfidence)
}

func TestCalculateScore_NoPicks(t *testing.T) {
	score := CalculateScore(ScoreInput{RaceID: "race-5", UserID: "user-1"})
	assert.Equal(t, sharedtypes.Points(0), score.TotalPoints)
	assert.Equal(t, 0.0, score.Accuracy)
	assert.False(t, score.IsPerfectPrediction)
}

func TestCalculateScore_MissingResultDegradesToZero(t *testing.T) {
	score := CalculateScore(ScoreInput{
		RaceID: "race-6",
		UserID: "user-1",
		Picks:  fivePicks(),
	})
	assert.Equal(t, sharedtypes.Points(0), score.BaseTotal)
	assert.Equal(t, sharedtypes.Points(0), score.TotalPoints)
	for _, rs := range score.RiderScores {
		assert.Nil(t, rs.PositionDiff)
	}
}

func TestCalculateScore_Idempotent(t *testing.T) {
	input := ScoreInput{
		RaceID:          "race-7",
		UserID:          "user-1",
		Picks:           fivePicks(),
		Positions:       exactResult(),
		ConfidenceLevel: confidence(4),
		StreakDays:      33,
	}

	first := CalculateScore(input)
	second := CalculateScore(input)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("recompute differs (-first +second):\n%s", diff)
	}

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}
