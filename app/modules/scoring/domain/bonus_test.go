package scoringdomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

func rider(id string) *sharedtypes.RiderID {
	r := sharedtypes.RiderID(id)
	return &r
}

func TestValidateBonusPrediction(t *testing.T) {
	t.Run("distinct picks are valid", func(t *testing.T) {
		v := ValidateBonusPrediction(sharedtypes.BonusPrediction{
			HoleshotWinnerID:  rider("rider-a"),
			FastestLapRiderID: rider("rider-b"),
			Qualifying1ID:     rider("rider-c"),
			Qualifying2ID:     rider("rider-d"),
			Qualifying3ID:     rider("rider-e"),
		})
		assert.True(t, v.Valid)
		assert.Empty(t, v.Errors)
	})

	t.Run("empty draft is valid", func(t *testing.T) {
		v := ValidateBonusPrediction(sharedtypes.BonusPrediction{})
		assert.True(t, v.Valid)
	})

	t.Run("holeshot duplicated in qualifying is rejected", func(t *testing.T) {
		v := ValidateBonusPrediction(sharedtypes.BonusPrediction{
			HoleshotWinnerID: rider("rider-a"),
			Qualifying2ID:    rider("rider-a"),
		})
		assert.False(t, v.Valid)
		require.Len(t, v.Errors, 1)
		assert.Contains(t, v.Errors[0], "rider-a")
		assert.Contains(t, v.Errors[0], "holeshot")
		assert.Contains(t, v.Errors[0], "qualifying_2")
	})

	t.Run("all violations are collected", func(t *testing.T) {
		v := ValidateBonusPrediction(sharedtypes.BonusPrediction{
			HoleshotWinnerID:  rider("rider-a"),
			FastestLapRiderID: rider("rider-a"),
			Qualifying1ID:     rider("rider-b"),
			Qualifying2ID:     rider("rider-b"),
			Qualifying3ID:     rider("rider-b"),
		})
		assert.False(t, v.Valid)
		assert.Len(t, v.Errors, 2)
	})

	t.Run("qualifying picks must be pairwise distinct", func(t *testing.T) {
		v := ValidateBonusPrediction(sharedtypes.BonusPrediction{
			Qualifying1ID: rider("rider-c"),
			Qualifying3ID: rider("rider-c"),
		})
		assert.False(t, v.Valid)
		require.Len(t, v.Errors, 1)
		assert.Contains(t, v.Errors[0], "qualifying_1")
		assert.Contains(t, v.Errors[0], "qualifying_3")
	})
}

func TestScoreBonusPrediction(t *testing.T) {
	actual := sharedtypes.BonusOutcome{
		HoleshotWinnerID:  "rider-h",
		FastestLapRiderID: "rider-f",
		Qualifying1ID:     "rider-1",
		Qualifying2ID:     "rider-2",
		Qualifying3ID:     "rider-3",
	}

	tests := []struct {
		name  string
		draft sharedtypes.BonusPrediction
		want  BonusScore
	}{
		{
			name: "everything correct hits the 40 point cap",
			draft: sharedtypes.BonusPrediction{
				HoleshotWinnerID:  rider("rider-h"),
				FastestLapRiderID: rider("rider-f"),
				Qualifying1ID:     rider("rider-1"),
				Qualifying2ID:     rider("rider-2"),
				Qualifying3ID:     rider("rider-3"),
			},
			want: BonusScore{HoleshotPoints: 15, FastestLapPoints: 10, QualifyingPoints: 15, TotalPoints: 40},
		},
		{
			name: "miss in one category does not bleed into others",
			draft: sharedtypes.BonusPrediction{
				HoleshotWinnerID:  rider("rider-wrong"),
				FastestLapRiderID: rider("rider-f"),
				Qualifying1ID:     rider("rider-1"),
			},
			want: BonusScore{FastestLapPoints: 10, QualifyingPoints: 5, TotalPoints: 15},
		},
		{
			name: "qualifying positions score positionally",
			draft: sharedtypes.BonusPrediction{
				// Right riders, wrong slots: no points.
				Qualifying1ID: rider("rider-2"),
				Qualifying2ID: rider("rider-3"),
				Qualifying3ID: rider("rider-1"),
			},
			want: BonusScore{},
		},
		{
			name:  "empty draft scores zero",
			draft: sharedtypes.BonusPrediction{},
			want:  BonusScore{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreBonusPrediction(tt.draft, actual))
		})
	}
}
