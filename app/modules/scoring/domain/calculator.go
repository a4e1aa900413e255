package scoringdomain

import (
	"math"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// PicksPerPrediction is the number of main picks a complete prediction
// carries; the perfect-prediction bonus requires all of them to be exact.
const PicksPerPrediction = 5

// PerfectPredictionBonus is awarded when every main pick is an exact match.
const PerfectPredictionBonus sharedtypes.Points = 500

// basePointsByDiff maps a pick's position difference to base points.
var basePointsByDiff = map[int]sharedtypes.Points{
	0: 100,
	1: 50,
	2: 25,
	3: 10,
	4: 5,
}

// BasePoints returns the base points for a position difference. Differences
// of five or more earn nothing.
func BasePoints(diff int) sharedtypes.Points {
	if pts, ok := basePointsByDiff[diff]; ok {
		return pts
	}
	return 0
}

// ScoreInput is everything the calculator needs for one (user, race) pair.
// Positions is the actual finishing order; picks whose rider is absent from
// it are unscored and contribute zero base points.
type ScoreInput struct {
	RaceID          sharedtypes.RaceID
	UserID          sharedtypes.UserID
	Picks           []sharedtypes.Pick
	Positions       []sharedtypes.RiderPosition
	ConfidenceLevel *sharedtypes.ConfidenceLevel
	StreakDays      int
}

// CalculateScore produces the full score breakdown for a prediction against
// a race result. It is a pure function: identical inputs always yield an
// identical PredictionScore.
//
// Rounding is applied per pick to the confidence-adjusted points, then the
// rounded values are summed. Rounding the sum instead diverges on ties and
// must not be reintroduced.
func CalculateScore(input ScoreInput) sharedtypes.PredictionScore {
	positionByRider := make(map[sharedtypes.RiderID]sharedtypes.Position, len(input.Positions))
	for _, rp := range input.Positions {
		positionByRider[rp.RiderID] = rp.Position
	}

	confidenceMultiplier := ConfidenceMultiplier(input.ConfidenceLevel)

	riderScores := make([]sharedtypes.RiderScore, 0, len(input.Picks))
	var baseTotal, subtotal sharedtypes.Points
	exactMatches := 0

	for _, pick := range input.Picks {
		rs := sharedtypes.RiderScore{
			RiderID:           pick.RiderID,
			PredictedPosition: pick.PredictedPosition,
		}

		if actual, ok := positionByRider[pick.RiderID]; ok {
			diff := int(pick.PredictedPosition) - int(actual)
			if diff < 0 {
				diff = -diff
			}
			actualCopy := actual
			diffCopy := diff
			rs.ActualPosition = &actualCopy
			rs.PositionDiff = &diffCopy
			rs.BasePoints = BasePoints(diff)
			if diff == 0 {
				exactMatches++
			}
		}

		rs.EarnedPoints = sharedtypes.Points(math.Round(float64(rs.BasePoints) * confidenceMultiplier))

		baseTotal += rs.BasePoints
		subtotal += rs.EarnedPoints
		riderScores = append(riderScores, rs)
	}

	isPerfect := len(input.Picks) == PicksPerPrediction && exactMatches == PicksPerPrediction

	var perfectBonus sharedtypes.Points
	if isPerfect {
		perfectBonus = PerfectPredictionBonus
	}

	streakMultiplier := StreakMultiplier(input.StreakDays)
	streakBonus := sharedtypes.Points(math.Round(float64(subtotal+perfectBonus) * (streakMultiplier - 1)))

	var accuracy float64
	if len(input.Picks) > 0 {
		accuracy = float64(baseTotal) / float64(len(input.Picks)*100) * 100
	}

	return sharedtypes.PredictionScore{
		RaceID:                  input.RaceID,
		UserID:                  input.UserID,
		RiderScores:             riderScores,
		BaseTotal:               baseTotal,
		ConfidenceMultiplier:    confidenceMultiplier,
		ConfidenceBonus:         subtotal - baseTotal,
		SubtotalAfterConfidence: subtotal,
		StreakDays:              input.StreakDays,
		StreakMultiplier:        streakMultiplier,
		StreakBonus:             streakBonus,
		PerfectPredictionBonus:  perfectBonus,
		TotalPoints:             subtotal + perfectBonus + streakBonus,
		Accuracy:                accuracy,
		IsPerfectPrediction:     isPerfect,
	}
}
