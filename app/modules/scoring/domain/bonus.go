package scoringdomain

import (
	"fmt"
	"sort"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// Bonus category point values.
const (
	HoleshotPoints      sharedtypes.Points = 15
	FastestLapPoints    sharedtypes.Points = 10
	QualifyingPickValue sharedtypes.Points = 5
	MaxBonusPoints      sharedtypes.Points = 40
)

// BonusValidation is the outcome of validating a bonus draft. Errors holds
// every violation found, not just the first.
type BonusValidation struct {
	Valid  bool
	Errors []string
}

// bonusCategories enumerates the draft slots in a stable order so
// validation output is deterministic.
func bonusCategories(draft sharedtypes.BonusPrediction) []struct {
	Name    string
	RiderID *sharedtypes.RiderID
} {
	return []struct {
		Name    string
		RiderID *sharedtypes.RiderID
	}{
		{"holeshot", draft.HoleshotWinnerID},
		{"fastest_lap", draft.FastestLapRiderID},
		{"qualifying_1", draft.Qualifying1ID},
		{"qualifying_2", draft.Qualifying2ID},
		{"qualifying_3", draft.Qualifying3ID},
	}
}

// ValidateBonusPrediction rejects drafts where the same rider appears in
// more than one category. Qualifying picks must be pairwise distinct, which
// the same scan covers. All violations are collected.
func ValidateBonusPrediction(draft sharedtypes.BonusPrediction) BonusValidation {
	picksByRider := make(map[sharedtypes.RiderID][]string)
	for _, cat := range bonusCategories(draft) {
		if cat.RiderID == nil {
			continue
		}
		picksByRider[*cat.RiderID] = append(picksByRider[*cat.RiderID], cat.Name)
	}

	duplicated := make([]sharedtypes.RiderID, 0, len(picksByRider))
	for riderID, categories := range picksByRider {
		if len(categories) > 1 {
			duplicated = append(duplicated, riderID)
		}
	}
	sort.Slice(duplicated, func(i, j int) bool { return duplicated[i] < duplicated[j] })

	var errs []string
	for _, riderID := range duplicated {
		categories := picksByRider[riderID]
		errs = append(errs, fmt.Sprintf("rider %s picked in multiple bonus categories: %v", riderID, categories))
	}

	return BonusValidation{Valid: len(errs) == 0, Errors: errs}
}

// BonusScore is the per-category bonus breakdown. Categories are scored
// independently; a miss zeroes only its own category.
type BonusScore struct {
	HoleshotPoints   sharedtypes.Points `json:"holeshot_points"`
	FastestLapPoints sharedtypes.Points `json:"fastest_lap_points"`
	QualifyingPoints sharedtypes.Points `json:"qualifying_points"`
	TotalPoints      sharedtypes.Points `json:"total_points"`
}

// ScoreBonusPrediction scores a bonus draft against the actual outcome:
// holeshot 15, fastest lap 10, each correct qualifying position 5 (max 15).
// The maximum total is 40.
func ScoreBonusPrediction(draft sharedtypes.BonusPrediction, actual sharedtypes.BonusOutcome) BonusScore {
	var score BonusScore

	if draft.HoleshotWinnerID != nil && *draft.HoleshotWinnerID == actual.HoleshotWinnerID {
		score.HoleshotPoints = HoleshotPoints
	}
	if draft.FastestLapRiderID != nil && *draft.FastestLapRiderID == actual.FastestLapRiderID {
		score.FastestLapPoints = FastestLapPoints
	}

	qualifying := []struct {
		pick   *sharedtypes.RiderID
		actual sharedtypes.RiderID
	}{
		{draft.Qualifying1ID, actual.Qualifying1ID},
		{draft.Qualifying2ID, actual.Qualifying2ID},
		{draft.Qualifying3ID, actual.Qualifying3ID},
	}
	for _, q := range qualifying {
		if q.pick != nil && *q.pick == q.actual {
			score.QualifyingPoints += QualifyingPickValue
		}
	}

	score.TotalPoints = score.HoleshotPoints + score.FastestLapPoints + score.QualifyingPoints
	return score
}
