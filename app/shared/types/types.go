package sharedtypes

import "time"

// UserID identifies a member across all modules.
type UserID string

func (id UserID) String() string { return string(id) }

// RaceID identifies a single race event.
type RaceID string

func (id RaceID) String() string { return string(id) }

// RiderID identifies a rider in the field.
type RiderID string

func (id RiderID) String() string { return string(id) }

// GroupID identifies a prediction group.
type GroupID string

// Series is the race series a race belongs to.
type Series string

const (
	SeriesSX Series = "SX"
	SeriesMX Series = "MX"
)

// Points is an earned point amount. Always whole numbers; fractional
// confidence adjustments are rounded per pick before they become Points.
type Points int

// Position is a finishing (or predicted finishing) position, 1-based.
type Position int

// ConfidenceLevel is the user-chosen risk dial, 1 (safe) through 5 (risky).
type ConfidenceLevel int

// Pick is a single (rider, predicted position) entry of a prediction.
type Pick struct {
	RiderID           RiderID  `json:"rider_id"`
	PredictedPosition Position `json:"predicted_position"`
}

// RiderPosition is one entry of a race result.
type RiderPosition struct {
	RiderID  RiderID  `json:"rider_id"`
	Position Position `json:"position"`
}

// BonusPrediction holds the supplemental picks of a prediction. All fields
// are optional; a nil field means the category was not played.
type BonusPrediction struct {
	HoleshotWinnerID  *RiderID `json:"holeshot_winner_id,omitempty"`
	FastestLapRiderID *RiderID `json:"fastest_lap_rider_id,omitempty"`
	Qualifying1ID     *RiderID `json:"qualifying_1_id,omitempty"`
	Qualifying2ID     *RiderID `json:"qualifying_2_id,omitempty"`
	Qualifying3ID     *RiderID `json:"qualifying_3_id,omitempty"`
}

// BonusOutcome is the actual bonus-category outcome of a race.
type BonusOutcome struct {
	HoleshotWinnerID  RiderID `json:"holeshot_winner_id"`
	FastestLapRiderID RiderID `json:"fastest_lap_rider_id"`
	Qualifying1ID     RiderID `json:"qualifying_1_id"`
	Qualifying2ID     RiderID `json:"qualifying_2_id"`
	Qualifying3ID     RiderID `json:"qualifying_3_id"`
}

// Prediction is a member's locked-in prediction for one race.
type Prediction struct {
	RaceID          RaceID           `json:"race_id"`
	UserID          UserID           `json:"user_id"`
	Picks           []Pick           `json:"picks"`
	ConfidenceLevel *ConfidenceLevel `json:"confidence_level,omitempty"`
	Bonus           *BonusPrediction `json:"bonus,omitempty"`
}

// RaceResult is the ordered finishing data for one race, supplied externally.
type RaceResult struct {
	RaceID    RaceID          `json:"race_id"`
	Positions []RiderPosition `json:"positions"`
	Bonus     *BonusOutcome   `json:"bonus,omitempty"`
}

// ScoreStatus is the lifecycle state of a (user, race) score.
type ScoreStatus string

const (
	ScoreStatusSubmitted ScoreStatus = "submitted"
	ScoreStatusScored    ScoreStatus = "scored"
	ScoreStatusRescored  ScoreStatus = "rescored"
	ScoreStatusFinal     ScoreStatus = "final"
)

// RiderScore is the per-pick breakdown inside a PredictionScore.
// ActualPosition and PositionDiff are nil when the rider does not appear in
// the race result; such picks contribute zero base points.
type RiderScore struct {
	RiderID           RiderID   `json:"rider_id"`
	PredictedPosition Position  `json:"predicted_position"`
	ActualPosition    *Position `json:"actual_position,omitempty"`
	PositionDiff      *int      `json:"position_diff,omitempty"`
	BasePoints        Points    `json:"base_points"`
	EarnedPoints      Points    `json:"earned_points"`
}

// PredictionScore is the recomputable scoring snapshot for one (user, race)
// pair. It is a pure function of the stored Prediction and RaceResult.
type PredictionScore struct {
	RaceID                  RaceID       `json:"race_id"`
	UserID                  UserID       `json:"user_id"`
	RiderScores             []RiderScore `json:"rider_scores"`
	BaseTotal               Points       `json:"base_total"`
	ConfidenceMultiplier    float64      `json:"confidence_multiplier"`
	ConfidenceBonus         Points       `json:"confidence_bonus"`
	SubtotalAfterConfidence Points       `json:"subtotal_after_confidence"`
	StreakDays              int          `json:"streak_days"`
	StreakMultiplier        float64      `json:"streak_multiplier"`
	StreakBonus             Points       `json:"streak_bonus"`
	PerfectPredictionBonus  Points       `json:"perfect_prediction_bonus"`
	TotalPoints             Points       `json:"total_points"`
	Accuracy                float64      `json:"accuracy"`
	IsPerfectPrediction     bool         `json:"is_perfect_prediction"`
	Status                  ScoreStatus  `json:"status"`
}

// HasExactPick reports whether at least one pick landed on its exact
// finishing position. Leaderboard "correct prediction" counting and streak
// scans both key off this.
func (ps PredictionScore) HasExactPick() bool {
	for _, rs := range ps.RiderScores {
		if rs.PositionDiff != nil && *rs.PositionDiff == 0 {
			return true
		}
	}
	return false
}

// MemberStats is one leaderboard row, always computed at query time.
type MemberStats struct {
	UserID             UserID  `json:"user_id"`
	Points             Points  `json:"points"`
	Accuracy           float64 `json:"accuracy"`
	CurrentStreak      int     `json:"current_streak"`
	BestStreak         int     `json:"best_streak"`
	TotalPredictions   int     `json:"total_predictions"`
	CorrectPredictions int     `json:"correct_predictions"`
	Rank               int     `json:"rank"`
}

// StreakState is the per-user daily-activity streak, advanced at most once
// per calendar day of qualifying activity.
type StreakState struct {
	UserID           UserID    `json:"user_id"`
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	LastActivityDate time.Time `json:"last_activity_date"`
}
