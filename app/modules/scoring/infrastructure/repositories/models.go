package scoringdb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// Prediction is a member's locked prediction row. Picks and bonus picks are
// stored as JSONB; a prediction is immutable once its race opens, so the row
// is written once and only read afterwards.
type Prediction struct {
	bun.BaseModel `bun:"table:predictions"`

	ID              int64                         `bun:"id,pk,autoincrement"`
	RaceID          sharedtypes.RaceID            `bun:"race_id,notnull"`
	UserID          sharedtypes.UserID            `bun:"user_id,notnull"`
	Picks           []sharedtypes.Pick            `bun:"picks,type:jsonb,notnull"`
	ConfidenceLevel *sharedtypes.ConfidenceLevel  `bun:"confidence_level"`
	Bonus           *sharedtypes.BonusPrediction  `bun:"bonus,type:jsonb"`
	CreatedAt       time.Time                     `bun:"created_at,notnull,default:current_timestamp"`
}

// RaceResult is the externally supplied finishing order for one race.
type RaceResult struct {
	bun.BaseModel `bun:"table:race_results"`

	RaceID    sharedtypes.RaceID            `bun:"race_id,pk"`
	Series    sharedtypes.Series            `bun:"series,notnull"`
	RaceDate  time.Time                     `bun:"race_date,notnull"`
	Positions []sharedtypes.RiderPosition   `bun:"positions,type:jsonb,notnull"`
	Bonus     *sharedtypes.BonusOutcome     `bun:"bonus,type:jsonb"`
	Finalized bool                          `bun:"finalized,notnull,default:false"`
	UpdatedAt time.Time                     `bun:"updated_at,notnull,default:current_timestamp"`
}

// PredictionScore is the recomputable score snapshot for one (user, race)
// pair. The full breakdown lives in JSONB; total points and status are
// lifted into columns for leaderboard queries.
type PredictionScore struct {
	bun.BaseModel `bun:"table:prediction_scores"`

	RaceID      sharedtypes.RaceID          `bun:"race_id,pk"`
	UserID      sharedtypes.UserID          `bun:"user_id,pk"`
	TotalPoints sharedtypes.Points          `bun:"total_points,notnull"`
	Status      sharedtypes.ScoreStatus     `bun:"status,notnull"`
	Breakdown   sharedtypes.PredictionScore `bun:"breakdown,type:jsonb,notnull"`
	ComputedAt  time.Time                   `bun:"computed_at,notnull,default:current_timestamp"`
}

// StreakState is the per-user daily activity streak row.
type StreakState struct {
	bun.BaseModel `bun:"table:streak_states"`

	UserID           sharedtypes.UserID `bun:"user_id,pk"`
	CurrentStreak    int                `bun:"current_streak,notnull"`
	LongestStreak    int                `bun:"longest_streak,notnull"`
	LastActivityDate time.Time          `bun:"last_activity_date,notnull"`
}
