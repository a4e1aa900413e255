// Package scoringevents defines the versioned topics and payloads of the
// scoring module.
package scoringevents

import (
	"time"

	scoringdomain "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/domain"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// Stream names
const (
	ScoringStreamName = "scoring"
	RaceStreamName    = "race"
)

// Topics consumed by the scoring module.
const (
	RaceResultFinalizedV1  = "race.result.finalized.v1"
	RaceResultCorrectedV1  = "race.result.corrected.v1"
	RaceClosedV1           = "race.closed.v1"
	UserActivityRecordedV1 = "user.activity.recorded.v1"
)

// Topics produced by the scoring module.
const (
	PredictionScoredV1         = "prediction.scored.v1"
	RaceScoresRecomputedV1     = "race.scores.recomputed.v1"
	RaceScoresFinalizedV1      = "race.scores.finalized.v1"
	RaceScoreRecomputeFailedV1 = "race.scores.recompute.failed.v1"
)

// RaceResultFinalizedPayloadV1 announces that officials entered the full
// result for a race.
type RaceResultFinalizedPayloadV1 struct {
	RaceID sharedtypes.RaceID `json:"race_id"`
}

// RaceResultCorrectedPayloadV1 announces a correction to an already
// published race result. Scoring treats it identically to finalization: the
// whole race is recomputed from stored facts.
type RaceResultCorrectedPayloadV1 struct {
	RaceID sharedtypes.RaceID `json:"race_id"`
}

// PredictionScoredPayloadV1 carries one user's recomputed score.
type PredictionScoredPayloadV1 struct {
	RaceID              sharedtypes.RaceID        `json:"race_id"`
	UserID              sharedtypes.UserID        `json:"user_id"`
	TotalPoints         sharedtypes.Points        `json:"total_points"`
	BonusPoints         sharedtypes.Points        `json:"bonus_points"`
	IsPerfectPrediction bool                      `json:"is_perfect_prediction"`
	Status              sharedtypes.ScoreStatus   `json:"status"`
	Bonus               *scoringdomain.BonusScore `json:"bonus,omitempty"`
}

// RaceScoresRecomputedPayloadV1 announces an atomic batch recompute. The
// leaderboard module uses it to invalidate cached rankings.
type RaceScoresRecomputedPayloadV1 struct {
	RaceID       sharedtypes.RaceID `json:"race_id"`
	ScoredCount  int                `json:"scored_count"`
	SkippedCount int                `json:"skipped_count"`
}

// RaceScoreRecomputeFailedPayloadV1 reports a batch recompute that could
// not publish.
type RaceScoreRecomputeFailedPayloadV1 struct {
	RaceID sharedtypes.RaceID `json:"race_id"`
	Reason string             `json:"reason"`
}

// RaceClosedPayloadV1 announces that a race is officially closed and its
// scores should move to their final state.
type RaceClosedPayloadV1 struct {
	RaceID sharedtypes.RaceID `json:"race_id"`
}

// RaceScoresFinalizedPayloadV1 announces that a race's scores were locked.
type RaceScoresFinalizedPayloadV1 struct {
	RaceID         sharedtypes.RaceID `json:"race_id"`
	FinalizedCount int                `json:"finalized_count"`
}

// UserActivityRecordedPayloadV1 reports one day of qualifying activity for a
// user. Multiple events on the same calendar day collapse into one streak
// advance.
type UserActivityRecordedPayloadV1 struct {
	UserID     sharedtypes.UserID `json:"user_id"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// UserActivityFailedPayloadV1 reports an activity event that could not be
// applied to the user's streak.
type UserActivityFailedPayloadV1 struct {
	UserID sharedtypes.UserID `json:"user_id"`
	Reason string             `json:"reason"`
}
