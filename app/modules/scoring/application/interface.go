package scoringservice

import (
	"context"
	"time"

	scoringevents "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/domain/events"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
	"github.com/jbcre8iv/MotoSense-sub001/internal/results"
)

// RecomputedScores is the success payload of a batch recompute: the batch
// summary plus one scored payload per user, in user order.
type RecomputedScores struct {
	Batch  scoringevents.RaceScoresRecomputedPayloadV1
	Scored []scoringevents.PredictionScoredPayloadV1
}

type (
	RecomputeResult = results.OperationResult[RecomputedScores, scoringevents.RaceScoreRecomputeFailedPayloadV1]
	FinalizeResult  = results.OperationResult[scoringevents.RaceScoresFinalizedPayloadV1, scoringevents.RaceScoreRecomputeFailedPayloadV1]
	ActivityResult  = results.OperationResult[sharedtypes.StreakState, scoringevents.UserActivityFailedPayloadV1]
)

// Service is the scoring module's application surface.
type Service interface {
	// RecomputeRaceScores recomputes every stored prediction for a race
	// against the stored result, replacing the race's score set atomically.
	// Idempotent per (race, stored facts).
	RecomputeRaceScores(ctx context.Context, raceID sharedtypes.RaceID) (RecomputeResult, error)

	// FinalizeRaceScores locks a race's scores in their final state.
	FinalizeRaceScores(ctx context.Context, raceID sharedtypes.RaceID) (FinalizeResult, error)

	// RecordDailyActivity advances a user's streak for one day of qualifying
	// activity. At most one advance per calendar day.
	RecordDailyActivity(ctx context.Context, userID sharedtypes.UserID, occurredAt time.Time) (ActivityResult, error)
}
