package scoringdb

import (
	"context"

	"github.com/uptrace/bun"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// Repository is the scoring module's persistence surface. The db argument
// lets the service run reads and the batch publish inside one transaction;
// passing nil uses the repository's own connection.
type Repository interface {
	GetRaceResult(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) (*RaceResult, error)
	GetPredictionsForRace(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) ([]Prediction, error)

	GetScore(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID, userID sharedtypes.UserID) (*PredictionScore, error)
	GetScoresForRace(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) ([]PredictionScore, error)
	// ReplaceScoresForRace deletes the race's old scores and inserts the new
	// batch. Callers wrap it in a transaction; it is the atomic publish step.
	ReplaceScoresForRace(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID, scores []PredictionScore) error
	FinalizeScoresForRace(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) error

	GetStreakState(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*StreakState, error)
	GetStreakStates(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) (map[sharedtypes.UserID]StreakState, error)
	UpsertStreakState(ctx context.Context, db bun.IDB, state StreakState) error
}
