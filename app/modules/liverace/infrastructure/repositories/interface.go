package liveracedb

import (
	"context"

	"github.com/uptrace/bun"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// Repository is the live-race module's read surface. Predictions are owned
// and written by the scoring side; this module only reads them.
type Repository interface {
	GetPredictionsForRace(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) ([]sharedtypes.Prediction, error)
}
