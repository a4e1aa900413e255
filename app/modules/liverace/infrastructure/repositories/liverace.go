package liveracedb

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// predictionRow shadows the scoring module's predictions table with only the
// columns live scoring needs.
type predictionRow struct {
	bun.BaseModel `bun:"table:predictions"`

	RaceID          sharedtypes.RaceID           `bun:"race_id"`
	UserID          sharedtypes.UserID           `bun:"user_id"`
	Picks           []sharedtypes.Pick           `bun:"picks,type:jsonb"`
	ConfidenceLevel *sharedtypes.ConfidenceLevel `bun:"confidence_level"`
	CreatedAt       time.Time                    `bun:"created_at"`
}

// RepositoryImpl implements Repository on bun.
type RepositoryImpl struct {
	DB *bun.DB
}

var _ Repository = (*RepositoryImpl)(nil)

func (r *RepositoryImpl) idb(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *RepositoryImpl) GetPredictionsForRace(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) ([]sharedtypes.Prediction, error) {
	var rows []predictionRow
	err := r.idb(db).NewSelect().
		Model(&rows).
		Where("race_id = ?", raceID).
		Order("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch predictions for race %s: %w", raceID, err)
	}

	predictions := make([]sharedtypes.Prediction, 0, len(rows))
	for _, row := range rows {
		predictions = append(predictions, sharedtypes.Prediction{
			RaceID:          row.RaceID,
			UserID:          row.UserID,
			Picks:           row.Picks,
			ConfidenceLevel: row.ConfidenceLevel,
		})
	}
	return predictions, nil
}
