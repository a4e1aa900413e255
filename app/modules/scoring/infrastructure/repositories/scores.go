package scoringdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

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

func (r *RepositoryImpl) GetRaceResult(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) (*RaceResult, error) {
	var result RaceResult
	err := r.idb(db).NewSelect().
		Model(&result).
		Where("race_id = ?", raceID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRaceResultNotFound
		}
		return nil, fmt.Errorf("failed to fetch race result for %s: %w", raceID, err)
	}
	return &result, nil
}

func (r *RepositoryImpl) GetPredictionsForRace(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) ([]Prediction, error) {
	var predictions []Prediction
	err := r.idb(db).NewSelect().
		Model(&predictions).
		Where("race_id = ?", raceID).
		Order("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch predictions for race %s: %w", raceID, err)
	}
	return predictions, nil
}

func (r *RepositoryImpl) GetScore(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID, userID sharedtypes.UserID) (*PredictionScore, error) {
	var score PredictionScore
	err := r.idb(db).NewSelect().
		Model(&score).
		Where("race_id = ?", raceID).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScoreNotFound
		}
		return nil, fmt.Errorf("failed to fetch score for race %s user %s: %w", raceID, userID, err)
	}
	return &score, nil
}

func (r *RepositoryImpl) GetScoresForRace(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) ([]PredictionScore, error) {
	var scores []PredictionScore
	err := r.idb(db).NewSelect().
		Model(&scores).
		Where("race_id = ?", raceID).
		Order("user_id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scores for race %s: %w", raceID, err)
	}
	return scores, nil
}

// ReplaceScoresForRace swaps a race's score set in place. Run inside a
// transaction this is the batch's atomic publish: readers see the whole old
// set or the whole new set, never a mix.
func (r *RepositoryImpl) ReplaceScoresForRace(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID, scores []PredictionScore) error {
	idb := r.idb(db)

	if _, err := idb.NewDelete().
		Model((*PredictionScore)(nil)).
		Where("race_id = ?", raceID).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete old scores for race %s: %w", raceID, err)
	}

	if len(scores) == 0 {
		return nil
	}

	if _, err := idb.NewInsert().
		Model(&scores).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert scores for race %s: %w", raceID, err)
	}
	return nil
}

func (r *RepositoryImpl) FinalizeScoresForRace(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) error {
	_, err := r.idb(db).NewUpdate().
		Model((*PredictionScore)(nil)).
		Set("status = ?", sharedtypes.ScoreStatusFinal).
		Where("race_id = ?", raceID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to finalize scores for race %s: %w", raceID, err)
	}
	return nil
}

func (r *RepositoryImpl) GetStreakState(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*StreakState, error) {
	var state StreakState
	err := r.idb(db).NewSelect().
		Model(&state).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch streak state for user %s: %w", userID, err)
	}
	return &state, nil
}

func (r *RepositoryImpl) GetStreakStates(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) (map[sharedtypes.UserID]StreakState, error) {
	if len(userIDs) == 0 {
		return map[sharedtypes.UserID]StreakState{}, nil
	}

	var states []StreakState
	err := r.idb(db).NewSelect().
		Model(&states).
		Where("user_id IN (?)", bun.In(userIDs)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch streak states: %w", err)
	}

	byUser := make(map[sharedtypes.UserID]StreakState, len(states))
	for _, s := range states {
		byUser[s.UserID] = s
	}
	return byUser, nil
}

func (r *RepositoryImpl) UpsertStreakState(ctx context.Context, db bun.IDB, state StreakState) error {
	_, err := r.idb(db).NewInsert().
		Model(&state).
		On("CONFLICT (user_id) DO UPDATE").
		Set("current_streak = EXCLUDED.current_streak").
		Set("longest_streak = EXCLUDED.longest_streak").
		Set("last_activity_date = EXCLUDED.last_activity_date").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert streak state for user %s: %w", state.UserID, err)
	}
	return nil
}
