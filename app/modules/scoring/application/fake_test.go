package scoringservice

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	scoringdb "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/infrastructure/repositories"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
	"github.com/jbcre8iv/MotoSense-sub001/internal/notifications"
)

// ------------------------
// Fake Scoring Repo
// ------------------------

// FakeRepository provides a programmable stub for the scoringdb.Repository
// interface.
type FakeRepository struct {
	trace []string

	GetRaceResultFunc         func(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) (*scoringdb.RaceResult, error)
	GetPredictionsForRaceFunc func(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) ([]scoringdb.Prediction, error)
	GetScoreFunc              func(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID, userID sharedtypes.UserID) (*scoringdb.PredictionScore, error)
	GetScoresForRaceFunc      func(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) ([]scoringdb.PredictionScore, error)
	ReplaceScoresForRaceFunc  func(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID, scores []scoringdb.PredictionScore) error
	FinalizeScoresForRaceFunc func(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) error
	GetStreakStateFunc        func(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*scoringdb.StreakState, error)
	GetStreakStatesFunc       func(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) (map[sharedtypes.UserID]scoringdb.StreakState, error)
	UpsertStreakStateFunc     func(ctx context.Context, db bun.IDB, state scoringdb.StreakState) error

	LastReplacedScores []scoringdb.PredictionScore
	LastUpsertedStreak *scoringdb.StreakState
}

// NewFakeRepository initializes a new FakeRepository with an empty trace.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRepository) GetRaceResult(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) (*scoringdb.RaceResult, error) {
	f.record("GetRaceResult")
	if f.GetRaceResultFunc != nil {
		return f.GetRaceResultFunc(ctx, db, raceID)
	}
	return nil, scoringdb.ErrRaceResultNotFound
}

func (f *FakeRepository) GetPredictionsForRace(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) ([]scoringdb.Prediction, error) {
	f.record("GetPredictionsForRace")
	if f.GetPredictionsForRaceFunc != nil {
		return f.GetPredictionsForRaceFunc(ctx, db, raceID)
	}
	return []scoringdb.Prediction{}, nil
}

func (f *FakeRepository) GetScore(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID, userID sharedtypes.UserID) (*scoringdb.PredictionScore, error) {
	f.record("GetScore")
	if f.GetScoreFunc != nil {
		return f.GetScoreFunc(ctx, db, raceID, userID)
	}
	return nil, scoringdb.ErrScoreNotFound
}

func (f *FakeRepository) GetScoresForRace(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) ([]scoringdb.PredictionScore, error) {
	f.record("GetScoresForRace")
	if f.GetScoresForRaceFunc != nil {
		return f.GetScoresForRaceFunc(ctx, db, raceID)
	}
	return []scoringdb.PredictionScore{}, nil
}

func (f *FakeRepository) ReplaceScoresForRace(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID, scores []scoringdb.PredictionScore) error {
	f.record("ReplaceScoresForRace")
	f.LastReplacedScores = scores
	if f.ReplaceScoresForRaceFunc != nil {
		return f.ReplaceScoresForRaceFunc(ctx, db, raceID, scores)
	}
	return nil
}

func (f *FakeRepository) FinalizeScoresForRace(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) error {
	f.record("FinalizeScoresForRace")
	if f.FinalizeScoresForRaceFunc != nil {
		return f.FinalizeScoresForRaceFunc(ctx, db, raceID)
	}
	return nil
}

func (f *FakeRepository) GetStreakState(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) (*scoringdb.StreakState, error) {
	f.record("GetStreakState")
	if f.GetStreakStateFunc != nil {
		return f.GetStreakStateFunc(ctx, db, userID)
	}
	return nil, nil
}

func (f *FakeRepository) GetStreakStates(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) (map[sharedtypes.UserID]scoringdb.StreakState, error) {
	f.record("GetStreakStates")
	if f.GetStreakStatesFunc != nil {
		return f.GetStreakStatesFunc(ctx, db, userIDs)
	}
	return map[sharedtypes.UserID]scoringdb.StreakState{}, nil
}

func (f *FakeRepository) UpsertStreakState(ctx context.Context, db bun.IDB, state scoringdb.StreakState) error {
	f.record("UpsertStreakState")
	f.LastUpsertedStreak = &state
	if f.UpsertStreakStateFunc != nil {
		return f.UpsertStreakStateFunc(ctx, db, state)
	}
	return nil
}

var _ scoringdb.Repository = (*FakeRepository)(nil)

// ------------------------
// Fake Notifier
// ------------------------

// FakeNotifier records every milestone it is handed.
type FakeNotifier struct {
	mu         sync.Mutex
	Milestones []notifications.Milestone
}

func (f *FakeNotifier) Notify(_ context.Context, m notifications.Milestone) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Milestones = append(f.Milestones, m)
}

func (f *FakeNotifier) Sent() []notifications.Milestone {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]notifications.Milestone, len(f.Milestones))
	copy(out, f.Milestones)
	return out
}

var _ notifications.Notifier = (*FakeNotifier)(nil)
