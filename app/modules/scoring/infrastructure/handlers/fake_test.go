package scoringhandlers

import (
	"context"
	"time"

	scoringservice "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/application"
	scoringevents "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/domain/events"
	scoringqueue "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/infrastructure/queue"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
	"github.com/jbcre8iv/MotoSense-sub001/internal/results"
)

// FakeService provides a programmable stub for the scoring service.
type FakeService struct {
	RecomputeRaceScoresFunc func(ctx context.Context, raceID sharedtypes.RaceID) (scoringservice.RecomputeResult, error)
	FinalizeRaceScoresFunc  func(ctx context.Context, raceID sharedtypes.RaceID) (scoringservice.FinalizeResult, error)
	RecordDailyActivityFunc func(ctx context.Context, userID sharedtypes.UserID, occurredAt time.Time) (scoringservice.ActivityResult, error)
}

func (f *FakeService) RecomputeRaceScores(ctx context.Context, raceID sharedtypes.RaceID) (scoringservice.RecomputeResult, error) {
	if f.RecomputeRaceScoresFunc != nil {
		return f.RecomputeRaceScoresFunc(ctx, raceID)
	}
	return scoringservice.RecomputeResult{}, nil
}

func (f *FakeService) FinalizeRaceScores(ctx context.Context, raceID sharedtypes.RaceID) (scoringservice.FinalizeResult, error) {
	if f.FinalizeRaceScoresFunc != nil {
		return f.FinalizeRaceScoresFunc(ctx, raceID)
	}
	return results.Success[scoringevents.RaceScoresFinalizedPayloadV1, scoringevents.RaceScoreRecomputeFailedPayloadV1](
		scoringevents.RaceScoresFinalizedPayloadV1{RaceID: raceID}), nil
}

func (f *FakeService) RecordDailyActivity(ctx context.Context, userID sharedtypes.UserID, occurredAt time.Time) (scoringservice.ActivityResult, error) {
	if f.RecordDailyActivityFunc != nil {
		return f.RecordDailyActivityFunc(ctx, userID, occurredAt)
	}
	return results.Success[sharedtypes.StreakState, scoringevents.UserActivityFailedPayloadV1](
		sharedtypes.StreakState{UserID: userID, CurrentStreak: 1}), nil
}

var _ scoringservice.Service = (*FakeService)(nil)

// FakeQueue records recompute enqueues.
type FakeQueue struct {
	Enqueued    []sharedtypes.RaceID
	EnqueueFunc func(ctx context.Context, raceID sharedtypes.RaceID) error
}

func (f *FakeQueue) EnqueueScoreRecompute(ctx context.Context, raceID sharedtypes.RaceID) error {
	f.Enqueued = append(f.Enqueued, raceID)
	if f.EnqueueFunc != nil {
		return f.EnqueueFunc(ctx, raceID)
	}
	return nil
}

func (f *FakeQueue) HealthCheck(context.Context) error { return nil }

func (f *FakeQueue) Start(context.Context) error { return nil }

func (f *FakeQueue) Stop(context.Context) error { return nil }

var _ scoringqueue.QueueService = (*FakeQueue)(nil)
