package liveraceservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	liveraceevents "github.com/jbcre8iv/MotoSense-sub001/app/modules/liverace/domain/events"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
	"github.com/jbcre8iv/MotoSense-sub001/internal/observability"
)

func newTestService(repo *FakeRepository) *LiveRaceService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewLiveRaceService(repo, logger, observability.NoOpMetrics{}, noop.NewTracerProvider().Tracer("test"), nil)
}

func testPrediction(userID string, picks ...sharedtypes.Pick) sharedtypes.Prediction {
	return sharedtypes.Prediction{
		RaceID: "sx-2026-rd14",
		UserID: sharedtypes.UserID(userID),
		Picks:  picks,
	}
}

func pick(rider string, pos int) sharedtypes.Pick {
	return sharedtypes.Pick{RiderID: sharedtypes.RiderID(rider), PredictedPosition: sharedtypes.Position(pos)}
}

func finish(rider string, pos int) sharedtypes.RiderPosition {
	return sharedtypes.RiderPosition{RiderID: sharedtypes.RiderID(rider), Position: sharedtypes.Position(pos)}
}

func TestApplyRaceUpdate_ComputesOrderedStandings(t *testing.T) {
	repo := NewFakeRepository()
	repo.GetPredictionsForRaceFunc = func(_ context.Context, _ sharedtypes.RaceID) ([]sharedtypes.Prediction, error) {
		return []sharedtypes.Prediction{
			testPrediction("banked", pick("a", 1), pick("b", 2)),
			testPrediction("hopeful", pick("c", 1), pick("d", 2)),
		}, nil
	}

	svc := newTestService(repo)
	result, err := svc.ApplyRaceUpdate(context.Background(), liveraceevents.RaceUpdatePayloadV1{
		RaceID:    "sx-2026-rd14",
		Positions: []sharedtypes.RiderPosition{finish("a", 1), finish("b", 2)},
	})

	require.NoError(t, err)
	require.True(t, result.IsSuccess())

	snapshot := *result.Success
	assert.Equal(t, 2, snapshot.FinishedCount)
	require.Len(t, snapshot.Standings, 2)

	// banked has 200 locked in; hopeful has nothing locked but 200 possible.
	assert.Equal(t, sharedtypes.UserID("banked"), snapshot.Standings[0].UserID)
	assert.Equal(t, sharedtypes.Points(200), snapshot.Standings[0].CurrentPoints)
	assert.Equal(t, 1, snapshot.Standings[0].Rank)
	assert.Equal(t, sharedtypes.UserID("hopeful"), snapshot.Standings[1].UserID)
	assert.Equal(t, sharedtypes.Points(0), snapshot.Standings[1].CurrentPoints)
	assert.Equal(t, sharedtypes.Points(200), snapshot.Standings[1].PotentialPoints)
	assert.Equal(t, 2, snapshot.Standings[1].Rank)
}

func TestApplyRaceUpdate_LaterUpdateSupersedes(t *testing.T) {
	repo := NewFakeRepository()
	repo.GetPredictionsForRaceFunc = func(_ context.Context, _ sharedtypes.RaceID) ([]sharedtypes.Prediction, error) {
		return []sharedtypes.Prediction{
			testPrediction("user1", pick("a", 1), pick("b", 2)),
		}, nil
	}

	svc := newTestService(repo)

	_, err := svc.ApplyRaceUpdate(context.Background(), liveraceevents.RaceUpdatePayloadV1{
		RaceID:    "sx-2026-rd14",
		Positions: []sharedtypes.RiderPosition{finish("a", 1)},
	})
	require.NoError(t, err)

	// The second snapshot carries the full set, not a delta.
	_, err = svc.ApplyRaceUpdate(context.Background(), liveraceevents.RaceUpdatePayloadV1{
		RaceID:    "sx-2026-rd14",
		Positions: []sharedtypes.RiderPosition{finish("a", 1), finish("b", 2)},
	})
	require.NoError(t, err)

	snapshot, err := svc.GetLiveStandings(context.Background(), "sx-2026-rd14")
	require.NoError(t, err)
	assert.Equal(t, 2, snapshot.FinishedCount)
	require.Len(t, snapshot.Standings, 1)
	assert.Equal(t, sharedtypes.Points(200), snapshot.Standings[0].CurrentPoints)
	assert.Equal(t, 0, snapshot.Standings[0].PendingPicks)
}

func TestApplyRaceUpdate_RacesAreIndependent(t *testing.T) {
	repo := NewFakeRepository()
	repo.GetPredictionsForRaceFunc = func(_ context.Context, raceID sharedtypes.RaceID) ([]sharedtypes.Prediction, error) {
		p := testPrediction("user1", pick("a", 1))
		p.RaceID = raceID
		return []sharedtypes.Prediction{p}, nil
	}

	svc := newTestService(repo)

	_, err := svc.ApplyRaceUpdate(context.Background(), liveraceevents.RaceUpdatePayloadV1{
		RaceID:    "sx-2026-rd14",
		Positions: []sharedtypes.RiderPosition{finish("a", 1)},
	})
	require.NoError(t, err)

	other, err := svc.GetLiveStandings(context.Background(), "mx-2026-rd01")
	require.NoError(t, err)
	assert.Empty(t, other.Standings)
	assert.Equal(t, 0, other.FinishedCount)

	applied, err := svc.GetLiveStandings(context.Background(), "sx-2026-rd14")
	require.NoError(t, err)
	assert.Len(t, applied.Standings, 1)
}

func TestApplyRaceUpdate_MissingRaceIDIsFailure(t *testing.T) {
	repo := NewFakeRepository()
	svc := newTestService(repo)

	result, err := svc.ApplyRaceUpdate(context.Background(), liveraceevents.RaceUpdatePayloadV1{})

	require.NoError(t, err)
	require.True(t, result.IsFailure())
	assert.Equal(t, "race id missing", result.Failure.Reason)
	assert.Empty(t, repo.Trace())
}

func TestApplyRaceUpdate_RepositoryErrorPropagates(t *testing.T) {
	repo := NewFakeRepository()
	repo.GetPredictionsForRaceFunc = func(_ context.Context, _ sharedtypes.RaceID) ([]sharedtypes.Prediction, error) {
		return nil, errors.New("connection reset")
	}

	svc := newTestService(repo)
	_, err := svc.ApplyRaceUpdate(context.Background(), liveraceevents.RaceUpdatePayloadV1{
		RaceID:    "sx-2026-rd14",
		Positions: []sharedtypes.RiderPosition{finish("a", 1)},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestGetLiveStandings_UnknownRaceIsEmptyNotError(t *testing.T) {
	svc := newTestService(NewFakeRepository())

	snapshot, err := svc.GetLiveStandings(context.Background(), "sx-2026-rd14")

	require.NoError(t, err)
	assert.Equal(t, sharedtypes.RaceID("sx-2026-rd14"), snapshot.RaceID)
	assert.Empty(t, snapshot.Standings)
}
