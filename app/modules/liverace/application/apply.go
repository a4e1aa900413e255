package liveraceservice

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	liveracedomain "github.com/jbcre8iv/MotoSense-sub001/app/modules/liverace/domain"
	liveraceevents "github.com/jbcre8iv/MotoSense-sub001/app/modules/liverace/domain/events"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
	"github.com/jbcre8iv/MotoSense-sub001/internal/attr"
	"github.com/jbcre8iv/MotoSense-sub001/internal/results"
)

// ApplyRaceUpdate applies one partial-result snapshot and recomputes the
// race's live standings.
func (s *LiveRaceService) ApplyRaceUpdate(ctx context.Context, update liveraceevents.RaceUpdatePayloadV1) (ApplyResult, error) {
	ctx, span := s.tracer.Start(ctx, "ApplyRaceUpdate", trace.WithAttributes(
		attribute.String("race_id", update.RaceID.String()),
		attribute.Int("finished_count", len(update.Positions)),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "ApplyRaceUpdate", moduleName)
	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "ApplyRaceUpdate", moduleName, time.Since(startTime))
	}()

	if update.RaceID == "" {
		s.metrics.RecordOperationFailure(ctx, "ApplyRaceUpdate", moduleName)
		return results.Failure[liveraceevents.RaceLiveStandingsPayloadV1](liveraceevents.RaceUpdateFailedPayloadV1{
			RaceID: update.RaceID,
			Reason: "race id missing",
		}), nil
	}

	// Hold the race lock for the whole apply so updates for one race take
	// effect in arrival order. Other races proceed in parallel.
	st := s.state(update.RaceID)
	st.mu.Lock()
	defer st.mu.Unlock()

	predictions, err := s.repo.GetPredictionsForRace(ctx, nil, update.RaceID)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "ApplyRaceUpdate", moduleName)
		span.RecordError(err)
		return ApplyResult{}, fmt.Errorf("ApplyRaceUpdate: %w", err)
	}

	standings := make([]liveracedomain.LiveStanding, 0, len(predictions))
	for _, p := range predictions {
		standings = append(standings, liveracedomain.ComputeLiveStanding(p, update.Positions))
	}
	ordered := liveracedomain.OrderStandings(standings)

	st.positions = update.Positions
	st.standings = ordered

	s.logger.InfoContext(ctx, "Applied live race update",
		attr.RaceID("race_id", update.RaceID),
		attr.Int("finished_count", len(update.Positions)),
		attr.Int("standings_count", len(ordered)),
	)

	s.metrics.RecordOperationSuccess(ctx, "ApplyRaceUpdate", moduleName)
	return results.Success[liveraceevents.RaceLiveStandingsPayloadV1, liveraceevents.RaceUpdateFailedPayloadV1](
		liveraceevents.RaceLiveStandingsPayloadV1{
			RaceID:        update.RaceID,
			FinishedCount: len(update.Positions),
			Standings:     ordered,
		}), nil
}

// GetLiveStandings returns the latest standings snapshot for a race.
func (s *LiveRaceService) GetLiveStandings(ctx context.Context, raceID sharedtypes.RaceID) (liveraceevents.RaceLiveStandingsPayloadV1, error) {
	_, span := s.tracer.Start(ctx, "GetLiveStandings", trace.WithAttributes(
		attribute.String("race_id", raceID.String()),
	))
	defer span.End()

	snapshot := liveraceevents.RaceLiveStandingsPayloadV1{
		RaceID:    raceID,
		Standings: []liveracedomain.LiveStanding{},
	}

	s.mu.RLock()
	st, ok := s.races[raceID]
	s.mu.RUnlock()
	if !ok {
		return snapshot, nil
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	snapshot.FinishedCount = len(st.positions)
	snapshot.Standings = append(snapshot.Standings, st.standings...)
	return snapshot, nil
}
