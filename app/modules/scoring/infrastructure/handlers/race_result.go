package scoringhandlers

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"

	scoringevents "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/domain/events"
	"github.com/jbcre8iv/MotoSense-sub001/internal/handlerwrapper"
)

// HandleRaceResultFinalized enqueues a batch recompute when officials
// publish a race result. The recompute itself runs on the job queue so
// duplicate and overlapping events for the same race collapse into one run.
func (h *ScoringHandlers) HandleRaceResultFinalized(msg *message.Message) ([]*message.Message, error) {
	return h.wrap("HandleRaceResultFinalized",
		func() any { return &scoringevents.RaceResultFinalizedPayloadV1{} },
		func(ctx context.Context, _ *message.Message, payload any) ([]handlerwrapper.Result, error) {
			p, ok := payload.(*scoringevents.RaceResultFinalizedPayloadV1)
			if !ok {
				return nil, errors.New("unexpected payload type")
			}
			if err := h.queue.EnqueueScoreRecompute(ctx, p.RaceID); err != nil {
				return nil, err
			}
			return nil, nil
		},
	)(msg)
}

// HandleRaceResultCorrected treats a correction exactly like finalization:
// the race's whole score set is recomputed from stored facts.
func (h *ScoringHandlers) HandleRaceResultCorrected(msg *message.Message) ([]*message.Message, error) {
	return h.wrap("HandleRaceResultCorrected",
		func() any { return &scoringevents.RaceResultCorrectedPayloadV1{} },
		func(ctx context.Context, _ *message.Message, payload any) ([]handlerwrapper.Result, error) {
			p, ok := payload.(*scoringevents.RaceResultCorrectedPayloadV1)
			if !ok {
				return nil, errors.New("unexpected payload type")
			}
			if err := h.queue.EnqueueScoreRecompute(ctx, p.RaceID); err != nil {
				return nil, err
			}
			return nil, nil
		},
	)(msg)
}

// HandleRaceClosed locks a race's scores in their final state.
func (h *ScoringHandlers) HandleRaceClosed(msg *message.Message) ([]*message.Message, error) {
	return h.wrap("HandleRaceClosed",
		func() any { return &scoringevents.RaceClosedPayloadV1{} },
		func(ctx context.Context, _ *message.Message, payload any) ([]handlerwrapper.Result, error) {
			p, ok := payload.(*scoringevents.RaceClosedPayloadV1)
			if !ok {
				return nil, errors.New("unexpected payload type")
			}

			result, err := h.service.FinalizeRaceScores(ctx, p.RaceID)
			if err != nil {
				return nil, err
			}
			if result.IsFailure() {
				return []handlerwrapper.Result{
					{Topic: scoringevents.RaceScoreRecomputeFailedV1, Payload: result.Failure},
				}, nil
			}
			return []handlerwrapper.Result{
				{Topic: scoringevents.RaceScoresFinalizedV1, Payload: result.Success},
			}, nil
		},
	)(msg)
}
