package leaderboardhandlers

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"

	leaderboardevents "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/domain/events"
	"github.com/jbcre8iv/MotoSense-sub001/internal/attr"
	"github.com/jbcre8iv/MotoSense-sub001/internal/handlerwrapper"
)

// HandleRaceScoresRecomputed purges every cached ranking. Recomputes are
// rare relative to reads, and a full purge is cheaper than working out which
// scope and filter combinations a single race touches.
func (h *LeaderboardHandlers) HandleRaceScoresRecomputed(msg *message.Message) ([]*message.Message, error) {
	return h.wrap("HandleRaceScoresRecomputed",
		func() any { return &leaderboardevents.RaceScoresRecomputedPayloadV1{} },
		func(ctx context.Context, _ *message.Message, payload any) ([]handlerwrapper.Result, error) {
			p, ok := payload.(*leaderboardevents.RaceScoresRecomputedPayloadV1)
			if !ok {
				return nil, errors.New("unexpected payload type")
			}

			h.service.InvalidateCache()
			h.logger.InfoContext(ctx, "Leaderboard cache purged after score recompute",
				attr.RaceID("race_id", p.RaceID),
				attr.Int("scored_count", p.ScoredCount),
			)
			return nil, nil
		},
	)(msg)
}

// HandleRaceScoresFinalized also purges. Finalization does not change point
// totals, but stale entries cached mid-recompute can still be hiding here.
func (h *LeaderboardHandlers) HandleRaceScoresFinalized(msg *message.Message) ([]*message.Message, error) {
	return h.wrap("HandleRaceScoresFinalized",
		func() any { return &leaderboardevents.RaceScoresFinalizedPayloadV1{} },
		func(ctx context.Context, _ *message.Message, payload any) ([]handlerwrapper.Result, error) {
			p, ok := payload.(*leaderboardevents.RaceScoresFinalizedPayloadV1)
			if !ok {
				return nil, errors.New("unexpected payload type")
			}

			h.service.InvalidateCache()
			h.logger.InfoContext(ctx, "Leaderboard cache purged after finalize",
				attr.RaceID("race_id", p.RaceID),
			)
			return nil, nil
		},
	)(msg)
}
