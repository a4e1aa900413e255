package scoringhandlers

import (
	"context"
	"errors"

	"github.com/ThreeDotsLabs/watermill/message"

	scoringevents "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/domain/events"
	"github.com/jbcre8iv/MotoSense-sub001/internal/attr"
	"github.com/jbcre8iv/MotoSense-sub001/internal/handlerwrapper"
)

// HandleUserActivityRecorded advances the user's streak. Streak milestones
// are delivered through the notifier; no events are produced here.
func (h *ScoringHandlers) HandleUserActivityRecorded(msg *message.Message) ([]*message.Message, error) {
	return h.wrap("HandleUserActivityRecorded",
		func() any { return &scoringevents.UserActivityRecordedPayloadV1{} },
		func(ctx context.Context, _ *message.Message, payload any) ([]handlerwrapper.Result, error) {
			p, ok := payload.(*scoringevents.UserActivityRecordedPayloadV1)
			if !ok {
				return nil, errors.New("unexpected payload type")
			}

			result, err := h.service.RecordDailyActivity(ctx, p.UserID, p.OccurredAt)
			if err != nil {
				return nil, err
			}
			if result.IsFailure() {
				// Malformed activity events are not retryable; log and drop.
				h.logger.WarnContext(ctx, "Activity event rejected",
					attr.UserID("user_id", p.UserID),
					attr.String("reason", result.Failure.Reason),
				)
			}
			return nil, nil
		},
	)(msg)
}
