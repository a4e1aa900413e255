package liveracehandlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	liveraceservice "github.com/jbcre8iv/MotoSense-sub001/app/modules/liverace/application"
	liveraceevents "github.com/jbcre8iv/MotoSense-sub001/app/modules/liverace/domain/events"
	"github.com/jbcre8iv/MotoSense-sub001/internal/handlerwrapper"
	"github.com/jbcre8iv/MotoSense-sub001/internal/observability"
)

// Handlers is the live-race module's message-handler surface.
type Handlers interface {
	HandleRaceUpdate(msg *message.Message) ([]*message.Message, error)
}

// LiveRaceHandlers handles partial-result events during a race.
type LiveRaceHandlers struct {
	service liveraceservice.Service
	logger  *slog.Logger
	metrics observability.OperationMetrics

	wrap func(handlerName string, newPayload func() any, handle handlerwrapper.HandlerFunc) message.HandlerFunc
}

// NewLiveRaceHandlers creates a new LiveRaceHandlers.
func NewLiveRaceHandlers(
	service liveraceservice.Service,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
) Handlers {
	return &LiveRaceHandlers{
		service: service,
		logger:  logger,
		metrics: metrics,
		wrap: func(handlerName string, newPayload func() any, handle handlerwrapper.HandlerFunc) message.HandlerFunc {
			return handlerwrapper.Wrap(handlerName, "liverace", newPayload, handle, logger, metrics)
		},
	}
}

var _ Handlers = (*LiveRaceHandlers)(nil)

// HandleRaceUpdate applies a partial-result snapshot and publishes the fresh
// live standings.
func (h *LiveRaceHandlers) HandleRaceUpdate(msg *message.Message) ([]*message.Message, error) {
	return h.wrap("HandleRaceUpdate",
		func() any { return &liveraceevents.RaceUpdatePayloadV1{} },
		func(ctx context.Context, _ *message.Message, payload any) ([]handlerwrapper.Result, error) {
			p, ok := payload.(*liveraceevents.RaceUpdatePayloadV1)
			if !ok {
				return nil, errors.New("unexpected payload type")
			}

			result, err := h.service.ApplyRaceUpdate(ctx, *p)
			if err != nil {
				return nil, err
			}
			if result.IsFailure() {
				return []handlerwrapper.Result{
					{Topic: liveraceevents.RaceUpdateFailedV1, Payload: result.Failure},
				}, nil
			}
			return []handlerwrapper.Result{
				{Topic: liveraceevents.RaceLiveStandingsV1, Payload: result.Success},
			}, nil
		},
	)(msg)
}
