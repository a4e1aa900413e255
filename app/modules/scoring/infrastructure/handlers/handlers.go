package scoringhandlers

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	scoringservice "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/application"
	scoringqueue "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/infrastructure/queue"
	"github.com/jbcre8iv/MotoSense-sub001/internal/handlerwrapper"
	"github.com/jbcre8iv/MotoSense-sub001/internal/observability"
)

// Handlers is the scoring module's message-handler surface.
type Handlers interface {
	HandleRaceResultFinalized(msg *message.Message) ([]*message.Message, error)
	HandleRaceResultCorrected(msg *message.Message) ([]*message.Message, error)
	HandleRaceClosed(msg *message.Message) ([]*message.Message, error)
	HandleUserActivityRecorded(msg *message.Message) ([]*message.Message, error)
}

// ScoringHandlers handles scoring-related events.
type ScoringHandlers struct {
	service scoringservice.Service
	queue   scoringqueue.QueueService
	logger  *slog.Logger
	metrics observability.OperationMetrics

	wrap func(handlerName string, newPayload func() any, handle handlerwrapper.HandlerFunc) message.HandlerFunc
}

// NewScoringHandlers creates a new ScoringHandlers.
func NewScoringHandlers(
	service scoringservice.Service,
	queue scoringqueue.QueueService,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
) Handlers {
	return &ScoringHandlers{
		service: service,
		queue:   queue,
		logger:  logger,
		metrics: metrics,
		wrap: func(handlerName string, newPayload func() any, handle handlerwrapper.HandlerFunc) message.HandlerFunc {
			return handlerwrapper.Wrap(handlerName, "scoring", newPayload, handle, logger, metrics)
		},
	}
}

var _ Handlers = (*ScoringHandlers)(nil)
