package leaderboardhandlers

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	leaderboardservice "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/application"
	"github.com/jbcre8iv/MotoSense-sub001/internal/handlerwrapper"
	"github.com/jbcre8iv/MotoSense-sub001/internal/observability"
)

// Handlers is the leaderboard module's message-handler surface.
type Handlers interface {
	HandleRaceScoresRecomputed(msg *message.Message) ([]*message.Message, error)
	HandleRaceScoresFinalized(msg *message.Message) ([]*message.Message, error)
}

// LeaderboardHandlers handles scoring events that affect cached rankings.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
	metrics observability.OperationMetrics

	wrap func(handlerName string, newPayload func() any, handle handlerwrapper.HandlerFunc) message.HandlerFunc
}

// NewLeaderboardHandlers creates a new LeaderboardHandlers.
func NewLeaderboardHandlers(
	service leaderboardservice.Service,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
) Handlers {
	return &LeaderboardHandlers{
		service: service,
		logger:  logger,
		metrics: metrics,
		wrap: func(handlerName string, newPayload func() any, handle handlerwrapper.HandlerFunc) message.HandlerFunc {
			return handlerwrapper.Wrap(handlerName, "leaderboard", newPayload, handle, logger, metrics)
		},
	}
}

var _ Handlers = (*LeaderboardHandlers)(nil)
