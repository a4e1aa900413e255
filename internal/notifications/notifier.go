// Package notifications delivers milestone notifications to the external
// push collaborator. Delivery is fire-and-forget from the scoring core's
// perspective; a dropped notification never fails a scoring operation.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
	"github.com/jbcre8iv/MotoSense-sub001/internal/attr"
)

// MilestoneTopicV1 is the topic the push dispatch collaborator consumes.
const MilestoneTopicV1 = "notification.milestone.v1"

// Milestone is a single achievement or streak milestone notification.
type Milestone struct {
	UserID        sharedtypes.UserID `json:"user_id"`
	Title         string             `json:"title"`
	PointsAwarded sharedtypes.Points `json:"points_awarded"`
}

// Notifier is the collaborator interface scoring invokes on milestones.
type Notifier interface {
	Notify(ctx context.Context, milestone Milestone)
}

// Config holds the notifier's explicit state. The push token is injected
// here instead of living in a package-level variable.
type Config struct {
	PushToken     string
	RatePerSecond float64
	Burst         int
}

// EventBusNotifier publishes milestones onto the event bus, rate limited so
// a large batch recompute cannot flood the push collaborator.
type EventBusNotifier struct {
	publisher message.Publisher
	logger    *slog.Logger
	limiter   *rate.Limiter
	pushToken string
}

// NewEventBusNotifier creates a notifier publishing to the event bus.
func NewEventBusNotifier(publisher message.Publisher, logger *slog.Logger, cfg Config) *EventBusNotifier {
	return &EventBusNotifier{
		publisher: publisher,
		logger:    logger,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		pushToken: cfg.PushToken,
	}
}

// Notify publishes the milestone. Failures are logged and swallowed;
// notifications are best-effort by contract.
func (n *EventBusNotifier) Notify(ctx context.Context, milestone Milestone) {
	if !n.limiter.Allow() {
		n.logger.WarnContext(ctx, "Milestone notification dropped by rate limiter",
			attr.UserID("user_id", milestone.UserID),
			attr.String("title", milestone.Title),
		)
		return
	}

	payload, err := json.Marshal(milestone)
	if err != nil {
		n.logger.ErrorContext(ctx, "Failed to marshal milestone notification", attr.Error(err))
		return
	}

	msg := message.NewMessage(uuid.New().String(), payload)
	msg.Metadata.Set("push_token", n.pushToken)

	if err := n.publisher.Publish(MilestoneTopicV1, msg); err != nil {
		n.logger.ErrorContext(ctx, "Failed to publish milestone notification",
			attr.UserID("user_id", milestone.UserID),
			attr.Error(fmt.Errorf("publish milestone: %w", err)),
		)
	}
}

// NoOpNotifier discards notifications. Used in tests.
type NoOpNotifier struct{}

func (NoOpNotifier) Notify(context.Context, Milestone) {}

var (
	_ Notifier = (*EventBusNotifier)(nil)
	_ Notifier = NoOpNotifier{}
)
