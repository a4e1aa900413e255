// Package handlerwrapper provides the common message-handler shell: payload
// unmarshalling, logging, metrics, and marshalling of produced events. Typed
// module handlers return []Result and never touch watermill payloads
// directly.
package handlerwrapper

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/jbcre8iv/MotoSense-sub001/internal/attr"
	"github.com/jbcre8iv/MotoSense-sub001/internal/eventbus"
	"github.com/jbcre8iv/MotoSense-sub001/internal/observability"
)

// Result is one event a handler wants published: the topic and the payload
// to marshal. The router reads the topic back from message metadata.
type Result struct {
	Topic   string
	Payload any
}

// HandlerFunc is the typed handler signature. payload is the unmarshalled
// instance produced by the newPayload factory passed to Wrap, or nil when no
// factory was given.
type HandlerFunc func(ctx context.Context, msg *message.Message, payload any) ([]Result, error)

// Wrap turns a typed handler into a watermill message.HandlerFunc with
// logging and per-handler operation metrics.
func Wrap(
	handlerName string,
	module string,
	newPayload func() any,
	handle HandlerFunc,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx := msg.Context()

		metrics.RecordOperationAttempt(ctx, handlerName, module)
		startTime := time.Now()
		defer func() {
			metrics.RecordOperationDuration(ctx, handlerName, module, time.Since(startTime))
		}()

		logger.InfoContext(ctx, handlerName+" triggered",
			attr.ExtractCorrelationID(ctx),
			attr.String("message_id", msg.UUID),
		)

		var payload any
		if newPayload != nil {
			payload = newPayload()
			if err := json.Unmarshal(msg.Payload, payload); err != nil {
				logger.ErrorContext(ctx, "Failed to unmarshal payload",
					attr.ExtractCorrelationID(ctx),
					attr.Error(err),
				)
				metrics.RecordOperationFailure(ctx, handlerName, module)
				return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
			}
		}

		outcomes, err := handle(ctx, msg, payload)
		if err != nil {
			logger.ErrorContext(ctx, "Error in "+handlerName,
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			metrics.RecordOperationFailure(ctx, handlerName, module)
			return nil, err
		}

		produced := make([]*message.Message, 0, len(outcomes))
		for _, outcome := range outcomes {
			body, err := json.Marshal(outcome.Payload)
			if err != nil {
				metrics.RecordOperationFailure(ctx, handlerName, module)
				return nil, fmt.Errorf("failed to marshal payload for %s: %w", outcome.Topic, err)
			}
			out := message.NewMessage(uuid.New().String(), body)
			out.Metadata.Set(eventbus.MetadataTopicKey, outcome.Topic)
			produced = append(produced, out)
		}

		logger.InfoContext(ctx, handlerName+" completed successfully", attr.ExtractCorrelationID(ctx))
		metrics.RecordOperationSuccess(ctx, handlerName, module)
		return produced, nil
	}
}
