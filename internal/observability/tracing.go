package observability

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TraceHandler wraps a router handler in a span carrying the message UUID
// and correlation ID.
func TraceHandler(tracer trace.Tracer) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			ctx, span := tracer.Start(msg.Context(), "handle_message", trace.WithAttributes(
				attribute.String("message_id", msg.UUID),
				attribute.String("correlation_id", msg.Metadata.Get("correlation_id")),
			))
			defer span.End()

			msg.SetContext(ctx)
			produced, err := h(msg)
			if err != nil {
				span.RecordError(err)
			}
			return produced, err
		}
	}
}
