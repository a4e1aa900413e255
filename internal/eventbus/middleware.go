package eventbus

import (
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/jbcre8iv/MotoSense-sub001/internal/attr"
)

// Metadata keys stamped on every message flowing through a module router.
const (
	MetadataModuleKey      = "module"
	MetadataProcessedAtKey = "processed_at"
	MetadataTopicKey       = "topic"
)

// CommonMetadataMiddleware stamps module provenance and a processing
// timestamp on every outgoing message.
func CommonMetadataMiddleware(module string) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			produced, err := h(msg)
			if err != nil {
				return nil, err
			}
			now := time.Now().UTC().Format(time.RFC3339Nano)
			for _, m := range produced {
				m.Metadata.Set(MetadataModuleKey, module)
				m.Metadata.Set(MetadataProcessedAtKey, now)
				if cid := middleware.MessageCorrelationID(msg); cid != "" {
					middleware.SetCorrelationID(cid, m)
				}
			}
			return produced, nil
		}
	}
}

// CorrelationContextMiddleware copies the watermill correlation ID into the
// message context so service-layer slog calls can extract it via attr.
func CorrelationContextMiddleware() message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			if cid := middleware.MessageCorrelationID(msg); cid != "" {
				msg.SetContext(attr.WithCorrelationID(msg.Context(), cid))
			}
			return h(msg)
		}
	}
}
