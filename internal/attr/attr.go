// Package attr provides slog attribute helpers shared by all modules so log
// field names stay consistent across services, handlers, and routers.
package attr

import (
	"context"
	"log/slog"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

type correlationIDKey struct{}

// WithCorrelationID stores a correlation ID on the context so downstream
// log lines can be stitched back to the originating message.
func WithCorrelationID(ctx context.Context, correlationID string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, correlationID)
}

// CorrelationIDFromContext returns the correlation ID, or "" when unset.
func CorrelationIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return v
	}
	return ""
}

// ExtractCorrelationID produces the correlation_id attribute for a context.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	return slog.String("correlation_id", CorrelationIDFromContext(ctx))
}

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Float64(key string, value float64) slog.Attr { return slog.Float64(key, value) }

func Bool(key string, value bool) slog.Attr { return slog.Bool(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

func Error(err error) slog.Attr { return slog.Any("error", err) }

func RaceID(key string, id sharedtypes.RaceID) slog.Attr {
	return slog.String(key, id.String())
}

func UserID(key string, id sharedtypes.UserID) slog.Attr {
	return slog.String(key, id.String())
}
