package leaderboardrouter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	leaderboardservice "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/application"
	leaderboardevents "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/domain/events"
	leaderboardhandlers "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/infrastructure/handlers"
	"github.com/jbcre8iv/MotoSense-sub001/internal/attr"
	"github.com/jbcre8iv/MotoSense-sub001/internal/eventbus"
	"github.com/jbcre8iv/MotoSense-sub001/internal/observability"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// LeaderboardRouter wires the leaderboard module's handlers onto a watermill
// router. The module only consumes; produced-message publishing is kept for
// symmetry with the other routers but no handler emits anything today.
type LeaderboardRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     eventbus.EventBus
	tracer         trace.Tracer
	metricsBuilder *metrics.PrometheusMetricsBuilder
	metricsEnabled bool
}

func NewLeaderboardRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	tracer trace.Tracer,
	prometheusRegistry *prometheus.Registry,
) *LeaderboardRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &LeaderboardRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		tracer:         tracer,
		metricsBuilder: metricsBuilder,
		metricsEnabled: prometheusRegistry != nil && !inTestEnv,
	}
}

// Configure adds middleware and registers the leaderboard handlers.
func (r *LeaderboardRouter) Configure(
	routerCtx context.Context,
	service leaderboardservice.Service,
	operationMetrics observability.OperationMetrics,
) error {
	if r.metricsEnabled && r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	handlers := leaderboardhandlers.NewLeaderboardHandlers(service, r.logger, operationMetrics)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		eventbus.CommonMetadataMiddleware("leaderboard"),
		eventbus.CorrelationContextMiddleware(),
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
		observability.TraceHandler(r.tracer),
	)

	if err := r.RegisterHandlers(routerCtx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers registers event handlers using V1 versioned event constants.
func (r *LeaderboardRouter) RegisterHandlers(ctx context.Context, handlers leaderboardhandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		leaderboardevents.RaceScoresRecomputedV1: handlers.HandleRaceScoresRecomputed,
		leaderboardevents.RaceScoresFinalizedV1:  handlers.HandleRaceScoresFinalized,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("leaderboard.%s", topic)
		r.Router.AddHandler(
			handlerName,
			topic,
			r.subscriber,
			"",
			nil,
			func(msg *message.Message) ([]*message.Message, error) {
				if _, err := handlerFunc(msg); err != nil {
					r.logger.ErrorContext(ctx, "Error processing message",
						attr.String("message_id", msg.UUID),
						attr.Error(err),
					)
					return nil, err
				}
				return nil, nil
			},
		)
	}
	return nil
}

func (r *LeaderboardRouter) Close() error {
	return r.Router.Close()
}
