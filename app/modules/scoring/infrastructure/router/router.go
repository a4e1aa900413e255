package scoringrouter

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

	scoringservice "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/application"
	scoringevents "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/domain/events"
	scoringhandlers "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/infrastructure/handlers"
	scoringqueue "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/infrastructure/queue"
	"github.com/jbcre8iv/MotoSense-sub001/internal/attr"
	"github.com/jbcre8iv/MotoSense-sub001/internal/eventbus"
	"github.com/jbcre8iv/MotoSense-sub001/internal/observability"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// ScoringRouter wires the scoring module's handlers onto a watermill router.
type ScoringRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     eventbus.EventBus
	publisher      eventbus.EventBus
	tracer         trace.Tracer
	metricsBuilder *metrics.PrometheusMetricsBuilder
	metricsEnabled bool
}

func NewScoringRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	tracer trace.Tracer,
	prometheusRegistry *prometheus.Registry,
) *ScoringRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &ScoringRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		publisher:      publisher,
		tracer:         tracer,
		metricsBuilder: metricsBuilder,
		metricsEnabled: prometheusRegistry != nil && !inTestEnv,
	}
}

// Configure adds middleware and registers the scoring handlers.
func (r *ScoringRouter) Configure(
	routerCtx context.Context,
	service scoringservice.Service,
	queue scoringqueue.QueueService,
	operationMetrics observability.OperationMetrics,
) error {
	if r.metricsEnabled && r.metricsBuilder != nil {
		r.logger.Info("Adding Prometheus router metrics middleware")
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	handlers := scoringhandlers.NewScoringHandlers(service, queue, r.logger, operationMetrics)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		eventbus.CommonMetadataMiddleware("scoring"),
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
func (r *ScoringRouter) RegisterHandlers(ctx context.Context, handlers scoringhandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		scoringevents.RaceResultFinalizedV1:  handlers.HandleRaceResultFinalized,
		scoringevents.RaceResultCorrectedV1:  handlers.HandleRaceResultCorrected,
		scoringevents.RaceClosedV1:           handlers.HandleRaceClosed,
		scoringevents.UserActivityRecordedV1: handlers.HandleUserActivityRecorded,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("scoring.%s", topic)
		r.Router.AddHandler(
			handlerName,
			topic,
			r.subscriber,
			"",
			nil,
			func(msg *message.Message) ([]*message.Message, error) {
				produced, err := handlerFunc(msg)
				if err != nil {
					r.logger.ErrorContext(ctx, "Error processing message",
						attr.String("message_id", msg.UUID),
						attr.Error(err),
					)
					return nil, err
				}
				for _, m := range produced {
					publishTopic := m.Metadata.Get(eventbus.MetadataTopicKey)
					if publishTopic == "" {
						r.logger.Error("No publish topic on produced message, dropping",
							attr.String("handler", handlerName),
							attr.String("message_id", m.UUID),
						)
						continue
					}
					if err := r.publisher.Publish(publishTopic, m); err != nil {
						return nil, fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
					}
				}
				return nil, nil
			},
		)
	}
	return nil
}

func (r *ScoringRouter) Close() error {
	return r.Router.Close()
}
