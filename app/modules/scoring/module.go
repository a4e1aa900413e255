package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	scoringservice "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/application"
	scoringevents "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/domain/events"
	scoringdb "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/infrastructure/repositories"
	scoringqueue "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/infrastructure/queue"
	scoringrouter "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/infrastructure/router"
	"github.com/jbcre8iv/MotoSense-sub001/config"
	"github.com/jbcre8iv/MotoSense-sub001/internal/eventbus"
	"github.com/jbcre8iv/MotoSense-sub001/internal/notifications"
	"github.com/jbcre8iv/MotoSense-sub001/internal/observability"
)

// Module is the scoring module: recompute pipeline, streaks, and their
// event handlers.
type Module struct {
	EventBus       eventbus.EventBus
	ScoringService scoringservice.Service
	QueueService   scoringqueue.QueueService
	ScoringRouter  *scoringrouter.ScoringRouter
	logger         *slog.Logger
	cancelFunc     context.CancelFunc
}

// NewScoringModule creates a new instance of the scoring module.
func NewScoringModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	notifier notifications.Notifier,
	metrics observability.OperationMetrics,
) (*Module, error) {
	logger := obs.GetLogger()
	tracer := obs.GetTracer()

	logger.InfoContext(ctx, "scoring.NewScoringModule called")

	if err := eventBus.CreateStream(ctx, scoringevents.ScoringStreamName, "prediction.>", "user.activity.>"); err != nil {
		return nil, fmt.Errorf("failed to create scoring stream: %w", err)
	}
	if err := eventBus.CreateStream(ctx, scoringevents.RaceStreamName, "race.>"); err != nil {
		return nil, fmt.Errorf("failed to create race stream: %w", err)
	}

	repo := &scoringdb.RepositoryImpl{DB: db}

	service := scoringservice.NewScoringService(repo, notifier, logger, metrics, tracer, db)

	queueService, err := scoringqueue.NewService(ctx, db, logger, cfg.Postgres.DSN, metrics, eventBus, service)
	if err != nil {
		return nil, fmt.Errorf("failed to create scoring queue service: %w", err)
	}

	scoringRouter := scoringrouter.NewScoringRouter(logger, router, eventBus, eventBus, tracer, obs.GetRegistry())
	if err := scoringRouter.Configure(ctx, service, queueService, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure scoring router: %w", err)
	}

	return &Module{
		EventBus:       eventBus,
		ScoringService: service,
		QueueService:   queueService,
		ScoringRouter:  scoringRouter,
		logger:         logger,
	}, nil
}

// Run starts the queue workers and blocks until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting scoring module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.QueueService.Start(ctx); err != nil {
		m.logger.ErrorContext(ctx, "Failed to start scoring queue service", "error", err)
		return
	}

	<-ctx.Done()
	m.logger.Info("Scoring module goroutine stopped")
}

// Close stops the queue workers and cancels the module context.
func (m *Module) Close() error {
	m.logger.Info("Stopping scoring module")

	if m.QueueService != nil {
		if err := m.QueueService.Stop(context.Background()); err != nil {
			m.logger.Error("Failed to stop scoring queue service", "error", err)
		}
	}
	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	m.logger.Info("Scoring module stopped")
	return nil
}
