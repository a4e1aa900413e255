package liverace

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	liveraceservice "github.com/jbcre8iv/MotoSense-sub001/app/modules/liverace/application"
	liveracedb "github.com/jbcre8iv/MotoSense-sub001/app/modules/liverace/infrastructure/repositories"
	liveracerouter "github.com/jbcre8iv/MotoSense-sub001/app/modules/liverace/infrastructure/router"
	"github.com/jbcre8iv/MotoSense-sub001/config"
	"github.com/jbcre8iv/MotoSense-sub001/internal/eventbus"
	"github.com/jbcre8iv/MotoSense-sub001/internal/observability"
)

// Module is the live-race module: provisional scoring over partial results.
type Module struct {
	EventBus        eventbus.EventBus
	LiveRaceService liveraceservice.Service
	LiveRaceRouter  *liveracerouter.LiveRaceRouter
	logger          *slog.Logger
	cancelFunc      context.CancelFunc
}

// NewLiveRaceModule creates a new instance of the live-race module. Race
// update events ride the race stream the scoring module creates.
func NewLiveRaceModule(
	ctx context.Context,
	cfg *config.Config,
	obs *observability.Observability,
	db *bun.DB,
	eventBus eventbus.EventBus,
	router *message.Router,
	metrics observability.OperationMetrics,
) (*Module, error) {
	logger := obs.GetLogger()
	tracer := obs.GetTracer()

	logger.InfoContext(ctx, "liverace.NewLiveRaceModule called")

	repo := &liveracedb.RepositoryImpl{DB: db}

	service := liveraceservice.NewLiveRaceService(repo, logger, metrics, tracer, db)

	liveRaceRouter := liveracerouter.NewLiveRaceRouter(logger, router, eventBus, eventBus, tracer, obs.GetRegistry())
	if err := liveRaceRouter.Configure(ctx, service, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure liverace router: %w", err)
	}

	return &Module{
		EventBus:        eventBus,
		LiveRaceService: service,
		LiveRaceRouter:  liveRaceRouter,
		logger:          logger,
	}, nil
}

// Run blocks until the context is canceled; the shared router drives the
// module's handlers.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting liverace module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.logger.Info("Liverace module goroutine stopped")
}

// Close cancels the module context.
func (m *Module) Close() error {
	m.logger.Info("Stopping liverace module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	m.logger.Info("Liverace module stopped")
	return nil
}
