package leaderboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	leaderboardservice "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/application"
	leaderboarddb "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/infrastructure/repositories"
	leaderboardrouter "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/infrastructure/router"
	"github.com/jbcre8iv/MotoSense-sub001/config"
	"github.com/jbcre8iv/MotoSense-sub001/internal/eventbus"
	"github.com/jbcre8iv/MotoSense-sub001/internal/observability"
)

// Module is the leaderboard module: ranked read models over scoring data,
// with a short-lived cache purged on scoring events.
type Module struct {
	EventBus           eventbus.EventBus
	LeaderboardService leaderboardservice.Service
	LeaderboardRouter  *leaderboardrouter.LeaderboardRouter
	logger             *slog.Logger
	cancelFunc         context.CancelFunc
}

// NewLeaderboardModule creates a new instance of the leaderboard module.
// The scoring module owns the streams these handlers read from, so no
// streams are created here.
func NewLeaderboardModule(
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

	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule called")

	repo := &leaderboarddb.RepositoryImpl{DB: db}

	service := leaderboardservice.NewLeaderboardService(repo, logger, metrics, tracer, db)

	leaderboardRouter := leaderboardrouter.NewLeaderboardRouter(logger, router, eventBus, tracer, obs.GetRegistry())
	if err := leaderboardRouter.Configure(ctx, service, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure leaderboard router: %w", err)
	}

	return &Module{
		EventBus:           eventBus,
		LeaderboardService: service,
		LeaderboardRouter:  leaderboardRouter,
		logger:             logger,
	}, nil
}

// Run blocks until the context is canceled. The module has no background
// workers of its own; the shared router drives its handlers.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.InfoContext(ctx, "Starting leaderboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.logger.Info("Leaderboard module goroutine stopped")
}

// Close cancels the module context.
func (m *Module) Close() error {
	m.logger.Info("Stopping leaderboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	m.logger.Info("Leaderboard module stopped")
	return nil
}
