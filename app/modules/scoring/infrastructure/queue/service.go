package scoringqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"

	scoringservice "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/application"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
	"github.com/jbcre8iv/MotoSense-sub001/internal/attr"
	"github.com/jbcre8iv/MotoSense-sub001/internal/eventbus"
	"github.com/jbcre8iv/MotoSense-sub001/internal/observability"
)

const scoringQueueName = "scoring"

// QueueService is the contract for scheduling recompute work.
type QueueService interface {
	// EnqueueScoreRecompute queues a batch recompute for a race. Repeated
	// calls for the same race while a job is pending are deduplicated.
	EnqueueScoreRecompute(ctx context.Context, raceID sharedtypes.RaceID) error
	// HealthCheck verifies the queue service is healthy.
	HealthCheck(ctx context.Context) error
	// Start starts the queue service.
	Start(ctx context.Context) error
	// Stop stops the queue service.
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service handles recompute job scheduling for the scoring module using River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics observability.OperationMetrics
}

// NewService creates a new River-based queue service for score recomputes.
func NewService(
	ctx context.Context,
	bunDB *bun.DB,
	logger *slog.Logger,
	dsn string,
	metrics observability.OperationMetrics,
	eventBus eventbus.EventBus,
	scoringSvc scoringservice.Service,
) (*Service, error) {
	ctxLogger := logger.With(
		attr.String("component", "river_queue"),
	)

	ctxLogger.Info("Initializing scoring queue service")

	// River requires pgx, not database/sql
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewScoreRecomputeWorker(ctxLogger, scoringSvc, eventBus))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			scoringQueueName:   {MaxWorkers: 4},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	ctxLogger.Info("Scoring queue service initialized successfully")
	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		db:      bunDB,
		metrics: metrics,
	}, nil
}

// Start starts the River queue service.
func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("Starting scoring queue service")
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	return nil
}

// Stop stops the River queue service.
func (s *Service) Stop(ctx context.Context) error {
	s.logger.Info("Stopping scoring queue service")
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	return nil
}

// EnqueueScoreRecompute queues a batch recompute for a race.
func (s *Service) EnqueueScoreRecompute(ctx context.Context, raceID sharedtypes.RaceID) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "enqueue_score_recompute", "river")
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "enqueue_score_recompute", "river", time.Since(start))
	}()

	jobResult, err := s.client.Insert(ctx, ScoreRecomputeJob{RaceID: raceID}, &river.InsertOpts{
		Queue: scoringQueueName,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to enqueue score recompute job",
			attr.RaceID("race_id", raceID),
			attr.Error(err),
		)
		s.metrics.RecordOperationFailure(ctx, "enqueue_score_recompute", "river")
		return fmt.Errorf("failed to enqueue score recompute job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "enqueue_score_recompute", "river")
	s.logger.InfoContext(ctx, "Score recompute job enqueued",
		attr.RaceID("race_id", raceID),
		attr.Bool("deduplicated", jobResult.UniqueSkippedAsDuplicate),
	)
	return nil
}

// HealthCheck verifies the queue service is healthy.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("river client is nil")
	}

	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		return fmt.Errorf("queue service health check failed: %w", err)
	}
	return nil
}
