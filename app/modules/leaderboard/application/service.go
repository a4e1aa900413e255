package leaderboardservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	leaderboarddomain "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/domain"
	leaderboarddb "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/infrastructure/repositories"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
	"github.com/jbcre8iv/MotoSense-sub001/internal/observability"
)

const moduleName = "leaderboard"

// Cache sizing. Rankings are recomputed on demand; the cache only absorbs
// bursts of identical queries between score recomputes.
const (
	cacheSize = 256
	cacheTTL  = 60 * time.Second
)

// Query is one leaderboard request: who to rank and which races count.
type Query struct {
	Scope  leaderboarddomain.Scope
	Filter leaderboarddomain.Filter
}

func (q Query) cacheKey() string {
	return string(q.Scope.Kind) + "|" + q.Scope.Region + "|" + string(q.Scope.GroupID) +
		"|" + string(q.Filter.Window) + "|" + string(q.Filter.Series)
}

// Service is the leaderboard module's application surface. All operations
// are read-only.
type Service interface {
	// GetLeaderboard ranks the scope's candidates under the filter.
	GetLeaderboard(ctx context.Context, query Query) ([]sharedtypes.MemberStats, error)
	// GetMemberStats computes one user's stats under the filter, with their
	// rank inside the query scope (0 when unranked).
	GetMemberStats(ctx context.Context, userID sharedtypes.UserID, query Query) (sharedtypes.MemberStats, error)
	// GeneratePointsChart renders a PNG of the user's cumulative points.
	GeneratePointsChart(ctx context.Context, userID sharedtypes.UserID) ([]byte, error)
	// InvalidateCache drops all cached rankings. Called when any race's
	// scores are recomputed.
	InvalidateCache()
}

// LeaderboardService implements the Service interface.
type LeaderboardService struct {
	repo    leaderboarddb.Repository
	logger  *slog.Logger
	metrics observability.OperationMetrics
	tracer  trace.Tracer
	db      *bun.DB
	cache   *expirable.LRU[string, []sharedtypes.MemberStats]

	// now is injectable so window bounds are testable.
	now func() time.Time
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	repo leaderboarddb.Repository,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *LeaderboardService {
	return &LeaderboardService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
		cache:   expirable.NewLRU[string, []sharedtypes.MemberStats](cacheSize, nil, cacheTTL),
		now:     time.Now,
	}
}

var _ Service = (*LeaderboardService)(nil)

// InvalidateCache drops all cached rankings.
func (s *LeaderboardService) InvalidateCache() {
	s.cache.Purge()
}
