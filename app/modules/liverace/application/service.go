package liveraceservice

import (
	"context"
	"log/slog"
	"sync"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"

	liveracedomain "github.com/jbcre8iv/MotoSense-sub001/app/modules/liverace/domain"
	liveraceevents "github.com/jbcre8iv/MotoSense-sub001/app/modules/liverace/domain/events"
	liveracedb "github.com/jbcre8iv/MotoSense-sub001/app/modules/liverace/infrastructure/repositories"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
	"github.com/jbcre8iv/MotoSense-sub001/internal/observability"
	"github.com/jbcre8iv/MotoSense-sub001/internal/results"
)

const moduleName = "liverace"

// ApplyResult is the outcome of applying one partial-result update.
type ApplyResult = results.OperationResult[liveraceevents.RaceLiveStandingsPayloadV1, liveraceevents.RaceUpdateFailedPayloadV1]

// Service is the live-race module's application surface.
type Service interface {
	// ApplyRaceUpdate replaces the race's partial result set with the
	// update's snapshot and recomputes live standings. Updates for one race
	// serialize; later updates supersede earlier ones.
	ApplyRaceUpdate(ctx context.Context, update liveraceevents.RaceUpdatePayloadV1) (ApplyResult, error)
	// GetLiveStandings returns the latest standings snapshot for a race.
	// A race with no updates yet yields an empty snapshot.
	GetLiveStandings(ctx context.Context, raceID sharedtypes.RaceID) (liveraceevents.RaceLiveStandingsPayloadV1, error)
}

// raceState is the in-memory live state for one race. Live standings are
// ephemeral by design; a restart simply waits for the next update, which
// carries the full snapshot again.
type raceState struct {
	mu        sync.Mutex
	positions []sharedtypes.RiderPosition
	standings []liveracedomain.LiveStanding
}

// LiveRaceService implements the Service interface.
type LiveRaceService struct {
	repo    liveracedb.Repository
	logger  *slog.Logger
	metrics observability.OperationMetrics
	tracer  trace.Tracer
	db      *bun.DB

	mu    sync.RWMutex
	races map[sharedtypes.RaceID]*raceState
}

// NewLiveRaceService creates a new LiveRaceService.
func NewLiveRaceService(
	repo liveracedb.Repository,
	logger *slog.Logger,
	metrics observability.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *LiveRaceService {
	return &LiveRaceService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
		races:   make(map[sharedtypes.RaceID]*raceState),
	}
}

var _ Service = (*LiveRaceService)(nil)

// state returns the race's state, creating it on first use. The per-race
// mutex inside serializes updates for one race while leaving other races
// independent.
func (s *LiveRaceService) state(raceID sharedtypes.RaceID) *raceState {
	s.mu.RLock()
	st, ok := s.races[raceID]
	s.mu.RUnlock()
	if ok {
		return st
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok = s.races[raceID]; !ok {
		st = &raceState{}
		s.races[raceID] = st
	}
	return st
}
