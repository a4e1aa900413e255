package leaderboardservice

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	leaderboarddomain "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/domain"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// FakeRepository is a programmable in-memory Repository. Each method records
// its call in order and delegates to the corresponding Func field when set.
type FakeRepository struct {
	mu    sync.Mutex
	trace []string

	CandidateUsersFunc         func(ctx context.Context, scope leaderboarddomain.Scope) ([]sharedtypes.UserID, error)
	GetScoreRecordsFunc        func(ctx context.Context, userIDs []sharedtypes.UserID) (map[sharedtypes.UserID][]leaderboarddomain.ScoreRecord, error)
	GetScoreRecordsForUserFunc func(ctx context.Context, userID sharedtypes.UserID) ([]leaderboarddomain.ScoreRecord, error)
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{}
}

func (f *FakeRepository) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, call)
}

// Trace returns the ordered method calls made so far.
func (f *FakeRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}

func (f *FakeRepository) CandidateUsers(ctx context.Context, _ bun.IDB, scope leaderboarddomain.Scope) ([]sharedtypes.UserID, error) {
	f.record("CandidateUsers")
	if f.CandidateUsersFunc != nil {
		return f.CandidateUsersFunc(ctx, scope)
	}
	return nil, nil
}

func (f *FakeRepository) GetScoreRecords(ctx context.Context, _ bun.IDB, userIDs []sharedtypes.UserID) (map[sharedtypes.UserID][]leaderboarddomain.ScoreRecord, error) {
	f.record("GetScoreRecords")
	if f.GetScoreRecordsFunc != nil {
		return f.GetScoreRecordsFunc(ctx, userIDs)
	}
	return map[sharedtypes.UserID][]leaderboarddomain.ScoreRecord{}, nil
}

func (f *FakeRepository) GetScoreRecordsForUser(ctx context.Context, _ bun.IDB, userID sharedtypes.UserID) ([]leaderboarddomain.ScoreRecord, error) {
	f.record("GetScoreRecordsForUser")
	if f.GetScoreRecordsForUserFunc != nil {
		return f.GetScoreRecordsForUserFunc(ctx, userID)
	}
	return nil, nil
}
