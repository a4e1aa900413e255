package leaderboardhandlers

import (
	"context"
	"sync/atomic"

	leaderboardservice "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/application"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// FakeService is a programmable leaderboard service. Only cache invalidation
// matters to these handlers; the read methods return empty data.
type FakeService struct {
	Invalidations atomic.Int64
}

func (f *FakeService) GetLeaderboard(context.Context, leaderboardservice.Query) ([]sharedtypes.MemberStats, error) {
	return nil, nil
}

func (f *FakeService) GetMemberStats(context.Context, sharedtypes.UserID, leaderboardservice.Query) (sharedtypes.MemberStats, error) {
	return sharedtypes.MemberStats{}, nil
}

func (f *FakeService) GeneratePointsChart(context.Context, sharedtypes.UserID) ([]byte, error) {
	return nil, nil
}

func (f *FakeService) InvalidateCache() {
	f.Invalidations.Add(1)
}

var _ leaderboardservice.Service = (*FakeService)(nil)
