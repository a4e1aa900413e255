package scoringservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	scoringdb "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/infrastructure/repositories"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

func storedStreak(userID sharedtypes.UserID, current, longest int, last time.Time) *scoringdb.StreakState {
	return &scoringdb.StreakState{
		UserID:           userID,
		CurrentStreak:    current,
		LongestStreak:    longest,
		LastActivityDate: last,
	}
}

func TestRecordDailyActivity(t *testing.T) {
	userID := sharedtypes.UserID("user1")
	day := func(d int) time.Time {
		return time.Date(2026, time.May, d, 9, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name          string
		stored        *scoringdb.StreakState
		occurredAt    time.Time
		wantCurrent   int
		wantLongest   int
		wantUpsert    bool
		wantMilestone bool
	}{
		{
			name:        "first ever activity starts a streak",
			stored:      nil,
			occurredAt:  day(1),
			wantCurrent: 1,
			wantLongest: 1,
			wantUpsert:  true,
		},
		{
			name:        "same calendar day does not advance",
			stored:      storedStreak(userID, 3, 5, day(1)),
			occurredAt:  day(1).Add(8 * time.Hour),
			wantCurrent: 3,
			wantLongest: 5,
			wantUpsert:  false,
		},
		{
			name:          "next day extends and crosses the first tier",
			stored:        storedStreak(userID, 2, 2, day(1)),
			occurredAt:    day(2),
			wantCurrent:   3,
			wantLongest:   3,
			wantUpsert:    true,
			wantMilestone: true,
		},
		{
			name:        "extension below a tier boundary sends nothing",
			stored:      storedStreak(userID, 3, 9, day(1)),
			occurredAt:  day(2),
			wantCurrent: 4,
			wantLongest: 9,
			wantUpsert:  true,
		},
		{
			name:        "gap resets but keeps the longest streak",
			stored:      storedStreak(userID, 10, 12, day(1)),
			occurredAt:  day(6),
			wantCurrent: 1,
			wantLongest: 12,
			wantUpsert:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeRepository()
			repo.GetStreakStateFunc = func(context.Context, bun.IDB, sharedtypes.UserID) (*scoringdb.StreakState, error) {
				return tt.stored, nil
			}
			notifier := &FakeNotifier{}
			svc := newTestService(repo, notifier)

			result, err := svc.RecordDailyActivity(context.Background(), userID, tt.occurredAt)

			require.NoError(t, err)
			require.True(t, result.IsSuccess())
			assert.Equal(t, tt.wantCurrent, result.Success.CurrentStreak)
			assert.Equal(t, tt.wantLongest, result.Success.LongestStreak)

			if tt.wantUpsert {
				assert.Contains(t, repo.Trace(), "UpsertStreakState")
			} else {
				assert.NotContains(t, repo.Trace(), "UpsertStreakState")
			}

			if tt.wantMilestone {
				require.Len(t, notifier.Sent(), 1)
				assert.Equal(t, userID, notifier.Sent()[0].UserID)
			} else {
				assert.Empty(t, notifier.Sent())
			}
		})
	}
}

func TestRecordDailyActivity_MissingTimestampIsFailure(t *testing.T) {
	repo := NewFakeRepository()
	svc := newTestService(repo, &FakeNotifier{})

	result, err := svc.RecordDailyActivity(context.Background(), "user1", time.Time{})

	require.NoError(t, err)
	require.True(t, result.IsFailure())
	assert.Equal(t, "activity timestamp missing", result.Failure.Reason)
	assert.Empty(t, repo.Trace())
}

func TestRecordDailyActivity_RepositoryErrorPropagates(t *testing.T) {
	repo := NewFakeRepository()
	repo.GetStreakStateFunc = func(context.Context, bun.IDB, sharedtypes.UserID) (*scoringdb.StreakState, error) {
		return nil, errors.New("connection reset")
	}
	svc := newTestService(repo, &FakeNotifier{})

	_, err := svc.RecordDailyActivity(context.Background(), "user1", time.Now())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}
