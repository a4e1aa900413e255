package scoringservice

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	scoringdomain "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/domain"
	scoringevents "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/domain/events"
	scoringdb "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/infrastructure/repositories"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
	"github.com/jbcre8iv/MotoSense-sub001/internal/notifications"
	"github.com/jbcre8iv/MotoSense-sub001/internal/results"
)

// RecordDailyActivity advances a user's streak for one day of qualifying
// activity. Repeated events on the same calendar day leave the streak
// untouched; crossing a bonus tier sends a milestone notification.
func (s *ScoringService) RecordDailyActivity(ctx context.Context, userID sharedtypes.UserID, occurredAt time.Time) (ActivityResult, error) {
	var previousStreak int

	result, err := withTelemetry(s, ctx, "RecordDailyActivity", "user_id", userID.String(),
		func(ctx context.Context) (ActivityResult, error) {
			if occurredAt.IsZero() {
				return results.Failure[sharedtypes.StreakState](scoringevents.UserActivityFailedPayloadV1{
					UserID: userID,
					Reason: "activity timestamp missing",
				}), nil
			}

			return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (ActivityResult, error) {
				stored, err := s.repo.GetStreakState(ctx, db, userID)
				if err != nil {
					return ActivityResult{}, err
				}

				state := sharedtypes.StreakState{UserID: userID}
				if stored != nil {
					state = sharedtypes.StreakState{
						UserID:           stored.UserID,
						CurrentStreak:    stored.CurrentStreak,
						LongestStreak:    stored.LongestStreak,
						LastActivityDate: stored.LastActivityDate,
					}
				}
				previousStreak = state.CurrentStreak

				next := scoringdomain.AdvanceStreak(occurredAt, state)
				if next == state {
					return results.Success[sharedtypes.StreakState, scoringevents.UserActivityFailedPayloadV1](next), nil
				}

				if err := s.repo.UpsertStreakState(ctx, db, scoringdb.StreakState{
					UserID:           next.UserID,
					CurrentStreak:    next.CurrentStreak,
					LongestStreak:    next.LongestStreak,
					LastActivityDate: next.LastActivityDate,
				}); err != nil {
					return ActivityResult{}, err
				}

				return results.Success[sharedtypes.StreakState, scoringevents.UserActivityFailedPayloadV1](next), nil
			})
		})
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	current := result.Success.CurrentStreak
	if scoringdomain.StreakMultiplier(current) > scoringdomain.StreakMultiplier(previousStreak) {
		s.notifier.Notify(ctx, notifications.Milestone{
			UserID: userID,
			Title:  fmt.Sprintf("%d-day streak!", current),
		})
	}

	return result, nil
}
