package leaderboardservice

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	leaderboarddomain "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/domain"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
	"github.com/jbcre8iv/MotoSense-sub001/internal/attr"
)

// GetLeaderboard ranks the scope's candidates under the filter. Results are
// cached briefly; any score recompute purges the cache.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, query Query) ([]sharedtypes.MemberStats, error) {
	ctx, span := s.tracer.Start(ctx, "GetLeaderboard", trace.WithAttributes(
		attribute.String("scope", string(query.Scope.Kind)),
		attribute.String("window", string(query.Filter.Window)),
		attribute.String("series", string(query.Filter.Series)),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "GetLeaderboard", moduleName)
	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, "GetLeaderboard", moduleName, time.Since(startTime))
	}()

	if cached, ok := s.cache.Get(query.cacheKey()); ok {
		s.metrics.RecordOperationSuccess(ctx, "GetLeaderboard", moduleName)
		return cached, nil
	}

	ranked, err := s.computeLeaderboard(ctx, query)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "GetLeaderboard", moduleName)
		span.RecordError(err)
		return nil, err
	}

	s.cache.Add(query.cacheKey(), ranked)
	s.metrics.RecordOperationSuccess(ctx, "GetLeaderboard", moduleName)
	return ranked, nil
}

func (s *LeaderboardService) computeLeaderboard(ctx context.Context, query Query) ([]sharedtypes.MemberStats, error) {
	if err := query.Scope.Validate(); err != nil {
		return nil, err
	}

	candidates, err := s.repo.CandidateUsers(ctx, nil, query.Scope)
	if err != nil {
		return nil, fmt.Errorf("resolve candidates: %w", err)
	}
	if len(candidates) == 0 {
		return []sharedtypes.MemberStats{}, nil
	}

	recordsByUser, err := s.repo.GetScoreRecords(ctx, nil, candidates)
	if err != nil {
		return nil, fmt.Errorf("fetch score records: %w", err)
	}

	now := s.now()
	members := make([]sharedtypes.MemberStats, 0, len(candidates))
	for _, userID := range candidates {
		inFilter := filterRecords(recordsByUser[userID], query.Filter, now)
		members = append(members, leaderboarddomain.ComputeMemberStats(userID, inFilter))
	}

	return leaderboarddomain.RankMembers(members), nil
}

// GetMemberStats computes one user's stats under the filter. The rank is
// looked up inside the query scope; users with no in-filter predictions get
// zero stats and rank 0 rather than an error.
func (s *LeaderboardService) GetMemberStats(ctx context.Context, userID sharedtypes.UserID, query Query) (sharedtypes.MemberStats, error) {
	ctx, span := s.tracer.Start(ctx, "GetMemberStats", trace.WithAttributes(
		attribute.String("user_id", userID.String()),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "GetMemberStats", moduleName)

	records, err := s.repo.GetScoreRecordsForUser(ctx, nil, userID)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "GetMemberStats", moduleName)
		span.RecordError(err)
		return sharedtypes.MemberStats{}, fmt.Errorf("fetch score records for %s: %w", userID, err)
	}

	stats := leaderboarddomain.ComputeMemberStats(userID, filterRecords(records, query.Filter, s.now()))
	if stats.TotalPredictions == 0 {
		s.metrics.RecordOperationSuccess(ctx, "GetMemberStats", moduleName)
		return stats, nil
	}

	ranked, err := s.GetLeaderboard(ctx, query)
	if err != nil {
		// Scope resolution can fail (friends scope, unknown group) even
		// though the user's own stats computed fine.
		s.logger.WarnContext(ctx, "Could not resolve rank for member stats",
			attr.UserID("user_id", userID),
			attr.Error(err),
		)
	} else {
		for _, m := range ranked {
			if m.UserID == userID {
				stats.Rank = m.Rank
				break
			}
		}
	}

	s.metrics.RecordOperationSuccess(ctx, "GetMemberStats", moduleName)
	return stats, nil
}

func filterRecords(records []leaderboarddomain.ScoreRecord, filter leaderboarddomain.Filter, now time.Time) []leaderboarddomain.ScoreRecord {
	out := make([]leaderboarddomain.ScoreRecord, 0, len(records))
	for _, r := range records {
		if filter.Matches(r.Series, r.RaceDate, now) {
			out = append(out, r)
		}
	}
	return out
}
