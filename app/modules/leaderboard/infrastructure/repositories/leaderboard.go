package leaderboarddb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	leaderboarddomain "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/domain"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// RepositoryImpl implements Repository on bun.
type RepositoryImpl struct {
	DB *bun.DB
}

var _ Repository = (*RepositoryImpl)(nil)

func (r *RepositoryImpl) idb(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

func (r *RepositoryImpl) CandidateUsers(ctx context.Context, db bun.IDB, scope leaderboarddomain.Scope) ([]sharedtypes.UserID, error) {
	if err := scope.Validate(); err != nil {
		return nil, err
	}

	var userIDs []sharedtypes.UserID
	q := r.idb(db).NewSelect().
		Model((*User)(nil)).
		Column("user_id").
		Order("created_at ASC")

	switch scope.Kind {
	case leaderboarddomain.ScopeRegional:
		q = q.Where("region = ?", scope.Region)
	case leaderboarddomain.ScopeGroup:
		q = q.Where("user_id IN (?)", r.idb(db).NewSelect().
			Model((*GroupMembership)(nil)).
			Column("user_id").
			Where("group_id = ?", scope.GroupID))
	}

	if err := q.Scan(ctx, &userIDs); err != nil {
		return nil, fmt.Errorf("failed to resolve candidate users for scope %s: %w", scope.Kind, err)
	}
	return userIDs, nil
}

func (r *RepositoryImpl) GetScoreRecords(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) (map[sharedtypes.UserID][]leaderboarddomain.ScoreRecord, error) {
	byUser := make(map[sharedtypes.UserID][]leaderboarddomain.ScoreRecord, len(userIDs))
	if len(userIDs) == 0 {
		return byUser, nil
	}

	rows, err := r.scoreRecordRows(ctx, db, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("ps.user_id IN (?)", bun.In(userIDs))
	})
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		byUser[row.UserID] = append(byUser[row.UserID], toScoreRecord(row))
	}
	return byUser, nil
}

func (r *RepositoryImpl) GetScoreRecordsForUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]leaderboarddomain.ScoreRecord, error) {
	rows, err := r.scoreRecordRows(ctx, db, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("ps.user_id = ?", userID)
	})
	if err != nil {
		return nil, err
	}

	records := make([]leaderboarddomain.ScoreRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toScoreRecord(row))
	}
	return records, nil
}

func (r *RepositoryImpl) scoreRecordRows(ctx context.Context, db bun.IDB, narrow func(*bun.SelectQuery) *bun.SelectQuery) ([]scoreRecordRow, error) {
	var rows []scoreRecordRow
	q := r.idb(db).NewSelect().
		TableExpr("prediction_scores AS ps").
		ColumnExpr("ps.user_id, ps.race_id, ps.total_points, ps.breakdown").
		ColumnExpr("rr.series, rr.race_date").
		Join("JOIN race_results AS rr ON rr.race_id = ps.race_id").
		OrderExpr("rr.race_date ASC, ps.race_id ASC")

	if err := narrow(q).Scan(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to fetch score records: %w", err)
	}
	return rows, nil
}

func toScoreRecord(row scoreRecordRow) leaderboarddomain.ScoreRecord {
	return leaderboarddomain.ScoreRecord{
		UserID:    row.UserID,
		RaceID:    row.RaceID,
		Series:    row.Series,
		RaceDate:  row.RaceDate,
		Points:    row.TotalPoints,
		ExactPick: row.Breakdown.HasExactPick(),
	}
}
