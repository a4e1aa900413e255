package leaderboarddb

import (
	"context"

	"github.com/uptrace/bun"

	leaderboarddomain "github.com/jbcre8iv/MotoSense-sub001/app/modules/leaderboard/domain"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// Repository is the leaderboard module's read surface. The db argument
// follows the scoring repository convention; nil uses the repository's own
// connection.
type Repository interface {
	// CandidateUsers resolves a scope to its candidate user set, ordered by
	// account creation so ties rank earlier members first.
	CandidateUsers(ctx context.Context, db bun.IDB, scope leaderboarddomain.Scope) ([]sharedtypes.UserID, error)

	// GetScoreRecords returns every candidate's scored races joined with
	// race metadata, in chronological race order per user.
	GetScoreRecords(ctx context.Context, db bun.IDB, userIDs []sharedtypes.UserID) (map[sharedtypes.UserID][]leaderboarddomain.ScoreRecord, error)

	// GetScoreRecordsForUser is the single-user variant used for direct
	// stat lookups and charting.
	GetScoreRecordsForUser(ctx context.Context, db bun.IDB, userID sharedtypes.UserID) ([]leaderboarddomain.ScoreRecord, error)
}
