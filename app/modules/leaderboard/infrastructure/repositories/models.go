package leaderboarddb

import (
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// User is a member profile row. The leaderboard module only reads the
// fields needed for scope resolution.
type User struct {
	bun.BaseModel `bun:"table:users"`

	UserID    sharedtypes.UserID `bun:"user_id,pk"`
	Region    string             `bun:"region"`
	CreatedAt time.Time          `bun:"created_at,notnull,default:current_timestamp"`
}

// GroupMembership links a user to a prediction group.
type GroupMembership struct {
	bun.BaseModel `bun:"table:group_memberships"`

	GroupID   sharedtypes.GroupID `bun:"group_id,pk"`
	UserID    sharedtypes.UserID  `bun:"user_id,pk"`
	CreatedAt time.Time           `bun:"created_at,notnull,default:current_timestamp"`
}

// scoreRecordRow is the join of prediction_scores and race_results that
// aggregation queries scan into.
type scoreRecordRow struct {
	UserID      sharedtypes.UserID          `bun:"user_id"`
	RaceID      sharedtypes.RaceID          `bun:"race_id"`
	Series      sharedtypes.Series          `bun:"series"`
	RaceDate    time.Time                   `bun:"race_date"`
	TotalPoints sharedtypes.Points          `bun:"total_points"`
	Breakdown   sharedtypes.PredictionScore `bun:"breakdown,type:jsonb"`
}
