// Package leaderboardevents defines the topics the leaderboard module
// consumes. The module owns no streams and publishes nothing; it only
// reacts to scoring activity to keep its cache honest.
package leaderboardevents

import (
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// Consumed topics.
const (
	RaceScoresRecomputedV1 = "race.scores.recomputed.v1"
	RaceScoresFinalizedV1  = "race.scores.finalized.v1"
)

// RaceScoresRecomputedPayloadV1 mirrors the scoring module's batch payload.
// Only the race identity matters here; counts ride along for logging.
type RaceScoresRecomputedPayloadV1 struct {
	RaceID       sharedtypes.RaceID `json:"race_id"`
	ScoredCount  int                `json:"scored_count"`
	SkippedCount int                `json:"skipped_count"`
}

// RaceScoresFinalizedPayloadV1 mirrors the scoring module's finalize payload.
type RaceScoresFinalizedPayloadV1 struct {
	RaceID         sharedtypes.RaceID `json:"race_id"`
	FinalizedCount int                `json:"finalized_count"`
}
