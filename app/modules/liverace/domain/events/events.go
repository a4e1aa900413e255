// Package liveraceevents defines the live-race topics and payloads.
package liveraceevents

import (
	liveracedomain "github.com/jbcre8iv/MotoSense-sub001/app/modules/liverace/domain"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// Consumed topics.
const (
	// RaceUpdateV1 carries the full partial result set so far, not a delta.
	// Updates for one race must be applied in arrival order; the latest
	// update supersedes everything before it.
	RaceUpdateV1 = "race.update.v1"
)

// Produced topics.
const (
	RaceLiveStandingsV1 = "race.live.standings.v1"
	RaceUpdateFailedV1  = "race.update.failed.v1"
)

// RaceUpdatePayloadV1 is a snapshot of the finishers so far.
type RaceUpdatePayloadV1 struct {
	RaceID    sharedtypes.RaceID          `json:"race_id"`
	Positions []sharedtypes.RiderPosition `json:"positions"`
}

// RaceLiveStandingsPayloadV1 is the recomputed live order after an update.
type RaceLiveStandingsPayloadV1 struct {
	RaceID        sharedtypes.RaceID            `json:"race_id"`
	FinishedCount int                           `json:"finished_count"`
	Standings     []liveracedomain.LiveStanding `json:"standings"`
}

// RaceUpdateFailedPayloadV1 reports an update that could not be applied.
type RaceUpdateFailedPayloadV1 struct {
	RaceID sharedtypes.RaceID `json:"race_id"`
	Reason string             `json:"reason"`
}
