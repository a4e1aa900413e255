package scoringdomain

import sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"

// NextStatusOnResult returns the score status after a result is applied.
// The first scoring of a submitted prediction yields Scored; any later
// result application (a correction) moves through Rescored, including from
// Final. The transition is re-entrant: Rescored stays Rescored.
func NextStatusOnResult(current sharedtypes.ScoreStatus) sharedtypes.ScoreStatus {
	switch current {
	case "", sharedtypes.ScoreStatusSubmitted:
		return sharedtypes.ScoreStatusScored
	default:
		return sharedtypes.ScoreStatusRescored
	}
}

// FinalizeStatus marks a score final. Finalizing an already-final score is
// a no-op.
func FinalizeStatus(sharedtypes.ScoreStatus) sharedtypes.ScoreStatus {
	return sharedtypes.ScoreStatusFinal
}
