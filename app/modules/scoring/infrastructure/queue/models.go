package scoringqueue

import sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"

// ScoreRecomputeJob recomputes every score for one race. Uniqueness by args
// means concurrent finalize/correction events for the same race collapse
// into one pending job, serializing recomputes per race while different
// races run in parallel.
type ScoreRecomputeJob struct {
	RaceID sharedtypes.RaceID `json:"race_id"`
}

// Kind returns the job type identifier for River.
func (ScoreRecomputeJob) Kind() string { return "score_recompute" }
