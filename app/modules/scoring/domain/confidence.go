// Package scoringdomain holds the pure scoring engines: the confidence
// table, the streak engine, the bonus-pick validator, and the score
// calculator. Everything here is side-effect free and safe for concurrent
// use; persistence and messaging live in the application layer.
package scoringdomain

import sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"

// confidenceMultipliers maps each confidence level to its point multiplier.
var confidenceMultipliers = map[sharedtypes.ConfidenceLevel]float64{
	1: 0.5,
	2: 0.75,
	3: 1.0,
	4: 1.5,
	5: 2.0,
}

// NeutralConfidenceMultiplier is the multiplier applied when no confidence
// level was chosen.
const NeutralConfidenceMultiplier = 1.0

// ConfidenceMultiplier returns the point multiplier for a confidence level.
// An absent or out-of-range level yields the neutral 1.0 multiplier; that is
// a caller-side data-quality issue, not an error here.
func ConfidenceMultiplier(level *sharedtypes.ConfidenceLevel) float64 {
	if level == nil {
		return NeutralConfidenceMultiplier
	}
	if m, ok := confidenceMultipliers[*level]; ok {
		return m
	}
	return NeutralConfidenceMultiplier
}
