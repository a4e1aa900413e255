package scoringdb

import "errors"

var (
	// ErrRaceResultNotFound is returned when no result row exists for a race.
	ErrRaceResultNotFound = errors.New("race result not found")

	// ErrScoreNotFound is returned when no score exists for a (race, user) pair.
	ErrScoreNotFound = errors.New("prediction score not found")
)
