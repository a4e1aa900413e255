// Package liveracedomain computes provisional standings while a race is in
// progress. It reuses the scoring calculator over the picks that have
// already resolved and treats the rest optimistically.
package liveracedomain

import (
	"sort"

	scoringdomain "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/domain"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// MaxPendingPickPoints is the optimistic value of a pick whose rider has not
// finished yet: an exact match at neutral confidence.
const MaxPendingPickPoints sharedtypes.Points = 100

// LiveStanding is one user's provisional position during a race.
//
// CurrentPoints is locked in: it only counts picks whose rider appears in
// the partial results. PotentialPoints adds the best case for every pick
// still on track. Streak bonuses are deliberately absent; they are applied
// when the race is scored for real.
type LiveStanding struct {
	UserID          sharedtypes.UserID `json:"user_id"`
	CurrentPoints   sharedtypes.Points `json:"current_points"`
	PotentialPoints sharedtypes.Points `json:"potential_points"`
	FinishedPicks   int                `json:"finished_picks"`
	PendingPicks    int                `json:"pending_picks"`
	Rank            int                `json:"rank"`
}

// ComputeLiveStanding scores one prediction against the partial result set.
func ComputeLiveStanding(p sharedtypes.Prediction, partial []sharedtypes.RiderPosition) LiveStanding {
	finishedRiders := make(map[sharedtypes.RiderID]struct{}, len(partial))
	for _, rp := range partial {
		finishedRiders[rp.RiderID] = struct{}{}
	}

	finished := make([]sharedtypes.Pick, 0, len(p.Picks))
	pending := 0
	for _, pick := range p.Picks {
		if _, ok := finishedRiders[pick.RiderID]; ok {
			finished = append(finished, pick)
		} else {
			pending++
		}
	}

	score := scoringdomain.CalculateScore(scoringdomain.ScoreInput{
		RaceID:          p.RaceID,
		UserID:          p.UserID,
		Picks:           finished,
		Positions:       partial,
		ConfidenceLevel: p.ConfidenceLevel,
	})

	return LiveStanding{
		UserID:          p.UserID,
		CurrentPoints:   score.TotalPoints,
		PotentialPoints: score.TotalPoints + sharedtypes.Points(pending)*MaxPendingPickPoints,
		FinishedPicks:   len(finished),
		PendingPicks:    pending,
	}
}

// OrderStandings sorts standings into live order and assigns ranks 1..N.
//
// Live order is (current points desc, potential points desc). This is not
// the final leaderboard order; mid-race, locked-in points outrank what might
// still happen. The sort is stable so equal standings keep arrival order.
func OrderStandings(standings []LiveStanding) []LiveStanding {
	ordered := append([]LiveStanding(nil), standings...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.CurrentPoints != b.CurrentPoints {
			return a.CurrentPoints > b.CurrentPoints
		}
		return a.PotentialPoints > b.PotentialPoints
	})
	for i := range ordered {
		ordered[i].Rank = i + 1
	}
	return ordered
}
