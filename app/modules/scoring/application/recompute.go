package scoringservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	scoringdomain "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/domain"
	scoringevents "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/domain/events"
	scoringdb "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/infrastructure/repositories"
	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
	"github.com/jbcre8iv/MotoSense-sub001/internal/attr"
	"github.com/jbcre8iv/MotoSense-sub001/internal/notifications"
	"github.com/jbcre8iv/MotoSense-sub001/internal/results"
)

// RecomputeRaceScores recomputes every stored prediction for a race against
// the stored result. The whole score set is replaced in one transaction, so
// readers never observe a half-recomputed race. A failure on one user's
// prediction skips that user and never blocks the batch.
func (s *ScoringService) RecomputeRaceScores(ctx context.Context, raceID sharedtypes.RaceID) (RecomputeResult, error) {
	result, err := withTelemetry(s, ctx, "RecomputeRaceScores", "race_id", raceID.String(),
		func(ctx context.Context) (RecomputeResult, error) {
			return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RecomputeResult, error) {
				return s.recomputeRace(ctx, db, raceID)
			})
		})
	if err != nil || !result.IsSuccess() {
		return result, err
	}

	for _, scored := range result.Success.Scored {
		if scored.IsPerfectPrediction {
			s.notifier.Notify(ctx, notifications.Milestone{
				UserID:        scored.UserID,
				Title:         "Perfect Prediction!",
				PointsAwarded: scoringdomain.PerfectPredictionBonus,
			})
		}
	}

	return result, nil
}

func (s *ScoringService) recomputeRace(ctx context.Context, db bun.IDB, raceID sharedtypes.RaceID) (RecomputeResult, error) {
	raceResult, err := s.repo.GetRaceResult(ctx, db, raceID)
	if err != nil {
		if errors.Is(err, scoringdb.ErrRaceResultNotFound) {
			return results.Failure[RecomputedScores](scoringevents.RaceScoreRecomputeFailedPayloadV1{
				RaceID: raceID,
				Reason: "race result not available",
			}), nil
		}
		return RecomputeResult{}, err
	}

	predictions, err := s.repo.GetPredictionsForRace(ctx, db, raceID)
	if err != nil {
		return RecomputeResult{}, err
	}

	existing, err := s.repo.GetScoresForRace(ctx, db, raceID)
	if err != nil {
		return RecomputeResult{}, err
	}
	statusByUser := make(map[sharedtypes.UserID]sharedtypes.ScoreStatus, len(existing))
	for _, sc := range existing {
		statusByUser[sc.UserID] = sc.Status
	}

	userIDs := make([]sharedtypes.UserID, 0, len(predictions))
	for _, p := range predictions {
		userIDs = append(userIDs, p.UserID)
	}
	streaks, err := s.repo.GetStreakStates(ctx, db, userIDs)
	if err != nil {
		return RecomputeResult{}, err
	}

	computedAt := time.Now().UTC()
	rows := make([]scoringdb.PredictionScore, 0, len(predictions))
	scored := make([]scoringevents.PredictionScoredPayloadV1, 0, len(predictions))
	skipped := 0

	for _, p := range predictions {
		row, payload, err := s.scorePrediction(ctx, p, raceResult, streaks[p.UserID].CurrentStreak, statusByUser[p.UserID], computedAt)
		if err != nil {
			skipped++
			s.logger.ErrorContext(ctx, "Skipping prediction in batch recompute",
				attr.ExtractCorrelationID(ctx),
				attr.RaceID("race_id", raceID),
				attr.UserID("user_id", p.UserID),
				attr.Error(err),
			)
			continue
		}
		rows = append(rows, row)
		scored = append(scored, payload)
	}

	if err := s.repo.ReplaceScoresForRace(ctx, db, raceID, rows); err != nil {
		return RecomputeResult{}, err
	}

	return results.Success[RecomputedScores, scoringevents.RaceScoreRecomputeFailedPayloadV1](RecomputedScores{
		Batch: scoringevents.RaceScoresRecomputedPayloadV1{
			RaceID:       raceID,
			ScoredCount:  len(scored),
			SkippedCount: skipped,
		},
		Scored: scored,
	}), nil
}

// scorePrediction scores one user's prediction. A panic inside the scoring
// path is converted into an error so one bad row cannot take down the batch.
func (s *ScoringService) scorePrediction(
	ctx context.Context,
	p scoringdb.Prediction,
	raceResult *scoringdb.RaceResult,
	streakDays int,
	currentStatus sharedtypes.ScoreStatus,
	computedAt time.Time,
) (row scoringdb.PredictionScore, payload scoringevents.PredictionScoredPayloadV1, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic scoring prediction for user %s: %v", p.UserID, r)
		}
	}()

	breakdown := scoringdomain.CalculateScore(scoringdomain.ScoreInput{
		RaceID:          p.RaceID,
		UserID:          p.UserID,
		Picks:           p.Picks,
		Positions:       raceResult.Positions,
		ConfidenceLevel: p.ConfidenceLevel,
		StreakDays:      streakDays,
	})
	breakdown.Status = scoringdomain.NextStatusOnResult(currentStatus)

	var bonus *scoringdomain.BonusScore
	if p.Bonus != nil && raceResult.Bonus != nil {
		if validation := scoringdomain.ValidateBonusPrediction(*p.Bonus); validation.Valid {
			b := scoringdomain.ScoreBonusPrediction(*p.Bonus, *raceResult.Bonus)
			bonus = &b
		} else {
			s.logger.WarnContext(ctx, "Stored bonus prediction failed validation, bonus not scored",
				attr.UserID("user_id", p.UserID),
				attr.RaceID("race_id", p.RaceID),
				attr.Any("violations", validation.Errors),
			)
		}
	}

	row = scoringdb.PredictionScore{
		RaceID:      p.RaceID,
		UserID:      p.UserID,
		TotalPoints: breakdown.TotalPoints,
		Status:      breakdown.Status,
		Breakdown:   breakdown,
		ComputedAt:  computedAt,
	}

	payload = scoringevents.PredictionScoredPayloadV1{
		RaceID:              p.RaceID,
		UserID:              p.UserID,
		TotalPoints:         breakdown.TotalPoints,
		IsPerfectPrediction: breakdown.IsPerfectPrediction,
		Status:              breakdown.Status,
		Bonus:               bonus,
	}
	if bonus != nil {
		payload.BonusPoints = bonus.TotalPoints
	}

	return row, payload, nil
}

// FinalizeRaceScores locks a race's scores. Finalizing an already-final race
// is a no-op success.
func (s *ScoringService) FinalizeRaceScores(ctx context.Context, raceID sharedtypes.RaceID) (FinalizeResult, error) {
	return withTelemetry(s, ctx, "FinalizeRaceScores", "race_id", raceID.String(),
		func(ctx context.Context) (FinalizeResult, error) {
			return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (FinalizeResult, error) {
				scores, err := s.repo.GetScoresForRace(ctx, db, raceID)
				if err != nil {
					return FinalizeResult{}, err
				}
				if len(scores) > 0 {
					if err := s.repo.FinalizeScoresForRace(ctx, db, raceID); err != nil {
						return FinalizeResult{}, err
					}
				}
				return results.Success[scoringevents.RaceScoresFinalizedPayloadV1, scoringevents.RaceScoreRecomputeFailedPayloadV1](
					scoringevents.RaceScoresFinalizedPayloadV1{
						RaceID:         raceID,
						FinalizedCount: len(scores),
					}), nil
			})
		})
}
