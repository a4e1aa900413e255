package scoringqueue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
	"github.com/riverqueue/river"

	scoringservice "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/application"
	scoringevents "github.com/jbcre8iv/MotoSense-sub001/app/modules/scoring/domain/events"
	"github.com/jbcre8iv/MotoSense-sub001/internal/attr"
	"github.com/jbcre8iv/MotoSense-sub001/internal/eventbus"
)

// ScoreRecomputeWorker executes batch recompute jobs and publishes the
// resulting events.
type ScoreRecomputeWorker struct {
	river.WorkerDefaults[ScoreRecomputeJob]

	logger   *slog.Logger
	service  scoringservice.Service
	eventBus eventbus.EventBus
}

// NewScoreRecomputeWorker creates a worker bound to the scoring service.
func NewScoreRecomputeWorker(logger *slog.Logger, service scoringservice.Service, eventBus eventbus.EventBus) *ScoreRecomputeWorker {
	return &ScoreRecomputeWorker{
		logger:   logger,
		service:  service,
		eventBus: eventBus,
	}
}

// Work runs one recompute. An infrastructure error is returned so River
// retries the job; a business failure publishes the failure event and
// completes the job.
func (w *ScoreRecomputeWorker) Work(ctx context.Context, job *river.Job[ScoreRecomputeJob]) error {
	raceID := job.Args.RaceID

	w.logger.InfoContext(ctx, "Running score recompute job",
		attr.RaceID("race_id", raceID),
		attr.Int("attempt", job.Attempt),
	)

	result, err := w.service.RecomputeRaceScores(ctx, raceID)
	if err != nil {
		return fmt.Errorf("recompute race %s: %w", raceID, err)
	}

	if result.IsFailure() {
		return w.publish(scoringevents.RaceScoreRecomputeFailedV1, *result.Failure)
	}

	for _, scored := range result.Success.Scored {
		if err := w.publish(scoringevents.PredictionScoredV1, scored); err != nil {
			return err
		}
	}
	return w.publish(scoringevents.RaceScoresRecomputedV1, result.Success.Batch)
}

func (w *ScoreRecomputeWorker) publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload for %s: %w", topic, err)
	}
	return w.eventBus.Publish(topic, message.NewMessage(uuid.New().String(), body))
}
