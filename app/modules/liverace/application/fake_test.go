package liveraceservice

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	sharedtypes "github.com/jbcre8iv/MotoSense-sub001/app/shared/types"
)

// FakeRepository is a programmable in-memory Repository.
type FakeRepository struct {
	mu    sync.Mutex
	trace []string

	GetPredictionsForRaceFunc func(ctx context.Context, raceID sharedtypes.RaceID) ([]sharedtypes.Prediction, error)
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{}
}

func (f *FakeRepository) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, call)
}

// Trace returns the ordered method calls made so far.
func (f *FakeRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}

func (f *FakeRepository) GetPredictionsForRace(ctx context.Context, _ bun.IDB, raceID sharedtypes.RaceID) ([]sharedtypes.Prediction, error) {
	f.record("GetPredictionsForRace")
	if f.GetPredictionsForRaceFunc != nil {
		return f.GetPredictionsForRaceFunc(ctx, raceID)
	}
	return nil, nil
}
