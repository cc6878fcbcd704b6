package worker

import (
	"context"
	"time"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/logger"
	"github.com/osse101/ChronoFarm_Go/internal/metrics"
	"github.com/osse101/ChronoFarm_Go/internal/save"
)

// Ticker advances the simulation
type Ticker interface {
	Tick(ctx context.Context) time.Duration
}

// Saver persists the game
type Saver interface {
	Snapshot() (domain.GameState, error)
	Save(ctx context.Context) (save.File, error)
}

// TickJob runs one simulation tick
type TickJob struct {
	game Ticker
}

// NewTickJob creates the tick job
func NewTickJob(game Ticker) *TickJob {
	return &TickJob{game: game}
}

// Process implements Job
func (j *TickJob) Process(ctx context.Context) error {
	start := time.Now()
	j.game.Tick(ctx)
	metrics.TickDuration.Observe(time.Since(start).Seconds())
	return nil
}

// AutosaveJob saves the game when the player has autosave enabled
type AutosaveJob struct {
	game Saver
}

// NewAutosaveJob creates the autosave job
func NewAutosaveJob(game Saver) *AutosaveJob {
	return &AutosaveJob{game: game}
}

// Process implements Job
func (j *AutosaveJob) Process(ctx context.Context) error {
	st, err := j.game.Snapshot()
	if err != nil {
		return err
	}
	if !st.Settings.Autosave {
		logger.FromContext(ctx).Debug(LogMsgAutosaveSkipped)
		return nil
	}
	_, err = j.game.Save(ctx)
	return err
}
