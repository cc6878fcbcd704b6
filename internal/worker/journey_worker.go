package worker

import (
	"context"

	"github.com/osse101/ChronoFarm_Go/internal/logger"
	"github.com/osse101/ChronoFarm_Go/internal/timetravel"
)

// Traveler charges and starts journeys
type Traveler interface {
	BeginTravel(ctx context.Context, eraID string) (*timetravel.Journey, error)
}

// JourneyWorker plays journeys in the background so a request can return
// as soon as travel has been paid for. Shutdown cancels journeys in flight,
// which refunds them.
type JourneyWorker struct {
	BaseWorker
	game Traveler
}

// NewJourneyWorker creates a journey worker
func NewJourneyWorker(game Traveler) *JourneyWorker {
	return &JourneyWorker{game: game}
}

// Start validates and charges the journey synchronously, then plays it in
// the background. Validation errors are returned directly.
func (w *JourneyWorker) Start(ctx context.Context, eraID string) (*timetravel.Journey, error) {
	j, err := w.game.BeginTravel(ctx, eraID)
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgJourneyStarted, "to", eraID)

	started := w.spawn(ctx, func(ctx context.Context) {
		if err := j.Run(ctx); err != nil {
			logger.FromContext(ctx).Warn(LogMsgJourneyFailed, "to", eraID, "error", err)
			return
		}
		logger.FromContext(ctx).Info(LogMsgJourneyFinished, "to", eraID)
	})
	if !started {
		// shutting down: run with a cancelled context so the cost is refunded
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		return nil, j.Run(cancelled)
	}
	return j, nil
}

// Shutdown cancels journeys in flight and waits for their refunds
func (w *JourneyWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, "journey worker")
}
