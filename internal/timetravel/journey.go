package timetravel

import (
	"context"
	"fmt"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/logger"
	"github.com/osse101/ChronoFarm_Go/internal/store"
)

// Journey is a travel that has been paid for and is playing its effect
// sequence. The session lock is free between steps.
type Journey struct {
	machine *Machine
	from    string
	era     domain.Era
}

// To returns the destination era id
func (j *Journey) To() string {
	return j.era.ID
}

// Run plays the effect steps and commits the era change. Cancelling ctx
// during the steps refunds the cost and leaves the current era untouched.
func (j *Journey) Run(ctx context.Context) error {
	m := j.machine
	steps := m.cfg.Steps
	for step := 1; step <= steps; step++ {
		if err := m.clock.Sleep(ctx, m.cfg.StepDelay); err != nil {
			return j.abort(ctx, err)
		}
		m.lock.Lock()
		m.bus.Emit(ctx, event.TravelStep{To: j.era.ID, Step: step, Steps: steps})
		m.lock.Unlock()
	}
	return j.commit(ctx)
}

func (j *Journey) commit(ctx context.Context) error {
	m := j.machine
	m.lock.Lock()
	defer m.lock.Unlock()

	// a load or new game while in flight already cleared the flag and the charge
	if !m.Traveling() {
		err := fmt.Errorf("%w: session state was replaced", domain.ErrTravelInterrupted)
		return m.reject(ctx, j.era.ID, err)
	}

	updates := map[string]any{
		domain.PathCurrentEra:        j.era.ID,
		domain.PathPreviousEra:       j.from,
		domain.PathEffects:           j.era.Effects,
		domain.PathCooldownRemaining: m.cfg.Cooldown.Milliseconds(),
		domain.PathTraveling:         false,
	}
	if err := m.store.BatchUpdate(updates, store.BatchOptions{Immediate: true, SkipHistory: true}); err != nil {
		logger.FromContext(ctx).Error("Failed to commit era change", "to", j.era.ID, "error", err)
		m.refund(ctx, j.era.TravelCost)
		m.clearTraveling(ctx)
		m.store.ClearHistory()
		return m.reject(ctx, j.era.ID, err)
	}

	logger.FromContext(ctx).Info(LogMsgTravelCompleted, "from", j.from, "to", j.era.ID)
	m.bus.Emit(ctx, event.TravelSuccess{From: j.from, To: j.era.ID, Effects: j.era.Effects})
	// snapshots taken in flight hold the charge without the era change, and
	// unlocks granted on arrival belong to the journey
	m.store.ClearHistory()
	return nil
}

func (j *Journey) abort(ctx context.Context, cause error) error {
	m := j.machine
	m.lock.Lock()
	defer m.lock.Unlock()

	// use a context that survives the cancellation for the cleanup path
	ctx = context.WithoutCancel(ctx)
	if m.Traveling() {
		m.refund(ctx, j.era.TravelCost)
		m.clearTraveling(ctx)
		m.store.ClearHistory()
	}
	logger.FromContext(ctx).Warn(LogMsgTravelInterrupted, "to", j.era.ID, "cause", cause)
	return m.reject(ctx, j.era.ID, fmt.Errorf("%w: %v", domain.ErrTravelInterrupted, cause))
}

func (m *Machine) clearTraveling(ctx context.Context) {
	if err := m.store.Set(domain.PathTraveling, false, store.SetOptions{SkipHistory: true}); err != nil {
		logger.FromContext(ctx).Error("Failed to clear traveling flag", "error", err)
	}
}
