package timetravel

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/osse101/ChronoFarm_Go/internal/catalog"
	"github.com/osse101/ChronoFarm_Go/internal/clock"
	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/inventory"
	"github.com/osse101/ChronoFarm_Go/internal/logger"
	"github.com/osse101/ChronoFarm_Go/internal/stats"
	"github.com/osse101/ChronoFarm_Go/internal/store"
)

// Machine owns the era unlock flags, the current era pointer and the travel
// transition. Begin, Tick and CheckEraUnlocks expect the caller to hold lock;
// a Journey takes lock itself around each step and the final commit.
type Machine struct {
	store   *store.Store
	bus     event.Publisher
	catalog *catalog.Catalog
	inv     *inventory.Service
	clock   clock.Clock
	lock    sync.Locker
	cfg     Config
}

// NewMachine creates a travel machine. lock is the session lock that
// serializes every state mutation; nil gets a private mutex.
func NewMachine(
	s *store.Store,
	bus event.Publisher,
	cat *catalog.Catalog,
	inv *inventory.Service,
	clk clock.Clock,
	lock sync.Locker,
	cfg Config,
) *Machine {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &Machine{
		store:   s,
		bus:     bus,
		catalog: cat,
		inv:     inv,
		clock:   clk,
		lock:    lock,
		cfg:     cfg.withDefaults(),
	}
}

// Register subscribes unlock checks to the events that can satisfy an era
// requirement. They run after the stats recorder has updated the counters.
func (m *Machine) Register(bus *event.Bus) []event.ListenerID {
	return []event.ListenerID{
		event.Listen(bus, func(ctx context.Context, _ event.PlantHarvested) error {
			m.CheckEraUnlocks(ctx, TriggerHarvest)
			return nil
		}),
		event.Listen(bus, func(ctx context.Context, _ event.MinigameCompleted) error {
			m.CheckEraUnlocks(ctx, TriggerMinigame)
			return nil
		}),
		event.Listen(bus, func(ctx context.Context, _ event.AchievementUnlocked) error {
			m.CheckEraUnlocks(ctx, TriggerAchievement)
			return nil
		}),
		event.Listen(bus, func(ctx context.Context, _ event.TravelSuccess) error {
			m.CheckEraUnlocks(ctx, TriggerTravel)
			return nil
		}),
		event.Listen(bus, func(ctx context.Context, _ event.InventoryChanged) error {
			m.CheckEraUnlocks(ctx, TriggerInventory)
			return nil
		}),
	}
}

// Current returns the current era id
func (m *Machine) Current() string {
	ts, _ := store.GetAs[domain.TimeState](m.store, domain.PathTime)
	return ts.CurrentEra
}

// Traveling reports whether a journey is in flight
func (m *Machine) Traveling() bool {
	traveling, _ := store.GetAs[bool](m.store, domain.PathTraveling)
	return traveling
}

// CooldownRemaining returns the time left before the next journey
func (m *Machine) CooldownRemaining() time.Duration {
	ms, _ := store.GetAs[int64](m.store, domain.PathCooldownRemaining)
	return time.Duration(ms) * time.Millisecond
}

// Unlocked reports whether an era is open for travel
func (m *Machine) Unlocked(eraID string) bool {
	st, _ := store.GetAs[domain.EraState](m.store, domain.PathEras+"."+eraID)
	return st.Unlocked
}

// Eras returns every era in travel order joined with its live flags
func (m *Machine) Eras() []domain.EraStatus {
	current := m.Current()
	states, _ := store.GetAs[map[string]domain.EraState](m.store, domain.PathEras)

	out := make([]domain.EraStatus, 0, len(m.catalog.EraIDs()))
	for _, e := range m.catalog.Eras() {
		e.Unlocked = states[e.ID].Unlocked
		out = append(out, domain.EraStatus{
			Era:         e,
			Current:     e.ID == current,
			Requirement: domain.SpecOf(e.Requirement),
		})
	}
	return out
}

// TravelTo runs a complete journey. The caller must not hold the lock.
func (m *Machine) TravelTo(ctx context.Context, eraID string) error {
	m.lock.Lock()
	j, err := m.Begin(ctx, eraID)
	m.lock.Unlock()
	if err != nil {
		return err
	}
	return j.Run(ctx)
}

// Begin validates a travel request, charges the cost and marks the session
// as traveling. On any error nothing has been charged.
func (m *Machine) Begin(ctx context.Context, eraID string) (*Journey, error) {
	ts, _ := store.GetAs[domain.TimeState](m.store, domain.PathTime)

	if ts.Traveling {
		return nil, m.reject(ctx, eraID, domain.ErrAlreadyTraveling)
	}
	era, ok := m.catalog.Era(eraID)
	if !ok {
		logger.FromContext(ctx).Error("Travel to unknown era", "era", eraID)
		return nil, m.reject(ctx, eraID, fmt.Errorf("%w: %s", domain.ErrUnknownEra, eraID))
	}
	if eraID == ts.CurrentEra {
		return nil, m.reject(ctx, eraID, fmt.Errorf("%w: %s", domain.ErrAlreadyInEra, eraID))
	}
	if !m.Unlocked(eraID) {
		return nil, m.reject(ctx, eraID, LockedError{EraID: eraID, Requirement: era.Requirement})
	}
	if ts.CooldownRemainingMs > 0 {
		return nil, m.reject(ctx, eraID, CooldownError{Remaining: time.Duration(ts.CooldownRemainingMs) * time.Millisecond})
	}
	if !m.inv.CanAfford(era.TravelCost) {
		return nil, m.reject(ctx, eraID, fmt.Errorf("%w: travel to %s", domain.ErrInsufficientResources, eraID))
	}

	// the charge is never an undo step of its own
	if err := m.inv.SpendLive(ctx, era.TravelCost, inventory.SourceTravel); err != nil {
		return nil, m.reject(ctx, eraID, err)
	}
	if err := m.store.Set(domain.PathTraveling, true, store.SetOptions{SkipHistory: true}); err != nil {
		m.refund(ctx, era.TravelCost)
		return nil, m.reject(ctx, eraID, err)
	}

	logger.FromContext(ctx).Info(LogMsgTravelStarted, "from", ts.CurrentEra, "to", eraID)
	m.bus.Emit(ctx, event.TravelStarted{From: ts.CurrentEra, To: eraID, Cost: era.TravelCost})
	return &Journey{machine: m, from: ts.CurrentEra, era: era}, nil
}

// Tick counts the cooldown down by a wall-clock delta
func (m *Machine) Tick(ctx context.Context, delta time.Duration) {
	remaining, _ := store.GetAs[int64](m.store, domain.PathCooldownRemaining)
	if remaining <= 0 || delta <= 0 {
		return
	}
	next := max(0, remaining-delta.Milliseconds())
	if err := m.store.Set(domain.PathCooldownRemaining, next, store.SetOptions{SkipHistory: true}); err != nil {
		logger.FromContext(ctx).Error("Failed to update travel cooldown", "error", err)
		return
	}
	if next == 0 {
		m.bus.Emit(ctx, event.TravelCooldownReady{Era: m.Current()})
	}
}

// CheckEraUnlocks unlocks every locked era whose requirement now holds and
// returns the newly unlocked ids. Unlocked eras are never re-evaluated.
func (m *Machine) CheckEraUnlocks(ctx context.Context, trigger string) []string {
	states, _ := store.GetAs[map[string]domain.EraState](m.store, domain.PathEras)
	progress := stats.Progress(m.store, m.catalog.EraIDs())

	var unlocked []domain.Era
	for _, era := range m.catalog.Eras() {
		if states[era.ID].Unlocked {
			continue
		}
		if domain.Satisfied(era.Requirement, progress) {
			unlocked = append(unlocked, era)
		}
	}
	if len(unlocked) == 0 {
		return nil
	}

	player, _ := store.GetAs[domain.Player](m.store, domain.PathPlayer)
	list := player.UnlockedEras
	updates := make(map[string]any, len(unlocked)+1)
	ids := make([]string, 0, len(unlocked))
	for _, era := range unlocked {
		updates[domain.PathEras+"."+era.ID] = domain.EraState{Unlocked: true}
		if !slices.Contains(list, era.ID) {
			list = append(list, era.ID)
		}
		ids = append(ids, era.ID)
	}
	slices.Sort(list)
	updates[domain.PathUnlockedEras] = list

	if err := m.store.BatchUpdate(updates, store.BatchOptions{Immediate: true, SkipHistory: true}); err != nil {
		logger.FromContext(ctx).Error("Failed to unlock eras", "eras", ids, "error", err)
		return nil
	}
	for _, era := range unlocked {
		logger.FromContext(ctx).Info(LogMsgEraUnlocked, "era", era.ID, "trigger", trigger)
		m.bus.Emit(ctx, event.EraUnlocked{EraID: era.ID, Name: era.Name, Trigger: trigger})
	}
	return ids
}

// reject emits the structured failure and returns err
func (m *Machine) reject(ctx context.Context, eraID string, err error) error {
	failed := event.TravelFailed{
		To:      eraID,
		Reason:  domain.ReasonFor(err),
		Message: err.Error(),
	}
	var locked LockedError
	if errors.As(err, &locked) {
		spec := domain.SpecOf(locked.Requirement)
		failed.Requirement = &spec
	}
	var cooldown CooldownError
	if errors.As(err, &cooldown) {
		failed.RemainingMs = cooldown.Remaining.Milliseconds()
	}

	logger.FromContext(ctx).Info(LogMsgTravelRejected, "to", eraID, "reason", failed.Reason)
	m.bus.Emit(ctx, failed)
	return err
}

func (m *Machine) refund(ctx context.Context, cost map[string]int) {
	if len(cost) == 0 {
		return
	}
	if err := m.inv.RefundLive(ctx, cost); err != nil {
		logger.FromContext(ctx).Error("Failed to refund travel cost", "cost", cost, "error", err)
	}
}
