package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/ChronoFarm_Go/internal/achievement"
	"github.com/osse101/ChronoFarm_Go/internal/catalog"
	"github.com/osse101/ChronoFarm_Go/internal/clock"
	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/farm"
	"github.com/osse101/ChronoFarm_Go/internal/inventory"
	"github.com/osse101/ChronoFarm_Go/internal/logger"
	"github.com/osse101/ChronoFarm_Go/internal/save"
	"github.com/osse101/ChronoFarm_Go/internal/stats"
	"github.com/osse101/ChronoFarm_Go/internal/store"
	"github.com/osse101/ChronoFarm_Go/internal/timetravel"
	"github.com/osse101/ChronoFarm_Go/internal/utils"
)

// ErrPersistenceDisabled is returned by Save and Load on a session built
// without a save service
var ErrPersistenceDisabled = errors.New("persistence is not configured")

// Service defines the game operations exposed to drivers and transports
type Service interface {
	State() map[string]any
	StateAt(path string) (any, bool)
	Snapshot() (domain.GameState, error)
	Plots() []domain.Plot
	Plot(id int) (domain.Plot, error)
	Inventory() domain.Inventory
	Stats() domain.PlayerStats
	Eras() []domain.EraStatus
	Achievements() []achievement.Status
	Species() []domain.Species

	PlantSeed(ctx context.Context, plotID int, species string) error
	WaterPlant(ctx context.Context, plotID int) error
	HarvestPlant(ctx context.Context, plotID int) (*domain.HarvestRewards, error)
	Accelerate(ctx context.Context, plotID int, skip time.Duration) (float64, error)

	TravelTo(ctx context.Context, eraID string) error
	BeginTravel(ctx context.Context, eraID string) (*timetravel.Journey, error)
	CompleteMinigame(ctx context.Context, result domain.MinigameResult) error

	Tick(ctx context.Context) time.Duration
	Undo(ctx context.Context) bool
	Redo(ctx context.Context) bool

	NewGame(ctx context.Context) error
	Save(ctx context.Context) (save.File, error)
	Load(ctx context.Context) (save.Result, error)
}

// Session is one running game. Every state mutation is serialized by mu;
// a journey releases it between effect steps.
type Session struct {
	mu      sync.Mutex
	store   *store.Store
	bus     *event.Bus
	catalog *catalog.Catalog
	clock   clock.Clock
	saves   *save.Service
	cfg     Config

	inv          *inventory.Service
	farm         *farm.Engine
	machine      *timetravel.Machine
	stats        *stats.Recorder
	achievements *achievement.Tracker
	listeners    []event.ListenerID

	validate *validator.Validate
}

// New wires the core components around an existing store and bus. saves may
// be nil, which disables Save and Load.
func New(
	s *store.Store,
	bus *event.Bus,
	cat *catalog.Catalog,
	clk clock.Clock,
	rng utils.Randomizer,
	saves *save.Service,
	cfg Config,
) (*Session, error) {
	sess := &Session{
		store:    s,
		bus:      bus,
		catalog:  cat,
		clock:    clk,
		saves:    saves,
		cfg:      cfg,
		validate: validator.New(),
	}
	sess.inv = inventory.NewService(s, bus)

	engine, err := farm.NewEngine(s, bus, cat, sess.inv, clk, rng, cfg.Farm)
	if err != nil {
		return nil, err
	}
	sess.farm = engine
	sess.machine = timetravel.NewMachine(s, bus, cat, sess.inv, clk, &sess.mu, cfg.Travel)
	sess.stats = stats.NewRecorder(s)
	sess.achievements = achievement.NewTracker(s, bus, cat, sess.inv)

	// counters first, then unlock checks that read them
	sess.listeners = append(sess.listeners, sess.stats.Register(bus)...)
	sess.listeners = append(sess.listeners, sess.machine.Register(bus)...)
	sess.listeners = append(sess.listeners, sess.achievements.Register(bus)...)
	return sess, nil
}

// DefaultState builds the state of a brand-new game
func DefaultState(cat *catalog.Catalog, now time.Time, cfg Config) domain.GameState {
	st := domain.NewGameState(domain.NewGameOptions{
		GridSize:    cfg.GridSize,
		GridColumns: cfg.GridColumns,
		Eras:        cat.InitialEraFlags(),
		StartingAt:  now,
	})
	if era, ok := cat.Era(st.Time.CurrentEra); ok {
		st.World.Effects = era.Effects.Normalize()
	}
	st.Time.LastTick = now
	return st
}

// Close unregisters the session's listeners
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.listeners {
		s.bus.Remove(id)
	}
	s.listeners = nil
	s.farm.Close()
}

// State returns a deep copy of the whole state tree
func (s *Session) State() map[string]any {
	return s.store.GetState()
}

// StateAt returns the value at a dot path of the state tree
func (s *Session) StateAt(path string) (any, bool) {
	if !s.store.Has(path) {
		return nil, false
	}
	return s.store.Get(path, nil), true
}

// Snapshot returns the typed state
func (s *Session) Snapshot() (domain.GameState, error) {
	var st domain.GameState
	err := s.store.Snapshot(&st)
	return st, err
}

// Plots returns every plot in id order
func (s *Session) Plots() []domain.Plot { return s.farm.Plots() }

// Plot returns one plot
func (s *Session) Plot(id int) (domain.Plot, error) { return s.farm.Plot(id) }

// Inventory returns the player's balances
func (s *Session) Inventory() domain.Inventory { return s.inv.Snapshot() }

// Stats returns the cumulative counters
func (s *Session) Stats() domain.PlayerStats { return stats.Load(s.store) }

// Eras returns every era with its live flags
func (s *Session) Eras() []domain.EraStatus { return s.machine.Eras() }

// Achievements returns every achievement with its unlock flag
func (s *Session) Achievements() []achievement.Status { return s.achievements.Statuses() }

// Species returns the plant catalog
func (s *Session) Species() []domain.Species { return s.catalog.AllSpecies() }

// PlantSeed plants one seed into an empty plot
func (s *Session) PlantSeed(ctx context.Context, plotID int, species string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.farm.PlantSeed(ctx, plotID, species)
}

// WaterPlant waters a growing plant
func (s *Session) WaterPlant(ctx context.Context, plotID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.farm.WaterPlant(ctx, plotID)
}

// HarvestPlant harvests a ready plant
func (s *Session) HarvestPlant(ctx context.Context, plotID int) (*domain.HarvestRewards, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.farm.HarvestPlant(ctx, plotID)
}

// Accelerate skips a plant's growth forward, paid in temporal pulses
func (s *Session) Accelerate(ctx context.Context, plotID int, skip time.Duration) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.farm.AccelerateWithPulses(ctx, plotID, skip)
}

// TravelTo runs a complete journey, holding the lock only while state changes
func (s *Session) TravelTo(ctx context.Context, eraID string) error {
	return s.machine.TravelTo(ctx, eraID)
}

// BeginTravel charges and starts a journey without playing it. The caller
// runs the returned journey.
func (s *Session) BeginTravel(ctx context.Context, eraID string) (*timetravel.Journey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine.Begin(ctx, eraID)
}

// CompleteMinigame reports an external minigame result
func (s *Session) CompleteMinigame(ctx context.Context, result domain.MinigameResult) error {
	if err := s.validate.Struct(result); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	logger.FromContext(ctx).Info(LogMsgMinigameReport, "minigame", result.MinigameID, "success", result.Success, "score", result.Score)
	s.bus.Emit(ctx, event.MinigameCompleted{MinigameResult: result})
	return nil
}

// Tick advances the simulation by the wall-clock time since the previous
// tick and returns the simulated delta
func (s *Session) Tick(ctx context.Context) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	last, _ := store.GetAs[time.Time](s.store, domain.PathLastTick)
	var delta time.Duration
	if !last.IsZero() {
		delta = min(max(now.Sub(last), 0), MaxTickDelta)
	}

	if err := s.farm.Update(ctx, delta); err != nil {
		logger.FromContext(ctx).Error(LogMsgTickFailed, "error", err)
	}
	s.machine.Tick(ctx, delta)
	if err := s.store.Set(domain.PathLastTick, now, store.SetOptions{SkipHistory: true, SkipNotify: true}); err != nil {
		logger.FromContext(ctx).Error(LogMsgTickFailed, "error", err)
	}
	return delta
}

// Undo steps the state back one player action. It is refused while a
// journey is in flight.
func (s *Session) Undo(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveHistory(ctx, s.store.Undo, LogMsgUndo)
}

// Redo re-applies an undone action
func (s *Session) Redo(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moveHistory(ctx, s.store.Redo, LogMsgRedo)
}

// moveHistory runs an undo or redo move. The travel flag and cooldown are
// live state and keep their present values across the move.
func (s *Session) moveHistory(ctx context.Context, move func() bool, msg string) bool {
	if s.machine.Traveling() {
		logger.FromContext(ctx).Info(LogMsgHistoryBlocked)
		return false
	}
	cooldown := s.machine.CooldownRemaining().Milliseconds()
	if !move() {
		return false
	}
	live := map[string]any{
		domain.PathTraveling:         false,
		domain.PathCooldownRemaining: cooldown,
	}
	if err := s.store.BatchUpdate(live, store.BatchOptions{Immediate: true, SkipHistory: true}); err != nil {
		logger.FromContext(ctx).Error("Failed to restore travel state", "error", err)
	}
	logger.FromContext(ctx).Info(msg)
	return true
}

// NewGame replaces the whole state with a fresh game and clears history
func (s *Session) NewGame(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := DefaultState(s.catalog, s.clock.Now(), s.cfg)
	if err := s.replace(st); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgNewGame, "era", st.Time.CurrentEra, "plots", len(st.Farm.Plots))
	s.bus.Emit(ctx, event.GameReset{Era: st.Time.CurrentEra})
	return nil
}

// Save persists the current state
func (s *Session) Save(ctx context.Context) (save.File, error) {
	if s.saves == nil {
		return save.File{}, ErrPersistenceDisabled
	}
	ctx = logger.WithSessionID(ctx, s.saves.Slot())
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.Snapshot()
	if err != nil {
		return save.File{}, err
	}
	f, err := s.saves.Save(ctx, st)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgSaveFailed, "error", err)
		return save.File{}, err
	}
	s.bus.Emit(ctx, event.GameSaved{Slot: s.saves.Slot(), Version: f.Version, SavedAt: f.Timestamp})
	return f, nil
}

// Load restores the slot through the save fallback chain. A journey in
// flight when the save was taken is dropped, and the era's effects are
// re-derived from the catalog.
func (s *Session) Load(ctx context.Context) (save.Result, error) {
	if s.saves == nil {
		return save.Result{}, ErrPersistenceDisabled
	}
	ctx = logger.WithSessionID(ctx, s.saves.Slot())
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.saves.Load(ctx)
	if err != nil {
		logger.FromContext(ctx).Error(LogMsgLoadFailed, "error", err)
		return save.Result{}, err
	}
	st := res.File.GameState()
	if era, ok := s.catalog.Era(st.Time.CurrentEra); ok {
		st.World.Effects = era.Effects.Normalize()
	}
	st.Time.LastTick = s.clock.Now()
	if err := s.replace(st); err != nil {
		logger.FromContext(ctx).Error(LogMsgLoadFailed, "error", err)
		return save.Result{}, err
	}

	// catalog changes between versions can make new unlocks reachable
	s.machine.CheckEraUnlocks(ctx, timetravel.TriggerLoad)
	s.achievements.Evaluate(ctx, event.TopicGameLoaded)
	s.store.ClearHistory()

	logger.FromContext(ctx).Info(LogMsgGameLoaded, "source", res.Source, "fromVersion", res.FromVersion)
	s.bus.Emit(ctx, event.GameLoaded{Slot: s.saves.Slot(), Version: res.File.Version, Source: res.Source})
	return res, nil
}

func (s *Session) replace(st domain.GameState) error {
	if err := s.store.SetState(st, store.SetOptions{}); err != nil {
		return err
	}
	s.store.ClearHistory()
	return nil
}
