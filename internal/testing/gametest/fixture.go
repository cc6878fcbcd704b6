// Package gametest builds a fresh game world for package tests: a schema
// validated store holding a new game, an event bus with a recorder attached,
// the embedded catalog and a simulated clock.
package gametest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/ChronoFarm_Go/internal/catalog"
	"github.com/osse101/ChronoFarm_Go/internal/clock"
	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/store"
)

// Epoch is the simulated start time of every fixture
var Epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// Fixture is a wired set of core collaborators
type Fixture struct {
	Store   *store.Store
	Bus     *event.Bus
	Catalog *catalog.Catalog
	Clock   *clock.SimulatedClock
	Events  *Recorder
}

// Option adjusts the initial game state
type Option func(*domain.GameState)

// WithSeeds overrides seed counts
func WithSeeds(seeds map[string]int) Option {
	return func(s *domain.GameState) {
		for k, v := range seeds {
			s.Player.Inventory.Seeds[k] = v
		}
	}
}

// WithResources overrides resource balances
func WithResources(res map[string]int) Option {
	return func(s *domain.GameState) {
		for k, v := range res {
			s.Player.Inventory.Resources[k] = v
		}
	}
}

// WithUnlocked marks eras unlocked
func WithUnlocked(eras ...string) Option {
	return func(s *domain.GameState) {
		for _, id := range eras {
			s.World.Eras[id] = domain.EraState{Unlocked: true}
			s.Player.UnlockedEras = append(s.Player.UnlockedEras, id)
		}
	}
}

// WithGrid sets the grid size
func WithGrid(size int) Option {
	return func(s *domain.GameState) {
		plots := make([]domain.Plot, size)
		for i := range plots {
			plots[i] = domain.NewEmptyPlot(i, s.Farm.GridColumns)
		}
		s.Farm.Plots = plots
	}
}

// New builds a fixture holding a new game
func New(t testing.TB, opts ...Option) *Fixture {
	t.Helper()

	cat, err := catalog.Load()
	require.NoError(t, err)

	state := domain.NewGameState(domain.NewGameOptions{
		GridSize:   8,
		Eras:       cat.InitialEraFlags(),
		StartingAt: Epoch,
	})
	for _, opt := range opts {
		opt(&state)
	}

	s, err := store.New(state, store.Options{Schema: store.GameSchema(), BatchDebounce: -1})
	require.NoError(t, err)

	clk := clock.NewSimulatedClock(Epoch)
	bus := event.NewBus(event.WithClock(clk.Now))
	rec := &Recorder{}
	bus.On(event.PatternAll, rec.handle, event.WithPriority(event.PriorityRecorder*10))

	return &Fixture{Store: s, Bus: bus, Catalog: cat, Clock: clk, Events: rec}
}

// Recorder captures every event emitted on the bus
type Recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *Recorder) handle(_ context.Context, ev event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

// All returns every recorded event in emission order
func (r *Recorder) All() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Event(nil), r.events...)
}

// Topics returns the recorded topics in emission order
func (r *Recorder) Topics() []event.Topic {
	all := r.All()
	out := make([]event.Topic, len(all))
	for i, ev := range all {
		out[i] = ev.Topic
	}
	return out
}

// Count returns how many events of a topic were recorded
func (r *Recorder) Count(topic event.Topic) int {
	n := 0
	for _, ev := range r.All() {
		if ev.Topic == topic {
			n++
		}
	}
	return n
}

// Reset forgets everything recorded so far
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}

// Of returns the payloads of one type in emission order
func Of[P event.Payload](r *Recorder) []P {
	var out []P
	for _, ev := range r.All() {
		if p, ok := ev.Payload.(P); ok {
			out = append(out, p)
		}
	}
	return out
}

// Last returns the most recent payload of a type
func Last[P event.Payload](t testing.TB, r *Recorder) P {
	t.Helper()
	all := Of[P](r)
	require.NotEmpty(t, all, "no %T recorded", *new(P))
	return all[len(all)-1]
}
