package stats

import (
	"context"
	"fmt"
	"slices"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/inventory"
	"github.com/osse101/ChronoFarm_Go/internal/logger"
	"github.com/osse101/ChronoFarm_Go/internal/store"
)

// Recorder maintains the cumulative counters in player.stats. It listens at
// recorder priority so counters are current before unlock checks run.
type Recorder struct {
	store *store.Store
}

// NewRecorder creates a new stats recorder
func NewRecorder(s *store.Store) *Recorder {
	return &Recorder{store: s}
}

// Register subscribes the recorder to the events that move counters
func (r *Recorder) Register(bus *event.Bus) []event.ListenerID {
	prio := event.WithPriority(event.PriorityRecorder)
	return []event.ListenerID{
		event.Listen(bus, r.HandlePlanted, prio),
		event.Listen(bus, r.HandleHarvested, prio),
		event.Listen(bus, r.HandleInventoryChanged, prio),
		event.Listen(bus, r.HandleTravelSuccess, prio),
		event.Listen(bus, r.HandleMinigameCompleted, prio),
	}
}

// HandlePlanted counts seeds put into the ground
func (r *Recorder) HandlePlanted(ctx context.Context, _ event.PlantPlanted) error {
	return r.update(ctx, CounterPlanted, func(st *domain.PlayerStats) bool {
		st.PlantsPlanted++
		return true
	})
}

// HandleHarvested counts harvests per species and in total
func (r *Recorder) HandleHarvested(ctx context.Context, p event.PlantHarvested) error {
	return r.update(ctx, CounterHarvests, func(st *domain.PlayerStats) bool {
		st.Harvested[p.Plant.Type]++
		st.TotalHarvests++
		return true
	})
}

// HandleInventoryChanged accumulates resources earned. Spending and refunds
// do not count.
func (r *Recorder) HandleInventoryChanged(ctx context.Context, p event.InventoryChanged) error {
	if p.Source == inventory.SourceRefund {
		return nil
	}
	return r.update(ctx, CounterEarned, func(st *domain.PlayerStats) bool {
		changed := false
		for id, n := range p.Resources {
			if n > 0 {
				st.ResourcesEarned[id] += n
				changed = true
			}
		}
		return changed
	})
}

// HandleTravelSuccess counts journeys and visited eras
func (r *Recorder) HandleTravelSuccess(ctx context.Context, p event.TravelSuccess) error {
	return r.update(ctx, CounterTravels, func(st *domain.PlayerStats) bool {
		st.Travels++
		if !slices.Contains(st.ErasVisited, p.To) {
			st.ErasVisited = append(st.ErasVisited, p.To)
			slices.Sort(st.ErasVisited)
		}
		return true
	})
}

// HandleMinigameCompleted flags successfully completed minigames
func (r *Recorder) HandleMinigameCompleted(ctx context.Context, p event.MinigameCompleted) error {
	if !p.Success {
		return nil
	}
	return r.update(ctx, CounterMinigames, func(st *domain.PlayerStats) bool {
		if st.Minigames[p.MinigameID] {
			return false
		}
		st.Minigames[p.MinigameID] = true
		return true
	})
}

// update applies fn to the current counters. Counters follow the action that
// moved them, so the write joins that action's undo step.
func (r *Recorder) update(ctx context.Context, counter string, fn func(*domain.PlayerStats) bool) error {
	st := Load(r.store)
	if !fn(&st) {
		return nil
	}
	if err := r.store.Set(domain.PathStats, st, store.SetOptions{SkipHistory: true}); err != nil {
		logger.FromContext(ctx).Error(LogMsgFailedToWriteCounter, "counter", counter, "error", err)
		return fmt.Errorf("failed to record %s: %w", counter, err)
	}
	logger.FromContext(ctx).Debug(LogMsgCounterUpdated, "counter", counter)
	return nil
}

// Load reads player.stats with every map allocated
func Load(s *store.Store) domain.PlayerStats {
	st, _ := store.GetAs[domain.PlayerStats](s, domain.PathStats)
	if st.Harvested == nil {
		st.Harvested = map[string]int{}
	}
	if st.ResourcesEarned == nil {
		st.ResourcesEarned = map[string]int{}
	}
	if st.Minigames == nil {
		st.Minigames = map[string]bool{}
	}
	return st
}

// Progress snapshots every counter unlock requirements read. knownEras is the
// full era list used by the visit-every-era requirement.
func Progress(s *store.Store, knownEras []string) domain.Progress {
	player, _ := store.GetAs[domain.Player](s, domain.PathPlayer)
	st := Load(s)

	visited := make(map[string]bool, len(st.ErasVisited))
	for _, id := range st.ErasVisited {
		visited[id] = true
	}
	achievements := make(map[string]bool, len(player.Achievements))
	for _, id := range player.Achievements {
		achievements[id] = true
	}

	return domain.Progress{
		Resources:       player.Inventory.Resources,
		ResourcesEarned: st.ResourcesEarned,
		Harvested:       st.Harvested,
		TotalHarvests:   st.TotalHarvests,
		PlantsPlanted:   st.PlantsPlanted,
		Minigames:       st.Minigames,
		Achievements:    achievements,
		ErasVisited:     visited,
		KnownEras:       knownEras,
	}
}
