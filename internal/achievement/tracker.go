package achievement

import (
	"context"
	"slices"
	"sync"

	"github.com/osse101/ChronoFarm_Go/internal/catalog"
	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/inventory"
	"github.com/osse101/ChronoFarm_Go/internal/logger"
	"github.com/osse101/ChronoFarm_Go/internal/stats"
	"github.com/osse101/ChronoFarm_Go/internal/store"
)

// Status is an achievement joined with its live unlock flag and the
// requirement in its serializable form
type Status struct {
	domain.Achievement
	Unlocked    bool                   `json:"unlocked"`
	Requirement domain.RequirementSpec `json:"requirement"`
}

// Tracker unlocks achievements once their requirement holds and pays the
// reward exactly once. Unlocks are one-way.
type Tracker struct {
	store   *store.Store
	bus     event.Publisher
	catalog *catalog.Catalog
	inv     *inventory.Service

	mu       sync.Mutex
	inflight map[string]bool
}

// NewTracker creates an achievement tracker
func NewTracker(s *store.Store, bus event.Publisher, cat *catalog.Catalog, inv *inventory.Service) *Tracker {
	return &Tracker{
		store:    s,
		bus:      bus,
		catalog:  cat,
		inv:      inv,
		inflight: make(map[string]bool),
	}
}

// Register subscribes the tracker to every topic that can move a counter an
// achievement watches. Listeners run at default priority, after the stats
// recorder.
func (t *Tracker) Register(bus *event.Bus) []event.ListenerID {
	return []event.ListenerID{
		event.Listen(bus, func(ctx context.Context, _ event.PlantPlanted) error {
			t.Evaluate(ctx, event.TopicPlantPlanted)
			return nil
		}),
		event.Listen(bus, func(ctx context.Context, _ event.PlantHarvested) error {
			t.Evaluate(ctx, event.TopicPlantHarvested)
			return nil
		}),
		event.Listen(bus, func(ctx context.Context, _ event.InventoryChanged) error {
			t.Evaluate(ctx, event.TopicInventoryChanged)
			return nil
		}),
		event.Listen(bus, func(ctx context.Context, _ event.TravelSuccess) error {
			t.Evaluate(ctx, event.TopicTravelSuccess)
			return nil
		}),
		event.Listen(bus, func(ctx context.Context, _ event.AchievementUnlocked) error {
			t.Evaluate(ctx, event.TopicAchievementUnlocked)
			return nil
		}),
		event.Listen(bus, t.HandleMinigameCompleted),
	}
}

// HandleMinigameCompleted pays the rewards of a successful minigame, then
// re-evaluates achievements
func (t *Tracker) HandleMinigameCompleted(ctx context.Context, p event.MinigameCompleted) error {
	if p.Success && !p.Rewards.Empty() {
		if err := t.inv.Grant(ctx, p.Rewards, inventory.SourceMinigame); err != nil {
			return err
		}
		logger.FromContext(ctx).Info(LogMsgMinigameReward, "minigame", p.MinigameID, "score", p.Score)
	}
	t.Evaluate(ctx, event.TopicMinigameCompleted)
	return nil
}

// Unlocked reports whether an achievement has been earned
func (t *Tracker) Unlocked(id string) bool {
	return slices.Contains(t.unlockedList(), id)
}

// Statuses returns every achievement in catalog order with its unlock flag
func (t *Tracker) Statuses() []Status {
	list := t.unlockedList()
	all := t.catalog.Achievements()
	out := make([]Status, 0, len(all))
	for _, a := range all {
		out = append(out, Status{
			Achievement: a,
			Unlocked:    slices.Contains(list, a.ID),
			Requirement: domain.SpecOf(a.Requirement),
		})
	}
	return out
}

// Evaluate unlocks every locked achievement whose requirement now holds and
// returns the newly unlocked ids. trigger is only reported on log lines.
func (t *Tracker) Evaluate(ctx context.Context, trigger event.Topic) []string {
	progress := stats.Progress(t.store, t.catalog.EraIDs())

	var unlocked []string
	for _, a := range t.catalog.Achievements() {
		if t.Unlocked(a.ID) || t.isInflight(a.ID) {
			continue
		}
		if !domain.Satisfied(a.Requirement, progress) {
			continue
		}
		if t.unlock(ctx, a, trigger) {
			unlocked = append(unlocked, a.ID)
		}
	}
	return unlocked
}

// unlock grants the reward first and then records the id with SkipHistory so
// both land in one undo step. The inflight mark keeps the nested evaluation
// triggered by the reward's inventory event from paying twice.
func (t *Tracker) unlock(ctx context.Context, a domain.Achievement, trigger event.Topic) bool {
	t.setInflight(a.ID, true)
	defer t.setInflight(a.ID, false)

	log := logger.FromContext(ctx)
	if err := t.inv.Grant(ctx, a.Reward, inventory.SourceAchievement); err != nil {
		log.Error(LogMsgRewardFailed, "achievement", a.ID, "error", err)
		return false
	}

	list := append(t.unlockedList(), a.ID)
	if err := t.store.Set(domain.PathAchievements, list, store.SetOptions{SkipHistory: true}); err != nil {
		log.Error(LogMsgFailedToRecord, "achievement", a.ID, "error", err)
		return false
	}

	log.Info(LogMsgAchievementUnlocked, "achievement", a.ID, "trigger", trigger)
	t.bus.Emit(ctx, event.AchievementUnlocked{
		AchievementID: a.ID,
		Name:          a.Name,
		Category:      a.Category,
		Reward:        a.Reward,
	})
	return true
}

func (t *Tracker) unlockedList() []string {
	list, _ := store.GetAs[[]string](t.store, domain.PathAchievements)
	return list
}

func (t *Tracker) isInflight(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inflight[id]
}

func (t *Tracker) setInflight(id string, v bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v {
		t.inflight[id] = true
		return
	}
	delete(t.inflight, id)
}
