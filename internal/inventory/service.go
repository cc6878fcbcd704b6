package inventory

import (
	"context"
	"fmt"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/logger"
	"github.com/osse101/ChronoFarm_Go/internal/store"
	"github.com/osse101/ChronoFarm_Go/internal/utils"
)

// Change sources carried on inventory events
const (
	SourceHarvest     = "harvest"
	SourcePlanting    = "planting"
	SourceTravel      = "travel"
	SourceRefund      = "refund"
	SourceAchievement = "achievement"
	SourceMinigame    = "minigame"
	SourceAccelerate  = "acceleration"
)

// Delta is a signed change to the inventory plus experience
type Delta struct {
	Resources  map[string]int
	Seeds      map[string]int
	Experience int
}

// Empty reports whether the delta changes nothing
func (d Delta) Empty() bool {
	return len(d.Resources) == 0 && len(d.Seeds) == 0 && d.Experience == 0
}

// Service reads and writes player balances in the store. Read-modify-write
// sequences are not atomic on their own; callers hold the session lock.
type Service struct {
	store *store.Store
	bus   event.Publisher
}

// NewService creates a new inventory service
func NewService(s *store.Store, bus event.Publisher) *Service {
	return &Service{store: s, bus: bus}
}

// Snapshot returns the current inventory
func (s *Service) Snapshot() domain.Inventory {
	inv, _ := store.GetAs[domain.Inventory](s.store, domain.PathInventory)
	if inv.Resources == nil {
		inv.Resources = map[string]int{}
	}
	if inv.Seeds == nil {
		inv.Seeds = map[string]int{}
	}
	return inv
}

// Resource returns a single resource balance
func (s *Service) Resource(id string) int {
	n, _ := store.GetAs[int](s.store, domain.PathResources+"."+id)
	return n
}

// Seeds returns a single seed count
func (s *Service) Seeds(id string) int {
	n, _ := store.GetAs[int](s.store, domain.PathSeeds+"."+id)
	return n
}

// CanAfford reports whether every cost entry is covered
func (s *Service) CanAfford(cost map[string]int) bool {
	return s.Snapshot().CanAfford(cost)
}

// Apply adds a signed delta. It fails without any change when a balance
// would go negative.
func (s *Service) Apply(ctx context.Context, d Delta, source string) error {
	return s.apply(ctx, d, source, false)
}

func (s *Service) apply(ctx context.Context, d Delta, source string, live bool) error {
	if d.Empty() {
		return nil
	}
	inv := s.Snapshot()

	resources, key, ok := utils.AddCounts(inv.Resources, d.Resources)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientResources, key)
	}
	seeds, key, ok := utils.AddCounts(inv.Seeds, d.Seeds)
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNoSeeds, key)
	}
	if d.Experience < 0 {
		return fmt.Errorf("%w: experience cannot decrease", domain.ErrInvalidAmount)
	}

	updates := map[string]any{}
	if len(d.Resources) > 0 || len(d.Seeds) > 0 {
		updates[domain.PathInventory] = domain.Inventory{Resources: resources, Seeds: seeds}
	}

	var levelUp *event.PlayerLevelUp
	if d.Experience > 0 {
		xp, _ := store.GetAs[int](s.store, domain.PathExperience)
		oldLevel, _ := store.GetAs[int](s.store, domain.PathLevel)
		xp += d.Experience
		newLevel := domain.LevelForExperience(xp)
		updates[domain.PathExperience] = xp
		updates[domain.PathLevel] = newLevel
		if newLevel > oldLevel {
			levelUp = &event.PlayerLevelUp{OldLevel: oldLevel, NewLevel: newLevel, Experience: xp}
		}
	}

	if err := s.store.BatchUpdate(updates, store.BatchOptions{Immediate: true, SkipHistory: live}); err != nil {
		logger.FromContext(ctx).Error("Failed to apply inventory change", "source", source, "error", err)
		return err
	}

	if len(d.Resources) > 0 || len(d.Seeds) > 0 {
		s.bus.Emit(ctx, event.InventoryChanged{
			Resources: nonZero(d.Resources),
			Seeds:     nonZero(d.Seeds),
			Source:    source,
		})
	}
	if levelUp != nil {
		logger.FromContext(ctx).Info("Player leveled up", "level", levelUp.NewLevel, "experience", levelUp.Experience)
		s.bus.Emit(ctx, *levelUp)
	}
	return nil
}

// Spend deducts a resource cost atomically
func (s *Service) Spend(ctx context.Context, cost map[string]int, source string) error {
	for id, amount := range cost {
		if amount < 0 {
			return fmt.Errorf("%w: negative cost for %s", domain.ErrInvalidAmount, id)
		}
	}
	return s.Apply(ctx, Delta{Resources: utils.NegateCounts(cost)}, source)
}

// SpendLive deducts a cost like Spend but folds the change into the present
// history entry instead of opening an undo step
func (s *Service) SpendLive(ctx context.Context, cost map[string]int, source string) error {
	for id, amount := range cost {
		if amount < 0 {
			return fmt.Errorf("%w: negative cost for %s", domain.ErrInvalidAmount, id)
		}
	}
	return s.apply(ctx, Delta{Resources: utils.NegateCounts(cost)}, source, true)
}

// RefundLive returns a cost taken with SpendLive
func (s *Service) RefundLive(ctx context.Context, cost map[string]int) error {
	return s.apply(ctx, Delta{Resources: utils.PositiveCounts(cost)}, SourceRefund, true)
}

// Grant adds a reward
func (s *Service) Grant(ctx context.Context, r domain.Reward, source string) error {
	return s.Apply(ctx, Delta{
		Resources:  utils.PositiveCounts(r.Resources),
		Seeds:      utils.PositiveCounts(r.Seeds),
		Experience: max(0, r.Experience),
	}, source)
}

// TakeSeed removes one seed of a species
func (s *Service) TakeSeed(ctx context.Context, species string) error {
	return s.Apply(ctx, Delta{Seeds: map[string]int{species: -1}}, SourcePlanting)
}

func nonZero(m map[string]int) map[string]int {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		if v != 0 {
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
