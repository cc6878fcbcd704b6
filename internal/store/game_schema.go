package store

import (
	"fmt"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
)

// GameSchema binds the game's root aggregate types to their store paths
func GameSchema() *Schema {
	s := NewSchema(domain.RootKeys...)

	RegisterVar[int](s, domain.PathVersion, "gte=1")
	RegisterVar[string](s, domain.PathTimestamp, "omitempty,datetime=2006-01-02T15:04:05Z07:00")

	Register[domain.Player](s, domain.PathPlayer)
	RegisterVar[int](s, domain.PathExperience, "gte=0")
	RegisterVar[int](s, domain.PathLevel, "gte=1")
	Register[domain.Inventory](s, domain.PathInventory)
	RegisterVar[map[string]int](s, domain.PathResources, "dive,gte=0")
	RegisterVar[map[string]int](s, domain.PathSeeds, "dive,gte=0")
	RegisterVar[int](s, domain.PathResources+".*", "gte=0")
	RegisterVar[int](s, domain.PathSeeds+".*", "gte=0")
	RegisterVar[[]string](s, domain.PathUnlockedEras, "dive,required")
	RegisterVar[[]string](s, domain.PathAchievements, "dive,required")
	Register[domain.PlayerStats](s, domain.PathStats)

	Register[domain.Farm](s, domain.PathFarm)
	Register[[]domain.Plot](s, domain.PathPlots, func(plots []domain.Plot) error {
		for i, p := range plots {
			if err := checkPlot(p); err != nil {
				return fmt.Errorf("plot %d: %w", i, err)
			}
		}
		return nil
	})
	Register[domain.Plot](s, domain.PathPlots+".*", checkPlot)

	Register[domain.TimeState](s, domain.PathTime)
	RegisterVar[string](s, domain.PathCurrentEra, "required")
	RegisterVar[int64](s, domain.PathCooldownRemaining, "gte=0")

	Register[domain.World](s, domain.PathWorld)
	Register[domain.EraState](s, domain.PathEras+".*")
	Register[domain.EraEffects](s, domain.PathEffects)

	Register[domain.UIState](s, domain.PathUI)
	Register[domain.Settings](s, domain.PathSettings)
	return s
}

func checkPlot(p domain.Plot) error {
	if !p.Consistent() {
		return fmt.Errorf("state %s with plant=%t breaks the occupancy invariant", p.State, p.HasPlant())
	}
	return nil
}
