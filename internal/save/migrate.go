package save

import (
	"fmt"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
)

// migrations upgrade a raw save from the version it is keyed by to the next
var migrations = map[int]func(raw map[string]any) error{
	1: migrateV1,
}

func migrate(raw map[string]any, from int) error {
	for v := from; v < domain.SaveVersion; v++ {
		step, ok := migrations[v]
		if !ok {
			return fmt.Errorf("no migration from version %d", v)
		}
		if err := step(raw); err != nil {
			return fmt.Errorf("migrate from version %d: %w", v, err)
		}
		raw["version"] = float64(v + 1)
	}
	return nil
}

// migrateV1 upgrades the first save format. Version 1 kept the travel
// cooldown in seconds under time.travelCooldown and had no world.eras flags;
// the unlocked list on the player was the only record.
func migrateV1(raw map[string]any) error {
	if t, ok := raw["time"].(map[string]any); ok {
		if secs, ok := t["travelCooldown"].(float64); ok {
			t["cooldownRemainingMs"] = secs * 1000
			delete(t, "travelCooldown")
		}
	}

	player, _ := raw["player"].(map[string]any)
	world, ok := raw["world"].(map[string]any)
	if !ok {
		world = map[string]any{}
		raw["world"] = world
	}
	if _, ok := world["eras"]; ok || player == nil {
		return nil
	}
	list, _ := player["unlockedEras"].([]any)
	eras := make(map[string]any, len(list))
	for _, id := range list {
		s, ok := id.(string)
		if !ok {
			return fmt.Errorf("unlockedEras holds %T", id)
		}
		eras[s] = map[string]any{"unlocked": true}
	}
	world["eras"] = eras
	return nil
}
