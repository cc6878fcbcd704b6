package save

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
)

// File is the persisted form of a game. UI selection state is not saved.
type File struct {
	ID        string           `json:"id"`
	Version   int              `json:"version"`
	Timestamp time.Time        `json:"timestamp"`
	Player    domain.Player    `json:"player"`
	Farm      domain.Farm      `json:"farm"`
	Time      domain.TimeState `json:"time"`
	World     domain.World     `json:"world"`
	Settings  domain.Settings  `json:"settings"`
}

// NewFile snapshots a game state for saving
func NewFile(st domain.GameState, now time.Time) File {
	return File{
		ID:        uuid.NewString(),
		Version:   domain.SaveVersion,
		Timestamp: now,
		Player:    st.Player,
		Farm:      st.Farm,
		Time:      st.Time,
		World:     st.World,
		Settings:  st.Settings,
	}
}

// GameState rebuilds the root aggregate
func (f File) GameState() domain.GameState {
	return domain.GameState{
		Version:   f.Version,
		Timestamp: f.Timestamp,
		Player:    f.Player,
		Farm:      f.Farm,
		Time:      f.Time,
		World:     f.World,
		Settings:  f.Settings,
	}
}

// Encode serializes a file
func Encode(f File) ([]byte, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode save: %w", err)
	}
	return data, nil
}

var fileValidator = validator.New()

// Decode parses a save of any supported version. Older versions are
// migrated step by step, missing fields take their value from defaults, and
// the traveling flag is always cleared since no journey survives a restart.
func Decode(data []byte, defaults domain.GameState) (File, int, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return File{}, 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if raw == nil {
		return File{}, 0, fmt.Errorf("%w: empty document", ErrCorrupt)
	}

	from := versionOf(raw)
	if from > domain.SaveVersion {
		return File{}, from, fmt.Errorf("%w: version %d", ErrUnsupportedVersion, from)
	}
	if err := migrate(raw, from); err != nil {
		return File{}, from, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	base, err := toMap(NewFile(defaults, defaults.Timestamp))
	if err != nil {
		return File{}, from, err
	}
	merged := mergeDefaults(base, raw, "")

	var f File
	if err := remarshal(merged, &f); err != nil {
		return File{}, from, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	f.Version = domain.SaveVersion
	f.Time.Traveling = false
	f.World.Effects = f.World.Effects.Normalize()
	f.Player.Level = domain.LevelForExperience(f.Player.Experience)

	if err := fileValidator.Struct(f); err != nil {
		return File{}, from, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return f, from, nil
}

func versionOf(raw map[string]any) int {
	v, ok := raw["version"].(float64)
	if !ok || v < 1 {
		return 1
	}
	return int(v)
}

// opaqueKeys are replaced wholesale rather than merged with defaults, so a
// saved inventory never picks up starting balances it did not have.
var opaqueKeys = map[string]bool{
	"player.inventory.resources":   true,
	"player.inventory.seeds":       true,
	"player.stats.harvested":       true,
	"player.stats.resourcesEarned": true,
	"player.stats.minigames":       true,
}

// mergeDefaults overlays saved onto defaults. Objects merge key by key,
// everything else in saved wins.
func mergeDefaults(defaults, saved map[string]any, prefix string) map[string]any {
	out := make(map[string]any, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	for k, sv := range saved {
		path := k
		if prefix != "" {
			path = prefix + "." + k
		}
		dm, dOK := out[k].(map[string]any)
		sm, sOK := sv.(map[string]any)
		if dOK && sOK && !opaqueKeys[path] {
			out[k] = mergeDefaults(dm, sm, path)
			continue
		}
		if sv == nil && out[k] != nil {
			continue
		}
		out[k] = sv
	}
	return out
}

func toMap(v any) (map[string]any, error) {
	var m map[string]any
	if err := remarshal(v, &m); err != nil {
		return nil, fmt.Errorf("failed to normalize defaults: %w", err)
	}
	return m, nil
}

func remarshal(in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
