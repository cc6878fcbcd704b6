package domain

import (
	"slices"
	"time"
)

// Store paths shared by the components that read and write game state
const (
	PathVersion   = "version"
	PathTimestamp = "timestamp"

	PathPlayer           = "player"
	PathExperience       = "player.experience"
	PathLevel            = "player.level"
	PathInventory        = "player.inventory"
	PathResources        = "player.inventory.resources"
	PathSeeds            = "player.inventory.seeds"
	PathUnlockedEras     = "player.unlockedEras"
	PathAchievements     = "player.achievements"
	PathStats            = "player.stats"
	PathStatsHarvested   = "player.stats.harvested"
	PathStatsTotal       = "player.stats.totalHarvests"
	PathStatsPlanted     = "player.stats.plantsPlanted"
	PathStatsEarned      = "player.stats.resourcesEarned"
	PathStatsErasVisited = "player.stats.erasVisited"
	PathStatsMinigames   = "player.stats.minigames"
	PathStatsTravels     = "player.stats.travels"

	PathFarm        = "farm"
	PathPlots       = "farm.plots"
	PathGridColumns = "farm.gridColumns"

	PathTime              = "time"
	PathCurrentEra        = "time.currentEra"
	PathPreviousEra       = "time.previousEra"
	PathTraveling         = "time.traveling"
	PathCooldownRemaining = "time.cooldownRemainingMs"
	PathLastTick          = "time.lastTick"

	PathWorld   = "world"
	PathEras    = "world.eras"
	PathEffects = "world.effects"

	PathUI       = "ui"
	PathSettings = "settings"
)

// Root keys of the state tree
var RootKeys = []string{"version", "timestamp", "player", "farm", "time", "world", "ui", "settings"}

// GameState is the typed root aggregate. The store holds it as plain JSON data.
type GameState struct {
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Player    Player    `json:"player"`
	Farm      Farm      `json:"farm"`
	Time      TimeState `json:"time"`
	World     World     `json:"world"`
	UI        UIState   `json:"ui"`
	Settings  Settings  `json:"settings"`
}

// Player aggregates the player's balances, unlocks and counters
type Player struct {
	Name         string      `json:"name"`
	Experience   int         `json:"experience" validate:"gte=0"`
	Level        int         `json:"level" validate:"gte=1"`
	Inventory    Inventory   `json:"inventory"`
	UnlockedEras []string    `json:"unlockedEras"`
	Achievements []string    `json:"achievements"`
	Stats        PlayerStats `json:"stats"`
}

// PlayerStats are the cumulative counters unlock predicates read
type PlayerStats struct {
	Harvested       map[string]int  `json:"harvested"`
	TotalHarvests   int             `json:"totalHarvests" validate:"gte=0"`
	PlantsPlanted   int             `json:"plantsPlanted" validate:"gte=0"`
	ResourcesEarned map[string]int  `json:"resourcesEarned"`
	ErasVisited     []string        `json:"erasVisited"`
	Minigames       map[string]bool `json:"minigames"`
	Travels         int             `json:"travels" validate:"gte=0"`
}

// Farm is the plot grid
type Farm struct {
	Plots       []Plot `json:"plots" validate:"dive"`
	GridColumns int    `json:"gridColumns" validate:"gte=1"`
}

// TimeState tracks the current era and travel state
type TimeState struct {
	CurrentEra          string    `json:"currentEra" validate:"required"`
	PreviousEra         string    `json:"previousEra"`
	Traveling           bool      `json:"traveling"`
	CooldownRemainingMs int64     `json:"cooldownRemainingMs" validate:"gte=0"`
	LastTick            time.Time `json:"lastTick,omitzero"`
}

// EraState is the mutable part of an era
type EraState struct {
	Unlocked bool `json:"unlocked"`
}

// World holds per-era unlock flags and the active era effects
type World struct {
	Eras    map[string]EraState `json:"eras"`
	Effects EraEffects          `json:"effects"`
}

// UIState is transient selection state owned by the client
type UIState struct {
	SelectedPlot *int   `json:"selectedPlot"`
	SelectedSeed string `json:"selectedSeed"`
}

// Settings are player preferences
type Settings struct {
	Autosave bool    `json:"autosave"`
	Sound    float64 `json:"sound" validate:"gte=0,lte=1"`
	Music    float64 `json:"music" validate:"gte=0,lte=1"`
}

// NewGameOptions shapes a fresh game
type NewGameOptions struct {
	GridSize    int
	GridColumns int
	// Eras lists every era id with its initial unlocked flag
	Eras       map[string]bool
	StartEra   string
	StartingAt time.Time
}

// NewGameState builds the default root aggregate for a new game
func NewGameState(opts NewGameOptions) GameState {
	if opts.GridSize <= 0 {
		opts.GridSize = DefaultGridSize
	}
	if opts.GridColumns <= 0 {
		opts.GridColumns = DefaultGridColumns
	}
	if opts.StartEra == "" {
		opts.StartEra = StartingEra
	}

	plots := make([]Plot, opts.GridSize)
	for i := range plots {
		plots[i] = NewEmptyPlot(i, opts.GridColumns)
	}

	eras := make(map[string]EraState, len(opts.Eras))
	unlocked := make([]string, 0, len(opts.Eras))
	for id, open := range opts.Eras {
		if id == opts.StartEra {
			open = true
		}
		eras[id] = EraState{Unlocked: open}
		if open {
			unlocked = append(unlocked, id)
		}
	}
	if _, ok := eras[opts.StartEra]; !ok {
		eras[opts.StartEra] = EraState{Unlocked: true}
		unlocked = append(unlocked, opts.StartEra)
	}
	slices.Sort(unlocked)

	return GameState{
		Version:   SaveVersion,
		Timestamp: opts.StartingAt,
		Player: Player{
			Name:         "Farmer",
			Level:        1,
			Inventory:    NewInventory(),
			UnlockedEras: unlocked,
			Achievements: []string{},
			Stats: PlayerStats{
				Harvested:       map[string]int{},
				ResourcesEarned: map[string]int{},
				ErasVisited:     []string{opts.StartEra},
				Minigames:       map[string]bool{},
			},
		},
		Farm: Farm{
			Plots:       plots,
			GridColumns: opts.GridColumns,
		},
		Time: TimeState{
			CurrentEra: opts.StartEra,
		},
		World: World{
			Eras:    eras,
			Effects: NeutralEffects(),
		},
		Settings: Settings{
			Autosave: true,
			Sound:    0.8,
			Music:    0.6,
		},
	}
}

// LevelForExperience returns the level implied by an experience total
func LevelForExperience(xp int) int {
	if xp <= 0 {
		return 1
	}
	level := 1
	for (level*level)*ExperiencePerLevelUnit <= xp {
		level++
	}
	return level
}
