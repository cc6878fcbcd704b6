package game

import (
	"time"

	"github.com/osse101/ChronoFarm_Go/internal/farm"
	"github.com/osse101/ChronoFarm_Go/internal/timetravel"
)

// MaxTickDelta caps the simulated time of a single tick. Longer gaps (a
// suspended process, a stalled scheduler) are simulated as one capped tick;
// plant progress still follows wall-clock time since planting.
const MaxTickDelta = time.Minute

// Log messages
const (
	LogMsgNewGame        = "New game started"
	LogMsgGameLoaded     = "Game loaded"
	LogMsgGameSaved      = "Game saved"
	LogMsgSaveFailed     = "Failed to save game"
	LogMsgLoadFailed     = "Failed to load game"
	LogMsgTickFailed     = "Simulation tick failed"
	LogMsgUndo           = "Undo applied"
	LogMsgRedo           = "Redo applied"
	LogMsgHistoryBlocked = "Undo and redo are unavailable while traveling"
	LogMsgMinigameReport = "Minigame result reported"
)

// Config shapes a session
type Config struct {
	GridSize    int
	GridColumns int
	Farm        farm.Config
	Travel      timetravel.Config
}

// DefaultConfig returns the standard grid and timing
func DefaultConfig() Config {
	return Config{
		Farm:   farm.DefaultConfig(),
		Travel: timetravel.DefaultConfig(),
	}
}
