package stats

// ============================================================================
// Log Messages
// ============================================================================

// Log messages for the stats recorder
const (
	LogMsgCounterUpdated       = "Stats counter updated"
	LogMsgFailedToWriteCounter = "Failed to write stats counter"
	LogMsgFailedToReadStats    = "Failed to read player stats"
)

// ============================================================================
// Counter Names
// ============================================================================

// Counter names reported on log lines and used by the stats summary
const (
	CounterHarvests  = "harvests"
	CounterPlanted   = "planted"
	CounterEarned    = "earned"
	CounterTravels   = "travels"
	CounterMinigames = "minigames"
)
