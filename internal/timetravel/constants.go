package timetravel

import (
	"time"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
)

// Unlock triggers reported on era:unlocked events
const (
	TriggerHarvest     = "harvest"
	TriggerMinigame    = "minigame"
	TriggerAchievement = "achievement"
	TriggerTravel      = "travel"
	TriggerInventory   = "inventory"
	TriggerLoad        = "load"
)

// Log messages
const (
	LogMsgTravelStarted     = "Time travel started"
	LogMsgTravelCompleted   = "Time travel completed"
	LogMsgTravelRejected    = "Time travel rejected"
	LogMsgTravelInterrupted = "Time travel interrupted, cost refunded"
	LogMsgEraUnlocked       = "Era unlocked"
)

// Config tunes travel timing
type Config struct {
	Cooldown  time.Duration
	Steps     int
	StepDelay time.Duration
}

// DefaultConfig returns the standard travel timing
func DefaultConfig() Config {
	return Config{
		Cooldown:  domain.DefaultTravelCooldown,
		Steps:     domain.DefaultTravelSteps,
		StepDelay: domain.DefaultTravelStepDelay,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Cooldown < 0 {
		c.Cooldown = d.Cooldown
	}
	if c.Steps <= 0 {
		c.Steps = d.Steps
	}
	if c.StepDelay < 0 {
		c.StepDelay = d.StepDelay
	}
	return c
}
