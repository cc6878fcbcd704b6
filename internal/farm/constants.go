package farm

import "github.com/osse101/ChronoFarm_Go/internal/domain"

// Plot actions reported on plant:error events
const (
	ActionPlant      = "plant"
	ActionWater      = "water"
	ActionHarvest    = "harvest"
	ActionAccelerate = "accelerate"
)

const (
	// DefaultPulseCostPerMinute is the temporal pulse price of one started minute of acceleration
	DefaultPulseCostPerMinute = 2

	// MaxAcceleratePercent bounds percent-based acceleration
	MaxAcceleratePercent = 1.0
)

// Config tunes the lifecycle engine
type Config struct {
	WaterDecayRate         float64
	NutrientDecayRate      float64
	ProgressEventThreshold float64
	PulseCostPerMinute     int
}

// DefaultConfig returns the standard decay rates and event threshold
func DefaultConfig() Config {
	return Config{
		WaterDecayRate:         domain.DefaultWaterDecayRate,
		NutrientDecayRate:      domain.DefaultNutrientDecayRate,
		ProgressEventThreshold: domain.DefaultProgressEventThreshold,
		PulseCostPerMinute:     DefaultPulseCostPerMinute,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.WaterDecayRate < 0 {
		c.WaterDecayRate = d.WaterDecayRate
	}
	if c.NutrientDecayRate < 0 {
		c.NutrientDecayRate = d.NutrientDecayRate
	}
	if c.ProgressEventThreshold <= 0 {
		c.ProgressEventThreshold = d.ProgressEventThreshold
	}
	if c.PulseCostPerMinute <= 0 {
		c.PulseCostPerMinute = d.PulseCostPerMinute
	}
	return c
}
