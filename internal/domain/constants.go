package domain

import "time"

// Grid defaults
const (
	DefaultGridSize    = 48
	DefaultGridColumns = 8
)

// Plot environment constants
const (
	MaxWaterLevel  = 100.0
	MaxNutrients   = 100.0
	MaxSoilQuality = 100.0

	// InitialPlotWater and InitialPlotNutrients describe a freshly created plot
	InitialPlotWater     = 100.0
	InitialPlotNutrients = 80.0

	// PlantingWater and PlantingNutrients are applied when a seed goes into the ground
	PlantingWater     = 100.0
	PlantingNutrients = 80.0

	// WaterPerAction is how much one watering adds
	WaterPerAction = 30.0

	// ResidualWater and ResidualNutrients are left in the plot after a harvest
	ResidualWater     = 50.0
	ResidualNutrients = 50.0

	// SoilDepletionPerHarvest is subtracted from soil quality on every harvest
	SoilDepletionPerHarvest = 2.0

	// MinEnvironmentFactor keeps growth from ever fully stalling
	MinEnvironmentFactor = 0.1
)

// Decay rates, per second
const (
	DefaultWaterDecayRate    = 0.05
	DefaultNutrientDecayRate = 0.01
)

// DefaultProgressEventThreshold is the minimum progress delta that is worth a growth event
const DefaultProgressEventThreshold = 0.05

// Default yield variance when a species does not declare its own
const (
	DefaultYieldMinMultiplier = 0.75
	DefaultYieldMaxMultiplier = 1.25
)

// Resource identifiers
const (
	ResourceTemporalPulses = "temporal-pulses"
)

// Era identifiers
const (
	EraPrehistoric = "prehistoric"
	EraEgyptian    = "egyptian"
	EraMedieval    = "medieval"
	EraRenaissance = "renaissance"
	EraFuture      = "future"

	// StartingEra is the era every new game begins in
	StartingEra = EraPrehistoric
)

// Travel defaults
const (
	DefaultTravelCooldown  = 30 * time.Second
	DefaultTravelSteps     = 4
	DefaultTravelStepDelay = 500 * time.Millisecond
)

// Experience and levels
const (
	// ExperiencePerLevelUnit scales the level curve: level = 1 + floor(sqrt(xp / unit))
	ExperiencePerLevelUnit = 100
)

// Starting inventory for a new game
var (
	StartingResources = map[string]int{
		ResourceTemporalPulses: 20,
	}
	StartingSeeds = map[string]int{
		"prehistoric-moss": 5,
		"giant-fern":       2,
	}
)

// SaveVersion is the current persisted-state format version
const SaveVersion = 2
