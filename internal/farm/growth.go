package farm

import (
	"math"
	"time"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/utils"
)

// EnvironmentFactor combines water and nutrient levels into a growth speed
// factor. Each input is floored at MinEnvironmentFactor so growth never stalls.
func EnvironmentFactor(water, nutrients float64) float64 {
	waterFactor := math.Max(domain.MinEnvironmentFactor, water/domain.MaxWaterLevel)
	nutrientFactor := math.Max(domain.MinEnvironmentFactor, nutrients/domain.MaxNutrients)
	return waterFactor * nutrientFactor
}

// AdjustedGrowTime is the real time a plant needs under the given conditions
func AdjustedGrowTime(growTime time.Duration, water, nutrients, eraGrowth float64) time.Duration {
	if eraGrowth <= 0 {
		eraGrowth = 1
	}
	return time.Duration(float64(growTime) / (EnvironmentFactor(water, nutrients) * eraGrowth))
}

// ComputeProgress is the growth formula. It depends only on its arguments.
func ComputeProgress(plantedAt, now time.Time, growTime time.Duration, water, nutrients, eraGrowth float64) float64 {
	adjusted := AdjustedGrowTime(growTime, water, nutrients, eraGrowth)
	if adjusted <= 0 {
		return 1
	}
	elapsed := now.Sub(plantedAt)
	if elapsed <= 0 {
		return 0
	}
	return math.Min(1, float64(elapsed)/float64(adjusted))
}

// StageFor maps progress onto a discrete growth stage in [0, maxStages]
func StageFor(progress float64, maxStages int) int {
	stage := int(math.Floor(progress * float64(maxStages)))
	return min(max(stage, 0), maxStages)
}

// decayedNutrients recomputes nutrients from the planting baseline
func decayedNutrients(base float64, sincePlanted time.Duration, rate float64) float64 {
	return clampLevel(base - sincePlanted.Seconds()*rate)
}

// decayedWater subtracts one tick of evaporation, slowed by water retention
func decayedWater(water float64, delta time.Duration, rate, retention float64) float64 {
	if retention <= 0 {
		retention = 1
	}
	return clampLevel(water - delta.Seconds()*rate/retention)
}

func clampLevel(v float64) float64 {
	return utils.Clamp(v, 0, domain.MaxWaterLevel)
}
