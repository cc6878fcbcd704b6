package domain

import "time"

// Species is a static plant catalog entry
type Species struct {
	ID        string       `json:"id" validate:"required"`
	Name      string       `json:"name" validate:"required"`
	Era       string       `json:"era" validate:"required"`
	GrowTime  Millis       `json:"growTimeMs" validate:"gt=0"`
	MaxStages int          `json:"maxStages" validate:"gte=1"`
	Yield     HarvestYield `json:"yield"`
	Rarity    string       `json:"rarity,omitempty"`
}

// NewPlant builds a plant instance of this species planted at the given time
func (s Species) NewPlant(plantedAt time.Time) *Plant {
	yield := s.Yield
	if yield.MinMultiplier <= 0 {
		yield.MinMultiplier = DefaultYieldMinMultiplier
	}
	if yield.MaxMultiplier < yield.MinMultiplier {
		yield.MaxMultiplier = DefaultYieldMaxMultiplier
		if yield.MaxMultiplier < yield.MinMultiplier {
			yield.MaxMultiplier = yield.MinMultiplier
		}
	}
	return &Plant{
		Type:          s.ID,
		GrowthStage:   0,
		MaxStages:     s.MaxStages,
		PlantedAt:     plantedAt,
		WaterLevel:    PlantingWater,
		Nutrients:     PlantingNutrients,
		BaseNutrients: PlantingNutrients,
		GrowTimeMs:    int64(s.GrowTime),
		HarvestYield:  yield,
	}
}

// Millis is a duration expressed in whole milliseconds in JSON
type Millis int64

// Duration converts to a time.Duration
func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}
