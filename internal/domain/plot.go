package domain

import "time"

// PlotState is the lifecycle state of a single farm cell
type PlotState string

const (
	PlotEmpty   PlotState = "empty"
	PlotPlanted PlotState = "planted"
	PlotGrowing PlotState = "growing"
	PlotReady   PlotState = "ready"
	// PlotWithered is reserved. No transition currently reaches it.
	PlotWithered PlotState = "withered"
)

// Occupied reports whether a plot in this state must own a plant
func (s PlotState) Occupied() bool {
	return s == PlotPlanted || s == PlotGrowing || s == PlotReady
}

// Plot is one cell of the farm grid
type Plot struct {
	ID            int       `json:"id" validate:"gte=0"`
	Row           int       `json:"row" validate:"gte=0"`
	Col           int       `json:"col" validate:"gte=0"`
	State         PlotState `json:"state" validate:"oneof=empty planted growing ready withered"`
	Plant         *Plant    `json:"plant"`
	WaterLevel    float64   `json:"waterLevel" validate:"gte=0,lte=100"`
	Nutrients     float64   `json:"nutrients" validate:"gte=0,lte=100"`
	SoilQuality   float64   `json:"soilQuality" validate:"gte=0,lte=100"`
	PlantedAt     time.Time `json:"plantedAt,omitzero"`
	LastWatered   time.Time `json:"lastWatered,omitzero"`
	LastHarvested time.Time `json:"lastHarvested,omitzero"`
}

// Consistent checks the occupancy invariant: a plant exists iff the state is occupied
func (p Plot) Consistent() bool {
	return (p.Plant != nil) == p.State.Occupied()
}

// HasPlant returns true when the plot currently owns a plant
func (p Plot) HasPlant() bool {
	return p.Plant != nil
}

// Plant is a cultivated species instance owned by exactly one plot
type Plant struct {
	Type        string    `json:"type" validate:"required"`
	GrowthStage int       `json:"growthStage" validate:"gte=0"`
	MaxStages   int       `json:"maxStages" validate:"gte=1"`
	PlantedAt   time.Time `json:"plantedAt"`
	WaterLevel  float64   `json:"waterLevel" validate:"gte=0,lte=100"`
	Nutrients   float64   `json:"nutrients" validate:"gte=0,lte=100"`
	// BaseNutrients is the nutrient level at planting; decay is measured from it.
	BaseNutrients float64 `json:"baseNutrients" validate:"gte=0,lte=100"`
	// GrowTimeMs is the time for full progress under ideal conditions.
	GrowTimeMs       int64        `json:"growTimeMs" validate:"gt=0"`
	Progress         float64      `json:"progress" validate:"gte=0,lte=1"`
	ReportedProgress float64      `json:"reportedProgress" validate:"gte=0,lte=1"`
	HarvestYield     HarvestYield `json:"harvestYield"`
}

// GrowTime returns the ideal grow duration
func (p Plant) GrowTime() time.Duration {
	return time.Duration(p.GrowTimeMs) * time.Millisecond
}

// HarvestYield is the payout template of a species
type HarvestYield struct {
	Resources  map[string]int `json:"resources,omitempty"`
	Seeds      map[string]int `json:"seeds,omitempty"`
	Experience int            `json:"experience"`
	// Variance bounds the random multiplier applied to resource yields.
	MinMultiplier float64 `json:"minMultiplier"`
	MaxMultiplier float64 `json:"maxMultiplier"`
	SeedBonusMax  int     `json:"seedBonusMax"`
}

// HarvestRewards is what a single harvest actually paid out
type HarvestRewards struct {
	Resources  map[string]int `json:"resources"`
	Seeds      map[string]int `json:"seeds"`
	Experience int            `json:"experience"`
}

// Empty returns true when the rewards contain nothing
func (r HarvestRewards) Empty() bool {
	return len(r.Resources) == 0 && len(r.Seeds) == 0 && r.Experience == 0
}

// NewEmptyPlot creates an empty plot at its grid position
func NewEmptyPlot(id, columns int) Plot {
	if columns <= 0 {
		columns = DefaultGridColumns
	}
	return Plot{
		ID:          id,
		Row:         id / columns,
		Col:         id % columns,
		State:       PlotEmpty,
		WaterLevel:  InitialPlotWater,
		Nutrients:   InitialPlotNutrients,
		SoilQuality: MaxSoilQuality,
	}
}
