package event

import (
	"time"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
)

// Payload is implemented by every event payload. The topic is derived from
// the payload type so a payload can never be emitted on the wrong topic.
type Payload interface {
	Topic() Topic
}

// PlantPlanted is emitted after a seed goes into an empty plot
type PlantPlanted struct {
	PlotID    int       `json:"plotId"`
	Species   string    `json:"species"`
	PlantedAt time.Time `json:"plantedAt"`
}

// PlantWatered is emitted after watering
type PlantWatered struct {
	PlotID     int     `json:"plotId"`
	Species    string  `json:"species"`
	WaterLevel float64 `json:"waterLevel"`
}

// PlantGrowth is emitted when a plant changes stage or makes notable progress
type PlantGrowth struct {
	PlotID        int     `json:"plotId"`
	Species       string  `json:"species"`
	Stage         int     `json:"stage"`
	PreviousStage int     `json:"previousStage"`
	Progress      float64 `json:"progress"`
}

// PlantReady is emitted once, when a plant becomes harvestable
type PlantReady struct {
	PlotID  int    `json:"plotId"`
	Species string `json:"species"`
}

// PlantHarvested carries the harvested plant snapshot and the rewards paid
type PlantHarvested struct {
	PlotID  int                   `json:"plotId"`
	Plant   domain.Plant          `json:"plant"`
	Rewards domain.HarvestRewards `json:"rewards"`
}

// PlantAccelerated reports the progress after a time skip
type PlantAccelerated struct {
	PlotID   int           `json:"plotId"`
	Species  string        `json:"species"`
	Skipped  time.Duration `json:"skippedNs"`
	Progress float64       `json:"progress"`
	Percent  float64       `json:"percent"`
	Cost     int           `json:"cost,omitempty"`
}

// PlantError is the structured failure of a plot operation
type PlantError struct {
	Action  string `json:"action"`
	PlotID  int    `json:"plotId"`
	Species string `json:"species,omitempty"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// TravelStarted is emitted once the travel cost has been deducted
type TravelStarted struct {
	From string         `json:"from"`
	To   string         `json:"to"`
	Cost map[string]int `json:"cost,omitempty"`
}

// TravelStep marks one beat of the journey's effect sequence
type TravelStep struct {
	To    string `json:"to"`
	Step  int    `json:"step"`
	Steps int    `json:"steps"`
}

// TravelSuccess is emitted after the era change has been committed
type TravelSuccess struct {
	From    string            `json:"from"`
	To      string            `json:"to"`
	Effects domain.EraEffects `json:"effects"`
}

// TravelFailed is the structured failure of a travel request
type TravelFailed struct {
	To      string `json:"to"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
	// Requirement is set when the target era is locked
	Requirement *domain.RequirementSpec `json:"requirement,omitempty"`
	// RemainingMs is set when travel is on cooldown
	RemainingMs int64 `json:"remainingMs,omitempty"`
}

// TravelCooldownReady is emitted when the travel cooldown reaches zero
type TravelCooldownReady struct {
	Era string `json:"era"`
}

// EraUnlocked is emitted exactly once per era
type EraUnlocked struct {
	EraID   string `json:"eraId"`
	Name    string `json:"name"`
	Trigger string `json:"trigger"`
}

// AchievementUnlocked is emitted exactly once per achievement
type AchievementUnlocked struct {
	AchievementID string        `json:"achievementId"`
	Name          string        `json:"name"`
	Category      string        `json:"category"`
	Reward        domain.Reward `json:"reward"`
}

// MinigameCompleted is reported by an external minigame
type MinigameCompleted struct {
	domain.MinigameResult
}

// InventoryChanged reports the signed deltas applied to the inventory
type InventoryChanged struct {
	Resources map[string]int `json:"resources,omitempty"`
	Seeds     map[string]int `json:"seeds,omitempty"`
	Source    string         `json:"source"`
}

// PlayerLevelUp is emitted when experience crosses a level boundary
type PlayerLevelUp struct {
	OldLevel   int `json:"oldLevel"`
	NewLevel   int `json:"newLevel"`
	Experience int `json:"experience"`
}

// GameLoaded is emitted after state has been restored
type GameLoaded struct {
	Slot    string `json:"slot"`
	Version int    `json:"version"`
	// Source is "primary", "backup" or "default"
	Source string `json:"source"`
}

// GameSaved is emitted after a successful save
type GameSaved struct {
	Slot    string    `json:"slot"`
	Version int       `json:"version"`
	SavedAt time.Time `json:"savedAt"`
}

// GameReset is emitted after a new game replaces the state
type GameReset struct {
	Era string `json:"era"`
}

// Toast is a lightweight user notification
type Toast struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (PlantPlanted) Topic() Topic        { return TopicPlantPlanted }
func (PlantWatered) Topic() Topic        { return TopicPlantWatered }
func (PlantGrowth) Topic() Topic         { return TopicPlantGrowth }
func (PlantReady) Topic() Topic          { return TopicPlantReady }
func (PlantHarvested) Topic() Topic      { return TopicPlantHarvested }
func (PlantAccelerated) Topic() Topic    { return TopicPlantAccelerated }
func (PlantError) Topic() Topic          { return TopicPlantError }
func (TravelStarted) Topic() Topic       { return TopicTravelStarted }
func (TravelStep) Topic() Topic          { return TopicTravelStep }
func (TravelSuccess) Topic() Topic       { return TopicTravelSuccess }
func (TravelFailed) Topic() Topic        { return TopicTravelFailed }
func (TravelCooldownReady) Topic() Topic { return TopicTravelCooldownReady }
func (EraUnlocked) Topic() Topic         { return TopicEraUnlocked }
func (AchievementUnlocked) Topic() Topic { return TopicAchievementUnlocked }
func (MinigameCompleted) Topic() Topic   { return TopicMinigameCompleted }
func (InventoryChanged) Topic() Topic    { return TopicInventoryChanged }
func (PlayerLevelUp) Topic() Topic       { return TopicPlayerLevelUp }
func (GameLoaded) Topic() Topic          { return TopicGameLoaded }
func (GameSaved) Topic() Topic           { return TopicGameSaved }
func (GameReset) Topic() Topic           { return TopicGameReset }
func (Toast) Topic() Topic               { return TopicToast }
