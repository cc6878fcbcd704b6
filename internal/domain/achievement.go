package domain

// Reward is a payload granted once, on an achievement unlock or a minigame win
type Reward struct {
	Experience int            `json:"experience,omitempty" validate:"gte=0"`
	Resources  map[string]int `json:"resources,omitempty"`
	Seeds      map[string]int `json:"seeds,omitempty"`
}

// Empty returns true when the reward grants nothing
func (r Reward) Empty() bool {
	return r.Experience == 0 && len(r.Resources) == 0 && len(r.Seeds) == 0
}

// Achievement is a static achievement catalog entry
type Achievement struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Category    string      `json:"category"`
	Requirement Requirement `json:"-"`
	Reward      Reward      `json:"reward"`
}

// Achievement categories, matching the cumulative counters they watch
const (
	CategoryPlantsGrown     = "plants-grown"
	CategoryErasVisited     = "eras-visited"
	CategoryResourcesEarned = "resources-earned"
	CategoryMinigames       = "minigames"
)

// MinigameResult is what an external minigame reports on completion
type MinigameResult struct {
	MinigameID string `json:"minigameId" validate:"required,max=64"`
	Success    bool   `json:"success"`
	Score      int    `json:"score" validate:"gte=0"`
	Rewards    Reward `json:"rewards"`
}
