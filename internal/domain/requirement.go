package domain

import (
	"encoding/json"
	"fmt"
)

// Requirement is an unlock predicate for eras and achievements.
// The set of variants is closed; evaluate it with an exhaustive type switch.
//
//sumtype:decl
type Requirement interface {
	isRequirement()
	// Describe returns a short human readable form for notifications
	Describe() string
}

// Requirement type tags used in the JSON form
const (
	RequirementNone                = "none"
	RequirementHarvestCount        = "harvest-count"
	RequirementResourceThreshold   = "resource-threshold"
	RequirementMinigameFlag        = "minigame-completion"
	RequirementAchievementUnlocked = "achievement-unlocked"
	RequirementAllErasVisited      = "all-eras-visited"
	RequirementErasVisitedCount    = "eras-visited"
	RequirementResourcesEarned     = "resources-earned"
	RequirementPlantsPlanted       = "plants-planted"
)

// NoRequirement is always satisfied
type NoRequirement struct{}

// HarvestCount requires a number of harvests; an empty Species counts any species
type HarvestCount struct {
	Species string `json:"species,omitempty"`
	Count   int    `json:"count"`
}

// ResourceThreshold requires a current resource balance
type ResourceThreshold struct {
	Resource string `json:"resource"`
	Amount   int    `json:"amount"`
}

// MinigameFlag requires a successfully completed minigame
type MinigameFlag struct {
	MinigameID string `json:"minigameId"`
}

// AchievementUnlocked requires another achievement
type AchievementUnlocked struct {
	AchievementID string `json:"achievementId"`
}

// AllErasVisited requires every era in the catalog to have been visited
type AllErasVisited struct{}

// ErasVisitedCount requires a number of distinct visited eras
type ErasVisitedCount struct {
	Count int `json:"count"`
}

// ResourcesEarned requires a cumulative amount of a resource earned over the game
type ResourcesEarned struct {
	Resource string `json:"resource"`
	Amount   int    `json:"amount"`
}

// PlantsPlanted requires a number of seeds planted
type PlantsPlanted struct {
	Count int `json:"count"`
}

func (NoRequirement) isRequirement()       {}
func (HarvestCount) isRequirement()        {}
func (ResourceThreshold) isRequirement()   {}
func (MinigameFlag) isRequirement()        {}
func (AchievementUnlocked) isRequirement() {}
func (AllErasVisited) isRequirement()      {}
func (ErasVisitedCount) isRequirement()    {}
func (ResourcesEarned) isRequirement()     {}
func (PlantsPlanted) isRequirement()       {}

func (NoRequirement) Describe() string { return "always available" }

func (r HarvestCount) Describe() string {
	if r.Species == "" {
		return fmt.Sprintf("harvest %d plants", r.Count)
	}
	return fmt.Sprintf("harvest %d %s", r.Count, r.Species)
}

func (r ResourceThreshold) Describe() string {
	return fmt.Sprintf("hold %d %s", r.Amount, r.Resource)
}

func (r MinigameFlag) Describe() string {
	return fmt.Sprintf("complete the %s minigame", r.MinigameID)
}

func (r AchievementUnlocked) Describe() string {
	return fmt.Sprintf("unlock the %s achievement", r.AchievementID)
}

func (AllErasVisited) Describe() string { return "visit every era" }

func (r ErasVisitedCount) Describe() string {
	return fmt.Sprintf("visit %d eras", r.Count)
}

func (r ResourcesEarned) Describe() string {
	return fmt.Sprintf("earn %d %s in total", r.Amount, r.Resource)
}

func (r PlantsPlanted) Describe() string {
	return fmt.Sprintf("plant %d seeds", r.Count)
}

// RequirementSpec is the tagged JSON form of a Requirement
type RequirementSpec struct {
	Type          string `json:"type" validate:"required,oneof=none harvest-count resource-threshold minigame-completion achievement-unlocked all-eras-visited eras-visited resources-earned plants-planted"`
	Species       string `json:"species,omitempty"`
	Resource      string `json:"resource,omitempty"`
	MinigameID    string `json:"minigameId,omitempty"`
	AchievementID string `json:"achievementId,omitempty"`
	Count         int    `json:"count,omitempty" validate:"gte=0"`
	Amount        int    `json:"amount,omitempty" validate:"gte=0"`
}

// Requirement converts the tagged form into its variant
func (s RequirementSpec) Requirement() (Requirement, error) {
	switch s.Type {
	case "", RequirementNone:
		return NoRequirement{}, nil
	case RequirementHarvestCount:
		return HarvestCount{Species: s.Species, Count: s.Count}, nil
	case RequirementResourceThreshold:
		if s.Resource == "" {
			return nil, fmt.Errorf("%w: resource-threshold requires a resource", ErrInvalidInput)
		}
		return ResourceThreshold{Resource: s.Resource, Amount: s.Amount}, nil
	case RequirementMinigameFlag:
		if s.MinigameID == "" {
			return nil, fmt.Errorf("%w: minigame-completion requires a minigameId", ErrInvalidInput)
		}
		return MinigameFlag{MinigameID: s.MinigameID}, nil
	case RequirementAchievementUnlocked:
		if s.AchievementID == "" {
			return nil, fmt.Errorf("%w: achievement-unlocked requires an achievementId", ErrInvalidInput)
		}
		return AchievementUnlocked{AchievementID: s.AchievementID}, nil
	case RequirementAllErasVisited:
		return AllErasVisited{}, nil
	case RequirementErasVisitedCount:
		return ErasVisitedCount{Count: s.Count}, nil
	case RequirementResourcesEarned:
		if s.Resource == "" {
			return nil, fmt.Errorf("%w: resources-earned requires a resource", ErrInvalidInput)
		}
		return ResourcesEarned{Resource: s.Resource, Amount: s.Amount}, nil
	case RequirementPlantsPlanted:
		return PlantsPlanted{Count: s.Count}, nil
	default:
		return nil, fmt.Errorf("%w: unknown requirement type %q", ErrInvalidInput, s.Type)
	}
}

// SpecOf converts a Requirement back into its tagged form
func SpecOf(r Requirement) RequirementSpec {
	switch v := r.(type) {
	case NoRequirement:
		return RequirementSpec{Type: RequirementNone}
	case HarvestCount:
		return RequirementSpec{Type: RequirementHarvestCount, Species: v.Species, Count: v.Count}
	case ResourceThreshold:
		return RequirementSpec{Type: RequirementResourceThreshold, Resource: v.Resource, Amount: v.Amount}
	case MinigameFlag:
		return RequirementSpec{Type: RequirementMinigameFlag, MinigameID: v.MinigameID}
	case AchievementUnlocked:
		return RequirementSpec{Type: RequirementAchievementUnlocked, AchievementID: v.AchievementID}
	case AllErasVisited:
		return RequirementSpec{Type: RequirementAllErasVisited}
	case ErasVisitedCount:
		return RequirementSpec{Type: RequirementErasVisitedCount, Count: v.Count}
	case ResourcesEarned:
		return RequirementSpec{Type: RequirementResourcesEarned, Resource: v.Resource, Amount: v.Amount}
	case PlantsPlanted:
		return RequirementSpec{Type: RequirementPlantsPlanted, Count: v.Count}
	case nil:
		return RequirementSpec{Type: RequirementNone}
	default:
		panic(fmt.Sprintf("domain: unhandled requirement %T", r))
	}
}

// MarshalRequirement encodes a requirement in its tagged JSON form
func MarshalRequirement(r Requirement) ([]byte, error) {
	return json.Marshal(SpecOf(r))
}

// Progress is the aggregate of cumulative counters that requirements are
// evaluated against. It is a read-only snapshot.
type Progress struct {
	Resources       map[string]int
	ResourcesEarned map[string]int
	Harvested       map[string]int
	TotalHarvests   int
	PlantsPlanted   int
	Minigames       map[string]bool
	Achievements    map[string]bool
	ErasVisited     map[string]bool
	// KnownEras is the full era catalog, used by AllErasVisited
	KnownEras []string
}

// Satisfied evaluates a requirement against the progress snapshot.
// It has no side effects.
func Satisfied(r Requirement, p Progress) bool {
	switch v := r.(type) {
	case NoRequirement:
		return true
	case HarvestCount:
		if v.Species == "" {
			return p.TotalHarvests >= v.Count
		}
		return p.Harvested[v.Species] >= v.Count
	case ResourceThreshold:
		return p.Resources[v.Resource] >= v.Amount
	case MinigameFlag:
		return p.Minigames[v.MinigameID]
	case AchievementUnlocked:
		return p.Achievements[v.AchievementID]
	case AllErasVisited:
		if len(p.KnownEras) == 0 {
			return false
		}
		for _, id := range p.KnownEras {
			if !p.ErasVisited[id] {
				return false
			}
		}
		return true
	case ErasVisitedCount:
		return len(p.ErasVisited) >= v.Count
	case ResourcesEarned:
		return p.ResourcesEarned[v.Resource] >= v.Amount
	case PlantsPlanted:
		return p.PlantsPlanted >= v.Count
	case nil:
		return true
	default:
		panic(fmt.Sprintf("domain: unhandled requirement %T", r))
	}
}
