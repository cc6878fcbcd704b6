package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/validation"
)

//go:embed data/*.json
var files embed.FS

//go:embed schemas/*.schema.json
var schemaFiles embed.FS

var schemas = validation.NewSchemaValidator(schemaFiles)

// Embedded catalog file names
const (
	PlantsFile       = "data/plants.json"
	ErasFile         = "data/eras.json"
	AchievementsFile = "data/achievements.json"

	PlantsSchema       = "schemas/plants.schema.json"
	ErasSchema         = "schemas/eras.schema.json"
	AchievementsSchema = "schemas/achievements.schema.json"
)

// Sentinel errors for catalog loading
var (
	ErrDuplicateID     = errors.New("duplicate catalog id")
	ErrMissingRef      = errors.New("catalog reference not found")
	ErrCycleDetected   = errors.New("cycle detected in achievement requirements")
	ErrInvalidCatalog  = errors.New("invalid catalog")
	ErrNoStartingEra   = errors.New("starting era must be defined and always available")
	ErrUnreachableSeed = errors.New("starting seed has no species")
)

// PlantsConfig is the JSON layout of the species catalog
type PlantsConfig struct {
	Version     string           `json:"version"`
	Description string           `json:"description"`
	Plants      []domain.Species `json:"plants" validate:"required,min=1,dive"`
}

// EraConfig is one era entry with its tagged requirement
type EraConfig struct {
	ID          string                 `json:"id" validate:"required"`
	Name        string                 `json:"name" validate:"required"`
	Description string                 `json:"description"`
	Order       int                    `json:"order" validate:"gte=0"`
	Requirement domain.RequirementSpec `json:"requirement"`
	Effects     domain.EraEffects      `json:"effects"`
	TravelCost  map[string]int         `json:"travelCost" validate:"dive,gte=0"`
	Plants      []string               `json:"plants"`
	Animals     []string               `json:"animals"`
}

// ErasConfig is the JSON layout of the era catalog
type ErasConfig struct {
	Version     string      `json:"version"`
	Description string      `json:"description"`
	Eras        []EraConfig `json:"eras" validate:"required,min=1,dive"`
}

// AchievementConfig is one achievement entry with its tagged requirement
type AchievementConfig struct {
	ID          string                 `json:"id" validate:"required"`
	Name        string                 `json:"name" validate:"required"`
	Description string                 `json:"description"`
	Category    string                 `json:"category" validate:"required,oneof=plants-grown eras-visited resources-earned minigames"`
	Requirement domain.RequirementSpec `json:"requirement"`
	Reward      domain.Reward          `json:"reward"`
}

// AchievementsConfig is the JSON layout of the achievement catalog
type AchievementsConfig struct {
	Version      string              `json:"version"`
	Description  string              `json:"description"`
	Achievements []AchievementConfig `json:"achievements" validate:"dive"`
}

// Catalog is the read-only static game content
type Catalog struct {
	species      map[string]domain.Species
	speciesOrder []string
	eras         map[string]domain.Era
	eraOrder     []string
	achievements map[string]domain.Achievement
	achOrder     []string
}

// Load parses and validates the embedded catalogs
func Load() (*Catalog, error) {
	plants, err := files.ReadFile(PlantsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read plants catalog: %w", err)
	}
	eras, err := files.ReadFile(ErasFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read eras catalog: %w", err)
	}
	achievements, err := files.ReadFile(AchievementsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read achievements catalog: %w", err)
	}
	return Parse(plants, eras, achievements)
}

// MustLoad is Load for tests and tools
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a catalog from the three JSON documents. Each document is
// checked against its JSON schema before decoding.
func Parse(plantsJSON, erasJSON, achievementsJSON []byte) (*Catalog, error) {
	for _, doc := range []struct {
		data   []byte
		schema string
	}{
		{plantsJSON, PlantsSchema},
		{erasJSON, ErasSchema},
		{achievementsJSON, AchievementsSchema},
	} {
		if err := schemas.ValidateBytes(doc.data, doc.schema); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidCatalog, doc.schema, err)
		}
	}

	var (
		plants       PlantsConfig
		eras         ErasConfig
		achievements AchievementsConfig
	)
	if err := json.Unmarshal(plantsJSON, &plants); err != nil {
		return nil, fmt.Errorf("failed to parse plants catalog: %w", err)
	}
	if err := json.Unmarshal(erasJSON, &eras); err != nil {
		return nil, fmt.Errorf("failed to parse eras catalog: %w", err)
	}
	if err := json.Unmarshal(achievementsJSON, &achievements); err != nil {
		return nil, fmt.Errorf("failed to parse achievements catalog: %w", err)
	}
	return Build(plants, eras, achievements)
}

// Build validates configs and assembles the catalog
func Build(plants PlantsConfig, eras ErasConfig, achievements AchievementsConfig) (*Catalog, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	for name, cfg := range map[string]any{"plants": plants, "eras": eras, "achievements": achievements} {
		if err := v.Struct(cfg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidCatalog, name, err)
		}
	}

	c := &Catalog{
		species:      make(map[string]domain.Species, len(plants.Plants)),
		eras:         make(map[string]domain.Era, len(eras.Eras)),
		achievements: make(map[string]domain.Achievement, len(achievements.Achievements)),
	}

	for _, e := range eras.Eras {
		if _, dup := c.eras[e.ID]; dup {
			return nil, fmt.Errorf("%w: era '%s'", ErrDuplicateID, e.ID)
		}
		req, err := e.Requirement.Requirement()
		if err != nil {
			return nil, fmt.Errorf("%w: era '%s': %v", ErrInvalidCatalog, e.ID, err)
		}
		c.eras[e.ID] = domain.Era{
			ID:          e.ID,
			Name:        e.Name,
			Description: e.Description,
			Order:       e.Order,
			Requirement: req,
			Effects:     e.Effects.Normalize(),
			TravelCost:  e.TravelCost,
			Plants:      e.Plants,
			Animals:     e.Animals,
		}
		c.eraOrder = append(c.eraOrder, e.ID)
	}
	slices.SortStableFunc(c.eraOrder, func(a, b string) int {
		return c.eras[a].Order - c.eras[b].Order
	})

	for _, s := range plants.Plants {
		if _, dup := c.species[s.ID]; dup {
			return nil, fmt.Errorf("%w: plant '%s'", ErrDuplicateID, s.ID)
		}
		if _, ok := c.eras[s.Era]; !ok {
			return nil, fmt.Errorf("%w: plant '%s' references era '%s'", ErrMissingRef, s.ID, s.Era)
		}
		c.species[s.ID] = s
		c.speciesOrder = append(c.speciesOrder, s.ID)
	}

	for _, a := range achievements.Achievements {
		if _, dup := c.achievements[a.ID]; dup {
			return nil, fmt.Errorf("%w: achievement '%s'", ErrDuplicateID, a.ID)
		}
		req, err := a.Requirement.Requirement()
		if err != nil {
			return nil, fmt.Errorf("%w: achievement '%s': %v", ErrInvalidCatalog, a.ID, err)
		}
		c.achievements[a.ID] = domain.Achievement{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Category:    a.Category,
			Requirement: req,
			Reward:      a.Reward,
		}
		c.achOrder = append(c.achOrder, a.ID)
	}

	if err := c.validateRefs(); err != nil {
		return nil, err
	}
	return c, nil
}

// validateRefs checks every cross reference in the assembled catalog
func (c *Catalog) validateRefs() error {
	start, ok := c.eras[domain.StartingEra]
	if !ok {
		return ErrNoStartingEra
	}
	if _, free := start.Requirement.(domain.NoRequirement); !free {
		return ErrNoStartingEra
	}

	for _, id := range c.eraOrder {
		e := c.eras[id]
		for _, p := range e.Plants {
			if _, ok := c.species[p]; !ok {
				return fmt.Errorf("%w: era '%s' lists plant '%s'", ErrMissingRef, id, p)
			}
		}
		if err := c.checkRequirement("era '"+id+"'", e.Requirement); err != nil {
			return err
		}
	}

	for _, id := range c.achOrder {
		a := c.achievements[id]
		if err := c.checkRequirement("achievement '"+id+"'", a.Requirement); err != nil {
			return err
		}
		for seed := range a.Reward.Seeds {
			if _, ok := c.species[seed]; !ok {
				return fmt.Errorf("%w: achievement '%s' rewards seed '%s'", ErrMissingRef, id, seed)
			}
		}
	}

	for seed := range domain.StartingSeeds {
		if _, ok := c.species[seed]; !ok {
			return fmt.Errorf("%w: '%s'", ErrUnreachableSeed, seed)
		}
	}

	return c.detectCycles()
}

func (c *Catalog) checkRequirement(owner string, r domain.Requirement) error {
	switch v := r.(type) {
	case domain.HarvestCount:
		if v.Species != "" {
			if _, ok := c.species[v.Species]; !ok {
				return fmt.Errorf("%w: %s requires harvests of '%s'", ErrMissingRef, owner, v.Species)
			}
		}
	case domain.AchievementUnlocked:
		if _, ok := c.achievements[v.AchievementID]; !ok {
			return fmt.Errorf("%w: %s requires achievement '%s'", ErrMissingRef, owner, v.AchievementID)
		}
	case domain.NoRequirement, domain.ResourceThreshold, domain.MinigameFlag, domain.AllErasVisited,
		domain.ErasVisitedCount, domain.ResourcesEarned, domain.PlantsPlanted:
	}
	return nil
}

// detectCycles uses DFS over achievement-unlocked edges
func (c *Catalog) detectCycles() error {
	// State: 0 = unvisited, 1 = visiting, 2 = visited
	state := make(map[string]int, len(c.achievements))

	var dfs func(id string) error
	dfs = func(id string) error {
		if state[id] == 1 {
			return fmt.Errorf("%w: at achievement '%s'", ErrCycleDetected, id)
		}
		if state[id] == 2 {
			return nil
		}
		state[id] = 1
		if dep, ok := c.achievements[id].Requirement.(domain.AchievementUnlocked); ok {
			if err := dfs(dep.AchievementID); err != nil {
				return err
			}
		}
		state[id] = 2
		return nil
	}

	for _, id := range c.achOrder {
		if err := dfs(id); err != nil {
			return err
		}
	}
	return nil
}

// Species looks up a plant species
func (c *Catalog) Species(id string) (domain.Species, bool) {
	s, ok := c.species[id]
	return s, ok
}

// AllSpecies returns every species in catalog order
func (c *Catalog) AllSpecies() []domain.Species {
	out := make([]domain.Species, 0, len(c.speciesOrder))
	for _, id := range c.speciesOrder {
		out = append(out, c.species[id])
	}
	return out
}

// Era looks up an era definition. Unlocked is always false here; the
// unlocked flag lives in game state.
func (c *Catalog) Era(id string) (domain.Era, bool) {
	e, ok := c.eras[id]
	return e, ok
}

// Eras returns every era in travel order
func (c *Catalog) Eras() []domain.Era {
	out := make([]domain.Era, 0, len(c.eraOrder))
	for _, id := range c.eraOrder {
		out = append(out, c.eras[id])
	}
	return out
}

// EraIDs returns every era id in travel order
func (c *Catalog) EraIDs() []string {
	return slices.Clone(c.eraOrder)
}

// Achievement looks up an achievement
func (c *Catalog) Achievement(id string) (domain.Achievement, bool) {
	a, ok := c.achievements[id]
	return a, ok
}

// Achievements returns every achievement in catalog order
func (c *Catalog) Achievements() []domain.Achievement {
	out := make([]domain.Achievement, 0, len(c.achOrder))
	for _, id := range c.achOrder {
		out = append(out, c.achievements[id])
	}
	return out
}

// InitialEraFlags returns the unlocked flag of every era for a new game
func (c *Catalog) InitialEraFlags() map[string]bool {
	flags := make(map[string]bool, len(c.eras))
	for id, e := range c.eras {
		_, free := e.Requirement.(domain.NoRequirement)
		flags[id] = free
	}
	return flags
}
