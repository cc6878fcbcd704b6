package domain

// EraEffects are the multipliers an era applies while it is the current era
type EraEffects struct {
	GrowthMultiplier   float64 `json:"growthMultiplier" validate:"gt=0"`
	WaterRetention     float64 `json:"waterRetention" validate:"gt=0"`
	ResourceMultiplier float64 `json:"resourceMultiplier" validate:"gt=0"`
}

// NeutralEffects leaves growth, water and yields untouched
func NeutralEffects() EraEffects {
	return EraEffects{
		GrowthMultiplier:   1.0,
		WaterRetention:     1.0,
		ResourceMultiplier: 1.0,
	}
}

// Normalize replaces non-positive multipliers with neutral ones
func (e EraEffects) Normalize() EraEffects {
	if e.GrowthMultiplier <= 0 {
		e.GrowthMultiplier = 1.0
	}
	if e.WaterRetention <= 0 {
		e.WaterRetention = 1.0
	}
	if e.ResourceMultiplier <= 0 {
		e.ResourceMultiplier = 1.0
	}
	return e
}

// Era is a static era definition joined with its unlocked flag
type Era struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Order       int            `json:"order"`
	Unlocked    bool           `json:"unlocked"`
	Requirement Requirement    `json:"-"`
	Effects     EraEffects     `json:"effects"`
	TravelCost  map[string]int `json:"travelCost,omitempty"`
	Plants      []string       `json:"plants,omitempty"`
	Animals     []string       `json:"animals,omitempty"`
}

// EraStatus is the view of an era sent to clients
type EraStatus struct {
	Era
	Current     bool            `json:"current"`
	Requirement RequirementSpec `json:"requirement"`
}
