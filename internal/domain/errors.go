package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Plot errors
	ErrMsgUnknownPlot   = "unknown plot"
	ErrMsgPlotOccupied  = "plot is occupied"
	ErrMsgPlotEmpty     = "plot has no plant"
	ErrMsgPlantNotReady = "plant is not ready for harvest"

	// Catalog errors
	ErrMsgUnknownSpecies     = "unknown species"
	ErrMsgUnknownEra         = "unknown era"
	ErrMsgUnknownAchievement = "unknown achievement"

	// Inventory errors
	ErrMsgNoSeeds               = "no seeds of that type"
	ErrMsgInsufficientResources = "insufficient resources"
	ErrMsgInvalidAmount         = "invalid amount"

	// Travel errors
	ErrMsgEraLocked         = "era is locked"
	ErrMsgAlreadyTraveling  = "a journey is already in progress"
	ErrMsgAlreadyInEra      = "already in that era"
	ErrMsgTravelOnCooldown  = "travel is on cooldown"
	ErrMsgTravelInterrupted = "journey was interrupted"

	// Acceleration errors
	ErrMsgInvalidAcceleration = "invalid acceleration"

	// Persistence errors
	ErrMsgSaveNotFound = "save not found"
	ErrMsgCorruptSave  = "save data is corrupt"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrUnknownPlot   = errors.New(ErrMsgUnknownPlot)
	ErrPlotOccupied  = errors.New(ErrMsgPlotOccupied)
	ErrPlotEmpty     = errors.New(ErrMsgPlotEmpty)
	ErrPlantNotReady = errors.New(ErrMsgPlantNotReady)

	ErrUnknownSpecies     = errors.New(ErrMsgUnknownSpecies)
	ErrUnknownEra         = errors.New(ErrMsgUnknownEra)
	ErrUnknownAchievement = errors.New(ErrMsgUnknownAchievement)

	ErrNoSeeds               = errors.New(ErrMsgNoSeeds)
	ErrInsufficientResources = errors.New(ErrMsgInsufficientResources)
	ErrInvalidAmount         = errors.New(ErrMsgInvalidAmount)

	ErrEraLocked         = errors.New(ErrMsgEraLocked)
	ErrAlreadyTraveling  = errors.New(ErrMsgAlreadyTraveling)
	ErrAlreadyInEra      = errors.New(ErrMsgAlreadyInEra)
	ErrTravelOnCooldown  = errors.New(ErrMsgTravelOnCooldown)
	ErrTravelInterrupted = errors.New(ErrMsgTravelInterrupted)

	ErrInvalidAcceleration = errors.New(ErrMsgInvalidAcceleration)

	ErrSaveNotFound = errors.New(ErrMsgSaveNotFound)
	ErrCorruptSave  = errors.New(ErrMsgCorruptSave)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// Failure reason codes carried on failure events. These are stable strings
// consumed by the UI and audio layers.
const (
	ReasonUnknownPlot      = "unknown-plot"
	ReasonUnknownSpecies   = "unknown-species"
	ReasonPlotOccupied     = "plot-occupied"
	ReasonNoPlant          = "no-plant"
	ReasonNotReady         = "not-ready"
	ReasonNoSeeds          = "no-seeds"
	ReasonInvalidInput     = "invalid-input"
	ReasonLocked           = "locked"
	ReasonInsufficient     = "insufficient-resources"
	ReasonCooldown         = "cooldown"
	ReasonAlreadyTraveling = "already-traveling"
	ReasonSameEra          = "same-era"
	ReasonUnknownEra       = "unknown-era"
	ReasonGenericError     = "error"
)

// ReasonFor maps a domain error onto its failure reason code
func ReasonFor(err error) string {
	switch {
	case errors.Is(err, ErrUnknownPlot):
		return ReasonUnknownPlot
	case errors.Is(err, ErrUnknownSpecies):
		return ReasonUnknownSpecies
	case errors.Is(err, ErrPlotOccupied):
		return ReasonPlotOccupied
	case errors.Is(err, ErrPlotEmpty):
		return ReasonNoPlant
	case errors.Is(err, ErrPlantNotReady):
		return ReasonNotReady
	case errors.Is(err, ErrNoSeeds):
		return ReasonNoSeeds
	case errors.Is(err, ErrEraLocked):
		return ReasonLocked
	case errors.Is(err, ErrInsufficientResources):
		return ReasonInsufficient
	case errors.Is(err, ErrTravelOnCooldown):
		return ReasonCooldown
	case errors.Is(err, ErrAlreadyTraveling):
		return ReasonAlreadyTraveling
	case errors.Is(err, ErrAlreadyInEra):
		return ReasonSameEra
	case errors.Is(err, ErrUnknownEra):
		return ReasonUnknownEra
	case errors.Is(err, ErrInvalidAcceleration), errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidAmount):
		return ReasonInvalidInput
	default:
		return ReasonGenericError
	}
}
