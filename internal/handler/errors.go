package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidPlotID         = "Invalid plot id"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
)

// User-facing messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownPlotError   = "That plot does not exist"
	ErrMsgUnknownSpeciesErr  = "Unknown plant species"
	ErrMsgUnknownEraError    = "Unknown era"
	ErrMsgPlotOccupiedError  = "That plot is already planted"
	ErrMsgPlotEmptyError     = "Nothing is growing there"
	ErrMsgNotReadyError      = "The plant is not ready yet"
	ErrMsgNoSeedsError       = "You have no seeds of that type"
	ErrMsgInsufficientError  = "Not enough resources"
	ErrMsgEraLockedError     = "That era is still locked"
	ErrMsgTravelingError     = "A journey is already in progress"
	ErrMsgSameEraError       = "You are already in that era"
	ErrMsgCooldownError      = "The time machine is recharging"
	ErrMsgInterruptedError   = "The journey was interrupted"
	ErrMsgAccelerationError  = "Invalid acceleration"
	ErrMsgInvalidInputError  = "Invalid input"
	ErrMsgPersistenceOff     = "Saving is not configured"
	ErrMsgUnavailableError   = "Server is shutting down. Please try again later."
)

// Success messages for API responses
const (
	MsgTravelStarted = "Journey started"
	MsgUndone        = "Undone"
	MsgRedone        = "Redone"
	MsgNothingToUndo = "Nothing to undo"
	MsgNothingToRedo = "Nothing to redo"
	MsgGameSaved     = "Game saved"
	MsgGameLoaded    = "Game loaded"
	MsgNewGame       = "New game started"
	MsgMinigame      = "Minigame result recorded"
)
