package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/game"
	"github.com/osse101/ChronoFarm_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response. Reason is the stable failure
// code also carried on failure events.
type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload any) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and answers with its mapped status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err)
	}
	respondJSON(w, status, ErrorResponse{Error: msg, Reason: domain.ReasonFor(err)})
}

// mapServiceErrorToUserMessage maps domain errors to HTTP statuses and
// user-facing messages. Missing catalog entries or plots are 404, rule
// violations against the current state are 409 and malformed input is 400.
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrUnknownPlot):
		return http.StatusNotFound, ErrMsgUnknownPlotError
	case errors.Is(err, domain.ErrUnknownSpecies):
		return http.StatusNotFound, ErrMsgUnknownSpeciesErr
	case errors.Is(err, domain.ErrUnknownEra):
		return http.StatusNotFound, ErrMsgUnknownEraError
	case errors.Is(err, domain.ErrPlotOccupied):
		return http.StatusConflict, ErrMsgPlotOccupiedError
	case errors.Is(err, domain.ErrPlotEmpty):
		return http.StatusConflict, ErrMsgPlotEmptyError
	case errors.Is(err, domain.ErrPlantNotReady):
		return http.StatusConflict, ErrMsgNotReadyError
	case errors.Is(err, domain.ErrNoSeeds):
		return http.StatusConflict, ErrMsgNoSeedsError
	case errors.Is(err, domain.ErrInsufficientResources):
		return http.StatusConflict, ErrMsgInsufficientError
	case errors.Is(err, domain.ErrEraLocked):
		return http.StatusConflict, ErrMsgEraLockedError
	case errors.Is(err, domain.ErrAlreadyTraveling):
		return http.StatusConflict, ErrMsgTravelingError
	case errors.Is(err, domain.ErrAlreadyInEra):
		return http.StatusConflict, ErrMsgSameEraError
	case errors.Is(err, domain.ErrTravelOnCooldown):
		return http.StatusConflict, ErrMsgCooldownError
	case errors.Is(err, domain.ErrTravelInterrupted):
		return http.StatusConflict, ErrMsgInterruptedError
	case errors.Is(err, domain.ErrInvalidAcceleration):
		return http.StatusBadRequest, ErrMsgAccelerationError
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, game.ErrPersistenceDisabled):
		return http.StatusNotImplemented, ErrMsgPersistenceOff
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}
