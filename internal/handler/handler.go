package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/game"
	"github.com/osse101/ChronoFarm_Go/internal/logger"
	"github.com/osse101/ChronoFarm_Go/internal/timetravel"
)

// Journeys starts paid journeys in the background
type Journeys interface {
	Start(ctx context.Context, eraID string) (*timetravel.Journey, error)
}

// PlantRequest plants a seed on a plot
type PlantRequest struct {
	Species string `json:"species" validate:"required,catalogid"`
}

// AccelerateRequest buys a growth skip with temporal pulses
type AccelerateRequest struct {
	Seconds float64 `json:"seconds" validate:"gt=0,lte=86400"`
}

// AccelerateResponse reports the plot's progress after the skip
type AccelerateResponse struct {
	PlotID   int     `json:"plotId"`
	Progress float64 `json:"progress"`
}

// TravelRequest starts a journey
type TravelRequest struct {
	Era string `json:"era" validate:"required,catalogid"`
}

// TravelResponse acknowledges a journey that is now playing
type TravelResponse struct {
	Message string `json:"message"`
	To      string `json:"to"`
}

// MinigameRequest reports a finished minigame
type MinigameRequest struct {
	MinigameID string        `json:"minigameId" validate:"required,catalogid"`
	Success    bool          `json:"success"`
	Score      int           `json:"score" validate:"gte=0"`
	Rewards    domain.Reward `json:"rewards"`
}

// GameHandler serves the game API over one session
type GameHandler struct {
	game     game.Service
	journeys Journeys
}

// NewGameHandler creates a game handler
func NewGameHandler(g game.Service, journeys Journeys) *GameHandler {
	return &GameHandler{game: g, journeys: journeys}
}

// GetState returns the state tree, or the subtree at ?path=
// @Summary Game state
// @Tags state
// @Produce json
// @Param path query string false "Dot path into the state tree"
// @Success 200 {object} DataResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/state [get]
func (h *GameHandler) GetState(w http.ResponseWriter, r *http.Request) {
	path := GetOptionalQueryParam(r, "path", "")
	if path == "" {
		respondJSON(w, http.StatusOK, DataResponse{Data: h.game.State()})
		return
	}
	v, ok := h.game.StateAt(path)
	if !ok {
		respondError(w, http.StatusNotFound, ErrMsgInvalidRequestSummary)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{Data: v})
}

// GetPlots lists the farm grid
// @Summary List plots
// @Tags farm
// @Produce json
// @Success 200 {array} domain.Plot
// @Router /api/v1/plots [get]
func (h *GameHandler) GetPlots(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.game.Plots())
}

// GetPlot returns one plot
// @Summary Get plot
// @Tags farm
// @Produce json
// @Param plotID path int true "Plot id"
// @Success 200 {object} domain.Plot
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/plots/{plotID} [get]
func (h *GameHandler) GetPlot(w http.ResponseWriter, r *http.Request) {
	id, ok := plotIDParam(w, r)
	if !ok {
		return
	}
	plot, err := h.game.Plot(id)
	if err != nil {
		respondServiceError(w, r, "Get plot", err)
		return
	}
	respondJSON(w, http.StatusOK, plot)
}

// PlantSeed plants a seed from the inventory
// @Summary Plant a seed
// @Tags farm
// @Accept json
// @Produce json
// @Param plotID path int true "Plot id"
// @Param request body PlantRequest true "Species to plant"
// @Success 201 {object} domain.Plot
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/plots/{plotID}/plant [post]
func (h *GameHandler) PlantSeed(w http.ResponseWriter, r *http.Request) {
	id, ok := plotIDParam(w, r)
	if !ok {
		return
	}
	var req PlantRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Plant seed"); err != nil {
		return
	}
	if err := h.game.PlantSeed(r.Context(), id, req.Species); err != nil {
		respondServiceError(w, r, "Plant seed", err)
		return
	}
	h.respondPlot(w, r, http.StatusCreated, id)
}

// WaterPlant refills a plot's water
// @Summary Water a plant
// @Tags farm
// @Produce json
// @Param plotID path int true "Plot id"
// @Success 200 {object} domain.Plot
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/plots/{plotID}/water [post]
func (h *GameHandler) WaterPlant(w http.ResponseWriter, r *http.Request) {
	id, ok := plotIDParam(w, r)
	if !ok {
		return
	}
	if err := h.game.WaterPlant(r.Context(), id); err != nil {
		respondServiceError(w, r, "Water plant", err)
		return
	}
	h.respondPlot(w, r, http.StatusOK, id)
}

// HarvestPlant harvests a ready plant
// @Summary Harvest a plant
// @Tags farm
// @Produce json
// @Param plotID path int true "Plot id"
// @Success 200 {object} domain.HarvestRewards
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/plots/{plotID}/harvest [post]
func (h *GameHandler) HarvestPlant(w http.ResponseWriter, r *http.Request) {
	id, ok := plotIDParam(w, r)
	if !ok {
		return
	}
	rewards, err := h.game.HarvestPlant(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, "Harvest plant", err)
		return
	}
	respondJSON(w, http.StatusOK, rewards)
}

// Accelerate spends temporal pulses to skip growth time
// @Summary Accelerate growth
// @Tags farm
// @Accept json
// @Produce json
// @Param plotID path int true "Plot id"
// @Param request body AccelerateRequest true "Seconds to skip"
// @Success 200 {object} AccelerateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/plots/{plotID}/accelerate [post]
func (h *GameHandler) Accelerate(w http.ResponseWriter, r *http.Request) {
	id, ok := plotIDParam(w, r)
	if !ok {
		return
	}
	var req AccelerateRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Accelerate"); err != nil {
		return
	}
	skip := time.Duration(req.Seconds * float64(time.Second))
	progress, err := h.game.Accelerate(r.Context(), id, skip)
	if err != nil {
		respondServiceError(w, r, "Accelerate", err)
		return
	}
	respondJSON(w, http.StatusOK, AccelerateResponse{PlotID: id, Progress: progress})
}

// GetSpecies lists the plant catalog
// @Summary Plant species
// @Tags farm
// @Produce json
// @Success 200 {array} domain.Species
// @Router /api/v1/species [get]
func (h *GameHandler) GetSpecies(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.game.Species())
}

// GetEras lists eras with their lock state
// @Summary Eras
// @Tags travel
// @Produce json
// @Success 200 {array} domain.EraStatus
// @Router /api/v1/eras [get]
func (h *GameHandler) GetEras(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.game.Eras())
}

// Travel pays for a journey and plays it in the background. Progress and
// the outcome arrive on the event stream.
// @Summary Travel to an era
// @Tags travel
// @Accept json
// @Produce json
// @Param request body TravelRequest true "Target era"
// @Success 202 {object} TravelResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/travel [post]
func (h *GameHandler) Travel(w http.ResponseWriter, r *http.Request) {
	var req TravelRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Travel"); err != nil {
		return
	}
	j, err := h.journeys.Start(r.Context(), req.Era)
	if err != nil {
		respondServiceError(w, r, "Travel", err)
		return
	}
	logger.FromContext(r.Context()).Info("Journey accepted", "to", j.To())
	respondJSON(w, http.StatusAccepted, TravelResponse{Message: MsgTravelStarted, To: j.To()})
}

// GetInventory returns the player's inventory
// @Summary Inventory
// @Tags player
// @Produce json
// @Success 200 {object} domain.Inventory
// @Router /api/v1/inventory [get]
func (h *GameHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.game.Inventory())
}

// GetStats returns the cumulative player counters
// @Summary Player stats
// @Tags player
// @Produce json
// @Success 200 {object} domain.PlayerStats
// @Router /api/v1/stats [get]
func (h *GameHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.game.Stats())
}

// GetAchievements lists achievements with their unlock state
// @Summary Achievements
// @Tags player
// @Produce json
// @Success 200 {array} achievement.Status
// @Router /api/v1/achievements [get]
func (h *GameHandler) GetAchievements(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.game.Achievements())
}

// CompleteMinigame records a minigame result
// @Summary Report a minigame result
// @Tags player
// @Accept json
// @Produce json
// @Param request body MinigameRequest true "Result"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/minigames/complete [post]
func (h *GameHandler) CompleteMinigame(w http.ResponseWriter, r *http.Request) {
	var req MinigameRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Complete minigame"); err != nil {
		return
	}
	err := h.game.CompleteMinigame(r.Context(), domain.MinigameResult{
		MinigameID: req.MinigameID,
		Success:    req.Success,
		Score:      req.Score,
		Rewards:    req.Rewards,
	})
	if err != nil {
		respondServiceError(w, r, "Complete minigame", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgMinigame})
}

// Undo steps the state back one history entry
// @Summary Undo
// @Tags session
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/undo [post]
func (h *GameHandler) Undo(w http.ResponseWriter, r *http.Request) {
	if !h.game.Undo(r.Context()) {
		respondError(w, http.StatusConflict, MsgNothingToUndo)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgUndone})
}

// Redo reapplies the last undone entry
// @Summary Redo
// @Tags session
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/redo [post]
func (h *GameHandler) Redo(w http.ResponseWriter, r *http.Request) {
	if !h.game.Redo(r.Context()) {
		respondError(w, http.StatusConflict, MsgNothingToRedo)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRedone})
}

// Save persists the game to the configured slot
// @Summary Save
// @Tags session
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 501 {object} ErrorResponse
// @Router /api/v1/save [post]
func (h *GameHandler) Save(w http.ResponseWriter, r *http.Request) {
	f, err := h.game.Save(r.Context())
	if err != nil {
		respondServiceError(w, r, "Save", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{
		Message: MsgGameSaved,
		Data:    map[string]any{"version": f.Version, "timestamp": f.Timestamp},
	})
}

// Load restores the game from the configured slot
// @Summary Load
// @Tags session
// @Produce json
// @Success 200 {object} DataResponse
// @Failure 501 {object} ErrorResponse
// @Router /api/v1/load [post]
func (h *GameHandler) Load(w http.ResponseWriter, r *http.Request) {
	res, err := h.game.Load(r.Context())
	if err != nil {
		respondServiceError(w, r, "Load", err)
		return
	}
	respondJSON(w, http.StatusOK, DataResponse{
		Message: MsgGameLoaded,
		Data: map[string]any{
			"source":      res.Source,
			"version":     res.File.Version,
			"fromVersion": res.FromVersion,
		},
	})
}

// NewGame discards the current game
// @Summary New game
// @Tags session
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /api/v1/new-game [post]
func (h *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	if err := h.game.NewGame(r.Context()); err != nil {
		respondServiceError(w, r, "New game", err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgNewGame})
}

func (h *GameHandler) respondPlot(w http.ResponseWriter, r *http.Request, status int, id int) {
	plot, err := h.game.Plot(id)
	if err != nil {
		respondServiceError(w, r, "Get plot", err)
		return
	}
	respondJSON(w, status, plot)
}
