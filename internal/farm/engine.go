package farm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/osse101/ChronoFarm_Go/internal/catalog"
	"github.com/osse101/ChronoFarm_Go/internal/clock"
	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/inventory"
	"github.com/osse101/ChronoFarm_Go/internal/logger"
	"github.com/osse101/ChronoFarm_Go/internal/store"
	"github.com/osse101/ChronoFarm_Go/internal/utils"
)

// Acceleration is a time skip given either as a duration or as a fraction
// of the plant's current adjusted grow time. Exactly one must be set.
type Acceleration struct {
	Duration time.Duration
	Percent  float64
}

// Engine owns the plot state machine and the growth simulation. It keeps no
// plot state of its own: every read and write goes through the store.
// Callers serialize mutating calls.
type Engine struct {
	store   *store.Store
	bus     event.Publisher
	catalog *catalog.Catalog
	inv     *inventory.Service
	clock   clock.Clock
	rng     utils.Randomizer
	cfg     Config

	effectsMu sync.RWMutex
	effects   domain.EraEffects
	subID     store.SubscriptionID
}

// NewEngine creates the lifecycle engine and starts following world.effects
func NewEngine(
	s *store.Store,
	bus event.Publisher,
	cat *catalog.Catalog,
	inv *inventory.Service,
	clk clock.Clock,
	rng utils.Randomizer,
	cfg Config,
) (*Engine, error) {
	e := &Engine{
		store:   s,
		bus:     bus,
		catalog: cat,
		inv:     inv,
		clock:   clk,
		rng:     rng,
		cfg:     cfg.withDefaults(),
		effects: domain.NeutralEffects(),
	}
	id, err := s.Subscribe(domain.PathEffects, func(_, _ any, _ string) {
		e.refreshEffects()
	}, store.SubscribeOptions{Immediate: true})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to era effects: %w", err)
	}
	e.subID = id
	return e, nil
}

// Close stops following world.effects
func (e *Engine) Close() {
	e.store.Unsubscribe(e.subID)
}

func (e *Engine) refreshEffects() {
	fx, ok := store.GetAs[domain.EraEffects](e.store, domain.PathEffects)
	if !ok {
		fx = domain.NeutralEffects()
	}
	e.effectsMu.Lock()
	e.effects = fx.Normalize()
	e.effectsMu.Unlock()
}

// Effects returns the era multipliers currently applied to growth
func (e *Engine) Effects() domain.EraEffects {
	e.effectsMu.RLock()
	defer e.effectsMu.RUnlock()
	return e.effects
}

// Plots returns every plot in id order
func (e *Engine) Plots() []domain.Plot {
	plots, _ := store.GetAs[[]domain.Plot](e.store, domain.PathPlots)
	return plots
}

// Plot returns a single plot
func (e *Engine) Plot(id int) (domain.Plot, error) {
	if id < 0 {
		return domain.Plot{}, fmt.Errorf("%w: %d", domain.ErrUnknownPlot, id)
	}
	p, ok := store.GetAs[domain.Plot](e.store, plotPath(id))
	if !ok {
		return domain.Plot{}, fmt.Errorf("%w: %d", domain.ErrUnknownPlot, id)
	}
	return p, nil
}

// Reset replaces the grid with empty plots
func (e *Engine) Reset(ctx context.Context, gridSize, columns int) error {
	if gridSize <= 0 {
		gridSize = domain.DefaultGridSize
	}
	if columns <= 0 {
		columns = domain.DefaultGridColumns
	}
	plots := make([]domain.Plot, gridSize)
	for i := range plots {
		plots[i] = domain.NewEmptyPlot(i, columns)
	}
	if err := e.store.Set(domain.PathFarm, domain.Farm{Plots: plots, GridColumns: columns}, store.SetOptions{}); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("Farm reset", "plots", gridSize, "columns", columns)
	return nil
}

// PlantSeed puts one seed of the given species into an empty plot
func (e *Engine) PlantSeed(ctx context.Context, plotID int, seedType string) error {
	log := logger.FromContext(ctx)

	plot, err := e.Plot(plotID)
	if err != nil {
		log.Error("Plant seed on unknown plot", "plot_id", plotID)
		return e.fail(ctx, ActionPlant, plotID, seedType, err)
	}
	species, ok := e.catalog.Species(seedType)
	if !ok {
		log.Error("Plant seed of unknown species", "plot_id", plotID, "species", seedType)
		return e.fail(ctx, ActionPlant, plotID, seedType, fmt.Errorf("%w: %s", domain.ErrUnknownSpecies, seedType))
	}
	if plot.State != domain.PlotEmpty {
		return e.fail(ctx, ActionPlant, plotID, seedType, fmt.Errorf("%w: plot %d is %s", domain.ErrPlotOccupied, plotID, plot.State))
	}
	if e.inv.Seeds(seedType) < 1 {
		return e.fail(ctx, ActionPlant, plotID, seedType, fmt.Errorf("%w: %s", domain.ErrNoSeeds, seedType))
	}

	now := e.clock.Now()
	plot.Plant = species.NewPlant(now)
	plot.State = domain.PlotPlanted
	plot.WaterLevel = domain.PlantingWater
	plot.Nutrients = domain.PlantingNutrients
	plot.PlantedAt = now

	if err := e.inv.TakeSeed(ctx, seedType); err != nil {
		return e.fail(ctx, ActionPlant, plotID, seedType, err)
	}
	if err := e.writePlot(plot, store.SetOptions{}); err != nil {
		if refundErr := e.inv.Apply(ctx, inventory.Delta{Seeds: map[string]int{seedType: 1}}, inventory.SourceRefund); refundErr != nil {
			log.Error("Failed to refund seed", "species", seedType, "error", refundErr)
		}
		return e.fail(ctx, ActionPlant, plotID, seedType, err)
	}

	log.Info("Seed planted", "plot_id", plotID, "species", seedType)
	e.bus.Emit(ctx, event.PlantPlanted{PlotID: plotID, Species: seedType, PlantedAt: now})
	return nil
}

// WaterPlant tops up a planted plot's water
func (e *Engine) WaterPlant(ctx context.Context, plotID int) error {
	plot, err := e.Plot(plotID)
	if err != nil {
		logger.FromContext(ctx).Error("Water unknown plot", "plot_id", plotID)
		return e.fail(ctx, ActionWater, plotID, "", err)
	}
	if !plot.HasPlant() {
		return e.fail(ctx, ActionWater, plotID, "", fmt.Errorf("%w: plot %d", domain.ErrPlotEmpty, plotID))
	}

	plot.WaterLevel = math.Min(domain.MaxWaterLevel, plot.WaterLevel+domain.WaterPerAction)
	plot.LastWatered = e.clock.Now()
	plot.Plant.WaterLevel = plot.WaterLevel

	if err := e.writePlot(plot, store.SetOptions{}); err != nil {
		return e.fail(ctx, ActionWater, plotID, plot.Plant.Type, err)
	}
	e.bus.Emit(ctx, event.PlantWatered{PlotID: plotID, Species: plot.Plant.Type, WaterLevel: plot.WaterLevel})
	return nil
}

// HarvestPlant collects a ready plant, pays its rewards and empties the plot
func (e *Engine) HarvestPlant(ctx context.Context, plotID int) (*domain.HarvestRewards, error) {
	log := logger.FromContext(ctx)

	plot, err := e.Plot(plotID)
	if err != nil {
		log.Error("Harvest unknown plot", "plot_id", plotID)
		return nil, e.fail(ctx, ActionHarvest, plotID, "", err)
	}
	if !plot.HasPlant() {
		return nil, e.fail(ctx, ActionHarvest, plotID, "", fmt.Errorf("%w: plot %d", domain.ErrPlotEmpty, plotID))
	}
	if plot.State != domain.PlotReady {
		return nil, e.fail(ctx, ActionHarvest, plotID, plot.Plant.Type,
			fmt.Errorf("%w: progress %.0f%%", domain.ErrPlantNotReady, plot.Plant.Progress*100))
	}

	harvested := *plot.Plant
	rewards := e.rollRewards(harvested)

	before := plot
	plot.Plant = nil
	plot.State = domain.PlotEmpty
	plot.WaterLevel = domain.ResidualWater
	plot.Nutrients = domain.ResidualNutrients
	plot.SoilQuality = math.Max(0, plot.SoilQuality-domain.SoilDepletionPerHarvest)
	plot.LastHarvested = e.clock.Now()

	if err := e.writePlot(plot, store.SetOptions{}); err != nil {
		return nil, e.fail(ctx, ActionHarvest, plotID, harvested.Type, err)
	}
	reward := domain.Reward{Resources: rewards.Resources, Seeds: rewards.Seeds, Experience: rewards.Experience}
	if err := e.inv.Grant(ctx, reward, inventory.SourceHarvest); err != nil {
		if restoreErr := e.writePlot(before, store.SetOptions{SkipHistory: true}); restoreErr != nil {
			log.Error("Failed to restore plot after rejected harvest", "plot_id", plotID, "error", restoreErr)
		}
		return nil, e.fail(ctx, ActionHarvest, plotID, harvested.Type, err)
	}

	log.Info("Plant harvested", "plot_id", plotID, "species", harvested.Type, "rewards", rewards.Resources)
	e.bus.Emit(ctx, event.PlantHarvested{PlotID: plotID, Plant: harvested, Rewards: rewards})
	return &rewards, nil
}

// rollRewards scales the yield template by a random multiplier and the era
// resource multiplier, and adds the random seed bonus
func (e *Engine) rollRewards(p domain.Plant) domain.HarvestRewards {
	y := p.HarvestYield
	fx := e.Effects()

	rewards := domain.HarvestRewards{
		Resources:  make(map[string]int, len(y.Resources)),
		Seeds:      utils.CopyCounts(y.Seeds),
		Experience: y.Experience,
	}
	for id, base := range y.Resources {
		roll := y.MinMultiplier + e.rng.Float()*(y.MaxMultiplier-y.MinMultiplier)
		amount := int(math.Floor(float64(base) * roll * fx.ResourceMultiplier))
		if amount > 0 {
			rewards.Resources[id] = amount
		}
	}
	if y.SeedBonusMax > 0 {
		if bonus := e.rng.IntBetween(0, y.SeedBonusMax); bonus > 0 {
			rewards.Seeds[p.Type] += bonus
		}
	}
	return rewards
}

// AccelerateGrowth moves plantedAt back in time and recomputes progress with
// the tick formula. It returns the new progress.
func (e *Engine) AccelerateGrowth(ctx context.Context, plotID int, acc Acceleration) (float64, error) {
	plot, skip, err := e.prepareAcceleration(ctx, plotID, acc)
	if err != nil {
		return 0, err
	}
	return e.accelerate(ctx, plot, skip, 0)
}

// AccelerateWithPulses buys a time skip with temporal pulses. The cost is
// charged per started minute and is refunded if the skip cannot be applied.
func (e *Engine) AccelerateWithPulses(ctx context.Context, plotID int, d time.Duration) (float64, error) {
	plot, skip, err := e.prepareAcceleration(ctx, plotID, Acceleration{Duration: d})
	if err != nil {
		return 0, err
	}

	cost := e.PulseCost(skip)
	price := map[string]int{domain.ResourceTemporalPulses: cost}
	if err := e.inv.Spend(ctx, price, inventory.SourceAccelerate); err != nil {
		return 0, e.fail(ctx, ActionAccelerate, plotID, plot.Plant.Type, err)
	}
	progress, err := e.accelerate(ctx, plot, skip, cost)
	if err != nil {
		if refundErr := e.inv.Apply(ctx, inventory.Delta{Resources: price}, inventory.SourceRefund); refundErr != nil {
			logger.FromContext(ctx).Error("Failed to refund acceleration", "cost", cost, "error", refundErr)
		}
		return 0, err
	}
	return progress, nil
}

// PulseCost is the temporal pulse price of a time skip
func (e *Engine) PulseCost(skip time.Duration) int {
	minutes := int(math.Ceil(skip.Minutes()))
	return max(1, minutes) * e.cfg.PulseCostPerMinute
}

func (e *Engine) prepareAcceleration(ctx context.Context, plotID int, acc Acceleration) (domain.Plot, time.Duration, error) {
	plot, err := e.Plot(plotID)
	if err != nil {
		logger.FromContext(ctx).Error("Accelerate unknown plot", "plot_id", plotID)
		return plot, 0, e.fail(ctx, ActionAccelerate, plotID, "", err)
	}
	if !plot.HasPlant() {
		return plot, 0, e.fail(ctx, ActionAccelerate, plotID, "", fmt.Errorf("%w: plot %d", domain.ErrPlotEmpty, plotID))
	}

	var skip time.Duration
	switch {
	case acc.Duration > 0 && acc.Percent == 0:
		skip = acc.Duration
	case acc.Percent > 0 && acc.Percent <= MaxAcceleratePercent && acc.Duration == 0:
		adjusted := AdjustedGrowTime(plot.Plant.GrowTime(), plot.WaterLevel, plot.Nutrients, e.Effects().GrowthMultiplier)
		skip = time.Duration(acc.Percent * float64(adjusted))
	default:
		return plot, 0, e.fail(ctx, ActionAccelerate, plotID, plot.Plant.Type,
			fmt.Errorf("%w: give either a positive duration or a percent in (0, 1]", domain.ErrInvalidAcceleration))
	}
	return plot, skip, nil
}

func (e *Engine) accelerate(ctx context.Context, plot domain.Plot, skip time.Duration, cost int) (float64, error) {
	plant := plot.Plant
	plant.PlantedAt = plant.PlantedAt.Add(-skip)
	plot.PlantedAt = plant.PlantedAt

	now := e.clock.Now()
	progress := ComputeProgress(plant.PlantedAt, now, plant.GrowTime(), plot.WaterLevel, plot.Nutrients, e.Effects().GrowthMultiplier)
	changes := advance(&plot, progress, e.cfg.ProgressEventThreshold)

	if err := e.writePlot(plot, store.SetOptions{}); err != nil {
		return 0, e.fail(ctx, ActionAccelerate, plot.ID, plant.Type, err)
	}

	logger.FromContext(ctx).Info("Growth accelerated", "plot_id", plot.ID, "species", plant.Type, "skipped", skip, "progress", plant.Progress)
	e.bus.Emit(ctx, event.PlantAccelerated{
		PlotID:   plot.ID,
		Species:  plant.Type,
		Skipped:  skip,
		Progress: plant.Progress,
		Percent:  math.Round(plant.Progress * 100),
		Cost:     cost,
	})
	e.emitChanges(ctx, plot, changes)
	return plant.Progress, nil
}

// Update advances every growing plot by one tick of wall-clock time. Plots are
// processed in id order so events come out in a reproducible order.
func (e *Engine) Update(ctx context.Context, delta time.Duration) error {
	if delta < 0 {
		delta = 0
	}
	plots := e.Plots()
	now := e.clock.Now()
	fx := e.Effects()

	type changed struct {
		plot    domain.Plot
		changes growthChanges
	}
	var dirty []changed
	writes := make(map[string]any)

	for _, plot := range plots {
		if plot.Plant == nil || (plot.State != domain.PlotPlanted && plot.State != domain.PlotGrowing) {
			continue
		}
		plant := plot.Plant

		plot.WaterLevel = decayedWater(plot.WaterLevel, delta, e.cfg.WaterDecayRate, fx.WaterRetention)
		plot.Nutrients = decayedNutrients(plant.BaseNutrients, now.Sub(plant.PlantedAt), e.cfg.NutrientDecayRate)

		progress := ComputeProgress(plant.PlantedAt, now, plant.GrowTime(), plot.WaterLevel, plot.Nutrients, fx.GrowthMultiplier)
		changes := advance(&plot, progress, e.cfg.ProgressEventThreshold)

		writes[plotPath(plot.ID)] = plot
		dirty = append(dirty, changed{plot: plot, changes: changes})
	}
	if len(writes) == 0 {
		return nil
	}

	// ticks are simulation, not player actions, so they stay out of undo history
	if err := e.store.BatchUpdate(writes, store.BatchOptions{Immediate: true, SkipHistory: true}); err != nil {
		logger.FromContext(ctx).Error("Failed to write growth tick", "error", err)
		return err
	}
	for _, d := range dirty {
		e.emitChanges(ctx, d.plot, d.changes)
	}
	return nil
}

// growthChanges records what advance did to a plot
type growthChanges struct {
	report        bool
	previousStage int
	becameReady   bool
}

// advance applies a freshly computed progress to a plot. Progress and stage
// never decrease while the plant is in the ground.
func advance(plot *domain.Plot, computed float64, threshold float64) growthChanges {
	plant := plot.Plant
	plant.WaterLevel = plot.WaterLevel
	plant.Nutrients = plot.Nutrients

	ch := growthChanges{previousStage: plant.GrowthStage}
	plant.Progress = math.Max(plant.Progress, computed)
	plant.GrowthStage = max(plant.GrowthStage, StageFor(plant.Progress, plant.MaxStages))

	if plant.GrowthStage != ch.previousStage || plant.Progress-plant.ReportedProgress >= threshold {
		ch.report = true
		plant.ReportedProgress = plant.Progress
	}

	switch {
	case plant.Progress >= 1 && plot.State != domain.PlotReady:
		plot.State = domain.PlotReady
		ch.becameReady = true
		if !ch.report {
			ch.report = true
			plant.ReportedProgress = plant.Progress
		}
	case plot.State == domain.PlotPlanted && plant.GrowthStage >= 1:
		plot.State = domain.PlotGrowing
	}
	return ch
}

func (e *Engine) emitChanges(ctx context.Context, plot domain.Plot, ch growthChanges) {
	if plot.Plant == nil {
		return
	}
	if ch.report {
		e.bus.Emit(ctx, event.PlantGrowth{
			PlotID:        plot.ID,
			Species:       plot.Plant.Type,
			Stage:         plot.Plant.GrowthStage,
			PreviousStage: ch.previousStage,
			Progress:      plot.Plant.Progress,
		})
	}
	if ch.becameReady {
		e.bus.Emit(ctx, event.PlantReady{PlotID: plot.ID, Species: plot.Plant.Type})
	}
}

func (e *Engine) writePlot(p domain.Plot, opts store.SetOptions) error {
	return e.store.SetAt(domain.PathPlots, p.ID, p, opts)
}

// fail emits the structured failure event and returns err
func (e *Engine) fail(ctx context.Context, action string, plotID int, species string, err error) error {
	reason := domain.ReasonFor(err)
	if errors.Is(err, store.ErrValidation) {
		logger.FromContext(ctx).Error("Plot write rejected by schema", "action", action, "plot_id", plotID, "error", err)
	} else {
		logger.FromContext(ctx).Warn("Plot operation rejected", "action", action, "plot_id", plotID, "reason", reason)
	}
	e.bus.Emit(ctx, event.PlantError{
		Action:  action,
		PlotID:  plotID,
		Species: species,
		Reason:  reason,
		Message: err.Error(),
	})
	return err
}

func plotPath(id int) string {
	return domain.PathPlots + "." + strconv.Itoa(id)
}
