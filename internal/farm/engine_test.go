package farm_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/farm"
	"github.com/osse101/ChronoFarm_Go/internal/inventory"
	"github.com/osse101/ChronoFarm_Go/internal/store"
	"github.com/osse101/ChronoFarm_Go/internal/testing/gametest"
	"github.com/osse101/ChronoFarm_Go/internal/utils"
)

const moss = "prehistoric-moss"

type harness struct {
	*gametest.Fixture
	engine *farm.Engine
	inv    *inventory.Service
}

func newHarness(t *testing.T, roll float64, opts ...gametest.Option) *harness {
	t.Helper()
	f := gametest.New(t, opts...)
	inv := inventory.NewService(f.Store, f.Bus)
	e, err := farm.NewEngine(f.Store, f.Bus, f.Catalog, inv, f.Clock, utils.FixedRandomizer{Value: roll}, farm.DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return &harness{Fixture: f, engine: e, inv: inv}
}

func (h *harness) plot(t *testing.T, id int) domain.Plot {
	t.Helper()
	p, err := h.engine.Plot(id)
	require.NoError(t, err)
	return p
}

// tick advances the clock and runs one update with the same delta
func (h *harness) tick(t *testing.T, d time.Duration) {
	t.Helper()
	h.Clock.Advance(d)
	require.NoError(t, h.engine.Update(context.Background(), d))
}

func (h *harness) assertOccupancy(t *testing.T) {
	t.Helper()
	for _, p := range h.engine.Plots() {
		assert.True(t, p.Consistent(), "plot %d: state %s with plant=%t", p.ID, p.State, p.HasPlant())
	}
}

func TestPlantSeed_DecrementsSeedsAndPlants(t *testing.T) {
	h := newHarness(t, 0)

	require.NoError(t, h.engine.PlantSeed(context.Background(), 0, moss))

	assert.Equal(t, 4, h.inv.Seeds(moss))
	p := h.plot(t, 0)
	assert.Equal(t, domain.PlotPlanted, p.State)
	require.NotNil(t, p.Plant)
	assert.Equal(t, moss, p.Plant.Type)
	assert.Equal(t, 100.0, p.WaterLevel)
	assert.Equal(t, 80.0, p.Nutrients)
	assert.True(t, p.PlantedAt.Equal(gametest.Epoch))

	planted := gametest.Last[event.PlantPlanted](t, h.Events)
	assert.Equal(t, 0, planted.PlotID)
	h.assertOccupancy(t)
}

func TestPlantSeed_OccupiedPlot(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	require.NoError(t, h.engine.PlantSeed(ctx, 1, moss))

	err := h.engine.PlantSeed(ctx, 1, "giant-fern")

	require.ErrorIs(t, err, domain.ErrPlotOccupied)
	assert.Equal(t, 2, h.inv.Seeds("giant-fern"))
	failure := gametest.Last[event.PlantError](t, h.Events)
	assert.Equal(t, domain.ReasonPlotOccupied, failure.Reason)
	assert.Equal(t, farm.ActionPlant, failure.Action)
	assert.Equal(t, moss, h.plot(t, 1).Plant.Type)
}

func TestPlantSeed_Failures(t *testing.T) {
	tests := []struct {
		name    string
		plotID  int
		species string
		wantErr error
		reason  string
	}{
		{"no seeds", 0, "papyrus", domain.ErrNoSeeds, domain.ReasonNoSeeds},
		{"unknown species", 0, "plastic-rose", domain.ErrUnknownSpecies, domain.ReasonUnknownSpecies},
		{"unknown plot", 99, moss, domain.ErrUnknownPlot, domain.ReasonUnknownPlot},
		{"negative plot", -1, moss, domain.ErrUnknownPlot, domain.ReasonUnknownPlot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 0)
			before := h.Store.GetState()

			err := h.engine.PlantSeed(context.Background(), tt.plotID, tt.species)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, h.Store.GetState())
			assert.Equal(t, tt.reason, gametest.Last[event.PlantError](t, h.Events).Reason)
		})
	}
}

func TestWaterPlant(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()

	err := h.engine.WaterPlant(ctx, 0)
	require.ErrorIs(t, err, domain.ErrPlotEmpty)

	require.NoError(t, h.engine.PlantSeed(ctx, 0, moss))
	h.tick(t, 10*time.Minute)
	dry := h.plot(t, 0).WaterLevel
	require.Less(t, dry, 100.0)

	require.NoError(t, h.engine.WaterPlant(ctx, 0))
	p := h.plot(t, 0)
	assert.InDelta(t, min(100, dry+domain.WaterPerAction), p.WaterLevel, 1e-9)
	assert.Equal(t, p.WaterLevel, p.Plant.WaterLevel)
	assert.True(t, p.LastWatered.Equal(h.Clock.Now()))

	// capped at the ceiling
	for range 5 {
		require.NoError(t, h.engine.WaterPlant(ctx, 0))
	}
	assert.Equal(t, 100.0, h.plot(t, 0).WaterLevel)
}

func TestUpdate_ReachesReady(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.engine.PlantSeed(context.Background(), 0, moss))
	h.Events.Reset()

	h.tick(t, 5*time.Minute)

	p := h.plot(t, 0)
	assert.Equal(t, domain.PlotReady, p.State)
	assert.Equal(t, 1.0, p.Plant.Progress)
	assert.Equal(t, 3, p.Plant.GrowthStage)
	assert.Equal(t, []event.Topic{event.TopicPlantGrowth, event.TopicPlantReady}, h.Events.Topics())

	// no redundant events once ready
	h.Events.Reset()
	h.tick(t, time.Minute)
	assert.Empty(t, h.Events.All())
	h.assertOccupancy(t)
}

func TestUpdate_GrowingTransitionAndEventThreshold(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.engine.PlantSeed(context.Background(), 0, moss))
	h.Events.Reset()

	// 1s of 37.5s adjusted grow time is below the reporting threshold
	h.tick(t, time.Second)
	assert.Empty(t, h.Events.All())
	assert.Equal(t, domain.PlotPlanted, h.plot(t, 0).State)

	h.tick(t, 14*time.Second)
	p := h.plot(t, 0)
	assert.Equal(t, domain.PlotGrowing, p.State)
	assert.Equal(t, 1, p.Plant.GrowthStage)
	growth := gametest.Last[event.PlantGrowth](t, h.Events)
	assert.Equal(t, 0, growth.PreviousStage)
	assert.Equal(t, 1, growth.Stage)
}

func TestUpdate_DecaysWaterAndNutrients(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.engine.PlantSeed(context.Background(), 0, moss))

	h.tick(t, 10*time.Second)

	p := h.plot(t, 0)
	assert.InDelta(t, 100-10*domain.DefaultWaterDecayRate, p.WaterLevel, 1e-9)
	assert.InDelta(t, 80-10*domain.DefaultNutrientDecayRate, p.Nutrients, 1e-9)
	assert.Equal(t, p.WaterLevel, p.Plant.WaterLevel)
	assert.Equal(t, p.Nutrients, p.Plant.Nutrients)
}

func TestUpdate_WaterRetentionSlowsDecay(t *testing.T) {
	h := newHarness(t, 0)
	require.NoError(t, h.engine.PlantSeed(context.Background(), 0, moss))
	fx := domain.EraEffects{GrowthMultiplier: 1, WaterRetention: 2, ResourceMultiplier: 1}
	require.NoError(t, h.Store.Set(domain.PathEffects, fx, store.SetOptions{}))

	h.tick(t, 10*time.Second)

	assert.InDelta(t, 100-10*domain.DefaultWaterDecayRate/2, h.plot(t, 0).WaterLevel, 1e-9)
}

func TestUpdate_StageNeverDecreases(t *testing.T) {
	h := newHarness(t, 0, gametest.WithSeeds(map[string]int{"grapevine": 1}))
	require.NoError(t, h.engine.PlantSeed(context.Background(), 0, "grapevine"))

	lastStage, lastProgress := 0, 0.0
	for range 200 {
		// long gaps drain the water, which lowers the computed progress rate
		h.tick(t, 7*time.Second)
		p := h.plot(t, 0)
		require.GreaterOrEqual(t, p.Plant.GrowthStage, lastStage)
		require.GreaterOrEqual(t, p.Plant.Progress, lastProgress)
		lastStage, lastProgress = p.Plant.GrowthStage, p.Plant.Progress
		h.assertOccupancy(t)
	}
}

func TestUpdate_IgnoresEmptyPlotsAndTakesNoHistory(t *testing.T) {
	h := newHarness(t, 0)
	before := h.Store.GetState()

	h.tick(t, time.Minute)
	assert.Equal(t, before, h.Store.GetState())

	require.NoError(t, h.engine.PlantSeed(context.Background(), 0, moss))
	h.tick(t, time.Minute)
	require.True(t, h.Store.Undo())
	assert.Equal(t, domain.PlotEmpty, h.plot(t, 0).State, "undo skips straight past growth ticks")
}

func TestHarvestPlant(t *testing.T) {
	tests := []struct {
		name      string
		roll      float64
		wantPulse int
		wantSeeds int
	}{
		{"lowest roll", 0, 3, 5},
		{"highest roll", 1, 6, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, tt.roll)
			ctx := context.Background()
			require.NoError(t, h.engine.PlantSeed(ctx, 2, moss))
			h.tick(t, 5*time.Minute)
			startPulses := h.inv.Resource(domain.ResourceTemporalPulses)
			soil := h.plot(t, 2).SoilQuality

			rewards, err := h.engine.HarvestPlant(ctx, 2)
			require.NoError(t, err)

			gained := h.inv.Resource(domain.ResourceTemporalPulses) - startPulses
			assert.Equal(t, tt.wantPulse, gained)
			assert.GreaterOrEqual(t, gained, 3)
			assert.LessOrEqual(t, gained, 6)
			assert.Equal(t, tt.wantPulse, rewards.Resources[domain.ResourceTemporalPulses])
			assert.Equal(t, tt.wantSeeds, h.inv.Seeds(moss))

			p := h.plot(t, 2)
			assert.Equal(t, domain.PlotEmpty, p.State)
			assert.Nil(t, p.Plant)
			assert.Equal(t, domain.ResidualWater, p.WaterLevel)
			assert.Equal(t, domain.ResidualNutrients, p.Nutrients)
			assert.Equal(t, soil-domain.SoilDepletionPerHarvest, p.SoilQuality)

			harvested := gametest.Last[event.PlantHarvested](t, h.Events)
			assert.Equal(t, moss, harvested.Plant.Type)
			assert.Equal(t, *rewards, harvested.Rewards)
			h.assertOccupancy(t)
		})
	}
}

func TestHarvestPlant_ResourceMultiplier(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	require.NoError(t, h.engine.PlantSeed(ctx, 0, moss))
	h.tick(t, 5*time.Minute)
	fx := domain.EraEffects{GrowthMultiplier: 1, WaterRetention: 1, ResourceMultiplier: 2}
	require.NoError(t, h.Store.Set(domain.PathEffects, fx, store.SetOptions{}))

	rewards, err := h.engine.HarvestPlant(ctx, 0)
	require.NoError(t, err)
	// floor(5 * 0.75 * 2)
	assert.Equal(t, 7, rewards.Resources[domain.ResourceTemporalPulses])
}

func TestHarvestPlant_NotReady(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()

	_, err := h.engine.HarvestPlant(ctx, 0)
	require.ErrorIs(t, err, domain.ErrPlotEmpty)

	require.NoError(t, h.engine.PlantSeed(ctx, 0, moss))
	before := h.inv.Snapshot()
	_, err = h.engine.HarvestPlant(ctx, 0)
	require.ErrorIs(t, err, domain.ErrPlantNotReady)
	assert.Equal(t, before, h.inv.Snapshot())
	assert.Equal(t, domain.ReasonNotReady, gametest.Last[event.PlantError](t, h.Events).Reason)
}

func TestSoilQualityNeverIncreases(t *testing.T) {
	h := newHarness(t, 0.5)
	ctx := context.Background()
	last := h.plot(t, 0).SoilQuality
	for range 3 {
		require.NoError(t, h.engine.PlantSeed(ctx, 0, moss))
		h.tick(t, 5*time.Minute)
		_, err := h.engine.HarvestPlant(ctx, 0)
		require.NoError(t, err)
		soil := h.plot(t, 0).SoilQuality
		assert.Less(t, soil, last)
		last = soil
	}
}

func TestAccelerateGrowth_Duration(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	require.NoError(t, h.engine.PlantSeed(ctx, 0, moss))
	plantedAt := h.plot(t, 0).PlantedAt

	progress, err := h.engine.AccelerateGrowth(ctx, 0, farm.Acceleration{Duration: 15 * time.Second})
	require.NoError(t, err)

	// water 100, nutrients 80: 15s of a 37.5s adjusted grow time
	assert.InDelta(t, 0.4, progress, 1e-9)
	p := h.plot(t, 0)
	assert.True(t, p.Plant.PlantedAt.Equal(plantedAt.Add(-15*time.Second)))
	assert.Equal(t, 1, p.Plant.GrowthStage)
	assert.Equal(t, domain.PlotGrowing, p.State)

	acc := gametest.Last[event.PlantAccelerated](t, h.Events)
	assert.Equal(t, 40.0, acc.Percent)
	assert.Zero(t, acc.Cost)
}

func TestAccelerateGrowth_EquivalentToElapsedTime(t *testing.T) {
	skip := 20 * time.Second

	accelerated := newHarness(t, 0)
	ctx := context.Background()
	require.NoError(t, accelerated.engine.PlantSeed(ctx, 0, moss))
	got, err := accelerated.engine.AccelerateGrowth(ctx, 0, farm.Acceleration{Duration: skip})
	require.NoError(t, err)

	natural := newHarness(t, 0)
	require.NoError(t, natural.engine.PlantSeed(ctx, 0, moss))
	p := natural.plot(t, 0)
	natural.Clock.Advance(skip)
	want := farm.ComputeProgress(p.Plant.PlantedAt, natural.Clock.Now(), p.Plant.GrowTime(), p.WaterLevel, p.Nutrients, 1)

	assert.InDelta(t, want, got, 1e-12)
}

func TestAccelerateGrowth_Percent(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	require.NoError(t, h.engine.PlantSeed(ctx, 0, moss))

	progress, err := h.engine.AccelerateGrowth(ctx, 0, farm.Acceleration{Percent: 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, progress, 1e-9)
	assert.Equal(t, domain.PlotReady, h.plot(t, 0).State)
	assert.Equal(t, 1, h.Events.Count(event.TopicPlantReady))
}

func TestAccelerateGrowth_Invalid(t *testing.T) {
	tests := []struct {
		name string
		acc  farm.Acceleration
	}{
		{"zero", farm.Acceleration{}},
		{"both", farm.Acceleration{Duration: time.Second, Percent: 0.5}},
		{"negative duration", farm.Acceleration{Duration: -time.Second}},
		{"percent above one", farm.Acceleration{Percent: 1.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, 0)
			ctx := context.Background()
			require.NoError(t, h.engine.PlantSeed(ctx, 0, moss))
			before := h.plot(t, 0)

			_, err := h.engine.AccelerateGrowth(ctx, 0, tt.acc)
			require.ErrorIs(t, err, domain.ErrInvalidAcceleration)
			assert.Equal(t, before, h.plot(t, 0))
		})
	}
}

func TestAccelerateWithPulses(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	require.NoError(t, h.engine.PlantSeed(ctx, 0, moss))

	// 90s is two started minutes
	_, err := h.engine.AccelerateWithPulses(ctx, 0, 90*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 20-2*farm.DefaultPulseCostPerMinute, h.inv.Resource(domain.ResourceTemporalPulses))
	assert.Equal(t, 2*farm.DefaultPulseCostPerMinute, gametest.Last[event.PlantAccelerated](t, h.Events).Cost)
}

func TestAccelerateWithPulses_Unaffordable(t *testing.T) {
	h := newHarness(t, 0, gametest.WithResources(map[string]int{domain.ResourceTemporalPulses: 1}))
	ctx := context.Background()
	require.NoError(t, h.engine.PlantSeed(ctx, 0, moss))
	before := h.plot(t, 0)

	_, err := h.engine.AccelerateWithPulses(ctx, 0, time.Minute)

	require.ErrorIs(t, err, domain.ErrInsufficientResources)
	assert.Equal(t, 1, h.inv.Resource(domain.ResourceTemporalPulses))
	assert.Equal(t, before, h.plot(t, 0))
	assert.Equal(t, domain.ReasonInsufficient, gametest.Last[event.PlantError](t, h.Events).Reason)
}

func TestEngine_FollowsEraEffects(t *testing.T) {
	h := newHarness(t, 0)
	assert.Equal(t, domain.NeutralEffects(), h.engine.Effects())

	fx := domain.EraEffects{GrowthMultiplier: 1.2, WaterRetention: 0.8, ResourceMultiplier: 1.1}
	require.NoError(t, h.Store.Set(domain.PathEffects, fx, store.SetOptions{}))
	assert.Equal(t, fx, h.engine.Effects())

	// a whole-world write reaches the subscription too
	require.NoError(t, h.Store.Set(domain.PathWorld, domain.World{
		Eras:    map[string]domain.EraState{domain.EraPrehistoric: {Unlocked: true}},
		Effects: domain.NeutralEffects(),
	}, store.SetOptions{}))
	assert.Equal(t, domain.NeutralEffects(), h.engine.Effects())
}

func TestReset(t *testing.T) {
	h := newHarness(t, 0)
	ctx := context.Background()
	require.NoError(t, h.engine.PlantSeed(ctx, 0, moss))

	require.NoError(t, h.engine.Reset(ctx, 12, 4))

	plots := h.engine.Plots()
	require.Len(t, plots, 12)
	for i, p := range plots {
		assert.Equal(t, i, p.ID)
		assert.Equal(t, domain.PlotEmpty, p.State)
		assert.Equal(t, i/4, p.Row)
		assert.Equal(t, i%4, p.Col)
	}
}

func TestPulseCost(t *testing.T) {
	h := newHarness(t, 0)
	assert.Equal(t, 2, h.engine.PulseCost(time.Second))
	assert.Equal(t, 2, h.engine.PulseCost(time.Minute))
	assert.Equal(t, 4, h.engine.PulseCost(61*time.Second))
}
