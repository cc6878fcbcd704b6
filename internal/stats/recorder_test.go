package stats_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/inventory"
	"github.com/osse101/ChronoFarm_Go/internal/stats"
	"github.com/osse101/ChronoFarm_Go/internal/store"
	"github.com/osse101/ChronoFarm_Go/internal/testing/gametest"
)

func newRecorder(t *testing.T) *gametest.Fixture {
	t.Helper()
	f := gametest.New(t)
	stats.NewRecorder(f.Store).Register(f.Bus)
	return f
}

func TestRecorder_CountsHarvests(t *testing.T) {
	f := newRecorder(t)
	ctx := context.Background()

	f.Bus.Emit(ctx, event.PlantHarvested{Plant: domain.Plant{Type: "prehistoric-moss"}})
	f.Bus.Emit(ctx, event.PlantHarvested{Plant: domain.Plant{Type: "prehistoric-moss"}})
	f.Bus.Emit(ctx, event.PlantHarvested{Plant: domain.Plant{Type: "giant-fern"}})

	st := stats.Load(f.Store)
	assert.Equal(t, 2, st.Harvested["prehistoric-moss"])
	assert.Equal(t, 1, st.Harvested["giant-fern"])
	assert.Equal(t, 3, st.TotalHarvests)
}

func TestRecorder_CountsPlanting(t *testing.T) {
	f := newRecorder(t)
	f.Bus.Emit(context.Background(), event.PlantPlanted{Species: "giant-fern"})
	assert.Equal(t, 1, stats.Load(f.Store).PlantsPlanted)
}

func TestRecorder_ResourcesEarned(t *testing.T) {
	tests := []struct {
		name    string
		payload event.InventoryChanged
		want    int
	}{
		{"gain", event.InventoryChanged{Resources: map[string]int{domain.ResourceTemporalPulses: 5}, Source: inventory.SourceHarvest}, 5},
		{"spend", event.InventoryChanged{Resources: map[string]int{domain.ResourceTemporalPulses: -5}, Source: inventory.SourceTravel}, 0},
		{"refund", event.InventoryChanged{Resources: map[string]int{domain.ResourceTemporalPulses: 5}, Source: inventory.SourceRefund}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRecorder(t)
			f.Bus.Emit(context.Background(), tt.payload)
			assert.Equal(t, tt.want, stats.Load(f.Store).ResourcesEarned[domain.ResourceTemporalPulses])
		})
	}
}

func TestRecorder_TravelsAndVisitedEras(t *testing.T) {
	f := newRecorder(t)
	ctx := context.Background()

	f.Bus.Emit(ctx, event.TravelSuccess{From: "prehistoric", To: "egyptian"})
	f.Bus.Emit(ctx, event.TravelSuccess{From: "egyptian", To: "prehistoric"})
	f.Bus.Emit(ctx, event.TravelSuccess{From: "prehistoric", To: "egyptian"})

	st := stats.Load(f.Store)
	assert.Equal(t, 3, st.Travels)
	assert.Equal(t, []string{"egyptian", "prehistoric"}, st.ErasVisited)
}

func TestRecorder_MinigamesOnlyOnSuccess(t *testing.T) {
	f := newRecorder(t)
	ctx := context.Background()

	f.Bus.Emit(ctx, event.MinigameCompleted{MinigameResult: domain.MinigameResult{MinigameID: "da-vinci-gears", Success: false}})
	assert.False(t, stats.Load(f.Store).Minigames["da-vinci-gears"])

	f.Bus.Emit(ctx, event.MinigameCompleted{MinigameResult: domain.MinigameResult{MinigameID: "da-vinci-gears", Success: true}})
	assert.True(t, stats.Load(f.Store).Minigames["da-vinci-gears"])
}

func TestRecorder_WritesStayOutOfHistory(t *testing.T) {
	f := newRecorder(t)
	f.Bus.Emit(context.Background(), event.PlantPlanted{})
	assert.False(t, f.Store.CanUndo())
}

func TestProgress_Snapshot(t *testing.T) {
	f := newRecorder(t)
	ctx := context.Background()
	f.Bus.Emit(ctx, event.PlantHarvested{Plant: domain.Plant{Type: "prehistoric-moss"}})
	f.Bus.Emit(ctx, event.TravelSuccess{To: "egyptian"})
	require.NoError(t, f.Store.Set(domain.PathAchievements, []string{"first-harvest"}, store.SetOptions{}))

	p := stats.Progress(f.Store, f.Catalog.EraIDs())

	assert.Equal(t, 1, p.Harvested["prehistoric-moss"])
	assert.Equal(t, 1, p.TotalHarvests)
	assert.Equal(t, 20, p.Resources[domain.ResourceTemporalPulses])
	assert.True(t, p.ErasVisited["prehistoric"])
	assert.True(t, p.ErasVisited["egyptian"])
	assert.True(t, p.Achievements["first-harvest"])
	assert.Len(t, p.KnownEras, 5)
	assert.True(t, domain.Satisfied(domain.ErasVisitedCount{Count: 2}, p))
	assert.False(t, domain.Satisfied(domain.AllErasVisited{}, p))
}
