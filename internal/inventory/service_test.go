package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
	"github.com/osse101/ChronoFarm_Go/internal/event"
	"github.com/osse101/ChronoFarm_Go/internal/inventory"
	"github.com/osse101/ChronoFarm_Go/internal/testing/gametest"
)

func TestSnapshot_StartingBalances(t *testing.T) {
	f := gametest.New(t)
	svc := inventory.NewService(f.Store, f.Bus)

	inv := svc.Snapshot()
	assert.Equal(t, 20, inv.Resources[domain.ResourceTemporalPulses])
	assert.Equal(t, 5, inv.Seeds["prehistoric-moss"])
	assert.Equal(t, 20, svc.Resource(domain.ResourceTemporalPulses))
	assert.Equal(t, 0, svc.Resource("amber"))
	assert.Equal(t, 2, svc.Seeds("giant-fern"))
}

func TestApply_AddsAndEmits(t *testing.T) {
	f := gametest.New(t)
	svc := inventory.NewService(f.Store, f.Bus)

	err := svc.Apply(context.Background(), inventory.Delta{
		Resources: map[string]int{"amber": 3, domain.ResourceTemporalPulses: -5},
		Seeds:     map[string]int{"papyrus": 1},
	}, inventory.SourceHarvest)
	require.NoError(t, err)

	assert.Equal(t, 3, svc.Resource("amber"))
	assert.Equal(t, 15, svc.Resource(domain.ResourceTemporalPulses))
	assert.Equal(t, 1, svc.Seeds("papyrus"))

	changed := gametest.Last[event.InventoryChanged](t, f.Events)
	assert.Equal(t, inventory.SourceHarvest, changed.Source)
	assert.Equal(t, -5, changed.Resources[domain.ResourceTemporalPulses])
}

func TestApply_RejectsNegativeBalanceWithoutChange(t *testing.T) {
	f := gametest.New(t)
	svc := inventory.NewService(f.Store, f.Bus)
	before := svc.Snapshot()

	err := svc.Apply(context.Background(), inventory.Delta{
		Resources: map[string]int{"amber": 10, domain.ResourceTemporalPulses: -21},
	}, inventory.SourceTravel)

	require.ErrorIs(t, err, domain.ErrInsufficientResources)
	assert.Equal(t, before, svc.Snapshot())
	assert.Zero(t, f.Events.Count(event.TopicInventoryChanged))
}

func TestApply_SeedShortfall(t *testing.T) {
	f := gametest.New(t)
	svc := inventory.NewService(f.Store, f.Bus)

	err := svc.TakeSeed(context.Background(), "quantum-wheat")
	require.ErrorIs(t, err, domain.ErrNoSeeds)
}

func TestSpend(t *testing.T) {
	tests := []struct {
		name    string
		cost    map[string]int
		wantErr error
		want    int
	}{
		{"affordable", map[string]int{domain.ResourceTemporalPulses: 5}, nil, 15},
		{"exact balance", map[string]int{domain.ResourceTemporalPulses: 20}, nil, 0},
		{"too expensive", map[string]int{domain.ResourceTemporalPulses: 21}, domain.ErrInsufficientResources, 20},
		{"negative cost", map[string]int{domain.ResourceTemporalPulses: -1}, domain.ErrInvalidAmount, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := gametest.New(t)
			svc := inventory.NewService(f.Store, f.Bus)

			err := svc.Spend(context.Background(), tt.cost, inventory.SourceTravel)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, svc.Resource(domain.ResourceTemporalPulses))
		})
	}
}

func TestGrant_ExperienceLevelsUp(t *testing.T) {
	f := gametest.New(t)
	svc := inventory.NewService(f.Store, f.Bus)
	ctx := context.Background()

	require.NoError(t, svc.Grant(ctx, domain.Reward{Experience: 99}, inventory.SourceAchievement))
	assert.Zero(t, f.Events.Count(event.TopicPlayerLevelUp))

	require.NoError(t, svc.Grant(ctx, domain.Reward{Experience: 1}, inventory.SourceAchievement))
	up := gametest.Last[event.PlayerLevelUp](t, f.Events)
	assert.Equal(t, 1, up.OldLevel)
	assert.Equal(t, 2, up.NewLevel)
	assert.Equal(t, 100, up.Experience)
	assert.Equal(t, 2.0, f.Store.Get(domain.PathLevel, 0))
}

func TestGrant_IgnoresNegativeEntries(t *testing.T) {
	f := gametest.New(t)
	svc := inventory.NewService(f.Store, f.Bus)

	err := svc.Grant(context.Background(), domain.Reward{
		Resources: map[string]int{domain.ResourceTemporalPulses: -50, "amber": 2},
	}, inventory.SourceMinigame)
	require.NoError(t, err)
	assert.Equal(t, 20, svc.Resource(domain.ResourceTemporalPulses))
	assert.Equal(t, 2, svc.Resource("amber"))
}

func TestApply_EmptyDeltaIsNoop(t *testing.T) {
	f := gametest.New(t)
	svc := inventory.NewService(f.Store, f.Bus)

	require.NoError(t, svc.Apply(context.Background(), inventory.Delta{}, inventory.SourceHarvest))
	assert.Empty(t, f.Events.All())
	assert.False(t, f.Store.CanUndo())
}

func TestSpendLive_RefundLive(t *testing.T) {
	f := gametest.New(t)
	svc := inventory.NewService(f.Store, f.Bus)
	ctx := context.Background()
	cost := map[string]int{domain.ResourceTemporalPulses: 5}

	require.NoError(t, svc.SpendLive(ctx, cost, inventory.SourceTravel))
	assert.Equal(t, 15, svc.Resource(domain.ResourceTemporalPulses))
	assert.False(t, f.Store.CanUndo(), "live changes fold into the present entry")

	require.NoError(t, svc.RefundLive(ctx, cost))
	assert.Equal(t, 20, svc.Resource(domain.ResourceTemporalPulses))
	assert.False(t, f.Store.CanUndo())

	refund := gametest.Last[event.InventoryChanged](t, f.Events)
	assert.Equal(t, "refund", refund.Source)
	assert.Equal(t, inventory.SourceRefund, refund.Source)

	err := svc.SpendLive(ctx, map[string]int{domain.ResourceTemporalPulses: 50}, inventory.SourceTravel)
	require.ErrorIs(t, err, domain.ErrInsufficientResources)
	require.ErrorIs(t, svc.SpendLive(ctx, map[string]int{"amber": -1}, inventory.SourceTravel), domain.ErrInvalidAmount)
}
