package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/ChronoFarm_Go/internal/domain"
)

func newGameStore(t *testing.T) *Store {
	t.Helper()
	state := domain.NewGameState(domain.NewGameOptions{
		GridSize:   6,
		Eras:       map[string]bool{domain.EraPrehistoric: true, domain.EraEgyptian: false},
		StartingAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	})
	s, err := New(state, Options{Schema: GameSchema(), BatchDebounce: -1})
	require.NoError(t, err)
	return s
}

func TestSchema_UnknownRootRejected(t *testing.T) {
	s := newGameStore(t)

	err := s.Set("bogus.value", 1, SetOptions{})
	assert.ErrorIs(t, err, ErrUnknownPath)
	assert.False(t, s.Has("bogus"))

	state := s.GetState()
	state["bogus"] = true
	assert.ErrorIs(t, s.SetState(state, SetOptions{}), ErrUnknownPath)
}

func TestSchema_SkipValidate(t *testing.T) {
	s := newGameStore(t)
	require.NoError(t, s.Set("bogus.value", 1, SetOptions{SkipValidate: true}))
	assert.Equal(t, float64(1), s.Get("bogus.value", nil))
}

func TestSchema_NegativeBalanceRejected(t *testing.T) {
	s := newGameStore(t)

	err := s.Set(domain.PathResources+"."+domain.ResourceTemporalPulses, -1, SetOptions{})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, float64(20), s.Get(domain.PathResources+"."+domain.ResourceTemporalPulses, nil))

	err = s.Set(domain.PathSeeds, map[string]int{"giant-fern": -2}, SetOptions{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSchema_TypeMismatchRejected(t *testing.T) {
	s := newGameStore(t)
	err := s.Set(domain.PathExperience, "lots", SetOptions{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSchema_PlotOccupancyInvariant(t *testing.T) {
	s := newGameStore(t)

	broken := domain.NewEmptyPlot(2, domain.DefaultGridColumns)
	broken.State = domain.PlotGrowing
	err := s.SetAt(domain.PathPlots, 2, broken, SetOptions{})
	assert.ErrorIs(t, err, ErrValidation)

	species := domain.Species{ID: "giant-fern", Name: "Giant Fern", Era: domain.EraPrehistoric, GrowTime: 30000, MaxStages: 3}
	ok := domain.NewEmptyPlot(2, domain.DefaultGridColumns)
	ok.State = domain.PlotPlanted
	ok.Plant = species.NewPlant(time.Now())
	require.NoError(t, s.SetAt(domain.PathPlots, 2, ok, SetOptions{}))

	plot, found := GetAs[domain.Plot](s, domain.PathPlots+".2")
	require.True(t, found)
	assert.Equal(t, domain.PlotPlanted, plot.State)
	require.NotNil(t, plot.Plant)
	assert.Equal(t, "giant-fern", plot.Plant.Type)
}

func TestSchema_WriteBelowValidatesAncestorRule(t *testing.T) {
	s := newGameStore(t)

	err := s.Set(domain.PathPlots+".0.waterLevel", 250, SetOptions{})
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, s.Set(domain.PathPlots+".0.waterLevel", 40, SetOptions{}))
	assert.Equal(t, float64(40), s.Get(domain.PathPlots+".0.waterLevel", nil))
}

func TestSchema_EffectsMustBePositive(t *testing.T) {
	s := newGameStore(t)
	err := s.Set(domain.PathEffects, domain.EraEffects{GrowthMultiplier: 0, WaterRetention: 1, ResourceMultiplier: 1}, SetOptions{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSchema_Roots(t *testing.T) {
	assert.ElementsMatch(t, domain.RootKeys, GameSchema().Roots())
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		path    string
		want    []string
		wantErr bool
	}{
		{"a", []string{"a"}, false},
		{"farm.plots.3", []string{"farm", "plots", "3"}, false},
		{"", nil, true},
		{".a", nil, true},
		{"a..b", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParsePath(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedPath)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "farm.plots.3.waterLevel", Join("farm.plots", 3, "waterLevel"))
}

func TestExpand_NumericOrder(t *testing.T) {
	tree := map[string]any{"p": []any{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}}
	paths := expand([]string{"p", "*"}, nil, tree)
	require.Len(t, paths, 12)
	assert.Equal(t, []string{"p", "2"}, paths[2])
	assert.Equal(t, []string{"p", "10"}, paths[10])
}
