package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementSpec_Requirement(t *testing.T) {
	tests := []struct {
		name    string
		spec    RequirementSpec
		want    Requirement
		wantErr bool
	}{
		{"empty type is none", RequirementSpec{}, NoRequirement{}, false},
		{"harvest any species", RequirementSpec{Type: RequirementHarvestCount, Count: 3}, HarvestCount{Count: 3}, false},
		{"threshold", RequirementSpec{Type: RequirementResourceThreshold, Resource: "amber", Amount: 5}, ResourceThreshold{Resource: "amber", Amount: 5}, false},
		{"threshold without resource", RequirementSpec{Type: RequirementResourceThreshold, Amount: 5}, nil, true},
		{"minigame without id", RequirementSpec{Type: RequirementMinigameFlag}, nil, true},
		{"achievement without id", RequirementSpec{Type: RequirementAchievementUnlocked}, nil, true},
		{"earned without resource", RequirementSpec{Type: RequirementResourcesEarned, Amount: 1}, nil, true},
		{"unknown", RequirementSpec{Type: "moon-phase"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.spec.Requirement()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpecOf_InvertsRequirement(t *testing.T) {
	all := []Requirement{
		NoRequirement{},
		HarvestCount{Species: "papyrus", Count: 2},
		ResourceThreshold{Resource: "amber", Amount: 4},
		MinigameFlag{MinigameID: "da-vinci-gears"},
		AchievementUnlocked{AchievementID: "first-harvest"},
		AllErasVisited{},
		ErasVisitedCount{Count: 3},
		ResourcesEarned{Resource: "temporal-pulses", Amount: 100},
		PlantsPlanted{Count: 10},
	}
	for _, r := range all {
		t.Run(fmt.Sprintf("%T", r), func(t *testing.T) {
			back, err := SpecOf(r).Requirement()
			require.NoError(t, err)
			assert.Equal(t, r, back)
			assert.NotEmpty(t, r.Describe())
		})
	}
}

func TestSatisfied(t *testing.T) {
	p := Progress{
		Resources:       map[string]int{"amber": 5},
		ResourcesEarned: map[string]int{"temporal-pulses": 40},
		Harvested:       map[string]int{"papyrus": 2},
		TotalHarvests:   7,
		PlantsPlanted:   9,
		Minigames:       map[string]bool{"da-vinci-gears": true},
		Achievements:    map[string]bool{"first-harvest": true},
		ErasVisited:     map[string]bool{EraPrehistoric: true, EraEgyptian: true},
		KnownEras:       []string{EraPrehistoric, EraEgyptian, EraMedieval},
	}

	tests := []struct {
		name string
		req  Requirement
		want bool
	}{
		{"none", NoRequirement{}, true},
		{"nil", nil, true},
		{"total harvests met", HarvestCount{Count: 7}, true},
		{"species harvests short", HarvestCount{Species: "papyrus", Count: 3}, false},
		{"threshold met", ResourceThreshold{Resource: "amber", Amount: 5}, true},
		{"threshold short", ResourceThreshold{Resource: "amber", Amount: 6}, false},
		{"minigame done", MinigameFlag{MinigameID: "da-vinci-gears"}, true},
		{"minigame missing", MinigameFlag{MinigameID: "sundial"}, false},
		{"achievement", AchievementUnlocked{AchievementID: "first-harvest"}, true},
		{"not every era", AllErasVisited{}, false},
		{"eras visited count", ErasVisitedCount{Count: 2}, true},
		{"earned short", ResourcesEarned{Resource: "temporal-pulses", Amount: 50}, false},
		{"planted short", PlantsPlanted{Count: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Satisfied(tt.req, p))
		})
	}

	t.Run("all eras with empty catalog", func(t *testing.T) {
		assert.False(t, Satisfied(AllErasVisited{}, Progress{}))
	})
	t.Run("all eras visited", func(t *testing.T) {
		p.ErasVisited[EraMedieval] = true
		assert.True(t, Satisfied(AllErasVisited{}, p))
	})
}
