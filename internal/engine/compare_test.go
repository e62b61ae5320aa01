package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/PolyPack/internal/model"
)

func smallPuzzle() model.Puzzle {
	p := model.NewPuzzle()
	p.Shapes = shapes(cells(".#", "##"), cells(".#.", "###"))
	p.Queries = []model.Query{
		model.NewQuery(4, 4, []int{1, 3}),
		model.NewQuery(3, 3, []int{3, 0}),
		model.NewQuery(3, 2, []int{2, 0}),
	}
	return p
}

func TestBuildDefaultScenarios(t *testing.T) {
	base := model.DefaultSettings()
	scenarios := BuildDefaultScenarios(base)

	require.Len(t, scenarios, 3)
	assert.Equal(t, "Current Settings", scenarios[0].Name)
	assert.Equal(t, base, scenarios[0].Settings)
	assert.Equal(t, "No Symmetry Breaking", scenarios[1].Name)
	assert.False(t, scenarios[1].Settings.SymmetryBreaking)
	assert.Equal(t, "Region Pruning", scenarios[2].Name)
	assert.True(t, scenarios[2].Settings.RegionPruning)
}

func TestBuildDefaultScenarios_FlipsBack(t *testing.T) {
	base := model.DefaultSettings()
	base.SymmetryBreaking = false
	base.RegionPruning = true
	scenarios := BuildDefaultScenarios(base)

	assert.Equal(t, "Symmetry Breaking", scenarios[1].Name)
	assert.Equal(t, "No Region Pruning", scenarios[2].Name)
}

func TestCompareScenarios_Agree(t *testing.T) {
	results, err := CompareScenarios(context.Background(), BuildDefaultScenarios(model.DefaultSettings()), smallPuzzle())
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, r := range results {
		assert.Equal(t, 2, r.Feasible, r.Scenario.Name)
		assert.Equal(t, 1, r.Infeasible, r.Scenario.Name)
		assert.Zero(t, r.Disagreements, r.Scenario.Name)
		assert.Positive(t, r.TotalSteps)
	}
}

func TestCompareScenarios_CountsDisagreements(t *testing.T) {
	pack := model.DefaultSettings()
	exact := pack
	exact.Mode = model.ModeExact

	results, err := CompareScenarios(context.Background(), []ComparisonScenario{
		{Name: "pack", Settings: pack},
		{Name: "exact", Settings: exact},
	}, smallPuzzle())
	require.NoError(t, err)

	// 4x4 with 15 cells is feasible only with gaps
	assert.Equal(t, 1, results[1].Disagreements)
	assert.Equal(t, 1, results[1].Feasible)
}

func TestCompareScenarios_IgnoresUnknown(t *testing.T) {
	base := model.DefaultSettings()
	bounded := base
	bounded.MaxSteps = 1

	results, err := CompareScenarios(context.Background(), []ComparisonScenario{
		{Name: "full", Settings: base},
		{Name: "bounded", Settings: bounded},
	}, smallPuzzle())
	require.NoError(t, err)
	assert.Zero(t, results[1].Disagreements)
	assert.Positive(t, results[1].Unknown)
}

func TestCompareScenarios_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := CompareScenarios(ctx, BuildDefaultScenarios(model.DefaultSettings()), smallPuzzle())
	assert.Error(t, err)
	assert.Empty(t, results)
}
