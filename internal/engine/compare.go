package engine

import (
	"context"
	"fmt"

	"github.com/piwi3910/PolyPack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.SolverSettings
}

// ComparisonResult holds the batch result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario   ComparisonScenario
	Result     model.BatchResult
	Feasible   int
	Infeasible int
	Unknown    int
	TotalSteps int64
	// Disagreements counts queries whose verdict differs from the first
	// scenario. Queries left unknown by either side are not counted.
	Disagreements int
}

// CompareScenarios runs the puzzle under each scenario and returns the results
// in scenario order.
func CompareScenarios(ctx context.Context, scenarios []ComparisonScenario, p model.Puzzle) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		br, err := New(scenario.Settings).Run(ctx, p)
		if err != nil {
			return results, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}

		cr := ComparisonResult{
			Scenario:   scenario,
			Result:     br,
			Feasible:   br.Feasible(),
			Infeasible: br.Infeasible(),
			Unknown:    br.Unknown(),
			TotalSteps: br.TotalSteps(),
		}
		if len(results) > 0 {
			cr.Disagreements = disagreements(results[0].Result, br)
		}
		results = append(results, cr)
	}

	return results, nil
}

func disagreements(a, b model.BatchResult) int {
	n := 0
	for i := range a.Results {
		if i >= len(b.Results) {
			break
		}
		va, vb := a.Results[i].Verdict, b.Results[i].Verdict
		if va == model.VerdictUnknown || vb == model.VerdictUnknown {
			continue
		}
		if va != vb {
			n++
		}
	}
	return n
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, toggling the pruning options one at a time.
func BuildDefaultScenarios(baseSettings model.SolverSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: flip symmetry breaking
	altSym := baseSettings
	altSym.SymmetryBreaking = !baseSettings.SymmetryBreaking
	name := "No Symmetry Breaking"
	if altSym.SymmetryBreaking {
		name = "Symmetry Breaking"
	}
	scenarios = append(scenarios, ComparisonScenario{Name: name, Settings: altSym})

	// Scenario: flip region pruning
	altRegion := baseSettings
	altRegion.RegionPruning = !baseSettings.RegionPruning
	name = "No Region Pruning"
	if altRegion.RegionPruning {
		name = "Region Pruning"
	}
	scenarios = append(scenarios, ComparisonScenario{Name: name, Settings: altRegion})

	return scenarios
}
