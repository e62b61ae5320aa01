package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PolyPack/internal/engine"
)

func (a *app) compareCommand() *cobra.Command {
	input := inputOptions{}
	cmd := &cobra.Command{
		Use:   "compare [puzzle]",
		Short: "Solve a puzzle under several solver settings side by side",
		Long: `Compare runs the puzzle with the current settings, with symmetry breaking
flipped and with region pruning flipped, and reports counts, steps and the
number of queries whose verdict disagrees with the first run.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := a.resolveSettings()
			if err != nil {
				return err
			}
			p, _, err := a.loadPuzzle(cmd, args, input)
			if err != nil {
				return err
			}

			results, err := engine.CompareScenarios(cmd.Context(), engine.BuildDefaultScenarios(settings), p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			width := len("SCENARIO")
			for _, r := range results {
				width = max(width, len(r.Scenario.Name))
			}
			fprintf(out, "%-*s  %8s  %10s  %7s  %12s  %8s\n", width, "SCENARIO", "FEASIBLE", "INFEASIBLE", "UNKNOWN", "STEPS", "DISAGREE")
			fprintf(out, "%s\n", strings.Repeat("-", width+2+8+2+10+2+7+2+12+2+8))
			for _, r := range results {
				fprintf(out, "%-*s  %8d  %10d  %7d  %12d  %8d\n",
					width, r.Scenario.Name, r.Feasible, r.Infeasible, r.Unknown, r.TotalSteps, r.Disagreements)
			}
			return nil
		},
	}
	addSolverFlags(cmd.Flags())
	input.register(cmd)
	return cmd
}
