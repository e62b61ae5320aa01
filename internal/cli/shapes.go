package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) shapesCommand() *cobra.Command {
	input := inputOptions{}
	cmd := &cobra.Command{
		Use:   "shapes [puzzle]",
		Short: "List the shapes of a puzzle with their areas and variations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := a.loadPuzzle(cmd, args, input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, s := range p.Shapes {
				if i > 0 {
					fprintf(out, "\n")
				}
				variations := len(s.Cells.Variations())
				connected := "connected"
				if !s.Cells.Connected() {
					connected = "disconnected"
				}
				fprintf(out, "%s\n", headerStyle.Render(s.Label))
				fprintf(out, "  id=%d area=%d variations=%d %s\n", s.ID, s.Area(), variations, connected)
				for _, row := range s.Cells.Rows() {
					fprintf(out, "  %s\n", row)
				}
			}
			return nil
		},
	}
	input.register(cmd)
	return cmd
}
