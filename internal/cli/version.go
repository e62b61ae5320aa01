package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/PolyPack/internal/version"
)

func (a *app) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fprintf(cmd.OutOrStdout(), "polypack %s\n", version.String())
			return nil
		},
	}
}
