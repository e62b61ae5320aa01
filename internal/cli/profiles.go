package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PolyPack/internal/model"
	"github.com/piwi3910/PolyPack/internal/project"
)

func (a *app) profilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List solver profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, p := range model.AllProfiles() {
				kind := "custom"
				if p.IsBuiltIn {
					kind = "built-in"
				}
				fprintf(out, "%-12s %-9s %s\n", p.Name, kind, p.Description)
				fprintf(out, "%-12s %-9s %s\n", "", "", describe(p.Settings))
			}
			return nil
		},
	}
	cmd.AddCommand(a.profileExportCommand(), a.profileImportCommand())
	return cmd
}

func (a *app) profileExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name> <file>",
		Short: "Write a profile to a JSON file for sharing",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !model.HasProfile(args[0]) {
				return fmt.Errorf("unknown profile %q", args[0])
			}
			return project.ExportProfile(args[1], model.GetProfile(args[0]))
		},
	}
}

func (a *app) profileImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Add a shared profile to the custom profiles file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := project.ImportProfile(args[0])
			if err != nil {
				return err
			}
			if err := model.AddCustomProfile(p); err != nil {
				return err
			}

			path := a.v.GetString(flagProfilesFile)
			if path == "" {
				if path, err = project.DefaultProfilesPath(); err != nil {
					return err
				}
			}
			if err := project.SaveCustomProfiles(path, model.CustomProfiles); err != nil {
				return fmt.Errorf("failed to save profiles: %w", err)
			}
			fprintf(cmd.OutOrStdout(), "imported profile %s\n", p.Name)
			return nil
		},
	}
}
