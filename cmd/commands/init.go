package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/inledit/internal/cli"
)

// NewInitCommand creates the init command
func NewInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new inledit project",
		Long: `Creates the project folder with sample fields, an empty record and default settings.

Existing files are left untouched, so running init twice is safe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cli.NewCommandContext()
			fmt.Fprintf(cmd.OutOrStdout(), "Initializing inledit project in %s...\n", ctx.ProjectPath)

			if err := ctx.Store.InitProjectStructure(); err != nil {
				return fmt.Errorf("failed to initialize project structure: %w", err)
			}

			cli.PrintSuccess("Created %s folder structure", ctx.ProjectPath)
			fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'inledit' to start editing.")
			return nil
		},
	}
}
