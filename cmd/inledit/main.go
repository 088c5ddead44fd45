package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pluqqy/inledit/cmd/commands"
	"github.com/pluqqy/inledit/internal/cli"
	"github.com/pluqqy/inledit/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	flagQuiet     bool
	flagNoColor   bool
	flagDir       string
	flagLogFile   string
	flagLogPretty bool
	flagDebug     bool

	closeLog = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "inledit",
	Short: "Edit a small record of fields in place from the terminal",
	Long: `inledit keeps a record of named fields in plain YAML files and lets you edit them
one at a time: pick a field, change it, and the new value is validated and saved.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cli.SetGlobalFlags(flagQuiet, flagNoColor, flagDir)
		closer, err := cli.SetupLogging(flagLogFile, flagLogPretty, flagDebug)
		if err != nil {
			return err
		}
		closeLog = closer
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeLog()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cli.NewCommandContext()
		if err := ctx.ValidateProject(); err != nil {
			return err
		}
		settings, err := ctx.LoadSettings()
		if err != nil {
			return err
		}

		log.Info().Str("project", ctx.ProjectPath).Msg("starting tui")
		if err := tui.Run(ctx.Store, settings); err != nil {
			return fmt.Errorf("failed to start the terminal user interface: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of inledit",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "inledit version %s\n", version)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	flags.BoolVar(&flagNoColor, "no-color", false, "Disable symbols and color in output")
	flags.StringVar(&flagDir, "dir", ".inledit", "Project directory")
	flags.StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	flags.BoolVar(&flagLogPretty, "log-pretty", false, "Write human readable logs instead of JSON")
	flags.BoolVar(&flagDebug, "debug", false, "Log field transitions")

	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewListCommand())
	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewSetCommand())
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
