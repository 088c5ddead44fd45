package commands

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pluqqy/inledit/internal/cli"
	"github.com/pluqqy/inledit/pkg/field"
)

// NewSetCommand creates the set command
func NewSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> [value]",
		Short: "Edit a field without the TUI",
		Long: `Run one edit of a field: the new value goes through the same validation and
commit steps as an edit in the TUI.

Omitting the value clears the field, which fails for required fields.

Examples:
  inledit set email jane@example.com
  inledit set phone`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runSet,
	}
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx := cli.NewCommandContext()
	if err := ctx.ValidateProject(); err != nil {
		return err
	}
	settings, err := ctx.LoadSettings()
	if err != nil {
		return err
	}

	def, err := ctx.FindField(args[0])
	if err != nil {
		return err
	}
	var next string
	if len(args) == 2 {
		next = args[1]
	}

	current, _, err := ctx.Store.Get(def.Key)
	if err != nil {
		return err
	}

	outcome, err := cli.ApplyEdit(def, current, next, ctx.Store.Committer(def.Key), settings.UI.NativeValidation)
	if err != nil {
		return err
	}
	log.Info().Str("field", def.Key).Str("signal", string(outcome.Signal)).Msg("set finished")

	switch outcome.Signal {
	case field.SignalAccepted:
		cli.PrintSuccess("Saved %s", def.DisplayLabel())
	case field.SignalCancel:
		cli.PrintInfo("%s unchanged", def.DisplayLabel())
	case field.SignalInvalid:
		return fmt.Errorf("invalid %s: %s", def.DisplayLabel(), outcome.Message)
	case field.SignalRejected:
		return fmt.Errorf("%s not saved: %s", def.DisplayLabel(), outcome.Message)
	}
	return nil
}
