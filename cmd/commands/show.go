package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pluqqy/inledit/internal/cli"
)

// ShowResult is the structured form of a single field
type ShowResult struct {
	Key       string    `json:"key" yaml:"key"`
	Label     string    `json:"label" yaml:"label"`
	Value     string    `json:"value" yaml:"value"`
	Display   string    `json:"display" yaml:"display"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// NewShowCommand creates the show command
func NewShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <key>",
		Short: "Display the value of a field",
		Long: `Display the committed value of a field, or its placeholder when the value is empty.

Examples:
  inledit show email
  inledit show email -o json`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("output")
			return cli.ValidateOutputFormat(format)
		},
		RunE: runShow,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cli.NewCommandContext()
	if err := ctx.ValidateProject(); err != nil {
		return err
	}

	def, err := ctx.FindField(args[0])
	if err != nil {
		return err
	}
	record, err := ctx.Store.ReadValues()
	if err != nil {
		return err
	}

	value := record.Values[def.Key]
	result := ShowResult{
		Key:       def.Key,
		Label:     def.DisplayLabel(),
		Value:     value,
		Display:   value,
		UpdatedAt: record.UpdatedAt,
	}
	if value == "" {
		result.Display = def.Placeholder
	}

	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Display)
	return nil
}
