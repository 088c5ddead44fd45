package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pluqqy/inledit/internal/cli"
)

// ListResult represents the output structure for list command
type ListResult struct {
	Fields    []ListItem `json:"fields" yaml:"fields"`
	Count     int        `json:"count" yaml:"count"`
	UpdatedAt time.Time  `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// ListItem represents a single field in the list
type ListItem struct {
	Key      string `json:"key" yaml:"key"`
	Label    string `json:"label" yaml:"label"`
	Value    string `json:"value" yaml:"value"`
	Required bool   `json:"required" yaml:"required"`
	Kind     string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// NewListCommand creates the list command
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List fields and their values",
		Long: `List every field defined in fields.yaml together with its committed value.

Examples:
  # Table of fields
  inledit list

  # Machine readable output
  inledit list -o json
  inledit list -o yaml`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("output")
			return cli.ValidateOutputFormat(format)
		},
		RunE: runList,
	}

	cmd.Flags().StringP("output", "o", "text", "Output format (text, json, yaml)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cli.NewCommandContext()
	if err := ctx.ValidateProject(); err != nil {
		return err
	}
	settings, err := ctx.LoadSettings()
	if err != nil {
		return err
	}

	fields, err := ctx.Store.ReadFields()
	if err != nil {
		return err
	}
	record, err := ctx.Store.ReadValues()
	if err != nil {
		return err
	}

	result := ListResult{UpdatedAt: record.UpdatedAt}
	for _, def := range fields.Fields {
		result.Fields = append(result.Fields, ListItem{
			Key:      def.Key,
			Label:    def.DisplayLabel(),
			Value:    record.Values[def.Key],
			Required: def.Required,
			Kind:     string(def.Constraints.Kind),
		})
	}
	result.Count = len(result.Fields)

	outputFormat, _ := cmd.Flags().GetString("output")
	if outputFormat != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	}

	if result.Count == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No fields defined")
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("KEY", "LABEL", "VALUE", "REQUIRED")
	for i, item := range result.Fields {
		value := item.Value
		if value == "" {
			value = "(" + fields.Fields[i].Placeholder + ")"
		}
		required := ""
		if item.Required {
			required = "yes"
		}
		table.Row(item.Key, item.Label, cli.TruncateString(value, settings.UI.Width), required)
	}
	table.Flush()

	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d fields\n", result.Count)
	return nil
}
