package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/garb/internal/rules"
)

// newRulesCmd builds the rules command.
func newRulesCmd() *cobra.Command {
	var rulesFormat string

	rulesCmd := &cobra.Command{
		Use:   "rules",
		Short: "List the registered dressing rules",
		Long: `List the registered dressing rules with their weights.

Rules can be enabled, disabled or reweighted per run with the
evaluate command, or permanently through the configuration file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRules(cmd, rulesFormat)
		},
	}

	rulesCmd.Flags().StringVarP(&rulesFormat, "format", "f", "text", "output format (text, json)")

	return rulesCmd
}

// runRules executes the rules command.
func runRules(cmd *cobra.Command, format string) error {
	infos := rules.NewLibrary().List()

	switch format {
	case "text":
		tbl := NewTable([]string{"RULE", "WEIGHT", "ENABLED", "DESCRIPTION"})
		tbl.EnableTerminalAwareWidth(3, 40)
		for _, info := range infos {
			enabled := "yes"
			if !info.Enabled {
				enabled = "no"
			}
			tbl.AddRow(info.Name, fmt.Sprintf("%.1f", info.Weight), enabled, info.Description)
		}
		fmt.Fprint(cmd.OutOrStdout(), tbl.Render())
		return nil
	case "json":
		jsonBytes, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}
}
