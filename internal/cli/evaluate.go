package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/garb/internal/rules"
)

// newEvaluateCmd builds the evaluate command.
func newEvaluateCmd() *cobra.Command {
	var (
		evaluateFormat  string
		evaluateOutput  string
		evaluateEnable  []string
		evaluateDisable []string
		evaluateWeights []string
	)

	evaluateCmd := &cobra.Command{
		Use:   "evaluate <outfit.json>",
		Short: "Evaluate an outfit document against the dressing rules",
		Long: `Evaluate an outfit document against the dressing rules.

The outfit document is JSON. Colours are given either as [r, g, b]
triples or as colour names, styles name the garment per slot and the
context names the occasion:

  {
    "colors": [[25, 25, 112], "white"],
    "styles": {"top": "shirt", "bottom": "casual-pants", "shoes": "leather-shoes"},
    "context": {"type": "business"}
  }

Individual rules can be enabled, disabled or reweighted for a single
run.

Examples:
  # Evaluate an outfit
  garb evaluate outfit.json

  # Ignore the context rule for this run
  garb evaluate --disable context-match outfit.json

  # Double the weight of the three colour rule
  garb evaluate --weight three-colour=2.0 outfit.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, args[0], evaluateFormat, evaluateOutput, evaluateEnable, evaluateDisable, evaluateWeights)
		},
	}

	evaluateCmd.Flags().StringVarP(&evaluateFormat, "format", "f", "text", "output format (text, json)")
	evaluateCmd.Flags().StringVarP(&evaluateOutput, "output", "o", "", "output file (default: stdout)")
	evaluateCmd.Flags().StringSliceVar(&evaluateEnable, "enable", nil, "enable a rule by name (repeatable)")
	evaluateCmd.Flags().StringSliceVar(&evaluateDisable, "disable", nil, "disable a rule by name (repeatable)")
	evaluateCmd.Flags().StringSliceVar(&evaluateWeights, "weight", nil, "set a rule weight as name=value (repeatable)")

	return evaluateCmd
}

// runEvaluate executes the evaluate command.
func runEvaluate(cmd *cobra.Command, outfitPath, format, outputPath string, enable, disable, weights []string) error {
	data, err := os.ReadFile(outfitPath) // #nosec G304 - The outfit document is named by the user on the command line
	if err != nil {
		return fmt.Errorf("failed to read outfit document: %w", err)
	}

	var outfit rules.Outfit
	if err := json.Unmarshal(data, &outfit); err != nil {
		return fmt.Errorf("invalid outfit document: %w", err)
	}

	library := rules.NewLibrary()
	for _, spec := range weights {
		name, value, found := strings.Cut(spec, "=")
		if !found {
			return fmt.Errorf("invalid weight %q, expected name=value", spec)
		}
		weight, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid weight %q: %w", spec, err)
		}
		if err := library.SetWeight(name, weight); err != nil {
			return err
		}
	}
	for _, name := range enable {
		if err := library.Enable(name); err != nil {
			return err
		}
	}
	for _, name := range disable {
		if err := library.Disable(name); err != nil {
			return err
		}
	}

	report, err := rules.NewEvaluator(library).Evaluate(outfit)
	if err != nil {
		return fmt.Errorf("rule evaluation failed: %w", err)
	}

	var output string
	switch format {
	case "text":
		output = formatRuleReport(report)
	case "json":
		jsonBytes, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		output = string(jsonBytes) + "\n"
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}

	return writeOutput(cmd, outputPath, output)
}
