package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/garb/internal/colour"
)

// classifyReport is the JSON form of a classification probe.
type classifyReport struct {
	RGB        []int             `json:"rgb"`
	Hex        string            `json:"hex"`
	Name       colour.ColourName `json:"name"`
	Tone       colour.Tone       `json:"tone"`
	Brightness float64           `json:"brightness"`
	Neutral    bool              `json:"neutral"`
}

// newClassifyCmd builds the classify command.
func newClassifyCmd() *cobra.Command {
	var classifyFormat string

	classifyCmd := &cobra.Command{
		Use:   "classify <r> <g> <b>",
		Short: "Classify a single RGB colour",
		Long: `Classify a single RGB colour into the outfit colour taxonomy.

Each component must be an integer between 0 and 255.

Examples:
  # Name a colour
  garb classify 200 30 30

  # Machine readable output
  garb classify --format json 25 25 112`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args, classifyFormat)
		},
	}

	classifyCmd.Flags().StringVarP(&classifyFormat, "format", "f", "text", "output format (text, json)")

	return classifyCmd
}

// runClassify executes the classify command.
func runClassify(cmd *cobra.Command, args []string, format string) error {
	components := make([]uint8, 3)
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid colour component %q: %w", arg, err)
		}
		if v < 0 || v > 255 {
			return fmt.Errorf("colour component %d out of range [0, 255]", v)
		}
		components[i] = uint8(v)
	}

	rgb := colour.RGB{R: components[0], G: components[1], B: components[2]}
	classification := colour.Classify(rgb)

	report := classifyReport{
		RGB:        rgb.Triple(),
		Hex:        rgb.Hex(),
		Name:       classification.Name,
		Tone:       classification.Tone,
		Brightness: colour.Brightness(rgb),
		Neutral:    colour.IsNeutral(classification.Name),
	}

	switch format {
	case "text":
		var b strings.Builder
		if colour.SupportsANSIColours() && !colour.DisableColourOutput {
			b.WriteString(colour.ColourPreview(rgb, 8) + " ")
		}
		fmt.Fprintf(&b, "%s\n", rgb.Hex())
		fmt.Fprintf(&b, "name:       %s\n", report.Name)
		fmt.Fprintf(&b, "tone:       %s\n", report.Tone)
		fmt.Fprintf(&b, "brightness: %.1f\n", report.Brightness)
		fmt.Fprintf(&b, "neutral:    %t\n", report.Neutral)
		fmt.Fprint(cmd.OutOrStdout(), b.String())
		return nil
	case "json":
		jsonBytes, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}
}
