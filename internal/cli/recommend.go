package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/garb/internal/recommend"
)

// newRecommendCmd builds the recommend command.
func newRecommendCmd() *cobra.Command {
	var recommendFormat string

	recommendCmd := &cobra.Command{
		Use:   "recommend [context]",
		Short: "Show colour and style recommendations for an occasion",
		Long: `Show colour and style recommendations for an occasion.

Known contexts: formal, business, work, casual, sport. Unknown
contexts fall back to the casual guide.

Examples:
  # Recommendations for a business occasion
  garb recommend business

  # Machine readable output
  garb recommend --format json sport`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contextType := recommend.DefaultContext
			if len(args) == 1 {
				contextType = args[0]
			}
			return runRecommend(cmd, contextType, recommendFormat)
		},
	}

	recommendCmd.Flags().StringVarP(&recommendFormat, "format", "f", "text", "output format (text, json)")

	return recommendCmd
}

// runRecommend executes the recommend command.
func runRecommend(cmd *cobra.Command, contextType, format string) error {
	quiet, _ := cmd.Flags().GetBool("quiet")
	if !quiet && !slices.Contains(recommend.Contexts(), contextType) {
		fmt.Fprintf(os.Stderr, "No guide for %q, showing the %s guide\n", contextType, recommend.DefaultContext)
	}

	guide := recommend.Lookup(contextType)

	switch format {
	case "text":
		var b strings.Builder
		fmt.Fprintf(&b, "Recommendations for a %s occasion:\n\n", contextType)
		fmt.Fprintf(&b, "Colours: %s\n", strings.Join(guide.Colors, ", "))
		fmt.Fprintf(&b, "Top:     %s\n", guide.Styles.Top)
		fmt.Fprintf(&b, "Bottom:  %s\n", guide.Styles.Bottom)
		fmt.Fprintf(&b, "Shoes:   %s\n", guide.Styles.Shoes)
		b.WriteString("\nTips:\n")
		for _, tip := range guide.Tips {
			fmt.Fprintf(&b, "  - %s\n", tip)
		}
		fmt.Fprint(cmd.OutOrStdout(), b.String())
		return nil
	case "json":
		payload := struct {
			Context string `json:"context"`
			recommend.Guide
		}{Context: contextType, Guide: guide}
		jsonBytes, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to convert to JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
		return nil
	default:
		return fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}
}
