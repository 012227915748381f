package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/garb/internal/rules"
)

// writeOutput writes a command's product to the output file when one
// was given and to stdout otherwise.
func writeOutput(cmd *cobra.Command, outputPath, content string) error {
	if outputPath == "" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}

	if err := os.WriteFile(outputPath, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		fmt.Fprintf(os.Stderr, "Successfully wrote output to %s\n", outputPath)
	}
	return nil
}

// formatRuleReport renders a rule evaluation report as text.
func formatRuleReport(report rules.Report) string {
	var b strings.Builder

	status := "passed"
	if !report.Passed {
		status = "failed"
	}
	fmt.Fprintf(&b, "Dressing rules: %.1f/100 (%s)\n\n", report.Score, status)

	tbl := NewTable([]string{"RULE", "WEIGHT", "SCORE", "STATUS", "NOTE"})
	tbl.EnableTerminalAwareWidth(4, 40)
	for _, r := range report.Results {
		outcome := "pass"
		if !r.Passed {
			outcome = "fail"
		}
		tbl.AddRow(r.RuleName, fmt.Sprintf("%.1f", r.Weight), fmt.Sprintf("%.1f", r.Score), outcome, r.Message)
	}
	b.WriteString(tbl.Render())

	if len(report.Suggestions) > 0 {
		b.WriteString("\nSuggestions:\n")
		for _, s := range report.Suggestions {
			fmt.Fprintf(&b, "  - %s (%s)\n", s.Suggestion, s.Rule)
		}
	}

	return b.String()
}

// sizeString renders a byte count in human readable form.
func sizeString(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
