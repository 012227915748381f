package cli

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/garb/internal/colour"
	"github.com/jmylchreest/garb/internal/image"
	"github.com/jmylchreest/garb/internal/rules"
)

// analyzedColour is one dominant colour in the analyze report.
type analyzedColour struct {
	RGB        []int             `json:"rgb"`
	Hex        string            `json:"hex"`
	Percentage float64           `json:"percentage"`
	Name       colour.ColourName `json:"name"`
	Tone       colour.Tone       `json:"tone"`
}

// analyzeReport is the JSON form of a full outfit analysis.
type analyzeReport struct {
	Image           string             `json:"image"`
	Colors          []analyzedColour   `json:"colors"`
	ColorEvaluation colour.ComboReport `json:"color_evaluation"`
	RuleEvaluation  rules.Report       `json:"rule_evaluation"`
}

// newAnalyzeCmd builds the analyze command.
func newAnalyzeCmd() *cobra.Command {
	var (
		analyzeColours int
		analyzeFormat  string
		analyzeOutput  string
		analyzePreview bool
		analyzeContext string
		analyzeTop     string
		analyzeBottom  string
		analyzeShoes   string
	)

	analyzeCmd := &cobra.Command{
		Use:   "analyze <image>",
		Short: "Analyse an outfit photo",
		Long: `Analyse an outfit photo end to end.

The analyze command extracts the dominant colours, names them,
scores how well they combine and evaluates the outfit against the
dressing rules. Garment styles and the occasion can be given with
flags to unlock the style and context rules.

Examples:
  # Analyse a photo
  garb analyze outfit.jpg

  # Analyse with terminal colour previews
  garb analyze --preview outfit.jpg

  # Name the garments and the occasion
  garb analyze --top shirt --bottom casual-pants --shoes leather-shoes --context business outfit.jpg

  # Machine readable output
  garb analyze --format json outfit.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			styles := rules.Styles{
				Top:    analyzeTop,
				Bottom: analyzeBottom,
				Shoes:  analyzeShoes,
			}
			return runAnalyze(cmd, args[0], analyzeColours, analyzeFormat, analyzeOutput, analyzePreview, styles, analyzeContext)
		},
	}

	analyzeCmd.Flags().IntVarP(&analyzeColours, "colours", "c", 5, "number of dominant colours to extract (1-256)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "text", "output format (text, json)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output file (default: stdout)")
	analyzeCmd.Flags().BoolVar(&analyzePreview, "preview", false, "show colour previews in terminal")
	analyzeCmd.Flags().StringVar(&analyzeContext, "context", "", "occasion the outfit is worn for (formal, business, work, casual, sport)")
	analyzeCmd.Flags().StringVar(&analyzeTop, "top", "", "garment worn on top (shirt, t-shirt, hoodie, jacket)")
	analyzeCmd.Flags().StringVar(&analyzeBottom, "bottom", "", "garment worn below (jeans, casual-pants)")
	analyzeCmd.Flags().StringVar(&analyzeShoes, "shoes", "", "shoes worn (leather-shoes, sneakers)")

	return analyzeCmd
}

// runAnalyze executes the analyze command.
func runAnalyze(cmd *cobra.Command, imageArg string, colours int, format, outputPath string, showPreview bool, styles rules.Styles, contextType string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	imagePath, err := image.ResolveImagePath(imageArg)
	if err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Loading image: %s\n", imagePath)
	}

	loader := image.NewSmartLoader()
	img, err := loader.Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	extractor, err := colour.NewExtractor(colour.AlgorithmKMeans)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	palette, err := extractor.Extract(img, colours)
	if err != nil {
		return fmt.Errorf("failed to extract colors: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Extracted %d colours, evaluating...\n", palette.Len())
	}

	rgbs := palette.ToRGBSlice()
	percentages := palette.Percentages()

	report := analyzeReport{
		Image:  imagePath,
		Colors: make([]analyzedColour, len(rgbs)),
	}
	outfit := rules.Outfit{
		Colors:  make([]rules.ColourValue, len(rgbs)),
		Styles:  styles,
		Context: rules.Context{Type: contextType},
	}
	for i, rgb := range rgbs {
		classification := colour.Classify(rgb)
		report.Colors[i] = analyzedColour{
			RGB:        rgb.Triple(),
			Hex:        rgb.Hex(),
			Percentage: math.Round(percentages[i]*100) / 100,
			Name:       classification.Name,
			Tone:       classification.Tone,
		}
		outfit.Colors[i] = rules.FromRGB(rgb)
	}

	report.ColorEvaluation = colour.ScoreCombo(rgbs)

	report.RuleEvaluation, err = rules.EvaluateOutfit(outfit)
	if err != nil {
		return fmt.Errorf("rule evaluation failed: %w", err)
	}

	output, err := formatAnalyzeReport(report, format, showPreview)
	if err != nil {
		return err
	}

	return writeOutput(cmd, outputPath, output)
}

// formatAnalyzeReport renders the analysis in the requested format.
func formatAnalyzeReport(report analyzeReport, format string, showPreview bool) (string, error) {
	switch format {
	case "text":
		return formatAnalyzeText(report, showPreview), nil
	case "json":
		jsonBytes, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}
}

// formatAnalyzeText renders the analysis as human readable text.
func formatAnalyzeText(report analyzeReport, showPreview bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Image: %s\n\n", report.Image)

	b.WriteString("Dominant colours:\n")
	for _, c := range report.Colors {
		line := fmt.Sprintf("%-8s %-12s %-8s %5.1f%%", c.Hex, c.Name, c.Tone, c.Percentage)
		if showPreview {
			rgb := colour.RGB{R: uint8(c.RGB[0]), G: uint8(c.RGB[1]), B: uint8(c.RGB[2])}
			line = colour.ColourPreview(rgb, 8) + " " + line
		}
		b.WriteString("  " + line + "\n")
	}

	fmt.Fprintf(&b, "\nColour combination: %.1f/100\n", report.ColorEvaluation.Score)
	for _, s := range report.ColorEvaluation.Suggestions {
		fmt.Fprintf(&b, "  - %s\n", s)
	}

	b.WriteString("\n")
	b.WriteString(formatRuleReport(report.RuleEvaluation))

	return b.String()
}
