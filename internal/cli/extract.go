// Package cli provides the command-line interface for Garb.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/garb/internal/colour"
	"github.com/jmylchreest/garb/internal/image"
)

// newExtractCmd builds the extract command.
func newExtractCmd() *cobra.Command {
	var (
		extractColours     int
		extractAlgorithm   string
		extractFormat      string
		extractOutput      string
		extractShowPreview bool
	)

	extractCmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Extract the dominant colours from an image",
		Long: `Extract the dominant colours from an outfit photo.

The extract command analyses an image and reports its dominant
colours. You can control the number of colours, the extraction
algorithm, and the output format. The image argument may be a file,
a directory (a random image is picked) or an HTTP(S) URL.

Supported image formats: JPEG, PNG, GIF, BMP, WebP

Examples:
  # Extract 5 colours (default) from a photo
  garb extract outfit.jpg

  # Extract 3 colours with terminal previews
  garb extract --preview --colours 3 outfit.png

  # Extract colours and output as JSON
  garb extract --format json outfit.jpg

  # Extract colours and save to a file
  garb extract --output palette.txt outfit.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], extractColours, extractAlgorithm, extractFormat, extractOutput, extractShowPreview)
		},
	}

	extractCmd.Flags().IntVarP(&extractColours, "colours", "c", 5, "number of colours to extract (1-256)")
	extractCmd.Flags().StringVarP(&extractAlgorithm, "algorithm", "a", "kmeans", "extraction algorithm (kmeans)")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "hex", "output format (hex, rgb, json)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().BoolVar(&extractShowPreview, "preview", false, "show colour previews in terminal")

	return extractCmd
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, imageArg string, colours int, algorithm, format, outputPath string, showPreview bool) error {
	config := colour.ExtractorConfig{
		Algorithm:  colour.Algorithm(algorithm),
		ColorCount: colours,
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

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

	if verbose {
		bounds := img.Bounds()
		fmt.Fprintf(os.Stderr, "Image loaded: %dx%d\n", bounds.Dx(), bounds.Dy())
		fmt.Fprintf(os.Stderr, "Extracting %d colours using %s algorithm...\n", colours, algorithm)
	}

	extractor, err := colour.NewExtractor(config.Algorithm)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	palette, err := extractor.Extract(img, colours)
	if err != nil {
		return fmt.Errorf("failed to extract colors: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Successfully extracted %d colours\n", palette.Len())
	}

	output, err := formatPalette(palette, format, showPreview)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	return writeOutput(cmd, outputPath, output)
}

// formatPalette formats the palette according to the specified format.
func formatPalette(palette *colour.Palette, format string, showPreview bool) (string, error) {
	switch format {
	case "hex":
		return formatHex(palette, showPreview), nil
	case "rgb":
		return formatRGB(palette, showPreview), nil
	case "json":
		jsonBytes, err := palette.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(jsonBytes) + "\n", nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: hex, rgb, json)", format)
	}
}

// formatHex formats the palette as hex colour codes.
func formatHex(palette *colour.Palette, showPreview bool) string {
	output := ""
	for _, rgb := range palette.ToRGBSlice() {
		if showPreview {
			output += colour.FormatColourWithPreview(rgb, 8) + "\n"
		} else {
			output += rgb.Hex() + "\n"
		}
	}
	return output
}

// formatRGB formats the palette as RGB values.
func formatRGB(palette *colour.Palette, showPreview bool) string {
	output := ""
	for _, rgb := range palette.ToRGBSlice() {
		if showPreview {
			output += colour.FormatColourWithPreview(rgb, 8) + "  " + rgb.String() + "\n"
		} else {
			output += rgb.String() + "\n"
		}
	}
	return output
}
