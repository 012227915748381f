// Package cli provides the command-line interface for Garb.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/garb/internal/colour"
	"github.com/jmylchreest/garb/internal/version"
)

// normalizeFlags maps American flag spellings onto the canonical
// ones, so --colors and --no-colour work as expected.
func normalizeFlags(f *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "colors":
		name = "colours"
	case "no-colour":
		name = "no-color"
	}
	return pflag.NormalizedName(name)
}

// NewRootCmd builds the garb command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "garb",
		Short: "Outfit colour and style analysis",
		Long: `Garb analyses outfit photos. It extracts the dominant colours,
names them, scores how well they work together and evaluates the
outfit against classic dressing rules such as the three colour
principle and light-top-dark-bottom.

Garb also runs as an HTTP service with wardrobe management, garment
recognition and occasion based recommendations.`,
		Version:      version.Short(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
				colour.DisableColourOutput = true
			}
		},
	}

	rootCmd.SetGlobalNormalizationFunc(normalizeFlags)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colour previews in terminal output")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newEvaluateCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newRecommendCmd())
	rootCmd.AddCommand(newWardrobeCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// newVersionCmd builds the version command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.String())
		},
	}
}
