package cli

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/garb/internal/config"
	"github.com/jmylchreest/garb/internal/server"
	"github.com/jmylchreest/garb/internal/style"
)

// newServeCmd builds the serve command.
func newServeCmd() *cobra.Command {
	var (
		serveConfig string
		serveHost   string
		servePort   int
	)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the outfit analysis HTTP API",
		Long: `Run the outfit analysis HTTP API.

The server exposes upload, analysis, recommendation and wardrobe
endpoints under /api/v1 and serves the uploaded images. Garment
recognition is enabled when a Gemini API key is configured or the
GOOGLE_API_KEY environment variable is set.

Examples:
  # Serve on the configured address (default 0.0.0.0:5000)
  garb serve

  # Serve on a specific port with a configuration file
  garb serve --config ~/.config/garb/config.yaml --port 8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, serveConfig, serveHost, servePort)
		},
	}

	serveCmd.Flags().StringVar(&serveConfig, "config", "", "configuration file")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on")

	return serveCmd
}

// runServe executes the serve command.
func runServe(cmd *cobra.Command, configPath, host string, port int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Flags beat the configuration file, but only when given.
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = host
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "garb",
		Level: logLevel(cmd),
	})

	var recognizer style.Recognizer
	if cfg.Gemini.APIKey != "" || os.Getenv("GOOGLE_API_KEY") != "" {
		recognizer = style.NewGeminiRecognizer(style.GeminiOptions{
			Model:      cfg.Gemini.Model,
			APIKey:     cfg.Gemini.APIKey,
			Logger:     logger.Named("recognizer"),
			MaxRetries: cfg.Gemini.MaxRetries,
		})
		logger.Info("garment recognition enabled", "model", cfg.Gemini.Model)
	} else {
		logger.Info("garment recognition disabled, set GOOGLE_API_KEY to enable it")
	}

	srv, err := server.New(server.Options{
		Config:     cfg,
		Logger:     logger,
		Recognizer: recognizer,
	})
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return srv.Run()
}

// logLevel maps the persistent verbosity flags to an hclog level.
func logLevel(cmd *cobra.Command) hclog.Level {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return hclog.Debug
	}
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		return hclog.Warn
	}
	return hclog.Info
}
