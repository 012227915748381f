// Package config loads garb configuration from files and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/garb/internal/rules"
)

// Config holds the runtime configuration for garb.
type Config struct {
	Server   ServerConfig            `yaml:"server" json:"server"`
	Wardrobe WardrobeConfig          `yaml:"wardrobe" json:"wardrobe"`
	Analysis AnalysisConfig          `yaml:"analysis" json:"analysis"`
	Gemini   GeminiConfig            `yaml:"gemini" json:"gemini"`
	Rules    map[string]RuleSettings `yaml:"rules" json:"rules"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`

	// MaxUploadBytes caps the size of a single uploaded image.
	MaxUploadBytes int64 `yaml:"max_upload_bytes" json:"max_upload_bytes"`
}

// WardrobeConfig configures where uploaded outfit images are stored.
type WardrobeConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

// AnalysisConfig configures colour extraction.
type AnalysisConfig struct {
	// ColorCount is the number of dominant colours extracted per image.
	ColorCount int `yaml:"color_count" json:"color_count"`
}

// GeminiConfig configures the garment recognizer.
type GeminiConfig struct {
	Model      string `yaml:"model" json:"model"`
	APIKey     string `yaml:"api_key" json:"api_key"`
	MaxRetries uint64 `yaml:"max_retries" json:"max_retries"`
}

// RuleSettings overrides a single dressing rule. Nil fields leave the
// library default untouched.
type RuleSettings struct {
	Enabled *bool    `yaml:"enabled" json:"enabled"`
	Weight  *float64 `yaml:"weight" json:"weight"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	wardrobeDir := "wardrobe"
	if dir, err := DefaultWardrobeDir(); err == nil {
		wardrobeDir = dir
	}

	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           5000,
			MaxUploadBytes: 16 * 1024 * 1024,
		},
		Wardrobe: WardrobeConfig{
			Dir: wardrobeDir,
		},
		Analysis: AnalysisConfig{
			ColorCount: 5,
		},
	}
}

// DefaultWardrobeDir returns the default wardrobe directory path.
func DefaultWardrobeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "garb", "wardrobe"), nil
}

// Load reads configuration from path. When path is empty the default
// locations are searched and a missing file is not an error. A .env
// file in the working directory is loaded first, and GARB_*
// environment variables override file values.
func Load(path string) (*Config, error) {
	// Pick up a local .env if one exists.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = findDefaultConfig()
	}
	if path != "" {
		if err := loadFile(cfg, expandPath(path)); err != nil {
			return nil, err
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Validate checks the configuration for values the application cannot
// run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload size must be positive, got %d", c.Server.MaxUploadBytes)
	}
	if c.Wardrobe.Dir == "" {
		return fmt.Errorf("wardrobe directory cannot be empty")
	}
	if c.Analysis.ColorCount < 1 || c.Analysis.ColorCount > 256 {
		return fmt.Errorf("color count must be between 1 and 256, got %d", c.Analysis.ColorCount)
	}
	for name, settings := range c.Rules {
		if settings.Weight != nil && *settings.Weight < 0 {
			return fmt.Errorf("rule %q: weight cannot be negative", name)
		}
	}
	return nil
}

// ConfigureRules applies the rule overrides to a rule library.
func (c *Config) ConfigureRules(lib *rules.Library) error {
	for name, settings := range c.Rules {
		if settings.Weight != nil {
			if err := lib.SetWeight(name, *settings.Weight); err != nil {
				return err
			}
		}
		if settings.Enabled != nil {
			var err error
			if *settings.Enabled {
				err = lib.Enable(name)
			} else {
				err = lib.Disable(name)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// loadFile parses a YAML or JSON config file into cfg.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - User-specified config file, intended to be read
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Determine format by extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, cfg); err != nil {
			if jsonErr := json.Unmarshal(data, cfg); jsonErr != nil {
				return fmt.Errorf("failed to parse config as YAML or JSON: %w", err)
			}
		}
	}

	return nil
}

// findDefaultConfig returns the first existing default config path, or
// empty when none exists.
func findDefaultConfig() string {
	defaults := []string{
		"~/.config/garb/config.yaml",
		"~/.config/garb/config.yml",
		"~/.config/garb/config.json",
		"garb.yaml",
	}

	for _, path := range defaults {
		expanded := expandPath(path)
		if _, err := os.Stat(expanded); err == nil {
			return expanded
		}
	}

	return ""
}

// applyEnv overrides config values from GARB_* environment variables.
func applyEnv(cfg *Config) error {
	if host := os.Getenv("GARB_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if port := os.Getenv("GARB_SERVER_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid GARB_SERVER_PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	if dir := os.Getenv("GARB_WARDROBE_DIR"); dir != "" {
		cfg.Wardrobe.Dir = expandPath(dir)
	}
	if model := os.Getenv("GARB_GEMINI_MODEL"); model != "" {
		cfg.Gemini.Model = model
	}
	return nil
}

// expandPath expands ~ to the home directory.
func expandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
