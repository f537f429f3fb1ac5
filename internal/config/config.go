// Package config loads the eg configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/eduguard/eg/internal/feed"
)

// ConfigFileName is the name of the eg configuration file.
const ConfigFileName = "config.yaml"

// ConfigDirName is the name of the eg configuration directory, created
// under the user's home directory.
const ConfigDirName = ".eduguard"

// EnvDir overrides the configuration directory when set. Used mainly by
// tests and scripted environments.
const EnvDir = "EDUGUARD_DIR"

// Config holds all eg configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Feed      FeedConfig      `yaml:"feed"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Media     MediaConfig     `yaml:"media"`
}

// APIConfig holds the report service endpoint settings.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

// FeedConfig holds the public feed settings.
type FeedConfig struct {
	// WindowDays is the rolling recency window for the public feed.
	WindowDays int `yaml:"window_days"`

	// PageSize is the number of reports per feed page.
	PageSize int `yaml:"page_size"`

	// TopCenters is the number of buckets in the reports-per-center chart.
	TopCenters int `yaml:"top_centers"`

	// MatchFields lists the report fields searched by the free-text
	// query: examName, centerName, description.
	MatchFields []string `yaml:"match_fields"`

	// Tags are the quick-filter labels offered by the feed.
	Tags []string `yaml:"tags"`
}

// DashboardConfig holds the raw dashboard listing settings.
type DashboardConfig struct {
	PageSize int `yaml:"page_size"`
}

// MediaConfig holds the attachment classification allow-lists.
type MediaConfig struct {
	ImageExts []string `yaml:"image_exts"`
	VideoExts []string `yaml:"video_exts"`
}

// ErrConfigNotFound is returned when no config file can be found.
var ErrConfigNotFound = errors.New("config file not found")

// ErrInvalidConfig is returned when config validation fails.
var ErrInvalidConfig = errors.New("invalid configuration")

// Dir returns the eg configuration directory: $EDUGUARD_DIR if set,
// otherwise ~/.eduguard.
func Dir() (string, error) {
	if dir := os.Getenv(EnvDir); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// Load reads config from the eg config directory, falling back to
// defaults when no file exists.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(filepath.Join(dir, ConfigFileName))
}

// LoadExplicit reads config from a path the user named explicitly.
// Unlike Load, a missing file is an error (ErrConfigNotFound) rather
// than a silent fall-back to defaults.
func LoadExplicit(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromPath(path)
}

// LoadFromPath reads config from a specific path. A missing file yields
// the defaults; a present file is merged with defaults and validated.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	merged := Merge(loaded, DefaultConfig())

	if err := Validate(merged); err != nil {
		return nil, err
	}

	return merged, nil
}

// EnsureDir creates the eg configuration directory if it doesn't exist
// and returns its path.
func EnsureDir() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}

	info, err := os.Stat(dir)
	if err == nil {
		if info.IsDir() {
			return dir, nil
		}
		return "", fmt.Errorf("%s exists but is not a directory", dir)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	return dir, nil
}

// Validate checks that config values are usable.
func Validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("%w: api.base_url must not be empty", ErrInvalidConfig)
	}

	if cfg.Feed.WindowDays <= 0 {
		return fmt.Errorf("%w: feed.window_days must be positive, got %d",
			ErrInvalidConfig, cfg.Feed.WindowDays)
	}

	if cfg.Feed.PageSize <= 0 {
		return fmt.Errorf("%w: feed.page_size must be positive, got %d",
			ErrInvalidConfig, cfg.Feed.PageSize)
	}

	if cfg.Feed.TopCenters <= 0 {
		return fmt.Errorf("%w: feed.top_centers must be positive, got %d",
			ErrInvalidConfig, cfg.Feed.TopCenters)
	}

	for _, field := range cfg.Feed.MatchFields {
		if !feed.IsValidMatchField(field) {
			return fmt.Errorf("%w: feed.match_fields entry %q is not one of examName, centerName, description",
				ErrInvalidConfig, field)
		}
	}

	if cfg.Dashboard.PageSize <= 0 {
		return fmt.Errorf("%w: dashboard.page_size must be positive, got %d",
			ErrInvalidConfig, cfg.Dashboard.PageSize)
	}

	return nil
}

// SaveDefault writes the default configuration to the config directory.
// The directory is created if needed; an existing file is an error.
func SaveDefault() (string, error) {
	dir, err := EnsureDir()
	if err != nil {
		return "", err
	}

	configPath := filepath.Join(dir, ConfigFileName)

	if _, err := os.Stat(configPath); err == nil {
		return configPath, fmt.Errorf("config file already exists at %s: %w", configPath, os.ErrExist)
	}

	cfg := DefaultConfig()
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}

	header := "# eg configuration\n# Run 'eg --help' for usage.\n\n"
	data = append([]byte(header), data...)

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}

	return configPath, nil
}

// MatchFields converts the configured field names into typed match fields.
func (c *Config) MatchFields() []feed.MatchField {
	fields := make([]feed.MatchField, 0, len(c.Feed.MatchFields))
	for _, name := range c.Feed.MatchFields {
		fields = append(fields, feed.MatchField(name))
	}
	return fields
}

// MediaRules converts the configured allow-lists into feed media rules.
func (c *Config) MediaRules() feed.MediaRules {
	return feed.MediaRules{
		ImageExts: c.Media.ImageExts,
		VideoExts: c.Media.VideoExts,
	}
}
