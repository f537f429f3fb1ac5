package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/eduguard/eg/internal/api"
	"github.com/eduguard/eg/internal/config"
	"github.com/eduguard/eg/internal/output"
	"github.com/eduguard/eg/internal/prefs"
)

// loadConfig resolves the effective configuration: the explicit --config
// path if given, the default location otherwise, with --api applied on
// top.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadExplicit(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if apiOverride != "" {
		cfg.API.BaseURL = apiOverride
	}

	return cfg, nil
}

// newLogger builds the diagnostics logger. Debug level when --verbose.
func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// newClient builds the report service client from config.
func newClient(cfg *config.Config) *api.Client {
	return api.NewClient(cfg.API.BaseURL, api.WithLogger(newLogger()))
}

// openPrefs opens the preference store, creating the config directory if
// needed.
func openPrefs() (*prefs.Store, error) {
	dir, err := config.EnsureDir()
	if err != nil {
		return nil, err
	}
	return prefs.Open(dir)
}

// parseOutputFormat validates the global --format flag.
func parseOutputFormat() (output.Format, error) {
	return output.ParseFormat(outputFormat)
}

// requireAdmin refuses admin-gated commands without a local admin
// session, the same gate the admin console had.
func requireAdmin(store *prefs.Store) error {
	admin, err := store.GetBool(prefs.KeyIsAdmin)
	if err != nil {
		return err
	}
	if !admin {
		return fmt.Errorf("admin session required: run 'eg login' first")
	}
	return nil
}
