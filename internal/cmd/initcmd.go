// Package cmd implements the init command for the eg CLI.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eduguard/eg/internal/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config directory and a default config file",
	Long: `Create the ~/.eduguard directory (or the directory named by EDUGUARD_DIR)
and write a commented config.yaml with the default settings.

Existing config files are never overwritten.

Examples:
  eg init                        # Write ~/.eduguard/config.yaml
  EDUGUARD_DIR=/tmp/eg eg init   # Write /tmp/eg/config.yaml`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path, err := config.SaveDefault()
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			fmt.Fprintf(cmd.OutOrStdout(), "Already initialized at %s\n", path)
			return nil
		}
		return fmt.Errorf("initializing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
	return nil
}
