package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <id>...",
	Short: "Mark reports as verified (admin)",
	Long: `Mark one or more reports as verified so they appear in the public feed.
Requires an admin session (eg login).

Each id is attempted independently; failures are reported per id and do
not stop the rest. The local view is never updated optimistically - rerun
'eg dashboard' or 'eg reports' to see the new server state.

Examples:
  eg verify 6650be91c2...               # One report
  eg verify 6650be91c2... 6650bf02a1...  # Bulk verify`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openPrefs()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := requireAdmin(store); err != nil {
		return err
	}

	client := newClient(cfg)
	ctx := context.Background()

	failed := 0
	for _, id := range args {
		if err := client.Verify(ctx, id); err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "verify %s: %v\n", id, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "verified %s\n", id)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d reports not verified", failed, len(args))
	}
	return nil
}
