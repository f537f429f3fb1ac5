package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete reports (admin)",
	Long: `Delete one or more reports from the service. Requires an admin session
(eg login) and the --force flag, since deletion cannot be undone.

Deleting an id that no longer exists is treated as success: repeated
deletes converge on the same state. Other failures are reported per id;
the local view is never updated optimistically.

Examples:
  eg delete --force 6650be91c2...
  eg delete --force 6650be91c2... 6650bf02a1...   # Bulk delete`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

var deleteForce bool

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVar(&deleteForce, "force", false, "Actually delete; required")
}

func runDelete(cmd *cobra.Command, args []string) error {
	if !deleteForce {
		return fmt.Errorf("refusing to delete %d report(s) without --force", len(args))
	}

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
		if err := client.Delete(ctx, id); err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "delete %s: %v\n", id, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d reports not deleted", failed, len(args))
	}
	return nil
}
