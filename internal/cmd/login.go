package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eduguard/eg/internal/prefs"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Start a local admin session",
	Long: `Mark this machine's session as admin, unlocking verify, delete, reports,
stats and export. This is the same local flag the admin console kept;
actual authorization is enforced by the report service itself.

Examples:
  eg login
  eg verify 6650be91c2...`,
	RunE: runLogin,
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the local admin session",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	store, err := openPrefs()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.SetBool(prefs.KeyIsAdmin, true); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "admin session started")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	store, err := openPrefs()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(prefs.KeyIsAdmin); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "admin session ended")
	return nil
}
