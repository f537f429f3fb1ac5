package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/eduguard/eg/internal/prefs"
)

// prefsCmd represents the prefs command
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect and manage saved preferences",
	Long: `Show or manage the preferences that persist between runs: the last
search query, active tag, page number, dark mode, and the admin-session
flag.

Examples:
  eg prefs                    # Show everything
  eg prefs set darkMode true  # Set one preference
  eg prefs clear              # Forget everything (including the admin session)`,
	RunE: runPrefsShow,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one preference",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrefsSet,
}

var prefsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all saved preferences",
	RunE:  runPrefsClear,
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsClearCmd)
}

func runPrefsShow(cmd *cobra.Command, args []string) error {
	store, err := openPrefs()
	if err != nil {
		return err
	}
	defer store.Close()

	all, err := store.All()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no saved preferences")
		return nil
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", k, all[k])
	}
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	known := []string{
		prefs.KeySearchQuery, prefs.KeyActiveTag, prefs.KeyCurrentPage,
		prefs.KeyDarkMode, prefs.KeyIsAdmin,
	}
	valid := false
	for _, k := range known {
		if key == k {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown preference %q (known: %v)", key, known)
	}

	store, err := openPrefs()
	if err != nil {
		return err
	}
	defer store.Close()

	return store.Set(key, value)
}

func runPrefsClear(cmd *cobra.Command, args []string) error {
	store, err := openPrefs()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "preferences cleared")
	return nil
}
