package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eduguard/eg/internal/feed"
	"github.com/eduguard/eg/internal/output"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show report totals and top centers (admin)",
	Long: `Show the admin summary: total, verified and pending report counts, plus
the reports-per-center chart over the full set. Requires an admin session.

Examples:
  eg stats
  eg stats --format yaml`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat()
	if err != nil {
		return err
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
	reports, err := client.List(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, output.MsgFailedToLoad)
		return err
	}

	return output.WriteStats(cmd.OutOrStdout(), buildStats(reports, cfg.Feed.TopCenters), format)
}

// buildStats computes the summary counts and the top-N center buckets.
func buildStats(reports []feed.Report, topN int) output.Stats {
	verified := 0
	for _, r := range reports {
		if r.IsVerified {
			verified++
		}
	}

	return output.Stats{
		Total:      len(reports),
		Verified:   verified,
		Pending:    len(reports) - verified,
		TopCenters: feed.TopCenters(reports, topN),
	}
}
