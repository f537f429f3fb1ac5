package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eduguard/eg/internal/feed"
	"github.com/eduguard/eg/internal/output"
)

// reportsCmd represents the reports command, the admin console listing.
var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Admin listing with search and status filter",
	Long: `List all reports the way the admin console does: unfiltered by recency,
searchable, and narrowable to verified or pending. Each row carries the
verify/delete action hints for pending work. Requires an admin session.

Examples:
  eg reports                        # Everything, newest first
  eg reports --status pending       # Awaiting verification
  eg reports --search "city hall"   # Search exam and center names
  eg reports --status verified --format json`,
	RunE: runReports,
}

var (
	reportsSearch string
	reportsStatus string
)

func init() {
	rootCmd.AddCommand(reportsCmd)

	reportsCmd.Flags().StringVarP(&reportsSearch, "search", "s", "", "Free-text search query")
	reportsCmd.Flags().StringVar(&reportsStatus, "status", "all", "Status filter (all|verified|pending)")
}

func runReports(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat()
	if err != nil {
		return err
	}

	if reportsStatus != "all" && reportsStatus != "verified" && reportsStatus != "pending" {
		return fmt.Errorf("invalid status %q (expected all, verified, or pending)", reportsStatus)
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

	filtered := feed.Filter{
		Query:       reportsSearch,
		MatchFields: cfg.MatchFields(),
	}.Apply(reports)

	filtered = filterByStatus(filtered, reportsStatus)

	views := feed.Project(filtered, feed.ProjectOptions{
		Media:        cfg.MediaRules(),
		MediaURL:     client.MediaURL,
		AdminActions: true,
	})

	return output.WriteReports(cmd.OutOrStdout(), views, format)
}

// filterByStatus narrows by verification state; "all" passes everything
// through.
func filterByStatus(reports []feed.Report, status string) []feed.Report {
	if status == "all" {
		return reports
	}
	wantVerified := status == "verified"

	out := make([]feed.Report, 0, len(reports))
	for _, r := range reports {
		if r.IsVerified == wantVerified {
			out = append(out, r)
		}
	}
	return out
}
