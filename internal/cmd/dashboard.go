package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eduguard/eg/internal/feed"
	"github.com/eduguard/eg/internal/output"
)

// dashboardCmd represents the dashboard command
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "List reports straight from the API",
	Long: `List reports from the /api/reports endpoint without the feed's
verification or recency filtering, six per page, newest first.

Examples:
  eg dashboard              # First page
  eg dashboard --page 3     # Later pages
  eg dashboard --format json`,
	RunE: runDashboard,
}

var dashboardPage int

func init() {
	rootCmd.AddCommand(dashboardCmd)

	dashboardCmd.Flags().IntVarP(&dashboardPage, "page", "p", 1, "Page number (1-based)")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	format, err := parseOutputFormat()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := newClient(cfg)
	reports, err := client.ListReports(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, output.MsgFailedToLoad)
		return err
	}

	ordered := feed.Filter{}.Apply(reports)

	p := feed.NewPaginator(cfg.Dashboard.PageSize)
	pageReports := p.Page(ordered, dashboardPage)
	start, end := p.Bounds(dashboardPage, len(ordered))

	views := feed.Project(pageReports, feed.ProjectOptions{
		Media:    cfg.MediaRules(),
		MediaURL: client.MediaURL,
	})

	w := cmd.OutOrStdout()
	if format == output.FormatTable {
		fmt.Fprintln(w, output.CountBar(start, end, len(ordered)))
	}
	return output.WriteReports(w, views, format)
}
