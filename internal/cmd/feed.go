package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/eduguard/eg/internal/api"
	"github.com/eduguard/eg/internal/config"
	"github.com/eduguard/eg/internal/feed"
	"github.com/eduguard/eg/internal/output"
	"github.com/eduguard/eg/internal/prefs"
)

// feedCmd represents the feed command
var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Browse the public feed of verified recent reports",
	Long: `Browse the public feed: verified reports from the rolling recency window
(7 days by default), newest first, five per page.

Search is a case-insensitive substring match against the exam and center
names. A tag narrows the feed to one exam label and composes with the
search. The feed ends with a reports-per-center chart of the top centers.

The last search, tag and page are saved between runs and restored on the
next invocation; command-line flags override the saved values. Use
--clear to forget them.

Examples:
  eg feed                        # Restore saved filters and browse
  eg feed --search neet          # Case-insensitive substring search
  eg feed --tag NEET --page 2    # Tag filter plus paging
  eg feed --clear                # Reset saved filters
  eg feed --no-save              # Browse without touching saved filters
  eg feed --format json          # Machine-readable page`,
	RunE: runFeed,
}

var (
	feedSearch string
	feedTag    string
	feedPage   int
	feedClear  bool
	feedNoSave bool
	feedIP     string
)

func init() {
	rootCmd.AddCommand(feedCmd)

	feedCmd.Flags().StringVarP(&feedSearch, "search", "s", "", "Free-text search query")
	feedCmd.Flags().StringVarP(&feedTag, "tag", "t", "", "Exam tag filter (e.g. NEET)")
	feedCmd.Flags().IntVarP(&feedPage, "page", "p", 0, "Page number (1-based)")
	feedCmd.Flags().BoolVar(&feedClear, "clear", false, "Forget the saved search, tag and page")
	feedCmd.Flags().BoolVar(&feedNoSave, "no-save", false, "Do not persist filters after this run")
	feedCmd.Flags().StringVar(&feedIP, "ip", "", "Mark reports submitted from this IP as yours")
}

func runFeed(cmd *cobra.Command, args []string) error {
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

	if feedClear {
		for _, key := range []string{prefs.KeySearchQuery, prefs.KeyActiveTag, prefs.KeyCurrentPage} {
			if err := store.Delete(key); err != nil {
				return err
			}
		}
	}

	state, err := resolveFeedState(cmd, store)
	if err != nil {
		return err
	}

	client := newClient(cfg)
	reports, err := client.List(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, output.MsgFailedToLoad)
		return err
	}

	page := buildFeedPage(cfg, client, reports, state, feedIP)

	if err := output.WriteFeed(cmd.OutOrStdout(), page, format); err != nil {
		return err
	}

	if !feedNoSave {
		if err := saveFeedState(store, page); err != nil {
			return err
		}
	}

	return nil
}

// resolveFeedState merges saved preferences with explicit flags. A flag
// the user set always wins over the saved value.
func resolveFeedState(cmd *cobra.Command, store *prefs.Store) (feed.ViewState, error) {
	state := feed.ViewState{Page: 1}

	if saved, ok, err := store.Get(prefs.KeySearchQuery); err != nil {
		return state, err
	} else if ok {
		state.Query = saved
	}
	if saved, ok, err := store.Get(prefs.KeyActiveTag); err != nil {
		return state, err
	} else if ok {
		state.Tag = saved
	}
	if saved, err := store.GetInt(prefs.KeyCurrentPage, 1); err != nil {
		return state, err
	} else {
		state.Page = saved
	}

	if cmd.Flags().Changed("search") {
		state.Query = feedSearch
		state.Page = 1
	}
	if cmd.Flags().Changed("tag") {
		state.Tag = feedTag
		state.Page = 1
	}
	if cmd.Flags().Changed("page") {
		state.Page = feedPage
	}

	return state, nil
}

// buildFeedPage runs one full recomputation pass: base filter, search,
// clamp, page slice, projection, and the top-centers aggregation.
func buildFeedPage(cfg *config.Config, client *api.Client, reports []feed.Report, state feed.ViewState, viewerIP string) output.FeedPage {
	store := feed.NewStore(feed.Filter{
		VerifiedOnly: true,
		Window:       time.Duration(cfg.Feed.WindowDays) * 24 * time.Hour,
		MatchFields:  cfg.MatchFields(),
	}, cfg.Feed.PageSize)

	gen := store.Begin()
	store.Complete(gen, reports)
	store.Restore(state)

	snap := store.Snapshot()

	views := feed.Project(snap.PageReports, feed.ProjectOptions{
		ViewerIP: viewerIP,
		Media:    cfg.MediaRules(),
		MediaURL: client.MediaURL,
	})

	return output.FeedPage{
		Reports:    views,
		Page:       snap.State.Page,
		TotalPages: snap.TotalPages,
		Total:      snap.Total,
		Start:      snap.Start,
		End:        snap.End,
		Query:      snap.State.Query,
		Tag:        snap.State.Tag,
		TopCenters: feed.TopCenters(snap.All, cfg.Feed.TopCenters),
	}
}

// saveFeedState persists the rendered filters for the next run.
func saveFeedState(store *prefs.Store, page output.FeedPage) error {
	if err := store.Set(prefs.KeySearchQuery, page.Query); err != nil {
		return err
	}
	if err := store.Set(prefs.KeyActiveTag, page.Tag); err != nil {
		return err
	}
	return store.SetInt(prefs.KeyCurrentPage, page.Page)
}
