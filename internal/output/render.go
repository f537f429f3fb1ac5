package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/eduguard/eg/internal/feed"
)

// Display-state messages. A failed load and an empty result render
// distinctly and neither is a crash.
const (
	MsgNoReports    = "No reports found."
	MsgFailedToLoad = "Failed to load reports."
)

// FeedPage is everything one render pass of the feed needs.
type FeedPage struct {
	Reports    []feed.ReportView  `json:"reports" yaml:"reports"`
	Page       int                `json:"page" yaml:"page"`
	TotalPages int                `json:"totalPages" yaml:"totalPages"`
	Total      int                `json:"total" yaml:"total"`
	Start      int                `json:"start" yaml:"start"`
	End        int                `json:"end" yaml:"end"`
	Query      string             `json:"query,omitempty" yaml:"query,omitempty"`
	Tag        string             `json:"tag,omitempty" yaml:"tag,omitempty"`
	TopCenters []feed.CenterCount `json:"topCenters,omitempty" yaml:"topCenters,omitempty"`
}

// CountBar formats the "Showing X–Y of Z reports" line for a page's
// half-open bounds.
func CountBar(start, end, total int) string {
	if total == 0 {
		return MsgNoReports
	}
	return fmt.Sprintf("Showing %d–%d of %d reports", start+1, end, total)
}

// WriteFeed renders a feed page in the requested format.
func WriteFeed(w io.Writer, page FeedPage, f Format) error {
	switch f {
	case FormatYAML:
		return encodeYAML(w, page)
	case FormatJSON:
		return encodeJSON(w, page)
	}

	fmt.Fprintln(w, CountBar(page.Start, page.End, page.Total))
	if page.Query != "" {
		fmt.Fprintf(w, "Search: %q\n", page.Query)
	}
	if page.Tag != "" {
		fmt.Fprintf(w, "Tag: %s\n", page.Tag)
	}
	fmt.Fprintln(w)

	for _, v := range page.Reports {
		writeReportCard(w, v)
	}

	if page.Total > 0 {
		fmt.Fprintf(w, "Page %d of %d\n", page.Page, page.TotalPages)
	}

	if len(page.TopCenters) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Reports per center:")
		WriteChart(w, page.TopCenters)
	}

	return nil
}

// writeReportCard prints one report in the card layout the feed uses.
func writeReportCard(w io.Writer, v feed.ReportView) {
	marker := ""
	if v.Mine {
		marker = "  [your submission]"
	}
	fmt.Fprintf(w, "%s%s\n", v.Title, marker)

	if v.Description != "" {
		fmt.Fprintf(w, "  %s\n", v.Description)
	}
	fmt.Fprintf(w, "  %s (%s)\n", v.Timestamp.Local().Format("2006-01-02 15:04"), v.TimeAgo)

	switch v.Media.Kind {
	case feed.MediaNone:
	case feed.MediaImage:
		fmt.Fprintf(w, "  image: %s\n", v.Media.URL)
	case feed.MediaVideo:
		fmt.Fprintf(w, "  video: %s\n", v.Media.URL)
	default:
		fmt.Fprintf(w, "  media: %s\n", v.Media.URL)
	}

	if v.Verified {
		fmt.Fprintln(w, "  status: verified")
	} else {
		fmt.Fprintln(w, "  status: pending")
	}

	for _, a := range v.Actions {
		fmt.Fprintf(w, "  action: eg %s %s\n", a.Kind, a.ReportID)
	}

	fmt.Fprintln(w)
}

// WriteReports renders a flat listing (dashboard, admin console).
func WriteReports(w io.Writer, views []feed.ReportView, f Format) error {
	switch f {
	case FormatYAML:
		return encodeYAML(w, map[string]interface{}{"reports": views, "count": len(views)})
	case FormatJSON:
		return encodeJSON(w, map[string]interface{}{"reports": views, "count": len(views)})
	}

	if len(views) == 0 {
		fmt.Fprintln(w, MsgNoReports)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tWHEN\tMEDIA\tSTATUS")
	for _, v := range views {
		status := "pending"
		if v.Verified {
			status = "verified"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.Title, v.TimeAgo, v.Media.Kind, status)
	}
	return tw.Flush()
}

// Stats is the admin console summary.
type Stats struct {
	Total      int                `json:"total" yaml:"total"`
	Verified   int                `json:"verified" yaml:"verified"`
	Pending    int                `json:"pending" yaml:"pending"`
	TopCenters []feed.CenterCount `json:"topCenters,omitempty" yaml:"topCenters,omitempty"`
}

// WriteStats renders the admin stats box.
func WriteStats(w io.Writer, stats Stats, f Format) error {
	switch f {
	case FormatYAML:
		return encodeYAML(w, stats)
	case FormatJSON:
		return encodeJSON(w, stats)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total reports:\t%d\n", stats.Total)
	fmt.Fprintf(tw, "Verified:\t%d\n", stats.Verified)
	fmt.Fprintf(tw, "Pending:\t%d\n", stats.Pending)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(stats.TopCenters) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Reports per center:")
		WriteChart(w, stats.TopCenters)
	}
	return nil
}

// chartWidth is the bar length of the largest bucket.
const chartWidth = 30

// WriteChart renders the per-center frequency table as horizontal bars.
func WriteChart(w io.Writer, counts []feed.CenterCount) {
	if len(counts) == 0 {
		return
	}

	max := counts[0].Count
	for _, c := range counts {
		if c.Count > max {
			max = c.Count
		}
	}

	nameWidth := 0
	for _, c := range counts {
		if len(c.Center) > nameWidth {
			nameWidth = len(c.Center)
		}
	}

	for _, c := range counts {
		bar := chartWidth * c.Count / max
		if bar < 1 {
			bar = 1
		}
		fmt.Fprintf(w, "  %-*s %s %d\n", nameWidth, c.Center, strings.Repeat("#", bar), c.Count)
	}
}

func encodeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
