package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/eduguard/eg/internal/feed"
)

func sampleViews() []feed.ReportView {
	return []feed.ReportView{
		{
			ID:          "a1",
			Title:       "NEET — City Center",
			Description: "proxy writers",
			Timestamp:   time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
			TimeAgo:     "2 hours ago",
			Media:       feed.MediaView{Kind: feed.MediaImage, Filename: "p.jpg", URL: "https://x/uploads/p.jpg"},
			Verified:    true,
		},
		{
			ID:        "b2",
			Title:     "JEE — Town Hall",
			Timestamp: time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC),
			TimeAgo:   "3 hours ago",
			Media:     feed.MediaView{Kind: feed.MediaNone},
		},
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"table", FormatTable, false},
		{"TABLE", FormatTable, false},
		{"", FormatTable, false},
		{"yaml", FormatYAML, false},
		{"json", FormatJSON, false},
		{" json ", FormatJSON, false},
		{"csv", "", true},
	}

	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Errorf("ParseFormat(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
	}
}

func TestCountBar(t *testing.T) {
	if got := CountBar(0, 5, 12); got != "Showing 1–5 of 12 reports" {
		t.Errorf("count bar = %q", got)
	}
	if got := CountBar(5, 7, 7); got != "Showing 6–7 of 7 reports" {
		t.Errorf("count bar = %q", got)
	}
	if got := CountBar(0, 0, 0); got != MsgNoReports {
		t.Errorf("empty count bar = %q", got)
	}
}

func TestWriteFeed_Table(t *testing.T) {
	var buf bytes.Buffer
	err := WriteFeed(&buf, FeedPage{
		Reports:    sampleViews(),
		Page:       1,
		TotalPages: 1,
		Total:      2,
		Start:      0,
		End:        2,
		Query:      "neet",
		TopCenters: []feed.CenterCount{{Center: "City Center", Count: 3}, {Center: "Town Hall", Count: 1}},
	}, FormatTable)
	if err != nil {
		t.Fatalf("write feed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Showing 1–2 of 2 reports",
		`Search: "neet"`,
		"NEET — City Center",
		"status: verified",
		"status: pending",
		"image: https://x/uploads/p.jpg",
		"Page 1 of 1",
		"Reports per center:",
		"City Center",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteFeed_EmptyShowsNoReports(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFeed(&buf, FeedPage{Page: 1, TotalPages: 1}, FormatTable); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	if !strings.Contains(buf.String(), MsgNoReports) {
		t.Errorf("empty feed output = %q", buf.String())
	}
}

func TestWriteFeed_JSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	page := FeedPage{Reports: sampleViews(), Page: 2, TotalPages: 3, Total: 11, Start: 5, End: 7}
	if err := WriteFeed(&buf, page, FormatJSON); err != nil {
		t.Fatalf("write feed: %v", err)
	}

	var decoded FeedPage
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Page != 2 || decoded.Total != 11 || len(decoded.Reports) != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestWriteFeed_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFeed(&buf, FeedPage{Reports: sampleViews(), Page: 1, TotalPages: 1, Total: 2}, FormatYAML); err != nil {
		t.Fatalf("write feed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "reports:") || !strings.Contains(out, "totalPages: 1") {
		t.Errorf("yaml output:\n%s", out)
	}
}

func TestWriteReports_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReports(&buf, sampleViews(), FormatTable); err != nil {
		t.Fatalf("write reports: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "ID") || !strings.Contains(out, "a1") || !strings.Contains(out, "verified") {
		t.Errorf("listing output:\n%s", out)
	}
}

func TestWriteReports_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteReports(&buf, nil, FormatTable); err != nil {
		t.Fatalf("write reports: %v", err)
	}
	if !strings.Contains(buf.String(), MsgNoReports) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestWriteStats(t *testing.T) {
	var buf bytes.Buffer
	err := WriteStats(&buf, Stats{
		Total:      10,
		Verified:   7,
		Pending:    3,
		TopCenters: []feed.CenterCount{{Center: "A", Count: 4}},
	}, FormatTable)
	if err != nil {
		t.Fatalf("write stats: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Total reports:", "10", "Verified:", "7", "Pending:", "3", "A"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteChart_BarsScaleToLargest(t *testing.T) {
	var buf bytes.Buffer
	WriteChart(&buf, []feed.CenterCount{
		{Center: "A", Count: 3},
		{Center: "B", Count: 1},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}

	aBars := strings.Count(lines[0], "#")
	bBars := strings.Count(lines[1], "#")
	if aBars != chartWidth {
		t.Errorf("largest bucket has %d bars, want %d", aBars, chartWidth)
	}
	if bBars >= aBars || bBars < 1 {
		t.Errorf("smaller bucket has %d bars (largest %d)", bBars, aBars)
	}
}
