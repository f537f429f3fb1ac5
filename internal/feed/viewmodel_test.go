package feed

import (
	"testing"
	"time"
)

func TestTimeAgo_UnitTable(t *testing.T) {
	cases := []struct {
		delta time.Duration
		want  string
	}{
		{500 * time.Millisecond, "just now"},
		{time.Second, "1 second ago"},
		{45 * time.Second, "45 seconds ago"},
		{time.Minute, "1 minute ago"},
		{90 * time.Second, "1 minute ago"}, // floor division
		{5 * time.Minute, "5 minutes ago"},
		{time.Hour, "1 hour ago"},
		{26 * time.Hour, "1 day ago"},
		{6 * 24 * time.Hour, "6 days ago"},
		{7 * 24 * time.Hour, "1 week ago"},
		{30 * 24 * time.Hour, "1 month ago"},
		{70 * 24 * time.Hour, "2 months ago"},
		{365 * 24 * time.Hour, "1 year ago"},
		{800 * 24 * time.Hour, "2 years ago"},
	}

	for _, tc := range cases {
		got := TimeAgo(testNow.Add(-tc.delta), testNow)
		if got != tc.want {
			t.Errorf("TimeAgo(-%v) = %q, want %q", tc.delta, got, tc.want)
		}
	}
}

func TestTimeAgo_FutureTimestamp(t *testing.T) {
	if got := TimeAgo(testNow.Add(time.Hour), testNow); got != "just now" {
		t.Errorf("future timestamp = %q, want \"just now\"", got)
	}
}

func TestMediaRules_Kind(t *testing.T) {
	rules := DefaultMediaRules()

	cases := []struct {
		filename string
		want     MediaKind
	}{
		{"", MediaNone},
		{"photo.jpg", MediaImage},
		{"photo.JPEG", MediaImage},
		{"scan.png", MediaImage},
		{"clip.mp4", MediaVideo},
		{"clip.MOV", MediaVideo},
		{"clip.avi", MediaVideo},
		{"evidence.pdf", MediaLink},
		{"noextension", MediaLink},
		{"archive.tar.gz", MediaLink},
	}

	for _, tc := range cases {
		if got := rules.Kind(tc.filename); got != tc.want {
			t.Errorf("Kind(%q) = %s, want %s", tc.filename, got, tc.want)
		}
	}
}

func TestMediaRules_CustomAllowLists(t *testing.T) {
	rules := MediaRules{ImageExts: []string{"webp"}}

	if got := rules.Kind("a.webp"); got != MediaImage {
		t.Errorf("Kind(a.webp) = %s, want image", got)
	}
	if got := rules.Kind("a.jpg"); got != MediaLink {
		t.Errorf("Kind(a.jpg) with custom rules = %s, want link", got)
	}
}

func TestProject_TitleAndTimeAgo(t *testing.T) {
	reports := []Report{
		{
			ID:          "r1",
			ExamName:    "NEET",
			CenterName:  "City Center",
			Description: "desc",
			Timestamp:   testNow.Add(-2 * time.Hour),
			IsVerified:  true,
		},
	}

	views := Project(reports, ProjectOptions{Now: testNow})
	if len(views) != 1 {
		t.Fatalf("got %d views, want 1", len(views))
	}

	v := views[0]
	if v.Title != "NEET — City Center" {
		t.Errorf("title = %q", v.Title)
	}
	if v.TimeAgo != "2 hours ago" {
		t.Errorf("timeAgo = %q", v.TimeAgo)
	}
	if !v.Verified {
		t.Error("verified flag lost")
	}
	if v.Media.Kind != MediaNone {
		t.Errorf("media kind = %s, want none", v.Media.Kind)
	}
}

func TestProject_MediaResolution(t *testing.T) {
	reports := []Report{
		{ID: "r1", Media: "proof.jpg", Timestamp: testNow},
	}

	views := Project(reports, ProjectOptions{
		Now:   testNow,
		Media: DefaultMediaRules(),
		MediaURL: func(name string) string {
			return "https://example.test/uploads/" + name
		},
	})

	m := views[0].Media
	if m.Kind != MediaImage {
		t.Errorf("kind = %s, want image", m.Kind)
	}
	if m.URL != "https://example.test/uploads/proof.jpg" {
		t.Errorf("url = %q", m.URL)
	}
	if m.Filename != "proof.jpg" {
		t.Errorf("filename = %q", m.Filename)
	}
}

func TestProject_ViewerIPMarksMine(t *testing.T) {
	reports := []Report{
		{ID: "mine", IP: "10.0.0.9", Timestamp: testNow},
		{ID: "other", IP: "10.0.0.1", Timestamp: testNow},
		{ID: "noip", Timestamp: testNow},
	}

	views := Project(reports, ProjectOptions{Now: testNow, ViewerIP: "10.0.0.9"})
	if !views[0].Mine || views[1].Mine || views[2].Mine {
		t.Errorf("mine flags = %v %v %v, want true false false",
			views[0].Mine, views[1].Mine, views[2].Mine)
	}

	// No viewer IP means nothing is marked, even reports with empty IP.
	views = Project(reports, ProjectOptions{Now: testNow})
	for _, v := range views {
		if v.Mine {
			t.Errorf("report %s marked mine without a viewer IP", v.ID)
		}
	}
}

func TestProject_AdminActions(t *testing.T) {
	reports := []Report{
		{ID: "pending", Timestamp: testNow, IsVerified: false},
		{ID: "done", Timestamp: testNow, IsVerified: true},
	}

	views := Project(reports, ProjectOptions{Now: testNow, AdminActions: true})

	pending := views[0]
	if len(pending.Actions) != 2 ||
		pending.Actions[0] != (Action{Kind: ActionVerify, ReportID: "pending"}) ||
		pending.Actions[1] != (Action{Kind: ActionDelete, ReportID: "pending"}) {
		t.Errorf("pending actions = %+v", pending.Actions)
	}

	done := views[1]
	if len(done.Actions) != 1 || done.Actions[0].Kind != ActionDelete {
		t.Errorf("verified report actions = %+v", done.Actions)
	}

	// The public projection emits no actions at all.
	views = Project(reports, ProjectOptions{Now: testNow})
	for _, v := range views {
		if len(v.Actions) != 0 {
			t.Errorf("public view for %s has actions %+v", v.ID, v.Actions)
		}
	}
}
