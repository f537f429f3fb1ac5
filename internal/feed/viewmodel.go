package feed

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// MediaKind classifies how a report's media attachment should be rendered.
type MediaKind string

const (
	// MediaNone means the report has no attachment.
	MediaNone MediaKind = "none"

	// MediaImage renders inline as an image.
	MediaImage MediaKind = "image"

	// MediaVideo renders as a playable video.
	MediaVideo MediaKind = "video"

	// MediaLink is any other attachment, rendered as a plain link.
	MediaLink MediaKind = "link"
)

// MediaRules holds the extension allow-lists used to classify attachments.
// Extensions are matched without the dot, case-insensitively.
type MediaRules struct {
	ImageExts []string
	VideoExts []string
}

// DefaultMediaRules returns the stock allow-lists.
func DefaultMediaRules() MediaRules {
	return MediaRules{
		ImageExts: []string{"jpg", "jpeg", "png"},
		VideoExts: []string{"mp4", "mov", "avi"},
	}
}

// Kind classifies a media filename by its extension.
func (m MediaRules) Kind(filename string) MediaKind {
	if filename == "" {
		return MediaNone
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, e := range m.ImageExts {
		if ext == e {
			return MediaImage
		}
	}
	for _, e := range m.VideoExts {
		if ext == e {
			return MediaVideo
		}
	}
	return MediaLink
}

// MediaView describes a resolved attachment.
type MediaView struct {
	Kind     MediaKind `json:"kind" yaml:"kind"`
	Filename string    `json:"filename,omitempty" yaml:"filename,omitempty"`
	URL      string    `json:"url,omitempty" yaml:"url,omitempty"`
}

// ActionKind identifies an action the view layer may offer for a report.
// The projection only emits the intent; performing it is the caller's job.
type ActionKind string

const (
	// ActionVerify marks the report verified via the API.
	ActionVerify ActionKind = "verify"

	// ActionDelete removes the report via the API.
	ActionDelete ActionKind = "delete"
)

// Action is an intent reference the view layer can surface as a button.
type Action struct {
	Kind     ActionKind `json:"kind" yaml:"kind"`
	ReportID string     `json:"reportId" yaml:"reportId"`
}

// ReportView is the display record for one report: formatted title,
// relative time, resolved media, and status. It is a pure projection;
// nothing here mutates the report or the view state.
type ReportView struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
	TimeAgo     string    `json:"timeAgo" yaml:"timeAgo"`
	Media       MediaView `json:"media" yaml:"media"`
	Verified    bool      `json:"verified" yaml:"verified"`
	Mine        bool      `json:"mine,omitempty" yaml:"mine,omitempty"`
	Actions     []Action  `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// ProjectOptions configures the view-model projection.
type ProjectOptions struct {
	// Now anchors relative-time formatting. Zero means time.Now().
	Now time.Time

	// ViewerIP marks reports submitted from this address as Mine.
	ViewerIP string

	// Media classifies attachments. The zero value classifies
	// everything non-empty as a link.
	Media MediaRules

	// MediaURL resolves an attachment filename to a fetchable URL.
	// Nil leaves URLs empty.
	MediaURL func(filename string) string

	// AdminActions emits verify (for unverified reports) and delete
	// action references, as the admin console offers.
	AdminActions bool
}

// Project maps a page of reports to display records.
func Project(reports []Report, opts ProjectOptions) []ReportView {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	views := make([]ReportView, 0, len(reports))
	for _, r := range reports {
		v := ReportView{
			ID:          r.ID,
			Title:       fmt.Sprintf("%s — %s", r.ExamName, r.CenterName),
			Description: r.Description,
			Timestamp:   r.Timestamp,
			TimeAgo:     TimeAgo(r.Timestamp, now),
			Verified:    r.IsVerified,
			Mine:        opts.ViewerIP != "" && r.IP == opts.ViewerIP,
		}

		if r.Media != "" {
			v.Media = MediaView{
				Kind:     opts.Media.Kind(r.Media),
				Filename: r.Media,
			}
			if opts.MediaURL != nil {
				v.Media.URL = opts.MediaURL(r.Media)
			}
		} else {
			v.Media = MediaView{Kind: MediaNone}
		}

		if opts.AdminActions {
			if !r.IsVerified {
				v.Actions = append(v.Actions, Action{Kind: ActionVerify, ReportID: r.ID})
			}
			v.Actions = append(v.Actions, Action{Kind: ActionDelete, ReportID: r.ID})
		}

		views = append(views, v)
	}
	return views
}

// timeUnit is one rung of the relative-time ladder.
type timeUnit struct {
	label   string
	seconds int64
}

// timeUnits is ordered largest first. A month is a fixed 30 days, matching
// the feed's original display.
var timeUnits = []timeUnit{
	{"year", 31536000},
	{"month", 2592000},
	{"week", 604800},
	{"day", 86400},
	{"hour", 3600},
	{"minute", 60},
	{"second", 1},
}

// TimeAgo formats the delta between ts and now using the largest
// applicable unit, floor-divided and pluralized. Deltas under one second
// (including future timestamps) format as "just now".
func TimeAgo(ts, now time.Time) string {
	seconds := int64(now.Sub(ts) / time.Second)
	for _, u := range timeUnits {
		count := seconds / u.seconds
		if count >= 1 {
			if count > 1 {
				return fmt.Sprintf("%d %ss ago", count, u.label)
			}
			return fmt.Sprintf("1 %s ago", u.label)
		}
	}
	return "just now"
}
