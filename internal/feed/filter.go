package feed

import (
	"sort"
	"strings"
	"time"
)

// MatchField names a report field the free-text query is matched against.
type MatchField string

const (
	// MatchExamName matches the query against Report.ExamName.
	MatchExamName MatchField = "examName"

	// MatchCenterName matches the query against Report.CenterName.
	MatchCenterName MatchField = "centerName"

	// MatchDescription matches the query against Report.Description.
	MatchDescription MatchField = "description"
)

// ValidMatchFields lists the recognized match field names.
var ValidMatchFields = []MatchField{MatchExamName, MatchCenterName, MatchDescription}

// IsValidMatchField reports whether name is a recognized match field.
func IsValidMatchField(name string) bool {
	for _, f := range ValidMatchFields {
		if MatchField(name) == f {
			return true
		}
	}
	return false
}

// Filter derives an ordered subset of a report set. A Filter is a pure
// value: applying the same filter to the same input always produces the
// same output, and the input slice is never modified.
type Filter struct {
	// Query is a free-text filter, matched case-insensitively as a
	// substring against every field in MatchFields. Leading and trailing
	// whitespace is ignored; an empty query matches everything.
	Query string

	// Tag restricts results to reports whose ExamName equals the tag.
	// Empty means no restriction.
	Tag string

	// TagExactCase makes the tag comparison case-sensitive. The default
	// mirrors the search box, which is case-insensitive.
	TagExactCase bool

	// MatchFields lists the fields Query is tested against. Nil falls
	// back to exam name and center name, the public feed's behavior.
	MatchFields []MatchField

	// VerifiedOnly restricts results to verified reports before any
	// text or tag matching.
	VerifiedOnly bool

	// Window restricts results to reports no older than Now-Window.
	// The lower bound is inclusive. Zero disables the window.
	Window time.Duration

	// Now anchors the window. The zero value means time.Now().
	Now time.Time

	// Ascending orders results oldest-first instead of the default
	// newest-first.
	Ascending bool
}

// DefaultMatchFields is the field list used when Filter.MatchFields is nil.
var DefaultMatchFields = []MatchField{MatchExamName, MatchCenterName}

// Apply returns the ordered subset of reports matching every active
// predicate. Ordering is by timestamp (newest first unless Ascending),
// stable for equal timestamps so ties keep their original insertion order.
func (f Filter) Apply(reports []Report) []Report {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}

	fields := f.MatchFields
	if fields == nil {
		fields = DefaultMatchFields
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]Report, 0, len(reports))
	for _, r := range reports {
		if f.VerifiedOnly && !r.IsVerified {
			continue
		}
		if f.Window > 0 {
			cutoff := now.Add(-f.Window)
			if r.Timestamp.Before(cutoff) {
				continue
			}
		}
		if f.Tag != "" && !f.tagMatches(r) {
			continue
		}
		if query != "" && !matchesQuery(r, query, fields) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if f.Ascending {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	return out
}

func (f Filter) tagMatches(r Report) bool {
	if f.TagExactCase {
		return r.ExamName == f.Tag
	}
	return strings.EqualFold(r.ExamName, f.Tag)
}

func matchesQuery(r Report, query string, fields []MatchField) bool {
	for _, field := range fields {
		var value string
		switch field {
		case MatchExamName:
			value = r.ExamName
		case MatchCenterName:
			value = r.CenterName
		case MatchDescription:
			value = r.Description
		default:
			continue
		}
		if strings.Contains(strings.ToLower(value), query) {
			return true
		}
	}
	return false
}
