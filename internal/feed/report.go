// Package feed implements the report feed core: the report model, the
// filter/search engine, pagination, per-center aggregation, and the
// view-model projection consumed by the presentation layer.
//
// Everything in this package is pure computation over in-memory slices.
// Network I/O lives in internal/api; rendering lives in internal/output.
package feed

import (
	"encoding/json"
	"fmt"
	"time"
)

// Report is a single submitted incident record as served by the report API.
// Reports are read-only from the client's perspective: verification and
// deletion happen server-side and are reflected by a full reload.
type Report struct {
	// ID is the opaque server-assigned identifier ("_id" on the wire).
	ID string `json:"_id"`

	// ExamName is a short category label, e.g. "NEET", "JEE", "CUET".
	ExamName string `json:"examName"`

	// CenterName identifies the exam center/venue, free text.
	CenterName string `json:"centerName"`

	// Description is the free-text body of the report.
	Description string `json:"description"`

	// Media is an optional uploaded filename. The rendering kind
	// (image/video/link) is inferred from its extension.
	Media string `json:"media,omitempty"`

	// Timestamp is when the report was created.
	Timestamp time.Time `json:"timestamp"`

	// IsVerified gates public-feed visibility.
	IsVerified bool `json:"isVerified"`

	// IP is the submitter's address, used only for a "your submission"
	// hint in the feed.
	IP string `json:"ip,omitempty"`
}

// reportWire mirrors Report for decoding. The timestamp field is kept raw
// because the API has served both RFC 3339 strings and epoch milliseconds.
type reportWire struct {
	ID          string          `json:"_id"`
	AltID       string          `json:"id"`
	ExamName    string          `json:"examName"`
	CenterName  string          `json:"centerName"`
	Description string          `json:"description"`
	Media       string          `json:"media"`
	Timestamp   json.RawMessage `json:"timestamp"`
	IsVerified  bool            `json:"isVerified"`
	IP          string          `json:"ip"`
}

// UnmarshalJSON decodes a report, accepting "_id" or "id" for the
// identifier and either an RFC 3339 string or epoch milliseconds for the
// timestamp.
func (r *Report) UnmarshalJSON(data []byte) error {
	var w reportWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	id := w.ID
	if id == "" {
		id = w.AltID
	}

	ts, err := parseTimestamp(w.Timestamp)
	if err != nil {
		return fmt.Errorf("report %s: %w", id, err)
	}

	*r = Report{
		ID:          id,
		ExamName:    w.ExamName,
		CenterName:  w.CenterName,
		Description: w.Description,
		Media:       w.Media,
		Timestamp:   ts,
		IsVerified:  w.IsVerified,
		IP:          w.IP,
	}
	return nil
}

// parseTimestamp accepts an RFC 3339 string or a number of epoch
// milliseconds. A missing timestamp decodes to the zero time.
func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
		}
		return t, nil
	}

	var millis int64
	if err := json.Unmarshal(raw, &millis); err == nil {
		return time.UnixMilli(millis).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unsupported timestamp value: %s", raw)
}
