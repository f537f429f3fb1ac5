package feed

import (
	"encoding/json"
	"testing"
	"time"
)

func TestReportUnmarshal_RFC3339Timestamp(t *testing.T) {
	data := []byte(`{
		"_id": "abc123",
		"examName": "NEET",
		"centerName": "City Center",
		"description": "proxy candidates",
		"media": "proof.jpg",
		"timestamp": "2025-06-14T09:30:00Z",
		"isVerified": true,
		"ip": "10.0.0.1"
	}`)

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if r.ID != "abc123" || r.ExamName != "NEET" || r.CenterName != "City Center" {
		t.Errorf("fields = %+v", r)
	}
	want := time.Date(2025, 6, 14, 9, 30, 0, 0, time.UTC)
	if !r.Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", r.Timestamp, want)
	}
	if !r.IsVerified || r.IP != "10.0.0.1" || r.Media != "proof.jpg" {
		t.Errorf("fields = %+v", r)
	}
}

func TestReportUnmarshal_EpochMillis(t *testing.T) {
	data := []byte(`{"_id": "x", "timestamp": 1749898800000}`)

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := time.UnixMilli(1749898800000).UTC()
	if !r.Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", r.Timestamp, want)
	}
}

func TestReportUnmarshal_AltIDField(t *testing.T) {
	var r Report
	if err := json.Unmarshal([]byte(`{"id": "plain-id"}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.ID != "plain-id" {
		t.Errorf("id = %q, want plain-id", r.ID)
	}

	// "_id" wins when both are present.
	if err := json.Unmarshal([]byte(`{"_id": "mongo-id", "id": "plain-id"}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.ID != "mongo-id" {
		t.Errorf("id = %q, want mongo-id", r.ID)
	}
}

func TestReportUnmarshal_MissingTimestamp(t *testing.T) {
	var r Report
	if err := json.Unmarshal([]byte(`{"_id": "x"}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !r.Timestamp.IsZero() {
		t.Errorf("timestamp = %v, want zero", r.Timestamp)
	}
}

func TestReportUnmarshal_BadTimestamp(t *testing.T) {
	var r Report
	err := json.Unmarshal([]byte(`{"_id": "x", "timestamp": "yesterday"}`), &r)
	if err == nil {
		t.Fatal("expected error for malformed timestamp")
	}
}
