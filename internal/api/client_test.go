package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/eduguard/eg/internal/feed"
)

const listPayload = `[
	{"_id": "a1", "examName": "NEET", "centerName": "City Center",
	 "description": "d1", "timestamp": "2025-06-14T09:30:00Z", "isVerified": true},
	{"_id": "b2", "examName": "JEE", "centerName": "Town Hall",
	 "description": "d2", "timestamp": 1749800000000, "isVerified": false}
]`

func TestClientList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" || r.Method != http.MethodGet {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		io.WriteString(w, listPayload)
	}))
	defer srv.Close()

	reports, err := NewClient(srv.URL).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(reports))
	}
	if reports[0].ID != "a1" || !reports[0].IsVerified {
		t.Errorf("first report = %+v", reports[0])
	}
	want := time.Date(2025, 6, 14, 9, 30, 0, 0, time.UTC)
	if !reports[0].Timestamp.Equal(want) {
		t.Errorf("timestamp = %v, want %v", reports[0].Timestamp, want)
	}
	if reports[1].Timestamp.IsZero() {
		t.Error("millisecond timestamp not decoded")
	}
}

func TestClientListReportsPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		io.WriteString(w, "[]")
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).ListReports(context.Background()); err != nil {
		t.Fatalf("list reports: %v", err)
	}
	if gotPath != "/api/reports" {
		t.Errorf("path = %q, want /api/reports", gotPath)
	}
}

func TestClientList_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).List(context.Background())
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", se.StatusCode)
	}
}

func TestClientList_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "{not json")
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).List(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestClientList_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately, so the address refuses connections

	if _, err := NewClient(srv.URL).List(context.Background()); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestClientVerify(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).Verify(context.Background(), "abc123"); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/api/reports/verify/abc123" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
}

func TestClientDelete(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).Delete(context.Background(), "abc123"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/reports/abc123" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
}

func TestClientDelete_MissingIDIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).Delete(context.Background(), "gone"); err != nil {
		t.Errorf("repeated delete should not fail, got %v", err)
	}
}

func TestClientDelete_OtherErrorsSurface(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Delete(context.Background(), "x")
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 StatusError, got %v", err)
	}
}

// A failed mutation must leave the local store untouched: the next render
// shows exactly what it showed before the attempt.
func TestDeleteFailureLeavesStoreUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			io.WriteString(w, listPayload)
		default:
			http.Error(w, "down", http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	store := feed.NewStore(feed.Filter{}, 5)

	gen := store.Begin()
	reports, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	store.Complete(gen, reports)

	before := store.Snapshot()

	if err := client.Delete(context.Background(), "a1"); err == nil {
		t.Fatal("expected delete failure")
	}

	after := store.Snapshot()
	if len(after.PageReports) != len(before.PageReports) {
		t.Fatalf("render changed after failed delete: %d vs %d reports",
			len(after.PageReports), len(before.PageReports))
	}
	for i := range after.PageReports {
		if after.PageReports[i].ID != before.PageReports[i].ID {
			t.Errorf("report %d changed: %s vs %s",
				i, after.PageReports[i].ID, before.PageReports[i].ID)
		}
	}
}

func TestClientSubmit(t *testing.T) {
	var gotExam, gotCenter, gotDesc, gotFile, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/reports" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		gotExam = r.FormValue("examName")
		gotCenter = r.FormValue("centerName")
		gotDesc = r.FormValue("description")

		file, header, err := r.FormFile("media")
		if err == nil {
			defer file.Close()
			gotFile = header.Filename
			data, _ := io.ReadAll(file)
			gotContent = string(data)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Submit(context.Background(), Submission{
		ExamName:    "NEET",
		CenterName:  "City Center",
		Description: "phones inside the hall",
		MediaName:   "proof.jpg",
		Media:       strings.NewReader("fake-jpeg-bytes"),
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	if gotExam != "NEET" || gotCenter != "City Center" || gotDesc != "phones inside the hall" {
		t.Errorf("form fields = %q %q %q", gotExam, gotCenter, gotDesc)
	}
	if gotFile != "proof.jpg" || gotContent != "fake-jpeg-bytes" {
		t.Errorf("media = %q content %q", gotFile, gotContent)
	}
}

func TestClientSubmit_NoMedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if _, _, err := r.FormFile("media"); err == nil {
			t.Error("unexpected media part")
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Submit(context.Background(), Submission{
		ExamName:    "JEE",
		CenterName:  "Town Hall",
		Description: "answer sharing",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
}

func TestClientMediaURL(t *testing.T) {
	c := NewClient("https://reports.example.test/")

	got := c.MediaURL("proof.jpg")
	if got != "https://reports.example.test/uploads/proof.jpg" {
		t.Errorf("media url = %q", got)
	}
}
