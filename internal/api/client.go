// Package api provides the typed HTTP client for the external report
// service. The client is deliberately thin: no retries, no caching, no
// local mutation. A failed call is terminal for that attempt and callers
// reload to converge with server state.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eduguard/eg/internal/feed"
)

// DefaultTimeout bounds a single request when the caller's context has no
// deadline of its own.
const DefaultTimeout = 15 * time.Second

// StatusError is a non-2xx response from the report service.
type StatusError struct {
	StatusCode int
	Method     string
	Path       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: server returned %d", e.Method, e.Path, e.StatusCode)
}

// NotFound reports whether the error is a 404 status.
func (e *StatusError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Client talks to the report service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient substitutes the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        logrus.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured service base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// MediaURL resolves an uploaded filename to its static resource URL.
func (c *Client) MediaURL(filename string) string {
	return c.baseURL + "/uploads/" + url.PathEscape(filename)
}

// List fetches the full report set from the service root, as the public
// feed does.
func (c *Client) List(ctx context.Context) ([]feed.Report, error) {
	return c.getReports(ctx, "/")
}

// ListReports fetches the report set from the /api/reports listing.
func (c *Client) ListReports(ctx context.Context) ([]feed.Report, error) {
	return c.getReports(ctx, "/api/reports")
}

func (c *Client) getReports(ctx context.Context, p string) ([]feed.Report, error) {
	body, err := c.do(ctx, http.MethodGet, p, "", nil)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var reports []feed.Report
	if err := json.NewDecoder(body).Decode(&reports); err != nil {
		return nil, fmt.Errorf("decode reports: %w", err)
	}

	c.log.WithFields(logrus.Fields{"path": p, "count": len(reports)}).Debug("fetched reports")
	return reports, nil
}

// Verify marks one report verified. The request carries no body and the
// operation is idempotent server-side.
func (c *Client) Verify(ctx context.Context, id string) error {
	body, err := c.do(ctx, http.MethodPut, path.Join("/api/reports/verify", url.PathEscape(id)), "", nil)
	if err != nil {
		return err
	}
	body.Close()

	c.log.WithField("id", id).Debug("report verified")
	return nil
}

// Delete removes one report. Deleting an id that no longer exists is not
// an error: repeated deletes converge on the same state.
func (c *Client) Delete(ctx context.Context, id string) error {
	body, err := c.do(ctx, http.MethodDelete, path.Join("/api/reports", url.PathEscape(id)), "", nil)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.NotFound() {
			c.log.WithField("id", id).Debug("report already gone")
			return nil
		}
		return err
	}
	body.Close()

	c.log.WithField("id", id).Debug("report deleted")
	return nil
}

// Submission is a new report to create.
type Submission struct {
	ExamName    string
	CenterName  string
	Description string

	// MediaName and Media carry an optional attachment.
	MediaName string
	Media     io.Reader
}

// Submit creates a report via the multipart form endpoint.
func (c *Client) Submit(ctx context.Context, sub Submission) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"examName":    sub.ExamName,
		"centerName":  sub.CenterName,
		"description": sub.Description,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return fmt.Errorf("write form field %s: %w", name, err)
		}
	}

	if sub.Media != nil && sub.MediaName != "" {
		part, err := w.CreateFormFile("media", sub.MediaName)
		if err != nil {
			return fmt.Errorf("create media part: %w", err)
		}
		if _, err := io.Copy(part, sub.Media); err != nil {
			return fmt.Errorf("copy media: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/api/reports", w.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	body.Close()

	c.log.WithFields(logrus.Fields{
		"exam":   sub.ExamName,
		"center": sub.CenterName,
	}).Debug("report submitted")
	return nil
}

// do issues one request and returns the response body on 2xx. Non-2xx
// becomes a *StatusError; transport failures are wrapped as-is.
func (c *Client) do(ctx context.Context, method, p, contentType string, reqBody io.Reader) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+p, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, p, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, Method: method, Path: p}
	}

	return resp.Body, nil
}
