// Package client talks to the daily log API. A *Client provides the log store, the
// project catalog and the attachment store an edit session needs.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"dailylog/models"

	"golang.org/x/oauth2"
)

// ErrNotFound matches an APIError with status 404.
var ErrNotFound = errors.New("client: not found")

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Client is an authenticated daily log API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

type Option func(*Client)

// WithToken authenticates every request with a team leader's API key.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.httpClient)
		authed := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token}))
		authed.Timeout = c.httpClient.Timeout
		c.httpClient = authed
	}
	return c
}

// FetchLog returns the persisted log with its attachment references.
func (c *Client) FetchLog(ctx context.Context, id string) (*models.DailyLog, error) {
	var entry models.DailyLog
	if err := c.do(ctx, http.MethodGet, c.endpoint(nil, "logs", id), nil, "", &entry); err != nil {
		return nil, fmt.Errorf("fetching log %s: %w", id, err)
	}
	return &entry, nil
}

// UpdateLog replaces the editable fields of a log.
func (c *Client) UpdateLog(ctx context.Context, id string, req models.UpdateLogRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding update: %w", err)
	}
	if err := c.do(ctx, http.MethodPut, c.endpoint(nil, "logs", id), bytes.NewReader(body), "application/json", nil); err != nil {
		return fmt.Errorf("updating log %s: %w", id, err)
	}
	return nil
}

// ListActiveProjects returns the projects a log can be moved to.
func (c *Client) ListActiveProjects(ctx context.Context) ([]models.Project, error) {
	var resp models.ProjectsResponse
	query := url.Values{"active": {"true"}}
	if err := c.do(ctx, http.MethodGet, c.endpoint(query, "projects"), nil, "", &resp); err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return resp.Projects, nil
}

// UploadPhotos sends all files in one multipart/form-data request, one "photos" part each.
func (c *Client) UploadPhotos(ctx context.Context, logID string, files []models.PhotoFile) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photos"; filename=%q`, f.Name))
		contentType := f.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.Set("Content-Type", contentType)

		part, err := mw.CreatePart(h)
		if err != nil {
			return fmt.Errorf("building upload: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("building upload: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("building upload: %w", err)
	}

	if err := c.do(ctx, http.MethodPost, c.endpoint(nil, "logs", logID, "photos"), &buf, mw.FormDataContentType(), nil); err != nil {
		return fmt.Errorf("uploading %d photos to log %s: %w", len(files), logID, err)
	}
	return nil
}

func (c *Client) endpoint(query url.Values, segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	endpoint := c.baseURL + "/" + strings.Join(escaped, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return endpoint
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	data, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(status int, data []byte) *APIError {
	var body struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(data))
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		msg = body.Error
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Message: msg}
}
