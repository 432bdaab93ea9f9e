// Package remote implements the authenticated persistence variant on top of
// the notes HTTP API.
//
// Every request to /notes carries the bearer token. Responses are the
// server's canonical representation of the note; failures are reported as
// errors matching core.ErrAuth, core.ErrNotFound or core.ErrNetwork. The
// client never retries.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/notekeep/pkg/core"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:3000/api"

// Config configures a Client.
type Config struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client provides typed access to the notes API.
// It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient returns a client for config.BaseURL. A nil HTTPClient gets a
// 30 second timeout.
func NewClient(config Config) *Client {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		token:      config.Token,
		httpClient: httpClient,
		logger:     config.Logger,
	}
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HasToken reports whether authenticated calls can be issued.
func (c *Client) HasToken() bool {
	return c.token != ""
}

type createRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	IsArchived bool     `json:"isArchived"`
}

type updateRequest struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags"`
	IsArchived bool     `json:"isArchived"`
}

type deleteRequest struct {
	ID string `json:"id"`
}

type deleteResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// ListNotes returns the user's whole collection.
func (c *Client) ListNotes(ctx context.Context) ([]core.Note, error) {
	var notes []core.Note
	if err := c.call(ctx, http.MethodGet, "/notes", true, nil, &notes); err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []core.Note{}
	}
	return notes, nil
}

// CreateNote posts a new note and returns the stored version.
func (c *Client) CreateNote(ctx context.Context, n core.Note) (core.Note, error) {
	var created core.Note
	body := createRequest{Title: n.Title, Content: n.Content, Tags: n.Tags, IsArchived: n.IsArchived}
	if err := c.call(ctx, http.MethodPost, "/notes", true, body, &created); err != nil {
		return core.Note{}, err
	}
	return created, nil
}

// UpdateNote replaces the note addressed by n.Key().
func (c *Client) UpdateNote(ctx context.Context, n core.Note) (core.Note, error) {
	var updated core.Note
	body := updateRequest{ID: n.Key(), Title: n.Title, Content: n.Content, Tags: n.Tags, IsArchived: n.IsArchived}
	if err := c.call(ctx, http.MethodPut, "/notes", true, body, &updated); err != nil {
		return core.Note{}, err
	}
	return updated, nil
}

// DeleteNote removes the note addressed by key.
func (c *Client) DeleteNote(ctx context.Context, key string) error {
	var resp deleteResponse
	return c.call(ctx, http.MethodDelete, "/notes", true, deleteRequest{ID: key}, &resp)
}

// GuestNotes fetches the public demo notes. No token is required.
func (c *Client) GuestNotes(ctx context.Context) ([]core.Note, error) {
	var notes []core.Note
	if err := c.call(ctx, http.MethodGet, "/guestNotes", false, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) call(ctx context.Context, method, path string, auth bool, body, target any) error {
	if auth && c.token == "" {
		return fmt.Errorf("%s %s: %w", method, path, core.ErrAuth)
	}

	resp, err := c.doRequest(ctx, method, path, auth, body)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("api request failed", "method", method, "path", path, "error", err)
		}
		return fmt.Errorf("%s %s: %w: %v", method, path, core.ErrNetwork, err)
	}
	if c.logger != nil {
		c.logger.Debug("api request", "method", method, "path", path, "status", resp.StatusCode)
	}
	return decodeResponse(resp, target)
}

// doRequest performs an HTTP request with JSON and auth headers.
func (c *Client) doRequest(ctx context.Context, method, path string, auth bool, body any) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.httpClient.Do(req)
}

// decodeResponse decodes the JSON response into target, turning error
// statuses into *APIError.
func decodeResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return newAPIError(resp)
	}

	if target != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", core.ErrNetwork, err)
		}
	}
	return nil
}
