// Package dashboard is the HTTP client for the Cursor dashboard API:
// the single-shot analytics aggregate and the paginated usage-event feed.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/averyn/cursorboard/internal/logger"
	"github.com/averyn/cursorboard/internal/models"
)

const (
	// DefaultBaseURL is the dashboard API root.
	DefaultBaseURL = "https://cursor.com/api/dashboard"

	// DefaultPageSize is the fixed page size for the usage-event feed.
	DefaultPageSize = 600

	// sessionCookie carries the ambient browser session credential.
	sessionCookie = "WorkosCursorSessionToken"
)

// Client calls the two dashboard endpoints. Requests ride on the
// session token; there is no retry at this layer.
type Client struct {
	mu           sync.RWMutex
	baseURL      string
	sessionToken string
	pageSize     int
	httpClient   *http.Client
}

// New creates a client for the given API root and session token.
func New(baseURL, sessionToken string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:      baseURL,
		sessionToken: sessionToken,
		pageSize:     DefaultPageSize,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// SetPageSize overrides the usage-event page size.
func (c *Client) SetPageSize(size int) {
	if size > 0 {
		c.pageSize = size
	}
}

// SetSessionToken swaps the session token, e.g. after the token file
// changed on disk. Safe to call while fetches are in flight.
func (c *Client) SetSessionToken(token string) {
	c.mu.Lock()
	c.sessionToken = token
	c.mu.Unlock()
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionToken
}

// EpochString formats a time as the millisecond-epoch string the API expects.
func EpochString(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// analyticsRequest is the body of the get-user-analytics call. Team and
// user are always zero: the endpoint scopes to the session's own user.
type analyticsRequest struct {
	TeamID    int    `json:"teamId"`
	UserID    int    `json:"userId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// FetchAnalytics retrieves the daily-metric aggregate for a date range.
// One round trip, no retry; a non-2xx status yields an error carrying
// the status code.
func (c *Client) FetchAnalytics(ctx context.Context, startDate, endDate string) (*models.AnalyticsData, error) {
	body := analyticsRequest{
		StartDate: startDate,
		EndDate:   endDate,
	}

	var data models.AnalyticsData
	if err := c.post(ctx, "/get-user-analytics", body, &data); err != nil {
		return nil, err
	}

	return &data, nil
}

// post issues one JSON POST and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store, must-revalidate")
	req.Header.Set("Pragma", "no-cache")
	if token := c.token(); token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookie, Value: token})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("request to %s failed (status %d)", path, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
