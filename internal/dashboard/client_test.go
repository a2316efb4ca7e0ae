package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/averyn/cursorboard/internal/models"
)

// MockRoundTripper implements http.RoundTripper for testing
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

func jsonResponse(status int, body any) *http.Response {
	raw, _ := json.Marshal(body)
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewReader(raw)),
	}
}

func newTestClient(rt http.RoundTripper) *Client {
	c := New("https://example.test/api/dashboard", "session-token")
	c.httpClient = &http.Client{Transport: rt}
	return c
}

func TestFetchAnalytics(t *testing.T) {
	var gotBody analyticsRequest

	c := newTestClient(&MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			if !strings.HasSuffix(req.URL.Path, "/get-user-analytics") {
				t.Errorf("unexpected path: %s", req.URL.Path)
			}

			raw, _ := io.ReadAll(req.Body)
			if err := json.Unmarshal(raw, &gotBody); err != nil {
				t.Fatalf("failed to decode request body: %v", err)
			}

			cookie, err := req.Cookie("WorkosCursorSessionToken")
			if err != nil || cookie.Value != "session-token" {
				t.Error("expected session cookie on request")
			}

			return jsonResponse(http.StatusOK, models.AnalyticsData{
				DailyMetrics: []models.DailyMetric{
					{Date: "1704067200000", AgentRequests: 4},
				},
				TotalMembersInTeam: 1,
			}), nil
		},
	})

	data, err := c.FetchAnalytics(context.Background(), "1704067200000", "1735689599999")
	if err != nil {
		t.Fatalf("FetchAnalytics failed: %v", err)
	}

	if gotBody.TeamID != 0 || gotBody.UserID != 0 {
		t.Errorf("expected teamId=0 userId=0, got %d/%d", gotBody.TeamID, gotBody.UserID)
	}
	if gotBody.StartDate != "1704067200000" {
		t.Errorf("unexpected startDate: %s", gotBody.StartDate)
	}

	if len(data.DailyMetrics) != 1 || data.DailyMetrics[0].AgentRequests != 4 {
		t.Errorf("unexpected analytics data: %+v", data)
	}
}

func TestFetchAnalyticsHTTPError(t *testing.T) {
	c := newTestClient(&MockRoundTripper{
		RoundTripFunc: func(_ *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusUnauthorized, map[string]string{"error": "no session"}), nil
		},
	})

	_, err := c.FetchAnalytics(context.Background(), "0", "1")
	if err == nil {
		t.Fatal("expected error on 401")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status code in error, got: %v", err)
	}
}

func TestFetchAnalyticsNetworkError(t *testing.T) {
	c := newTestClient(&MockRoundTripper{
		RoundTripFunc: func(_ *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	})

	_, err := c.FetchAnalytics(context.Background(), "0", "1")
	if err == nil {
		t.Fatal("expected error on network failure")
	}
}

func TestFetchAnalyticsMalformedResponse(t *testing.T) {
	c := newTestClient(&MockRoundTripper{
		RoundTripFunc: func(_ *http.Request) (*http.Response, error) {
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader("{broken")),
			}, nil
		},
	})

	_, err := c.FetchAnalytics(context.Background(), "0", "1")
	if err == nil {
		t.Fatal("expected error on malformed JSON")
	}
}
