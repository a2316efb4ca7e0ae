package dashboard

import (
	"context"

	"github.com/averyn/cursorboard/internal/logger"
	"github.com/averyn/cursorboard/internal/models"
)

// Progress reports how far a sweep has gotten: events fetched so far
// and the total declared by the first page (0 while unknown).
type Progress struct {
	Fetched int
	Total   int
}

// ProgressFunc is invoked after every page with the accumulated events
// so far. The slice is shared with the sweep; callers must not mutate it.
type ProgressFunc func(events []models.UsageEvent, progress Progress)

// eventsRequest is the body of the get-filtered-usage-events call.
type eventsRequest struct {
	TeamID    int    `json:"teamId"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Page      int    `json:"page"`
	PageSize  int    `json:"pageSize"`
}

// FetchAllUsageEvents drives the usage-event feed to exhaustion,
// strictly one page at a time. The total count is captured from the
// first page; the sweep stops when the fetched count reaches it, or
// when a page comes back empty (guard against a total that never
// converges). Any page failure fails the whole sweep; there is no
// partial-result return path.
func (c *Client) FetchAllUsageEvents(ctx context.Context, startDate, endDate string, onProgress ProgressFunc) ([]models.UsageEvent, error) {
	var accumulated []models.UsageEvent
	page := 1
	total := 0
	fetched := 0

	for {
		body := eventsRequest{
			StartDate: startDate,
			EndDate:   endDate,
			Page:      page,
			PageSize:  c.pageSize,
		}

		var resp models.UsageEventsPage
		if err := c.post(ctx, "/get-filtered-usage-events", body, &resp); err != nil {
			return nil, err
		}

		accumulated = append(accumulated, resp.UsageEventsDisplay...)

		if page == 1 {
			total = resp.TotalUsageEventsCount
		}
		fetched += len(resp.UsageEventsDisplay)

		if onProgress != nil {
			onProgress(accumulated, Progress{Fetched: fetched, Total: total})
		}

		page++

		if fetched >= total {
			break
		}
		if len(resp.UsageEventsDisplay) == 0 {
			// The declared total never converged; the upstream count
			// is inconsistent with the actual feed.
			logger.Warn("usage-event feed ended before declared total",
				"fetched", fetched, "total", total)
			break
		}
	}

	return accumulated, nil
}
