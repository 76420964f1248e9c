// Package gigfeed pulls upcoming confirmed events from the FileMaker gig
// database's availability endpoint. The endpoint answers one day per query,
// so lookahead windows are fetched in weekly chunks and merged.
package gigfeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Event is one upcoming gig as reported by the feed.
type Event struct {
	EventDate  string `json:"event_date"`
	VenueName  string `json:"venue_name"`
	ClientName string `json:"client_name"`
	AssignedDJ string `json:"assigned_dj"`
}

// Client queries the availability endpoint. Queries are rate limited to
// stay polite with the aging FileMaker host.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// New returns a Client for the given FileMaker base URL.
func New(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
		logger:     logger,
	}
}

// WithHTTPClient swaps the underlying HTTP client; tests use this to point
// at an httptest server.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

// Upcoming fetches events in [today, today+daysAhead], deduplicated by
// (event date, venue, client) and sorted by date. Individual chunk failures
// are logged and skipped so one bad day cannot blank the whole strip.
func (c *Client) Upcoming(ctx context.Context, today time.Time, daysAhead int) ([]Event, error) {
	if c.baseURL == "" {
		return nil, nil
	}

	var fetched []Event
	for offset := 0; offset < daysAhead; offset += 7 {
		day := today.AddDate(0, 0, offset)
		chunk, err := c.fetchDay(ctx, day)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn().Err(err).Str("date", dayParam(day)).Msg("gig feed chunk failed")
			continue
		}
		fetched = append(fetched, chunk...)
	}

	type key struct{ date, venue, client string }
	seen := make(map[key]bool)
	end := today.AddDate(0, 0, daysAhead)

	var events []Event
	for _, ev := range fetched {
		k := key{ev.EventDate, ev.VenueName, ev.ClientName}
		if seen[k] {
			continue
		}
		seen[k] = true

		date, err := time.Parse("2006-01-02", ev.EventDate)
		if err != nil {
			continue
		}
		if dateOnly(date).Before(dateOnly(today)) || dateOnly(date).After(dateOnly(end)) {
			continue
		}
		events = append(events, ev)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].EventDate < events[j].EventDate
	})
	return events, nil
}

func (c *Client) fetchDay(ctx context.Context, day time.Time) ([]Event, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/availabilityMDjson.php?date=%s", c.baseURL, url.QueryEscape(dayParam(day)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch day: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %d", resp.StatusCode)
	}

	// The endpoint replies with a JSON list on success but has been seen
	// returning bare objects on errors; anything that is not a list is
	// treated as an empty day.
	var events []Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, nil
	}
	return events, nil
}

// dayParam formats a query date the way the endpoint expects: no leading
// zeros, "2/3/2026".
func dayParam(day time.Time) string {
	return fmt.Sprintf("%d/%d/%d", day.Month(), day.Day(), day.Year())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
