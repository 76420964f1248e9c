// Package sheets fetches raw tabular rows from the Google Sheets values API
// using a service account. It deliberately does no interpretation beyond
// header uniquing; the domain packages own all row semantics.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2/google"
)

const (
	defaultBaseURL = "https://sheets.googleapis.com"
	readonlyScope  = "https://www.googleapis.com/auth/spreadsheets.readonly"
)

// Client reads value ranges from spreadsheets.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New returns a Client using the given HTTP client; tests pass an
// httptest-backed client and base URL.
func New(httpClient *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// NewWithServiceAccount builds a Client authenticated via a Google service
// account key (JSON), using the two-legged JWT flow.
func NewWithServiceAccount(ctx context.Context, credentialsJSON []byte) (*Client, error) {
	conf, err := google.JWTConfigFromJSON(credentialsJSON, readonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}
	httpClient := conf.Client(ctx)
	httpClient.Timeout = 30 * time.Second
	return New(httpClient, defaultBaseURL), nil
}

// valueRange is the wire shape of the values API response. Cells are
// formatted values but can still decode as JSON numbers, so they are
// captured loosely and stringified.
type valueRange struct {
	Values [][]any `json:"values"`
}

// Values fetches a value range (for example "Master View") from the given
// spreadsheet and returns the raw cell grid.
func (c *Client) Values(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s",
		c.baseURL, url.PathEscape(spreadsheetID), url.PathEscape(readRange))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build values request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch values: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("values API returned %d: %s", resp.StatusCode, body)
	}

	var vr valueRange
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return nil, fmt.Errorf("decode values response: %w", err)
	}

	grid := make([][]string, 0, len(vr.Values))
	for _, row := range vr.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, stringify(cell))
		}
		grid = append(grid, cells)
	}
	return grid, nil
}

func stringify(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// Year column headers are sometimes stored as numbers.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
