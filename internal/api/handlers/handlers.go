// Package handlers implements the board's HTTP endpoints on top of the
// dashboard service.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bigfun-dj/opsboard/internal/dashboard"
)

// Dashboard is the slice of the dashboard service the handlers consume.
type Dashboard interface {
	Pace(ctx context.Context) (dashboard.PaceReport, error)
	Funnel(ctx context.Context) (dashboard.FunnelReport, error)
	FunnelForYear(ctx context.Context, year int) (dashboard.FunnelReport, error)
	Upcoming(ctx context.Context) ([]dashboard.UpcomingEvent, error)
	Refresh()
	Now() time.Time
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
