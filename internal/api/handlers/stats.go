package handlers

import (
	"net/http"
	"time"

	"github.com/bigfun-dj/opsboard/internal/api/problem"
)

// StatsHandler aggregates a one-call summary for monitoring and the
// landing widget.
type StatsHandler struct {
	svc       Dashboard
	version   string
	gitCommit string
	startTime time.Time
	env       string
}

func NewStatsHandler(svc Dashboard, version, gitCommit string, startTime time.Time, env string) *StatsHandler {
	return &StatsHandler{
		svc:       svc,
		version:   version,
		gitCommit: gitCommit,
		startTime: startTime,
		env:       env,
	}
}

// StatsResponse is the aggregated board summary.
type StatsResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	Uptime    int64  `json:"uptime_seconds"`

	PaceStatus string `json:"pace_status"`
	PaceDay    string `json:"pace_day,omitempty"`
	PaceDelta  int    `json:"pace_delta"`

	FunnelStatus   string  `json:"funnel_status"`
	TargetYear     int     `json:"target_year"`
	TotalInquiries int     `json:"total_inquiries"`
	Booked         int     `json:"booked"`
	ConversionRate float64 `json:"conversion_rate"`
	DuplicateRows  int     `json:"duplicate_rows_removed"`

	UpcomingEvents int `json:"upcoming_events"`

	Timestamp string `json:"timestamp"`
}

// GetStats handles GET /api/v1/stats. The endpoint is public for use by
// landing pages and uptime checks.
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	paceReport, err := h.svc.Pace(ctx)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Failed to retrieve statistics", err, h.env)
		return
	}

	funnelReport, err := h.svc.Funnel(ctx)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Failed to retrieve statistics", err, h.env)
		return
	}

	events, err := h.svc.Upcoming(ctx)
	if err != nil {
		problem.Write(w, r, http.StatusInternalServerError, problem.TypeServerError, "Failed to retrieve statistics", err, h.env)
		return
	}

	now := h.svc.Now()
	stats := StatsResponse{
		Status:         "healthy",
		Version:        h.version,
		GitCommit:      h.gitCommit,
		Uptime:         int64(now.Sub(h.startTime).Seconds()),
		PaceStatus:     paceReport.Status,
		PaceDay:        paceReport.Comparison.Day,
		PaceDelta:      paceReport.Comparison.Delta,
		FunnelStatus:   funnelReport.Status,
		TargetYear:     funnelReport.Metrics.TargetYear,
		TotalInquiries: funnelReport.Metrics.TotalInquiries,
		Booked:         funnelReport.Metrics.Booked,
		ConversionRate: funnelReport.Metrics.ConversionRate,
		DuplicateRows:  funnelReport.Dedup.Removed(),
		UpcomingEvents: len(events),
		Timestamp:      now.UTC().Format(time.RFC3339),
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, stats)
}
