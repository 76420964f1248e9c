package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bigfun-dj/opsboard/internal/api/problem"
	"github.com/bigfun-dj/opsboard/internal/dashboard"
	"github.com/bigfun-dj/opsboard/internal/domain/pace"
)

// PaceHandler serves the year-over-year booking pace endpoints.
type PaceHandler struct {
	svc Dashboard
	env string
}

func NewPaceHandler(svc Dashboard, env string) *PaceHandler {
	return &PaceHandler{svc: svc, env: env}
}

// Get handles GET /api/v1/pace. The chart series live on their own
// endpoints, so the readout alone is returned here.
func (h *PaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Pace(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusBadGateway, problem.TypeUpstream, "Failed to load booking pace", err, h.env)
		return
	}

	report.Daily = nil
	report.Weekly = nil
	writeJSON(w, http.StatusOK, report)
}

type paceSeriesResponse struct {
	Status     string       `json:"status"`
	Reason     string       `json:"reason,omitempty"`
	WindowDays int          `json:"window_days,omitempty"`
	Points     []pace.Point `json:"points"`
}

// Daily handles GET /api/v1/pace/daily?window=N.
func (h *PaceHandler) Daily(w http.ResponseWriter, r *http.Request) {
	window := dashboard.DefaultDailyWindow
	if raw := r.URL.Query().Get("window"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid window parameter", err, h.env,
				problem.WithDetail("window must be a positive integer"))
			return
		}
		window = n
	}
	if window > dashboard.MaxDailyWindow {
		window = dashboard.MaxDailyWindow
	}

	report, err := h.svc.Pace(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusBadGateway, problem.TypeUpstream, "Failed to load booking pace", err, h.env)
		return
	}

	writeJSON(w, http.StatusOK, paceSeriesResponse{
		Status:     report.Status,
		Reason:     report.Reason,
		WindowDays: window,
		Points:     trimWindow(report.Daily, h.svc.Now(), window),
	})
}

// Weekly handles GET /api/v1/pace/weekly.
func (h *PaceHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Pace(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusBadGateway, problem.TypeUpstream, "Failed to load booking pace", err, h.env)
		return
	}

	writeJSON(w, http.StatusOK, paceSeriesResponse{
		Status: report.Status,
		Reason: report.Reason,
		Points: report.Weekly,
	})
}

// trimWindow keeps the points dated within windowDays of today, start day
// included. The cached series may end before today when the most recent
// rows are still empty, so the anchor is the clock, not the last sample.
func trimWindow(points []pace.Point, today time.Time, windowDays int) []pace.Point {
	day := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	start := day.AddDate(0, 0, -windowDays)

	kept := make([]pace.Point, 0, len(points))
	for _, p := range points {
		if p.Date.Before(start) || p.Date.After(day) {
			continue
		}
		kept = append(kept, p)
	}
	return kept
}
