package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/bigfun-dj/opsboard/internal/api/problem"
	"github.com/bigfun-dj/opsboard/internal/dashboard"
	"github.com/bigfun-dj/opsboard/internal/dates"
)

// EventsHandler serves the upcoming-events strip.
type EventsHandler struct {
	svc Dashboard
	env string
}

func NewEventsHandler(svc Dashboard, env string) *EventsHandler {
	return &EventsHandler{svc: svc, env: env}
}

type upcomingResponse struct {
	Count  int                       `json:"count"`
	Events []dashboard.UpcomingEvent `json:"events"`
}

// Upcoming handles GET /api/v1/events/upcoming?days=N. Without the days
// parameter the full configured lookahead is returned.
func (h *EventsHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.Upcoming(r.Context())
	if err != nil {
		problem.Write(w, r, http.StatusBadGateway, problem.TypeUpstream, "Failed to load upcoming events", err, h.env)
		return
	}

	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 1 {
			problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid days parameter", err, h.env,
				problem.WithDetail("days must be a positive integer"))
			return
		}
		events = withinDays(events, h.svc.Now(), days)
	}

	if events == nil {
		events = []dashboard.UpcomingEvent{}
	}
	writeJSON(w, http.StatusOK, upcomingResponse{Count: len(events), Events: events})
}

// withinDays keeps events dated within days of today. Events whose date
// text cannot be resolved are kept rather than silently dropped.
func withinDays(events []dashboard.UpcomingEvent, today time.Time, days int) []dashboard.UpcomingEvent {
	limit := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
	kept := make([]dashboard.UpcomingEvent, 0, len(events))
	for _, ev := range events {
		date, ok := dates.Resolve(ev.Date)
		if ok && date.After(limit) {
			continue
		}
		kept = append(kept, ev)
	}
	return kept
}
