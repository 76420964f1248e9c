package handlers

import (
	"net/http"
	"strconv"

	"github.com/bigfun-dj/opsboard/internal/api/problem"
)

// FunnelHandler serves the inquiry funnel report.
type FunnelHandler struct {
	svc Dashboard
	env string
}

func NewFunnelHandler(svc Dashboard, env string) *FunnelHandler {
	return &FunnelHandler{svc: svc, env: env}
}

// Get handles GET /api/v1/funnel?year=YYYY. The year defaults to the
// current calendar year.
func (h *FunnelHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	raw := r.URL.Query().Get("year")
	if raw == "" {
		report, err := h.svc.Funnel(ctx)
		if err != nil {
			problem.Write(w, r, http.StatusBadGateway, problem.TypeUpstream, "Failed to load funnel metrics", err, h.env)
			return
		}
		writeJSON(w, http.StatusOK, report)
		return
	}

	year, err := strconv.Atoi(raw)
	if err != nil || year < 2000 || year > 2100 {
		problem.Write(w, r, http.StatusBadRequest, problem.TypeValidation, "Invalid year parameter", err, h.env,
			problem.WithDetail("year must be a four-digit calendar year"))
		return
	}

	report, err := h.svc.FunnelForYear(ctx, year)
	if err != nil {
		problem.Write(w, r, http.StatusBadGateway, problem.TypeUpstream, "Failed to load funnel metrics", err, h.env)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
