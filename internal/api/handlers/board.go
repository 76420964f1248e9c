package handlers

import (
	"net/http"

	"github.com/bigfun-dj/opsboard/internal/api/problem"
	"github.com/bigfun-dj/opsboard/internal/api/render"
)

// BoardHandler serves the server-rendered operations board at "/".
type BoardHandler struct {
	svc     Dashboard
	version string
	env     string
}

func NewBoardHandler(svc Dashboard, version, env string) *BoardHandler {
	return &BoardHandler{svc: svc, version: version, env: env}
}

func (h *BoardHandler) Home(w http.ResponseWriter, r *http.Request) {
	// "/" is the mux catch-all; anything else under it is a 404.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	ctx := r.Context()

	paceReport, err := h.svc.Pace(ctx)
	if err != nil {
		problem.Write(w, r, http.StatusBadGateway, problem.TypeUpstream, "Failed to load board", err, h.env)
		return
	}
	funnelReport, err := h.svc.Funnel(ctx)
	if err != nil {
		problem.Write(w, r, http.StatusBadGateway, problem.TypeUpstream, "Failed to load board", err, h.env)
		return
	}
	events, err := h.svc.Upcoming(ctx)
	if err != nil {
		problem.Write(w, r, http.StatusBadGateway, problem.TypeUpstream, "Failed to load board", err, h.env)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(render.Board(paceReport, funnelReport, events, h.version)))
}
