// Package api wires the HTTP surface: routes, middleware chain, and the
// Prometheus scrape endpoint.
package api

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/bigfun-dj/opsboard/internal/api/handlers"
	"github.com/bigfun-dj/opsboard/internal/api/middleware"
	"github.com/bigfun-dj/opsboard/internal/config"
	"github.com/bigfun-dj/opsboard/internal/metrics"
	"github.com/rs/zerolog"
)

// BuildInfo carries the version identifiers stamped at build time.
type BuildInfo struct {
	Version   string
	GitCommit string
}

// NewRouter assembles the full handler chain around the dashboard service.
func NewRouter(svc handlers.Dashboard, cfg config.Config, logger zerolog.Logger, build BuildInfo) http.Handler {
	env := cfg.Environment

	paceHandler := handlers.NewPaceHandler(svc, env)
	funnelHandler := handlers.NewFunnelHandler(svc, env)
	eventsHandler := handlers.NewEventsHandler(svc, env)
	statsHandler := handlers.NewStatsHandler(svc, build.Version, build.GitCommit, time.Now(), env)
	boardHandler := handlers.NewBoardHandler(svc, build.Version, env)

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(nil))
	mux.Handle("/metrics", metrics.Handler())

	mux.Handle("/api/v1/pace", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(paceHandler.Get),
	}))
	mux.Handle("/api/v1/pace/daily", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(paceHandler.Daily),
	}))
	mux.Handle("/api/v1/pace/weekly", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(paceHandler.Weekly),
	}))
	mux.Handle("/api/v1/funnel", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(funnelHandler.Get),
	}))
	mux.Handle("/api/v1/events/upcoming", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(eventsHandler.Upcoming),
	}))
	mux.Handle("/api/v1/stats", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(statsHandler.GetStats),
	}))
	mux.Handle("/api/v1/refresh", methodMux(map[string]http.Handler{
		http.MethodPost: handlers.Refresh(svc),
	}))
	mux.Handle("/", http.HandlerFunc(boardHandler.Home))

	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.Tracing(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

func methodMux(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := routes[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(routes))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(routes map[string]http.Handler) string {
	methods := make([]string, 0, len(routes))
	for method := range routes {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
