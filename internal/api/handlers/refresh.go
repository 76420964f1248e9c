package handlers

import "net/http"

// Refresh drops every cached report so the next request refetches from
// the upstream sources. Handles POST /api/v1/refresh.
func Refresh(svc Dashboard) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		svc.Refresh()
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "refreshed"})
	})
}
