package handler

import "net/http"

// Health serves /api/health.
func Health(w http.ResponseWriter, r *http.Request) {
	serve(w, r)
}
