package handler

import "net/http"

// Portfolio serves /api/portfolio.
func Portfolio(w http.ResponseWriter, r *http.Request) {
	serve(w, r)
}
