package handler

import "net/http"

// Contact serves /api/contact.
func Contact(w http.ResponseWriter, r *http.Request) {
	serve(w, r)
}
