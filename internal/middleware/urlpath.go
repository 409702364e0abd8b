package middleware

import (
	"net/http"

	"github.com/pttracker/pttracker/internal/ctxkeys"
)

// WithURLPath exposes the request path to views, for marking the current
// page in navigation.
func WithURLPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(ctxkeys.WithURLPath(r.Context(), r.URL.Path)))
	})
}
