package middleware

import (
	"net/http"

	"github.com/pttracker/pttracker/internal/ctxkeys"
	"github.com/pttracker/pttracker/internal/service"
)

// Auth resolves the session cookie to a coach and adds it to the request
// context. Invalid or expired tokens clear the cookie and continue
// anonymous.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := authService.SessionCookie(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			username, err := authService.VerifySessionToken(token)
			if err != nil {
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			coach, err := authService.CoachByUsername(username)
			if err != nil {
				// Token signed for a coach that no longer exists
				authService.ClearSessionCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			// Keep the hash out of the request context
			coach.PasswordHash = ""

			next.ServeHTTP(w, r.WithContext(ctxkeys.WithCoach(r.Context(), coach)))
		})
	}
}

// RequireAuth redirects anonymous requests to sign-in, remembering the
// originally requested path in the visitor's own cookie so it can be
// replayed once after the next successful sign-in.
func RequireAuth(authService *service.AuthService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coach := ctxkeys.Coach(r.Context())
		if coach == nil {
			if r.Method == http.MethodGet {
				authService.SetReturnTo(w, r.URL.RequestURI())
			}
			http.Redirect(w, r, "/users/signin", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	}
}

// RequireGuest keeps signed-in coaches off the sign-in form.
func RequireGuest(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coach := ctxkeys.Coach(r.Context())
		if coach != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	}
}
