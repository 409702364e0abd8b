package routes

import (
	"net/http"

	"github.com/pttracker/pttracker/internal/app"
	"github.com/pttracker/pttracker/internal/handler"
	"github.com/pttracker/pttracker/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	client := handler.NewClientHandler(app.ClientService, app.GoalService)
	goal := handler.NewGoalHandler(app.ClientService, app.GoalService)

	mux := http.NewServeMux()

	// Sign-in is rate limited per IP
	rateLimiter := middleware.RateLimitAuth()

	requireAuth := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAuth(app.AuthService, next)
	}

	// Auth
	mux.HandleFunc("GET /users/signin", middleware.RequireGuest(auth.SignInPage))
	mux.HandleFunc("POST /users/signin", rateLimiter(middleware.RequireGuest(auth.SignIn)))
	mux.HandleFunc("POST /users/signout", auth.SignOut)

	// Clients
	mux.HandleFunc("GET /{$}", requireAuth(client.Home))
	mux.HandleFunc("POST /{$}", requireAuth(client.Create))
	mux.HandleFunc("GET /new_client", requireAuth(client.NewClientPage))
	mux.HandleFunc("GET /{client_id}", requireAuth(client.Detail))
	mux.HandleFunc("GET /{client_id}/edit", requireAuth(client.EditPage))
	mux.HandleFunc("POST /{client_id}/edit", requireAuth(client.Update))
	mux.HandleFunc("POST /{client_id}/delete", requireAuth(client.Delete))

	// Goals
	mux.HandleFunc("POST /{client_id}/add_goal", requireAuth(goal.Create))
	mux.HandleFunc("GET /{client_id}/{goal_id}/edit_goal", requireAuth(goal.EditPage))
	mux.HandleFunc("POST /{client_id}/{goal_id}/edit", requireAuth(goal.Update))
	mux.HandleFunc("POST /{client_id}/{goal_id}/delete", requireAuth(goal.Delete))
	mux.HandleFunc("POST /{client_id}/{goal_id}/toggle", requireAuth(goal.Toggle))

	// 404
	mux.HandleFunc("/{path...}", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.Config(app.Cfg), // Config must be first (needed by CSRF cookie flags)
		middleware.SecurityHeaders,
		middleware.RequestLogging,
		middleware.CSRFProtection, // CSRF protection for all state-changing requests
		middleware.Auth(app.AuthService),
		middleware.WithURLPath,
	)
}
