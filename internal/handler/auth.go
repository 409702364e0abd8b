package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pttracker/pttracker/internal/service"
	"github.com/pttracker/pttracker/internal/ui"
)

type authHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *authHandler {
	return &authHandler{
		authService: authService,
	}
}

type signInData struct {
	Username string
}

func (h *authHandler) SignInPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, "signin.html", ui.Page{
		Title: "Sign in",
		Data:  signInData{},
	})
}

func (h *authHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	coach, err := h.authService.Login(username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			render(w, r, "signin.html", ui.Page{
				Title:  "Sign in",
				Errors: []string{"Invalid credentials"},
				Data:   signInData{Username: username},
			})
			return
		}
		notFound(w, r, err)
		return
	}

	token, err := h.authService.GenerateSessionToken(coach)
	if err != nil {
		notFound(w, r, err)
		return
	}

	h.authService.SetSessionCookie(w, token)
	slog.Info("coach signed in", "username", coach.Username)

	http.Redirect(w, r, h.authService.ConsumeReturnTo(w, r), http.StatusSeeOther)
}

func (h *authHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
