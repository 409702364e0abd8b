package service

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pttracker/pttracker/internal/model"
	"github.com/pttracker/pttracker/internal/repository"
	"github.com/pttracker/pttracker/internal/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameRequired   = errors.New("username is required")
)

const (
	sessionCookieName  = "session_token"
	returnToCookieName = "return_to"
)

type AuthService struct {
	coachRepository repository.CoachRepository
	sessionSecret   string
	sessionExpiry   time.Duration
	isProduction    bool
}

func NewAuthService(coachRepository repository.CoachRepository, sessionSecret string, sessionExpiry time.Duration, isProduction bool) *AuthService {
	return &AuthService{
		coachRepository: coachRepository,
		sessionSecret:   sessionSecret,
		sessionExpiry:   sessionExpiry,
		isProduction:    isProduction,
	}
}

// Login verifies the username/password pair. A missing coach fails without
// running a hash comparison; the password is never logged.
func (s *AuthService) Login(username, password string) (*model.Coach, error) {
	username = strings.TrimSpace(username)

	coach, err := s.coachRepository.ByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrCoachNotFound) {
			return nil, fmt.Errorf("unknown username: %w", ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("failed to get coach: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(coach.PasswordHash), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("password mismatch: %w", ErrInvalidCredentials)
	}

	return coach, nil
}

// CoachByUsername loads the coach behind a verified session.
func (s *AuthService) CoachByUsername(username string) (*model.Coach, error) {
	return s.coachRepository.ByUsername(username)
}

// CreateCoach registers a new coach account. There is no self-registration
// route; this is reached through coachctl only.
func (s *AuthService) CreateCoach(username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameRequired
	}

	err := validation.ValidatePassword(password)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.coachRepository.Create(&model.Coach{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	})
}

// SetPassword replaces an existing coach's password.
func (s *AuthService) SetPassword(username, password string) error {
	err := validation.ValidatePassword(password)
	if err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.coachRepository.SetPassword(strings.TrimSpace(username), string(hash))
}

// GenerateSessionToken signs a session JWT carrying the coach's username.
func (s *AuthService) GenerateSessionToken(coach *model.Coach) (string, error) {
	claims := jwt.MapClaims{
		"username": coach.Username,
		"exp":      time.Now().Add(s.sessionExpiry).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.sessionSecret))
}

// VerifySessionToken returns the username carried by a valid session token.
func (s *AuthService) VerifySessionToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.sessionSecret), nil
	})

	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return "", fmt.Errorf("invalid token: missing username")
	}

	return username, nil
}

func (s *AuthService) SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(s.sessionExpiry),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) SessionCookie(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// SetReturnTo remembers the originally requested path in the visitor's own
// cookie, so one anonymous user's destination can never leak into another's
// post-login redirect.
func (s *AuthService) SetReturnTo(w http.ResponseWriter, path string) {
	http.SetCookie(w, &http.Cookie{
		Name:     returnToCookieName,
		Value:    path,
		MaxAge:   600,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

// ConsumeReturnTo reads and clears the remembered path, defaulting to "/".
// Only same-site relative paths are replayed.
func (s *AuthService) ConsumeReturnTo(w http.ResponseWriter, r *http.Request) string {
	path := "/"

	cookie, err := r.Cookie(returnToCookieName)
	if err == nil && strings.HasPrefix(cookie.Value, "/") && !strings.HasPrefix(cookie.Value, "//") {
		path = cookie.Value
	}

	http.SetCookie(w, &http.Cookie{
		Name:     returnToCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})

	return path
}
