package ctxkeys

import (
	"context"

	"github.com/pttracker/pttracker/internal/config"
	"github.com/pttracker/pttracker/internal/model"
)

// contextKey is a type for context keys to avoid collisions
type contextKey string

const (
	CoachKey     contextKey = "coach"
	ConfigKey    contextKey = "config"
	CSRFTokenKey contextKey = "csrf_token"
	URLPathKey   contextKey = "url_path"
)

func Coach(ctx context.Context) *model.Coach {
	coach, _ := ctx.Value(CoachKey).(*model.Coach)
	return coach
}

func WithCoach(ctx context.Context, coach *model.Coach) context.Context {
	return context.WithValue(ctx, CoachKey, coach)
}

func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(ConfigKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, ConfigKey, cfg)
}

func CSRFToken(ctx context.Context) string {
	token, _ := ctx.Value(CSRFTokenKey).(string)
	return token
}

func WithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, CSRFTokenKey, token)
}

func URLPath(ctx context.Context) string {
	path, _ := ctx.Value(URLPathKey).(string)
	return path
}

func WithURLPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, URLPathKey, path)
}
