package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pttracker/pttracker/internal/db"
	"github.com/pttracker/pttracker/internal/model"
	"github.com/pttracker/pttracker/internal/repository"
	"github.com/stretchr/testify/require"
)

const testPageSize = 5

type testEnv struct {
	db      *sqlx.DB
	auth    *AuthService
	clients *ClientService
	goals   *GoalService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	database, err := db.Init("sqlite", conn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	coachRepo := repository.NewCoachRepository(database)
	auth := NewAuthService(coachRepo, "test-secret", time.Hour, false)
	require.NoError(t, auth.CreateCoach("alice", "correct horse battery"))
	require.NoError(t, auth.CreateCoach("bob", "correct horse battery"))

	return &testEnv{
		db:      database,
		auth:    auth,
		clients: NewClientService(repository.NewClientRepository(database), testPageSize),
		goals:   NewGoalService(repository.NewGoalRepository(database), testPageSize),
	}
}

func (e *testEnv) clientByName(t *testing.T, coach, name string) *model.Client {
	t.Helper()

	list, _, err := e.clients.Page(coach, 1)
	require.NoError(t, err)
	for _, c := range list {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("client %q not found", name)
	return nil
}

func (e *testEnv) goalByTitle(t *testing.T, coach string, clientID int64, title string) *model.Goal {
	t.Helper()

	client, err := e.clients.ByID(coach, clientID)
	require.NoError(t, err)
	for _, g := range client.Goals {
		if g.Title == title {
			return g
		}
	}
	t.Fatalf("goal %q not found", title)
	return nil
}
