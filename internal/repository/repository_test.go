package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pttracker/pttracker/internal/db"
	"github.com/pttracker/pttracker/internal/model"
	"github.com/stretchr/testify/require"
)

// newTestDB opens a throwaway sqlite database with migrations applied and
// two coaches seeded.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=foreign_keys(1)"
	database, err := db.Init("sqlite", conn)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	coaches := NewCoachRepository(database)
	for _, username := range []string{"alice", "bob"} {
		err = coaches.Create(&model.Coach{
			Username:     username,
			PasswordHash: "$2a$10$notarealhashnotarealhashnotarealhashnotarealhash",
			CreatedAt:    time.Now(),
		})
		require.NoError(t, err)
	}

	return database
}

// mustCreateClient inserts a client and returns its row.
func mustCreateClient(t *testing.T, clients ClientRepository, coach, name string) *model.Client {
	t.Helper()

	require.NoError(t, clients.Create(coach, name))

	list, err := clients.List(coach, 1, 100)
	require.NoError(t, err)
	for _, c := range list {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("client %q not found after create", name)
	return nil
}

// mustCreateGoal inserts a goal and returns its row.
func mustCreateGoal(t *testing.T, goals GoalRepository, clients ClientRepository, coach string, clientID int64, title string) *model.Goal {
	t.Helper()

	require.NoError(t, goals.Create(coach, clientID, title, ""))

	client, err := clients.ByID(coach, clientID)
	require.NoError(t, err)
	for _, g := range client.Goals {
		if g.Title == title {
			return g
		}
	}
	t.Fatalf("goal %q not found after create", title)
	return nil
}
