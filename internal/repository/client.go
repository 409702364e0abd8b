package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/pttracker/pttracker/internal/model"
	"golang.org/x/sync/errgroup"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrDuplicateClient = errors.New("client name already exists for this coach")
)

// ClientRepository scopes every statement by the coach username. The scope
// predicate lives in the same statement as the mutation, so a coach can
// never affect another coach's rows even under concurrent requests.
type ClientRepository interface {
	List(coach string, page, pageSize int) ([]*model.Client, error)
	Count(coach string) (int, error)
	ByID(coach string, clientID int64) (*model.Client, error)
	ByIDPaginated(coach string, clientID int64, page, pageSize int) (*model.Client, error)
	NameExists(coach, name string) (bool, error)
	NameExistsExcluding(coach, name string, excludeID int64) (bool, error)
	Create(coach, name string) error
	Rename(coach string, clientID int64, name string) error
	SetNotes(coach string, clientID int64, notes string) error
	Delete(coach string, clientID int64) error
}

type clientRepository struct {
	db *sqlx.DB
}

func NewClientRepository(db *sqlx.DB) ClientRepository {
	return &clientRepository{db: db}
}

// List returns one page of clients ordered case-insensitively by name, each
// annotated with its full (unpaginated) goal set. The client page and the
// coach's goals are fetched concurrently and joined in memory by client id.
func (r *clientRepository) List(coach string, page, pageSize int) ([]*model.Client, error) {
	offset := (page - 1) * pageSize

	var clients []*model.Client
	var goals []*model.Goal

	g := new(errgroup.Group)
	g.Go(func() error {
		query := `SELECT * FROM clients WHERE coach_username = $1 ORDER BY lower(name) ASC LIMIT $2 OFFSET $3`
		return r.db.Select(&clients, query, coach, pageSize, offset)
	})
	g.Go(func() error {
		query := `SELECT * FROM goals WHERE coach_username = $1`
		return r.db.Select(&goals, query, coach)
	})

	err := g.Wait()
	if err != nil {
		return nil, err
	}

	attachGoals(clients, goals)
	return clients, nil
}

func (r *clientRepository) Count(coach string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM clients WHERE coach_username = $1`

	err := r.db.QueryRow(query, coach).Scan(&count)
	return count, err
}

// ByID returns a single client with all of its goals, pending goals first.
func (r *clientRepository) ByID(coach string, clientID int64) (*model.Client, error) {
	goalQuery := `SELECT * FROM goals WHERE coach_username = $1 AND client_id = $2 ORDER BY done ASC`
	return r.byID(coach, clientID, goalQuery)
}

// ByIDPaginated is like ByID but pages the goal set, pending goals first
// then oldest first within each group.
func (r *clientRepository) ByIDPaginated(coach string, clientID int64, page, pageSize int) (*model.Client, error) {
	offset := (page - 1) * pageSize
	goalQuery := `SELECT * FROM goals WHERE coach_username = $1 AND client_id = $2 ORDER BY done ASC, created_on ASC, id ASC LIMIT $3 OFFSET $4`
	return r.byID(coach, clientID, goalQuery, pageSize, offset)
}

func (r *clientRepository) byID(coach string, clientID int64, goalQuery string, goalArgs ...any) (*model.Client, error) {
	client := &model.Client{}
	var goals []*model.Goal

	g := new(errgroup.Group)
	g.Go(func() error {
		query := `SELECT * FROM clients WHERE coach_username = $1 AND id = $2`
		return r.db.Get(client, query, coach, clientID)
	})
	g.Go(func() error {
		args := append([]any{coach, clientID}, goalArgs...)
		return r.db.Select(&goals, goalQuery, args...)
	})

	err := g.Wait()
	if err == sql.ErrNoRows {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}

	client.Goals = goals
	return client, nil
}

func (r *clientRepository) NameExists(coach, name string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM clients WHERE coach_username = $1 AND name = $2`

	err := r.db.QueryRow(query, coach, name).Scan(&count)
	return count > 0, err
}

func (r *clientRepository) NameExistsExcluding(coach, name string, excludeID int64) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM clients WHERE coach_username = $1 AND name = $2 AND NOT id = $3`

	err := r.db.QueryRow(query, coach, name, excludeID).Scan(&count)
	return count > 0, err
}

func (r *clientRepository) Create(coach, name string) error {
	query := `INSERT INTO clients (coach_username, name) VALUES ($1, $2)`

	_, err := r.db.Exec(query, coach, name)
	if isUniqueViolation(err) {
		return ErrDuplicateClient
	}

	return err
}

func (r *clientRepository) Rename(coach string, clientID int64, name string) error {
	query := `UPDATE clients SET name = $1 WHERE coach_username = $2 AND id = $3`

	result, err := r.db.Exec(query, name, coach, clientID)
	if isUniqueViolation(err) {
		return ErrDuplicateClient
	}
	if err != nil {
		return err
	}

	return oneRowAffected(result, ErrClientNotFound)
}

func (r *clientRepository) SetNotes(coach string, clientID int64, notes string) error {
	query := `UPDATE clients SET notes = $1 WHERE coach_username = $2 AND id = $3`

	result, err := r.db.Exec(query, notes, coach, clientID)
	if err != nil {
		return err
	}

	return oneRowAffected(result, ErrClientNotFound)
}

// Delete removes the client; the store cascades the delete to its goals.
func (r *clientRepository) Delete(coach string, clientID int64) error {
	query := `DELETE FROM clients WHERE coach_username = $1 AND id = $2`

	result, err := r.db.Exec(query, coach, clientID)
	if err != nil {
		return err
	}

	return oneRowAffected(result, ErrClientNotFound)
}

func attachGoals(clients []*model.Client, goals []*model.Goal) {
	byClient := make(map[int64][]*model.Goal, len(clients))
	for _, goal := range goals {
		byClient[goal.ClientID] = append(byClient[goal.ClientID], goal)
	}
	for _, client := range clients {
		client.Goals = byClient[client.ID]
	}
}

// oneRowAffected maps zero rows affected to the given not-found error.
func oneRowAffected(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return notFound
	}

	return nil
}
