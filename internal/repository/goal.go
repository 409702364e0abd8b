package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/pttracker/pttracker/internal/model"
)

var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrDuplicateGoal = errors.New("goal title already exists for this client")
)

// GoalRepository scopes every statement by coach username and client id.
type GoalRepository interface {
	CountForClient(coach string, clientID int64) (int, error)
	ByID(coach string, clientID, goalID int64) (*model.Goal, error)
	TitleExists(coach string, clientID int64, title string) (bool, error)
	Create(coach string, clientID int64, title, notes string) error
	Rename(coach string, clientID, goalID int64, title string) error
	SetNotes(coach string, clientID, goalID int64, notes string) error
	Delete(coach string, clientID, goalID int64) error
	ToggleDone(coach string, clientID, goalID int64) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) CountForClient(coach string, clientID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE coach_username = $1 AND client_id = $2`

	err := r.db.QueryRow(query, coach, clientID).Scan(&count)
	return count, err
}

func (r *goalRepository) ByID(coach string, clientID, goalID int64) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND client_id = $2 AND coach_username = $3`

	err := r.db.Get(goal, query, goalID, clientID, coach)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) TitleExists(coach string, clientID int64, title string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE coach_username = $1 AND client_id = $2 AND title = $3`

	err := r.db.QueryRow(query, coach, clientID, title).Scan(&count)
	return count > 0, err
}

func (r *goalRepository) Create(coach string, clientID int64, title, notes string) error {
	query := `INSERT INTO goals (coach_username, client_id, title, notes) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(query, coach, clientID, title, notes)
	if isUniqueViolation(err) {
		return ErrDuplicateGoal
	}

	return err
}

func (r *goalRepository) Rename(coach string, clientID, goalID int64, title string) error {
	query := `UPDATE goals SET title = $1 WHERE coach_username = $2 AND client_id = $3 AND id = $4`

	result, err := r.db.Exec(query, title, coach, clientID, goalID)
	if isUniqueViolation(err) {
		return ErrDuplicateGoal
	}
	if err != nil {
		return err
	}

	return oneRowAffected(result, ErrGoalNotFound)
}

func (r *goalRepository) SetNotes(coach string, clientID, goalID int64, notes string) error {
	query := `UPDATE goals SET notes = $1 WHERE coach_username = $2 AND client_id = $3 AND id = $4`

	result, err := r.db.Exec(query, notes, coach, clientID, goalID)
	if err != nil {
		return err
	}

	return oneRowAffected(result, ErrGoalNotFound)
}

func (r *goalRepository) Delete(coach string, clientID, goalID int64) error {
	query := `DELETE FROM goals WHERE coach_username = $1 AND client_id = $2 AND id = $3`

	result, err := r.db.Exec(query, coach, clientID, goalID)
	if err != nil {
		return err
	}

	return oneRowAffected(result, ErrGoalNotFound)
}

// ToggleDone flips done in place; callers re-fetch to observe the new value.
func (r *goalRepository) ToggleDone(coach string, clientID, goalID int64) error {
	query := `UPDATE goals SET done = NOT done WHERE coach_username = $1 AND client_id = $2 AND id = $3`

	result, err := r.db.Exec(query, coach, clientID, goalID)
	if err != nil {
		return err
	}

	return oneRowAffected(result, ErrGoalNotFound)
}
