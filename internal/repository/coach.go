package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/pttracker/pttracker/internal/model"
)

var (
	ErrCoachNotFound     = errors.New("coach not found")
	ErrDuplicateUsername = errors.New("username already exists")
)

type CoachRepository interface {
	Create(coach *model.Coach) error
	ByUsername(username string) (*model.Coach, error)
	SetPassword(username, passwordHash string) error
}

type coachRepository struct {
	db *sqlx.DB
}

func NewCoachRepository(db *sqlx.DB) CoachRepository {
	return &coachRepository{db: db}
}

func (r *coachRepository) Create(coach *model.Coach) error {
	query := `INSERT INTO coaches (username, password, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(query, coach.Username, coach.PasswordHash, coach.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateUsername
	}

	return err
}

func (r *coachRepository) ByUsername(username string) (*model.Coach, error) {
	coach := &model.Coach{}
	query := `SELECT * FROM coaches WHERE username = $1`

	err := r.db.Get(coach, query, username)
	if err == sql.ErrNoRows {
		return nil, ErrCoachNotFound
	}

	return coach, err
}

func (r *coachRepository) SetPassword(username, passwordHash string) error {
	query := `UPDATE coaches SET password = $1 WHERE username = $2`

	result, err := r.db.Exec(query, passwordHash, username)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrCoachNotFound
	}

	return nil
}
