package model

import (
	"time"
)

// Goal carries the owning coach's username redundantly so every query can
// scope on it without joining through clients.
type Goal struct {
	ID            int64     `db:"id"`
	ClientID      int64     `db:"client_id"`
	CoachUsername string    `db:"coach_username"`
	Title         string    `db:"title"`
	Notes         string    `db:"notes"`
	Done          bool      `db:"done"`
	CreatedOn     time.Time `db:"created_on"`
}
