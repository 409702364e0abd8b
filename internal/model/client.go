package model

import (
	"time"
)

// Client is one coached individual. Goals is populated by the repository
// read paths; it is never written back through this struct.
type Client struct {
	ID            int64     `db:"id"`
	CoachUsername string    `db:"coach_username"`
	Name          string    `db:"name"`
	Notes         string    `db:"notes"`
	StartDate     time.Time `db:"start_date"`

	Goals []*Goal `db:"-"`
}

func (c *Client) GoalCount() int {
	return len(c.Goals)
}

func (c *Client) DoneGoalCount() int {
	count := 0
	for _, g := range c.Goals {
		if g.Done {
			count++
		}
	}
	return count
}
