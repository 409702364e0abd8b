package service

import (
	"fmt"
	"strings"

	"github.com/pttracker/pttracker/internal/model"
	"github.com/pttracker/pttracker/internal/repository"
)

type GoalService struct {
	repo     repository.GoalRepository
	pageSize int
}

func NewGoalService(repo repository.GoalRepository, pageSize int) *GoalService {
	return &GoalService{
		repo:     repo,
		pageSize: pageSize,
	}
}

// PageCount computes the number of goal pages on the client detail view.
// Unlike the client list this is not floored; a client with no goals has
// zero goal pages.
func (s *GoalService) PageCount(coach string, clientID int64) (int, error) {
	count, err := s.repo.CountForClient(coach, clientID)
	if err != nil {
		return 0, fmt.Errorf("failed to count goals: %w", err)
	}

	return (count + s.pageSize - 1) / s.pageSize, nil
}

func (s *GoalService) ByID(coach string, clientID, goalID int64) (*model.Goal, error) {
	return s.repo.ByID(coach, clientID, goalID)
}

// Create inserts a new goal with its notes in one statement. The existence
// pre-check produces the friendly duplicate error; the store's unique
// constraint remains the authoritative guard.
func (s *GoalService) Create(coach string, clientID int64, title, notes string) error {
	title = strings.TrimSpace(title)

	exists, err := s.repo.TitleExists(coach, clientID, title)
	if err != nil {
		return fmt.Errorf("failed to check goal title: %w", err)
	}
	if exists {
		return repository.ErrDuplicateGoal
	}

	return s.repo.Create(coach, clientID, title, strings.TrimSpace(notes))
}

// Update renames the goal and replaces its notes, both addressed by id.
func (s *GoalService) Update(coach string, clientID, goalID int64, title, notes string) error {
	err := s.repo.Rename(coach, clientID, goalID, strings.TrimSpace(title))
	if err != nil {
		return err
	}

	return s.repo.SetNotes(coach, clientID, goalID, strings.TrimSpace(notes))
}

func (s *GoalService) Delete(coach string, clientID, goalID int64) error {
	return s.repo.Delete(coach, clientID, goalID)
}

// Toggle flips the done flag and re-fetches the goal so the caller can
// observe the new value.
func (s *GoalService) Toggle(coach string, clientID, goalID int64) (*model.Goal, error) {
	err := s.repo.ToggleDone(coach, clientID, goalID)
	if err != nil {
		return nil, err
	}

	return s.repo.ByID(coach, clientID, goalID)
}
