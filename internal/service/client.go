package service

import (
	"fmt"
	"strings"

	"github.com/pttracker/pttracker/internal/model"
	"github.com/pttracker/pttracker/internal/repository"
)

type ClientService struct {
	repo     repository.ClientRepository
	pageSize int
}

func NewClientService(repo repository.ClientRepository, pageSize int) *ClientService {
	return &ClientService{
		repo:     repo,
		pageSize: pageSize,
	}
}

func (s *ClientService) PageSize() int {
	return s.pageSize
}

// PageCount computes the number of client-list pages, floored to 1 so an
// empty roster still renders page one.
func (s *ClientService) PageCount(count int) int {
	pages := (count + s.pageSize - 1) / s.pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

func (s *ClientService) Page(coach string, page int) ([]*model.Client, int, error) {
	count, err := s.repo.Count(coach)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	clients, err := s.repo.List(coach, page, s.pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list clients: %w", err)
	}

	return clients, s.PageCount(count), nil
}

func (s *ClientService) ByID(coach string, clientID int64) (*model.Client, error) {
	return s.repo.ByID(coach, clientID)
}

func (s *ClientService) ByIDPaginated(coach string, clientID int64, page int) (*model.Client, error) {
	return s.repo.ByIDPaginated(coach, clientID, page, s.pageSize)
}

// Create inserts a new client. The existence pre-check produces the friendly
// duplicate error; the store's unique constraint remains the authoritative
// guard under concurrent creations.
func (s *ClientService) Create(coach, name string) error {
	name = strings.TrimSpace(name)

	exists, err := s.repo.NameExists(coach, name)
	if err != nil {
		return fmt.Errorf("failed to check client name: %w", err)
	}
	if exists {
		return repository.ErrDuplicateClient
	}

	return s.repo.Create(coach, name)
}

// Update renames the client and replaces its notes. Renaming a client to its
// own current name passes the uniqueness check.
func (s *ClientService) Update(coach string, clientID int64, name, notes string) error {
	name = strings.TrimSpace(name)

	exists, err := s.repo.NameExistsExcluding(coach, name, clientID)
	if err != nil {
		return fmt.Errorf("failed to check client name: %w", err)
	}
	if exists {
		return repository.ErrDuplicateClient
	}

	err = s.repo.Rename(coach, clientID, name)
	if err != nil {
		return err
	}

	return s.repo.SetNotes(coach, clientID, strings.TrimSpace(notes))
}

func (s *ClientService) Delete(coach string, clientID int64) error {
	return s.repo.Delete(coach, clientID)
}
