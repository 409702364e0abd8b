package validation

import (
	"errors"
	"strings"
)

const maxNameLength = 100

// ValidateClientName validates a client name after trimming
func ValidateClientName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return errors.New("Client name is required")
	}

	if len(trimmed) > maxNameLength {
		return errors.New("Client name cannot be longer than 100 characters")
	}

	return nil
}

// ValidateGoalTitle validates a goal title after trimming
func ValidateGoalTitle(title string) error {
	trimmed := strings.TrimSpace(title)

	if trimmed == "" {
		return errors.New("Goal name is required")
	}

	if len(trimmed) > maxNameLength {
		return errors.New("Goal name must be under 100 characters")
	}

	return nil
}
