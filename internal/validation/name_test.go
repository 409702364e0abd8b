package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClientName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"valid", "Bob", ""},
		{"valid with spaces inside", "Bob Smith", ""},
		{"surrounding whitespace trimmed", "  Bob  ", ""},
		{"empty", "", "Client name is required"},
		{"whitespace only", "   ", "Client name is required"},
		{"max length", strings.Repeat("a", 100), ""},
		{"too long", strings.Repeat("a", 101), "Client name cannot be longer than 100 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClientName(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGoalTitle(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"valid", "Run 5k", ""},
		{"empty", "", "Goal name is required"},
		{"whitespace only", "\t\n ", "Goal name is required"},
		{"too long", strings.Repeat("x", 101), "Goal name must be under 100 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGoalTitle(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("longenough"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("p", 73)))
}
