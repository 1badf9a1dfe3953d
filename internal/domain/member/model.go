package member

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 200
	MaxPhoneLength = 20
)

// Domain errors
var (
	ErrEmptyID      = errors.New("member ID is required")
	ErrEmptyName    = errors.New("member name cannot be empty")
	ErrNameTooLong  = errors.New("member name cannot exceed 200 characters")
	ErrPhoneTooLong = errors.New("member phone cannot exceed 20 characters")
	ErrInvalidEmail = errors.New("member email must be valid")
)

// Member is a gym customer who buys passes and checks in.
type Member struct {
	ID        string
	Name      string
	Phone     string // optional
	Email     string // optional, used for retention outreach
	AccountID string // optional link to a login identity
	CreatedAt time.Time
}

// Validate checks if the Member has valid data.
// PRE: Member struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name must not be empty; Email, when set, must contain '@'
func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if len(m.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(m.Phone) > MaxPhoneLength {
		return ErrPhoneTooLong
	}
	if m.Email != "" && !strings.Contains(m.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// HasEmail returns true if the member can be contacted by email.
func (m *Member) HasEmail() bool {
	return strings.TrimSpace(m.Email) != ""
}

// Initial returns the upper-cased first letter of the member's name.
func (m *Member) Initial() string {
	name := strings.TrimSpace(m.Name)
	if name == "" {
		return ""
	}
	return strings.ToUpper(string([]rune(name)[0]))
}
