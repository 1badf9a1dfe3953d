package profile

import (
	"context"
	"errors"

	domain "frontdesk/internal/domain/profile"
)

// ErrNotFound is returned when the member has no profile yet.
var ErrNotFound = errors.New("profile not found")

// Store persists Profile state.
type Store interface {
	GetByMemberID(ctx context.Context, memberID string) (domain.Profile, error)
	Save(ctx context.Context, value domain.Profile) error
}
