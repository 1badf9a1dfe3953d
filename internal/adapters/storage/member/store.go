package member

import (
	"context"
	"errors"

	domain "frontdesk/internal/domain/member"
)

// ErrNotFound is returned when no member matches the lookup.
var ErrNotFound = errors.New("member not found")

// Store persists Member state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Member, error)
	Save(ctx context.Context, value domain.Member) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Member, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Member, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
	Search string // substring of the name or phone
}
