package plan

import (
	"context"
	"errors"

	domain "frontdesk/internal/domain/plan"
)

// ErrNotFound is returned when no plan matches the lookup.
var ErrNotFound = errors.New("plan not found")

// Store persists Plan state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Plan, error)
	GetByName(ctx context.Context, name string) (domain.Plan, error)
	Save(ctx context.Context, value domain.Plan) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Plan, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	ActiveOnly bool
	Limit      int
	Offset     int
}
