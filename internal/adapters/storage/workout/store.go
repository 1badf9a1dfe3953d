package workout

import (
	"context"
	"errors"

	domain "frontdesk/internal/domain/workout"
)

// ErrNotFound is returned when no workout matches the lookup.
var ErrNotFound = errors.New("workout not found")

// Store persists the workout library.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Workout, error)
	GetByName(ctx context.Context, name string) (domain.Workout, error)
	Save(ctx context.Context, value domain.Workout) error
	List(ctx context.Context, filter ListFilter) ([]domain.Workout, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	ActiveOnly bool
}
