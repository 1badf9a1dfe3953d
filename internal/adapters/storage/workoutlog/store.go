package workoutlog

import (
	"context"

	"frontdesk/internal/domain/workout"
)

// Store persists completed workout sessions.
type Store interface {
	Save(ctx context.Context, value workout.Log) error
	ListByMemberID(ctx context.Context, memberID string) ([]workout.Log, error)
}
