package attendance

import (
	"context"
	"errors"
	"time"

	domain "frontdesk/internal/domain/attendance"
)

// ErrNotFound is returned when no attendance matches the lookup.
var ErrNotFound = errors.New("attendance not found")

// Store persists Attendance state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Attendance, error)
	Save(ctx context.Context, value domain.Attendance) error
	ListByMemberID(ctx context.Context, memberID string) ([]domain.Attendance, error)
	ListByMemberIDAndDate(ctx context.Context, memberID string, day time.Time) ([]domain.Attendance, error)
	ListOnDate(ctx context.Context, day time.Time) ([]Visit, error)
	CountOnDate(ctx context.Context, day time.Time) (int, error)
	HourlyCounts(ctx context.Context) ([24]int, error)
	CheckInTimesByMember(ctx context.Context) (map[string][]time.Time, error)
}

// Visit is an attendance row joined with the visiting member's name.
type Visit struct {
	domain.Attendance
	MemberName string
}
