package projections

import (
	"context"
	"time"

	memberStore "frontdesk/internal/adapters/storage/member"
	passStore "frontdesk/internal/adapters/storage/pass"
	"frontdesk/internal/domain/attendance"
	"frontdesk/internal/domain/member"
	"frontdesk/internal/domain/pass"
	"frontdesk/internal/domain/workout"

	"github.com/shopspring/decimal"
)

// MemberStore interface for member queries.
type MemberStore interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	List(ctx context.Context, filter memberStore.ListFilter) ([]member.Member, error)
}

// PassStore interface for per-member pass queries.
type PassStore interface {
	ListByMemberID(ctx context.Context, memberID string) ([]pass.Pass, error)
}

// PassReportStore interface for the pass aggregates behind the dashboard and revenue report.
type PassReportStore interface {
	CountActive(ctx context.Context, today time.Time) (int, error)
	CountExpired(ctx context.Context, today time.Time) (int, error)
	SumRevenue(ctx context.Context) (decimal.Decimal, error)
	SumRevenueOn(ctx context.Context, day time.Time) (decimal.Decimal, error)
	SalesByPlan(ctx context.Context) ([]passStore.PlanSales, error)
}

// AttendanceStore interface for per-member attendance queries.
type AttendanceStore interface {
	ListByMemberID(ctx context.Context, memberID string) ([]attendance.Attendance, error)
}

// WorkoutLogStore interface for completed workout queries.
type WorkoutLogStore interface {
	ListByMemberID(ctx context.Context, memberID string) ([]workout.Log, error)
}

// checkInTimes extracts check-in timestamps from attendance rows.
func checkInTimes(records []attendance.Attendance) []time.Time {
	out := make([]time.Time, 0, len(records))
	for _, a := range records {
		out = append(out, a.CheckInTime)
	}
	return out
}
