package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"frontdesk/internal/domain/attendance"
)

// CheckOutMemberInput carries input for the check-out orchestrator.
type CheckOutMemberInput struct {
	MemberID string
}

// CheckOutMemberDeps holds dependencies for CheckOutMember.
type CheckOutMemberDeps struct {
	AttendanceStore VisitStore
	Now             func() time.Time
}

// ExecuteCheckOutMember closes the member's most recent open visit of today.
// PRE: MemberID is non-empty
// POST: That visit has CheckOutTime=now, or attendance.ErrNotCheckedIn when none is open
func ExecuteCheckOutMember(ctx context.Context, input CheckOutMemberInput, deps CheckOutMemberDeps) (attendance.Attendance, error) {
	if input.MemberID == "" {
		return attendance.Attendance{}, attendance.ErrEmptyMemberID
	}
	now := deps.Now()

	// Newest first, so the first open row is the most recent check-in.
	visits, err := deps.AttendanceStore.ListByMemberIDAndDate(ctx, input.MemberID, now)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("list today's visits: %w", err)
	}
	for _, a := range visits {
		if !a.IsOpenOn(now) {
			continue
		}
		if err := a.CheckOut(now); err != nil {
			return attendance.Attendance{}, err
		}
		if err := deps.AttendanceStore.Save(ctx, a); err != nil {
			return attendance.Attendance{}, fmt.Errorf("save attendance: %w", err)
		}
		slog.Info("checkin_event", "event", "member_checked_out", "member_id", input.MemberID, "attendance_id", a.ID, "minutes", int(a.Duration(now).Minutes()))
		return a, nil
	}
	return attendance.Attendance{}, attendance.ErrNotCheckedIn
}
