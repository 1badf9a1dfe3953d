package projections

import (
	"context"
	"time"

	"frontdesk/internal/adapters/storage/attendance"
)

// AttendanceTodayStore defines the attendance store interface for this projection.
type AttendanceTodayStore interface {
	ListOnDate(ctx context.Context, day time.Time) ([]attendance.Visit, error)
}

// GetAttendanceTodayQuery carries query parameters.
type GetAttendanceTodayQuery struct {
	Now  time.Time
	Date string // Optional YYYY-MM-DD, defaults to Now's day
}

// AttendanceWithMember represents attendance with member details.
type AttendanceWithMember struct {
	AttendanceID string
	MemberID     string
	MemberName   string
	CheckInTime  time.Time
	CheckOutTime time.Time
	Inside       bool
	Duration     time.Duration
}

// GetAttendanceTodayResult carries the query result.
type GetAttendanceTodayResult struct {
	Date      string
	Attendees []AttendanceWithMember
	Inside    int
}

// GetAttendanceTodayDeps holds dependencies for GetAttendanceToday.
type GetAttendanceTodayDeps struct {
	AttendanceStore AttendanceTodayStore
}

// QueryGetAttendanceToday lists the day's check-ins in arrival order.
// PRE: query.Now is set
// POST: Inside counts visits without a check-out; an unparseable Date falls back to today
func QueryGetAttendanceToday(ctx context.Context, query GetAttendanceTodayQuery, deps GetAttendanceTodayDeps) (GetAttendanceTodayResult, error) {
	day := query.Now
	if query.Date != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", query.Date, query.Now.Location()); err == nil {
			day = parsed
		}
	}

	visits, err := deps.AttendanceStore.ListOnDate(ctx, day)
	if err != nil {
		return GetAttendanceTodayResult{}, err
	}

	result := GetAttendanceTodayResult{Date: day.Format("2006-01-02"), Attendees: make([]AttendanceWithMember, 0, len(visits))}
	for _, v := range visits {
		inside := !v.IsCheckedOut()
		if inside {
			result.Inside++
		}
		result.Attendees = append(result.Attendees, AttendanceWithMember{
			AttendanceID: v.ID,
			MemberID:     v.MemberID,
			MemberName:   v.MemberName,
			CheckInTime:  v.CheckInTime,
			CheckOutTime: v.CheckOutTime,
			Inside:       inside,
			Duration:     v.Duration(query.Now),
		})
	}
	return result, nil
}
