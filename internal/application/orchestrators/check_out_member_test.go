package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"frontdesk/internal/domain/attendance"
)

// TestExecuteCheckOutMember_ClosesLatestOpenVisit verifies the newest open visit of today is closed.
func TestExecuteCheckOutMember_ClosesLatestOpenVisit(t *testing.T) {
	visits := &mockVisitStore{visits: []attendance.Attendance{
		{ID: "yesterday", MemberID: "m1", CheckInTime: deskTime.AddDate(0, 0, -1)},
		{ID: "morning", MemberID: "m1", CheckInTime: deskTime.Add(-10 * time.Hour), CheckOutTime: deskTime.Add(-9 * time.Hour)},
		{ID: "evening", MemberID: "m1", CheckInTime: deskTime.Add(-time.Hour)},
	}}

	got, err := ExecuteCheckOutMember(context.Background(), CheckOutMemberInput{MemberID: "m1"}, CheckOutMemberDeps{AttendanceStore: visits, Now: deskNow})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "evening" || !got.CheckOutTime.Equal(deskTime) {
		t.Errorf("closed = %+v, want evening at %v", got, deskTime)
	}
	if !visits.visits[0].CheckOutTime.IsZero() {
		t.Error("yesterday's open visit must not be touched")
	}
}

// TestExecuteCheckOutMember_NotCheckedIn verifies the error when no visit is open today.
func TestExecuteCheckOutMember_NotCheckedIn(t *testing.T) {
	visits := &mockVisitStore{visits: []attendance.Attendance{
		{ID: "yesterday", MemberID: "m1", CheckInTime: deskTime.AddDate(0, 0, -1)},
	}}
	deps := CheckOutMemberDeps{AttendanceStore: visits, Now: deskNow}

	if _, err := ExecuteCheckOutMember(context.Background(), CheckOutMemberInput{MemberID: "m1"}, deps); !errors.Is(err, attendance.ErrNotCheckedIn) {
		t.Errorf("err = %v, want ErrNotCheckedIn", err)
	}
	if _, err := ExecuteCheckOutMember(context.Background(), CheckOutMemberInput{}, deps); !errors.Is(err, attendance.ErrEmptyMemberID) {
		t.Errorf("err = %v, want ErrEmptyMemberID", err)
	}
}
