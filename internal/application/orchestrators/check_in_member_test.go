package orchestrators

import (
	"context"
	"errors"
	"testing"
	"time"

	"frontdesk/internal/domain/attendance"
	"frontdesk/internal/domain/member"
	"frontdesk/internal/domain/pass"
)

func checkInDeps(passes *mockPassStore, visits *mockVisitStore) CheckInMemberDeps {
	return CheckInMemberDeps{
		MemberStore:     newMockMemberStore(juan),
		PassStore:       passes,
		AttendanceStore: visits,
		GenerateID:      sequentialIDs("visit"),
		Now:             deskNow,
	}
}

// TestExecuteCheckInMember_CreatesVisit verifies a member with a valid pass is admitted.
func TestExecuteCheckInMember_CreatesVisit(t *testing.T) {
	passes := &mockPassStore{passes: []pass.Pass{pass.New("s1", "m1", threeDay, date(2026, 3, 9), deskTime)}}
	visits := &mockVisitStore{}

	result, err := ExecuteCheckInMember(context.Background(), CheckInMemberInput{MemberID: "m1"}, checkInDeps(passes, visits))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Duplicate {
		t.Error("first check-in should not be a duplicate")
	}
	if result.Attendance.PassID != "s1" || !result.Attendance.CheckInTime.Equal(deskTime) {
		t.Errorf("attendance = %+v", result.Attendance)
	}
	if result.DaysRemaining != 2 {
		t.Errorf("DaysRemaining = %d, want 2", result.DaysRemaining)
	}
	if len(visits.visits) != 1 {
		t.Errorf("visits = %d, want 1", len(visits.visits))
	}
}

// TestExecuteCheckInMember_Duplicate verifies a second check-in returns the open visit.
func TestExecuteCheckInMember_Duplicate(t *testing.T) {
	passes := &mockPassStore{passes: []pass.Pass{pass.New("s1", "m1", threeDay, date(2026, 3, 9), deskTime)}}
	visits := &mockVisitStore{visits: []attendance.Attendance{
		{ID: "v0", MemberID: "m1", PassID: "s1", CheckInTime: deskTime.Add(-time.Hour)},
	}}

	result, err := ExecuteCheckInMember(context.Background(), CheckInMemberInput{MemberID: "m1"}, checkInDeps(passes, visits))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Duplicate || result.Attendance.ID != "v0" {
		t.Errorf("result = %+v, want duplicate of v0", result)
	}
	if len(visits.visits) != 1 {
		t.Errorf("visits = %d, want 1", len(visits.visits))
	}
}

// TestExecuteCheckInMember_AfterCheckOut verifies a closed visit allows a new one the same day.
func TestExecuteCheckInMember_AfterCheckOut(t *testing.T) {
	passes := &mockPassStore{passes: []pass.Pass{pass.New("s1", "m1", threeDay, date(2026, 3, 9), deskTime)}}
	visits := &mockVisitStore{visits: []attendance.Attendance{
		{ID: "v0", MemberID: "m1", CheckInTime: deskTime.Add(-3 * time.Hour), CheckOutTime: deskTime.Add(-2 * time.Hour)},
	}}

	result, err := ExecuteCheckInMember(context.Background(), CheckInMemberInput{MemberID: "m1"}, checkInDeps(passes, visits))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Duplicate || len(visits.visits) != 2 {
		t.Errorf("duplicate = %v, visits = %d; want new visit", result.Duplicate, len(visits.visits))
	}
}

// TestExecuteCheckInMember_NoValidPass verifies expired, lapsed and future passes do not admit.
func TestExecuteCheckInMember_NoValidPass(t *testing.T) {
	expired := pass.New("s1", "m1", threeDay, date(2026, 3, 9), deskTime)
	expired.Status = pass.StatusExpired
	tests := []struct {
		name   string
		passes []pass.Pass
	}{
		{"none", nil},
		{"expired status", []pass.Pass{expired}},
		{"ended yesterday", []pass.Pass{pass.New("s2", "m1", threeDay, date(2026, 3, 7), deskTime)}},
		{"starts tomorrow", []pass.Pass{pass.New("s3", "m1", threeDay, date(2026, 3, 11), deskTime)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visits := &mockVisitStore{}
			_, err := ExecuteCheckInMember(context.Background(), CheckInMemberInput{MemberID: "m1"}, checkInDeps(&mockPassStore{passes: tt.passes}, visits))
			if !errors.Is(err, attendance.ErrNoActivePass) {
				t.Errorf("err = %v, want ErrNoActivePass", err)
			}
			if len(visits.visits) != 0 {
				t.Error("no visit should be recorded")
			}
		})
	}
}

// TestExecuteSearchMembers verifies the shortlist honours the query and limit.
func TestExecuteSearchMembers(t *testing.T) {
	store := newMockMemberStore(
		member.Member{ID: "m1", Name: "Juan Dela Cruz"},
		member.Member{ID: "m2", Name: "Miguel Cruz"},
		member.Member{ID: "m3", Name: "Ana Garcia", Phone: "0917-555-0142"},
	)
	deps := SearchMembersDeps{MemberStore: store}

	result, err := ExecuteSearchMembers(context.Background(), SearchMembersInput{Query: "cruz"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Members) != 2 {
		t.Errorf("matches = %d, want 2", len(result.Members))
	}

	result, _ = ExecuteSearchMembers(context.Background(), SearchMembersInput{Query: "cruz", Limit: 1}, deps)
	if len(result.Members) != 1 {
		t.Errorf("limited matches = %d, want 1", len(result.Members))
	}

	result, _ = ExecuteSearchMembers(context.Background(), SearchMembersInput{Query: "555-01"}, deps)
	if len(result.Members) != 1 || result.Members[0].ID != "m3" {
		t.Errorf("phone matches = %+v, want Ana", result.Members)
	}

	result, _ = ExecuteSearchMembers(context.Background(), SearchMembersInput{}, deps)
	if result.Members == nil || len(result.Members) != 0 {
		t.Errorf("empty query = %v, want empty non-nil slice", result.Members)
	}
}
