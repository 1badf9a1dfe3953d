package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"frontdesk/internal/domain/attendance"
	"frontdesk/internal/domain/member"
	"frontdesk/internal/domain/pass"
)

// CheckInSearchStore defines the member store interface needed for name or phone search.
type CheckInSearchStore interface {
	GetByID(ctx context.Context, id string) (member.Member, error)
	Search(ctx context.Context, query string, limit int) ([]member.Member, error)
}

// PassListStore lists a member's passes.
type PassListStore interface {
	ListByMemberID(ctx context.Context, memberID string) ([]pass.Pass, error)
}

// VisitStore defines the attendance persistence check-in and check-out need.
type VisitStore interface {
	ListByMemberIDAndDate(ctx context.Context, memberID string, day time.Time) ([]attendance.Attendance, error)
	Save(ctx context.Context, a attendance.Attendance) error
}

// SearchMembersInput carries input for member search by name or phone.
type SearchMembersInput struct {
	Query string
	Limit int
}

// SearchMembersResult carries the shortlist of matching members.
type SearchMembersResult struct {
	Members []member.Member
}

// SearchMembersDeps holds dependencies for SearchMembers.
type SearchMembersDeps struct {
	MemberStore CheckInSearchStore
}

// ExecuteSearchMembers searches names and phone numbers for the front desk shortlist.
// PRE: none
// POST: Returns up to Limit matching members; an empty query returns none
func ExecuteSearchMembers(ctx context.Context, input SearchMembersInput, deps SearchMembersDeps) (SearchMembersResult, error) {
	if input.Query == "" {
		return SearchMembersResult{Members: []member.Member{}}, nil
	}
	if input.Limit <= 0 {
		input.Limit = 10
	}

	members, err := deps.MemberStore.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return SearchMembersResult{}, err
	}
	if members == nil {
		members = []member.Member{}
	}
	return SearchMembersResult{Members: members}, nil
}

// CheckInMemberInput carries input for the check-in orchestrator.
type CheckInMemberInput struct {
	MemberID string
}

// CheckInMemberDeps holds dependencies for CheckInMember.
type CheckInMemberDeps struct {
	MemberStore     MemberLookup
	PassStore       PassListStore
	AttendanceStore VisitStore
	GenerateID      func() string
	Now             func() time.Time
}

// CheckInMemberResult carries the visit and the pass that admitted it.
// Duplicate is true when the member was already inside and no new row was written.
type CheckInMemberResult struct {
	Attendance    attendance.Attendance
	Pass          pass.Pass
	MemberName    string
	DaysRemaining int
	Duplicate     bool
}

// ExecuteCheckInMember admits a member holding a valid pass.
// PRE: MemberID names an existing member
// POST: Attendance created with CheckInTime=now referencing the valid pass,
// or attendance.ErrNoActivePass when the member has none
// INVARIANT: At most one open visit per member per day
func ExecuteCheckInMember(ctx context.Context, input CheckInMemberInput, deps CheckInMemberDeps) (CheckInMemberResult, error) {
	now := deps.Now()

	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return CheckInMemberResult{}, err
	}

	passes, err := deps.PassStore.ListByMemberID(ctx, m.ID)
	if err != nil {
		return CheckInMemberResult{}, fmt.Errorf("list member passes: %w", err)
	}
	valid, ok := pass.FindValid(passes, now)
	if !ok {
		slog.Warn("checkin_event", "event", "checkin_rejected", "member_id", m.ID, "reason", "no_valid_pass")
		return CheckInMemberResult{}, attendance.ErrNoActivePass
	}
	result := CheckInMemberResult{Pass: valid, MemberName: m.Name, DaysRemaining: valid.DaysRemaining(now)}

	today, err := deps.AttendanceStore.ListByMemberIDAndDate(ctx, m.ID, now)
	if err != nil {
		return CheckInMemberResult{}, fmt.Errorf("list today's visits: %w", err)
	}
	for _, a := range today {
		if a.IsOpenOn(now) {
			result.Attendance = a
			result.Duplicate = true
			slog.Info("checkin_event", "event", "member_already_checked_in", "member_id", m.ID, "attendance_id", a.ID)
			return result, nil
		}
	}

	a := attendance.Attendance{
		ID:          deps.GenerateID(),
		MemberID:    m.ID,
		PassID:      valid.ID,
		CheckInTime: now,
	}
	if err := a.Validate(); err != nil {
		return CheckInMemberResult{}, err
	}
	if err := deps.AttendanceStore.Save(ctx, a); err != nil {
		return CheckInMemberResult{}, fmt.Errorf("save attendance: %w", err)
	}

	slog.Info("checkin_event", "event", "member_checked_in", "member_id", m.ID, "name", m.Name, "pass_id", valid.ID, "days_remaining", result.DaysRemaining)
	result.Attendance = a
	return result, nil
}
