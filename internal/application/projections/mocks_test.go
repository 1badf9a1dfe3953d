package projections

import (
	"context"
	"sort"
	"strconv"
	"time"

	attendanceStore "frontdesk/internal/adapters/storage/attendance"
	memberStore "frontdesk/internal/adapters/storage/member"
	passStore "frontdesk/internal/adapters/storage/pass"
	profileStore "frontdesk/internal/adapters/storage/profile"
	workoutStore "frontdesk/internal/adapters/storage/workout"
	"frontdesk/internal/domain/achievement"
	"frontdesk/internal/domain/attendance"
	"frontdesk/internal/domain/member"
	"frontdesk/internal/domain/pass"
	"frontdesk/internal/domain/profile"
	"frontdesk/internal/domain/workout"

	"github.com/shopspring/decimal"
)

// deskTime is a Tuesday evening at the front desk.
var deskTime = time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

type mockMemberStore struct {
	members []member.Member
	filters []memberStore.ListFilter
}

func (m *mockMemberStore) GetByID(_ context.Context, id string) (member.Member, error) {
	for _, mem := range m.members {
		if mem.ID == id {
			return mem, nil
		}
	}
	return member.Member{}, memberStore.ErrNotFound
}

// List honours Limit the way the SQLite store does.
func (m *mockMemberStore) List(_ context.Context, filter memberStore.ListFilter) ([]member.Member, error) {
	m.filters = append(m.filters, filter)
	if filter.Limit > 0 && filter.Limit < len(m.members) {
		return m.members[:filter.Limit], nil
	}
	return m.members, nil
}

type mockPassStore struct {
	passes  []pass.Pass
	sales   []passStore.PlanSales
	total   decimal.Decimal
	today   decimal.Decimal
	active  int
	expired int
	sweeps  int
}

func (m *mockPassStore) ListByMemberID(_ context.Context, memberID string) ([]pass.Pass, error) {
	var out []pass.Pass
	for _, p := range m.passes {
		if p.MemberID == memberID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPassStore) ListValidOn(_ context.Context, today time.Time) ([]pass.Pass, error) {
	var out []pass.Pass
	for _, p := range m.passes {
		if p.IsValid(today) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPassStore) SweepExpired(_ context.Context, today time.Time) (int, error) {
	m.sweeps++
	n := 0
	for i := range m.passes {
		if m.passes[i].RecomputeStatus(today) {
			n++
		}
	}
	return n, nil
}

func (m *mockPassStore) ListExpired(_ context.Context, today time.Time, limit int) ([]pass.Pass, error) {
	var out []pass.Pass
	for _, p := range m.passes {
		if p.IsExpired(today) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].EndDate.After(out[j].EndDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockPassStore) CountActive(_ context.Context, _ time.Time) (int, error)  { return m.active, nil }
func (m *mockPassStore) CountExpired(_ context.Context, _ time.Time) (int, error) { return m.expired, nil }
func (m *mockPassStore) SumRevenue(_ context.Context) (decimal.Decimal, error)    { return m.total, nil }
func (m *mockPassStore) SumRevenueOn(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return m.today, nil
}
func (m *mockPassStore) SalesByPlan(_ context.Context) ([]passStore.PlanSales, error) {
	return m.sales, nil
}

type mockAttendanceStore struct {
	records []attendance.Attendance
	visits  []attendanceStore.Visit
	hourly  [24]int
	today   int
}

func (m *mockAttendanceStore) ListByMemberID(_ context.Context, memberID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range m.records {
		if a.MemberID == memberID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockAttendanceStore) CheckInTimesByMember(_ context.Context) (map[string][]time.Time, error) {
	out := make(map[string][]time.Time)
	for _, a := range m.records {
		out[a.MemberID] = append(out[a.MemberID], a.CheckInTime)
	}
	for _, times := range out {
		sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	}
	return out, nil
}

func (m *mockAttendanceStore) ListOnDate(_ context.Context, _ time.Time) ([]attendanceStore.Visit, error) {
	return m.visits, nil
}

func (m *mockAttendanceStore) CountOnDate(_ context.Context, _ time.Time) (int, error) {
	return m.today, nil
}

func (m *mockAttendanceStore) HourlyCounts(_ context.Context) ([24]int, error) {
	return m.hourly, nil
}

// visits returns one check-in per timestamp for a member.
func visits(memberID string, times ...time.Time) []attendance.Attendance {
	out := make([]attendance.Attendance, 0, len(times))
	for i, t := range times {
		out = append(out, attendance.Attendance{ID: memberID + "-a" + strconv.Itoa(i), MemberID: memberID, CheckInTime: t})
	}
	return out
}

type mockLogStore struct {
	logs []workout.Log
}

func (m *mockLogStore) ListByMemberID(_ context.Context, memberID string) ([]workout.Log, error) {
	var out []workout.Log
	for _, l := range m.logs {
		if l.MemberID == memberID {
			out = append(out, l)
		}
	}
	return out, nil
}

type mockProfileStore struct {
	profiles map[string]profile.Profile
}

func (m *mockProfileStore) GetByMemberID(_ context.Context, memberID string) (profile.Profile, error) {
	p, ok := m.profiles[memberID]
	if !ok {
		return profile.Profile{}, profileStore.ErrNotFound
	}
	return p, nil
}

type mockWorkoutStore struct {
	workouts []workout.Workout
}

func (m *mockWorkoutStore) List(_ context.Context, filter workoutStore.ListFilter) ([]workout.Workout, error) {
	var out []workout.Workout
	for _, w := range m.workouts {
		if filter.ActiveOnly && !w.Active {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

type mockAchievementStore struct {
	catalog  []achievement.Achievement
	unlocked []achievement.MemberAchievement
}

func (m *mockAchievementStore) List(_ context.Context) ([]achievement.Achievement, error) {
	return m.catalog, nil
}

func (m *mockAchievementStore) Unlock(_ context.Context, value achievement.MemberAchievement) (bool, error) {
	for _, u := range m.unlocked {
		if u.MemberID == value.MemberID && u.AchievementID == value.AchievementID {
			return false, nil
		}
	}
	m.unlocked = append(m.unlocked, value)
	return true, nil
}

func (m *mockAchievementStore) ListUnlocked(_ context.Context, memberID string) ([]achievement.MemberAchievement, error) {
	var out []achievement.MemberAchievement
	for _, u := range m.unlocked {
		if u.MemberID == memberID {
			out = append(out, u)
		}
	}
	return out, nil
}
