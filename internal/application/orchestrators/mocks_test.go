package orchestrators

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	achievementStore "frontdesk/internal/adapters/storage/achievement"
	memberStore "frontdesk/internal/adapters/storage/member"
	planStore "frontdesk/internal/adapters/storage/plan"
	profileStore "frontdesk/internal/adapters/storage/profile"
	workoutStore "frontdesk/internal/adapters/storage/workout"
	"frontdesk/internal/domain/achievement"
	"frontdesk/internal/domain/attendance"
	"frontdesk/internal/domain/member"
	"frontdesk/internal/domain/pass"
	"frontdesk/internal/domain/plan"
	"frontdesk/internal/domain/profile"
	"frontdesk/internal/domain/workout"
)

// deskTime is a Tuesday evening.
var deskTime = time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)

func deskNow() time.Time { return deskTime }

// sequentialIDs returns a generator yielding prefix-1, prefix-2, ...
func sequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// mockMemberStore is an in-memory member store.
type mockMemberStore struct {
	members map[string]member.Member
	deleted []string
}

func newMockMemberStore(members ...member.Member) *mockMemberStore {
	s := &mockMemberStore{members: make(map[string]member.Member)}
	for _, m := range members {
		s.members[m.ID] = m
	}
	return s
}

func (s *mockMemberStore) GetByID(_ context.Context, id string) (member.Member, error) {
	m, ok := s.members[id]
	if !ok {
		return member.Member{}, fmt.Errorf("%w: %s", memberStore.ErrNotFound, id)
	}
	return m, nil
}

func (s *mockMemberStore) Save(_ context.Context, m member.Member) error {
	s.members[m.ID] = m
	return nil
}

func (s *mockMemberStore) Delete(_ context.Context, id string) error {
	if _, ok := s.members[id]; !ok {
		return fmt.Errorf("%w: %s", memberStore.ErrNotFound, id)
	}
	delete(s.members, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *mockMemberStore) List(_ context.Context, _ memberStore.ListFilter) ([]member.Member, error) {
	out := make([]member.Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *mockMemberStore) Search(ctx context.Context, query string, limit int) ([]member.Member, error) {
	all, _ := s.List(ctx, memberStore.ListFilter{})
	var out []member.Member
	for _, m := range all {
		if strings.Contains(strings.ToLower(m.Name), strings.ToLower(query)) || strings.Contains(m.Phone, query) {
			out = append(out, m)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// mockPlanStore is an in-memory plan store.
type mockPlanStore struct {
	plans      map[string]plan.Plan
	referenced map[string]bool
	saves      int
}

func newMockPlanStore(plans ...plan.Plan) *mockPlanStore {
	s := &mockPlanStore{plans: make(map[string]plan.Plan), referenced: make(map[string]bool)}
	for _, p := range plans {
		s.plans[p.ID] = p
	}
	return s
}

func (s *mockPlanStore) GetByID(_ context.Context, id string) (plan.Plan, error) {
	p, ok := s.plans[id]
	if !ok {
		return plan.Plan{}, fmt.Errorf("%w: %s", planStore.ErrNotFound, id)
	}
	return p, nil
}

func (s *mockPlanStore) GetByName(_ context.Context, name string) (plan.Plan, error) {
	for _, p := range s.plans {
		if p.Name == name {
			return p, nil
		}
	}
	return plan.Plan{}, fmt.Errorf("%w: %s", planStore.ErrNotFound, name)
}

func (s *mockPlanStore) Save(_ context.Context, p plan.Plan) error {
	s.plans[p.ID] = p
	s.saves++
	return nil
}

func (s *mockPlanStore) Delete(_ context.Context, id string) error {
	if s.referenced[id] {
		return fmt.Errorf("%w (1 passes)", plan.ErrReferenced)
	}
	if _, ok := s.plans[id]; !ok {
		return fmt.Errorf("%w: %s", planStore.ErrNotFound, id)
	}
	delete(s.plans, id)
	return nil
}

func (s *mockPlanStore) List(_ context.Context, filter planStore.ListFilter) ([]plan.Plan, error) {
	var out []plan.Plan
	for _, p := range s.plans {
		if filter.ActiveOnly && !p.Active {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DurationDays < out[j].DurationDays })
	return out, nil
}

// mockPassStore is an in-memory pass store.
type mockPassStore struct {
	passes []pass.Pass
}

func (s *mockPassStore) ListByMemberID(_ context.Context, memberID string) ([]pass.Pass, error) {
	var out []pass.Pass
	for _, p := range s.passes {
		if p.MemberID == memberID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *mockPassStore) Save(_ context.Context, p pass.Pass) error {
	for i := range s.passes {
		if s.passes[i].ID == p.ID {
			s.passes[i] = p
			return nil
		}
	}
	s.passes = append(s.passes, p)
	return nil
}

func (s *mockPassStore) SweepExpired(_ context.Context, today time.Time) (int, error) {
	n := 0
	for i := range s.passes {
		if s.passes[i].RecomputeStatus(today) {
			n++
		}
	}
	return n, nil
}

// mockVisitStore is an in-memory attendance store.
type mockVisitStore struct {
	visits []attendance.Attendance
}

func (s *mockVisitStore) ListByMemberIDAndDate(_ context.Context, memberID string, day time.Time) ([]attendance.Attendance, error) {
	want := day.Format("2006-01-02")
	var out []attendance.Attendance
	for _, a := range s.visits {
		if a.MemberID == memberID && a.CheckInTime.In(day.Location()).Format("2006-01-02") == want {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckInTime.After(out[j].CheckInTime) })
	return out, nil
}

func (s *mockVisitStore) Save(_ context.Context, a attendance.Attendance) error {
	for i := range s.visits {
		if s.visits[i].ID == a.ID {
			s.visits[i] = a
			return nil
		}
	}
	s.visits = append(s.visits, a)
	return nil
}

// mockProfileStore is an in-memory profile store.
type mockProfileStore struct {
	profiles map[string]profile.Profile
}

func (s *mockProfileStore) GetByMemberID(_ context.Context, memberID string) (profile.Profile, error) {
	p, ok := s.profiles[memberID]
	if !ok {
		return profile.Profile{}, fmt.Errorf("%w: %s", profileStore.ErrNotFound, memberID)
	}
	return p, nil
}

func (s *mockProfileStore) Save(_ context.Context, p profile.Profile) error {
	if s.profiles == nil {
		s.profiles = make(map[string]profile.Profile)
	}
	s.profiles[p.MemberID] = p
	return nil
}

// mockWorkoutStore is an in-memory workout library.
type mockWorkoutStore struct {
	workouts map[string]workout.Workout // keyed by name
}

func (s *mockWorkoutStore) GetByName(_ context.Context, name string) (workout.Workout, error) {
	w, ok := s.workouts[name]
	if !ok {
		return workout.Workout{}, fmt.Errorf("%w: %s", workoutStore.ErrNotFound, name)
	}
	return w, nil
}

func (s *mockWorkoutStore) Save(_ context.Context, w workout.Workout) error {
	if s.workouts == nil {
		s.workouts = make(map[string]workout.Workout)
	}
	s.workouts[w.Name] = w
	return nil
}

// mockLogStore records saved workout logs.
type mockLogStore struct {
	logs []workout.Log
}

func (s *mockLogStore) Save(_ context.Context, l workout.Log) error {
	s.logs = append(s.logs, l)
	return nil
}

// mockAchievementStore is an in-memory achievement catalog.
type mockAchievementStore struct {
	byCode map[string]achievement.Achievement
}

func (s *mockAchievementStore) GetByCode(_ context.Context, code string) (achievement.Achievement, error) {
	a, ok := s.byCode[code]
	if !ok {
		return achievement.Achievement{}, fmt.Errorf("%w: %s", achievementStore.ErrNotFound, code)
	}
	return a, nil
}

func (s *mockAchievementStore) Save(_ context.Context, a achievement.Achievement) error {
	if s.byCode == nil {
		s.byCode = make(map[string]achievement.Achievement)
	}
	s.byCode[a.Code] = a
	return nil
}
