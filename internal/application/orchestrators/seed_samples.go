package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	memberStore "frontdesk/internal/adapters/storage/member"
	planStore "frontdesk/internal/adapters/storage/plan"
	"frontdesk/internal/domain/attendance"
	"frontdesk/internal/domain/member"
	"frontdesk/internal/domain/pass"
	"frontdesk/internal/domain/plan"
)

// SampleMemberStore defines the member store interface needed by SeedSamples.
type SampleMemberStore interface {
	List(ctx context.Context, filter memberStore.ListFilter) ([]member.Member, error)
	Save(ctx context.Context, m member.Member) error
}

// SamplePlanStore defines the plan store interface needed by SeedSamples.
type SamplePlanStore interface {
	List(ctx context.Context, filter planStore.ListFilter) ([]plan.Plan, error)
}

// SampleAttendanceStore defines the attendance store interface needed by SeedSamples.
type SampleAttendanceStore interface {
	Save(ctx context.Context, a attendance.Attendance) error
}

// SeedSamplesDeps holds dependencies for SeedSamples.
type SeedSamplesDeps struct {
	MemberStore     SampleMemberStore
	PlanStore       SamplePlanStore
	PassStore       PassSaleStore
	AttendanceStore SampleAttendanceStore
	Rand            *rand.Rand
	GenerateID      func() string
	Now             func() time.Time
}

// SeedSamplesResult counts the sample rows written.
type SeedSamplesResult struct {
	Members    int
	Passes     int
	Expired    int
	Attendance int
}

// ErrNoSellablePlans is returned when sample passes are requested before the catalog is seeded.
var ErrNoSellablePlans = fmt.Errorf("no active plans: %w", plan.ErrInactive)

type sampleMember struct {
	name  string
	phone string
}

var sampleMembers = []sampleMember{
	{"Juan Dela Cruz", "09171234567"},
	{"Maria Santos", "09181234567"},
	{"Pedro Reyes", "09191234567"},
	{"Ana Garcia", "09201234567"},
	{"Jose Mendoza", "09211234567"},
	{"Rosa Aquino", "09221234567"},
	{"Carlos Ramos", "09231234567"},
	{"Elena Torres", "09241234567"},
	{"Miguel Cruz", "09251234567"},
	{"Sofia Bautista", ""},
}

// sampleHours are the usual busy hours of a neighbourhood gym.
var sampleHours = []int{6, 7, 8, 9, 17, 18, 19, 20}

// ExecuteSeedSamples creates sample members, passes and a week of check-ins for development.
// Every third member gets an already expired pass; the rest get a pass valid today.
// PRE: The plan catalog holds at least one active plan
// POST: Missing sample members exist; members without passes get one; only newly sold
// valid passes get check-ins, none of them in the future
func ExecuteSeedSamples(ctx context.Context, deps SeedSamplesDeps) (SeedSamplesResult, error) {
	now := deps.Now()
	today := pass.DateOf(now)
	var result SeedSamplesResult

	plans, err := deps.PlanStore.List(ctx, planStore.ListFilter{ActiveOnly: true})
	if err != nil {
		return result, err
	}
	if len(plans) == 0 {
		return result, ErrNoSellablePlans
	}

	existing, err := deps.MemberStore.List(ctx, memberStore.ListFilter{Limit: 10000})
	if err != nil {
		return result, err
	}
	byName := make(map[string]member.Member, len(existing))
	for _, m := range existing {
		byName[m.Name] = m
	}

	for i, s := range sampleMembers {
		m, ok := byName[s.name]
		if !ok {
			m = member.Member{ID: deps.GenerateID(), Name: s.name, Phone: s.phone, CreatedAt: now}
			if err := deps.MemberStore.Save(ctx, m); err != nil {
				return result, fmt.Errorf("save sample member %q: %w", s.name, err)
			}
			result.Members++
		}

		passes, err := deps.PassStore.ListByMemberID(ctx, m.ID)
		if err != nil {
			return result, err
		}
		if len(passes) > 0 {
			continue
		}

		p := plans[deps.Rand.IntN(len(plans))]
		var start time.Time
		if i%3 == 0 {
			start = today.AddDate(0, 0, -(p.DurationDays + 1 + deps.Rand.IntN(10)))
		} else {
			start = today.AddDate(0, 0, -deps.Rand.IntN(p.DurationDays))
		}
		sold := pass.New(deps.GenerateID(), m.ID, p, start, now)
		sold.RecomputeStatus(now)
		if err := deps.PassStore.Save(ctx, sold); err != nil {
			return result, fmt.Errorf("save sample pass: %w", err)
		}
		result.Passes++
		if sold.Status == pass.StatusExpired {
			result.Expired++
			continue
		}

		checkIns := deps.Rand.IntN(6)
		for range checkIns {
			day := today.AddDate(0, 0, -deps.Rand.IntN(7))
			at := day.Add(time.Duration(sampleHours[deps.Rand.IntN(len(sampleHours))])*time.Hour +
				time.Duration(deps.Rand.IntN(60))*time.Minute)
			if at.After(now) {
				continue
			}
			a := attendance.Attendance{ID: deps.GenerateID(), MemberID: m.ID, PassID: sold.ID, CheckInTime: at}
			if err := deps.AttendanceStore.Save(ctx, a); err != nil {
				return result, fmt.Errorf("save sample attendance: %w", err)
			}
			result.Attendance++
		}
	}

	slog.Info("seed_event", "event", "samples_seeded", "members", result.Members, "passes", result.Passes,
		"expired", result.Expired, "attendance", result.Attendance)
	return result, nil
}
