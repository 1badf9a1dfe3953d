package projections

import (
	"context"
	"errors"
	"time"

	profileStore "frontdesk/internal/adapters/storage/profile"
	"frontdesk/internal/domain/member"
	"frontdesk/internal/domain/pass"
	"frontdesk/internal/domain/personalization"
	"frontdesk/internal/domain/profile"
)

// ProfileStore interface for profile queries.
type ProfileStore interface {
	GetByMemberID(ctx context.Context, memberID string) (profile.Profile, error)
}

// GetMemberAnalyticsQuery carries input for the member analytics projection.
type GetMemberAnalyticsQuery struct {
	MemberID string
	Now      time.Time
}

// GetMemberAnalyticsDeps holds dependencies for the member analytics projection.
type GetMemberAnalyticsDeps struct {
	MemberStore     MemberStore
	PassStore       PassStore
	AttendanceStore AttendanceStore
	LogStore        WorkoutLogStore
	ProfileStore    ProfileStore
}

// MemberAnalyticsResult is the member's personal dashboard.
type MemberAnalyticsResult struct {
	Member        member.Member
	ActivePass    *pass.Pass // nil without a valid pass
	DaysRemaining int
	TotalVisits   int
	Activity      personalization.Activity
	Profile       *profile.Profile // nil until the member fills one in
	Objectives    personalization.Objectives
	BMI           float64
	BMICategory   string // empty when height or weight is missing
}

// QueryGetMemberAnalytics builds the visit histograms, streak, workout breakdown and plan for a member.
// PRE: MemberID names an existing member; query.Now is set
// POST: A missing profile leaves Profile nil and Objectives empty
func QueryGetMemberAnalytics(ctx context.Context, query GetMemberAnalyticsQuery, deps GetMemberAnalyticsDeps) (MemberAnalyticsResult, error) {
	m, err := deps.MemberStore.GetByID(ctx, query.MemberID)
	if err != nil {
		return MemberAnalyticsResult{}, err
	}
	result := MemberAnalyticsResult{Member: m}

	passes, err := deps.PassStore.ListByMemberID(ctx, m.ID)
	if err != nil {
		return MemberAnalyticsResult{}, err
	}
	if p, ok := pass.FindValid(passes, query.Now); ok {
		result.ActivePass = &p
		result.DaysRemaining = p.DaysRemaining(query.Now)
	}

	records, err := deps.AttendanceStore.ListByMemberID(ctx, m.ID)
	if err != nil {
		return MemberAnalyticsResult{}, err
	}
	logs, err := deps.LogStore.ListByMemberID(ctx, m.ID)
	if err != nil {
		return MemberAnalyticsResult{}, err
	}
	result.TotalVisits = len(records)
	result.Activity = personalization.BuildActivity(query.Now, checkInTimes(records), logs)

	p, err := deps.ProfileStore.GetByMemberID(ctx, m.ID)
	switch {
	case err == nil:
		result.Profile = &p
		result.Objectives = personalization.ObjectivesFor(p.PrimaryGoal, p.HighIntensity)
		if bmi, ok := personalization.CalculateBMI(p.HeightCm, p.WeightKg); ok {
			result.BMI = bmi
			result.BMICategory = personalization.BMICategory(bmi)
		}
	case !errors.Is(err, profileStore.ErrNotFound):
		return MemberAnalyticsResult{}, err
	}
	return result, nil
}
