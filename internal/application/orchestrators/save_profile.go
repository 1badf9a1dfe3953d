package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	profileStore "frontdesk/internal/adapters/storage/profile"
	"frontdesk/internal/domain/personalization"
	"frontdesk/internal/domain/profile"
)

// ProfileStore defines the profile persistence the save orchestrator needs.
type ProfileStore interface {
	GetByMemberID(ctx context.Context, memberID string) (profile.Profile, error)
	Save(ctx context.Context, p profile.Profile) error
}

// SaveProfileInput carries the member's self-declared training parameters.
// WeeklySchedule is optional; a non-empty value is a manual edit and is kept as given.
type SaveProfileInput struct {
	MemberID       string
	Age            int
	Gender         string
	Experience     string
	TrainingDays   int
	PrimaryGoal    string
	HighIntensity  bool
	WeeklySchedule map[int][]string
	HeightCm       *float64
	WeightKg       *float64
}

// SaveProfileDeps holds dependencies for SaveProfile.
type SaveProfileDeps struct {
	MemberStore  MemberLookup
	ProfileStore ProfileStore
	Now          func() time.Time
}

// SaveProfileResult carries the stored profile and whether its schedule was regenerated.
type SaveProfileResult struct {
	Profile     profile.Profile
	Regenerated bool
}

// ExecuteSaveProfile creates or updates a member's profile.
// PRE: MemberID names an existing member
// POST: Profile persisted; WeeklySchedule regenerated from the day count when it is empty
// or TrainingDays changed, otherwise the stored or manually supplied schedule is kept
func ExecuteSaveProfile(ctx context.Context, input SaveProfileInput, deps SaveProfileDeps) (SaveProfileResult, error) {
	now := deps.Now()

	if _, err := deps.MemberStore.GetByID(ctx, input.MemberID); err != nil {
		return SaveProfileResult{}, err
	}

	existing, err := deps.ProfileStore.GetByMemberID(ctx, input.MemberID)
	previousDays := 0
	switch {
	case err == nil:
		previousDays = existing.TrainingDays
	case errors.Is(err, profileStore.ErrNotFound):
		existing = profile.Profile{MemberID: input.MemberID, CreatedAt: now}
	default:
		return SaveProfileResult{}, fmt.Errorf("load profile: %w", err)
	}

	p := existing
	p.Age = input.Age
	p.Gender = input.Gender
	p.Experience = input.Experience
	p.TrainingDays = input.TrainingDays
	p.PrimaryGoal = input.PrimaryGoal
	p.HighIntensity = input.HighIntensity
	p.HeightCm = input.HeightCm
	p.WeightKg = input.WeightKg
	p.Active = true
	p.UpdatedAt = now

	manual := len(input.WeeklySchedule) > 0
	if manual {
		p.WeeklySchedule = input.WeeklySchedule
	}
	if err := p.Validate(); err != nil {
		return SaveProfileResult{}, err
	}

	regenerated := false
	if !manual && p.NeedsSchedule(previousDays) {
		p.WeeklySchedule = personalization.WeeklyStructure(p.TrainingDays)
		regenerated = true
	}

	if err := deps.ProfileStore.Save(ctx, p); err != nil {
		return SaveProfileResult{}, fmt.Errorf("save profile: %w", err)
	}

	slog.Info("profile_event", "event", "profile_saved", "member_id", p.MemberID, "training_days", p.TrainingDays,
		"goal", p.PrimaryGoal, "schedule_regenerated", regenerated, "manual_schedule", manual)
	return SaveProfileResult{Profile: p, Regenerated: regenerated}, nil
}
