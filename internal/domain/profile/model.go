package profile

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrEmptyMemberID       = errors.New("member ID is required")
	ErrInvalidAge          = errors.New("age must be between 0 and 120")
	ErrInvalidGender       = errors.New("gender must be one of: male, female, other")
	ErrInvalidExperience   = errors.New("experience must be one of: beginner, intermediate, advanced")
	ErrInvalidTrainingDays = errors.New("training days must be between 1 and 6")
	ErrInvalidGoal         = errors.New("goal must be one of: muscle_gain, fat_loss, strength, endurance, general")
	ErrInvalidHeight       = errors.New("height must be greater than zero")
	ErrInvalidWeight       = errors.New("weight must be greater than zero")
)

// Experience constants
const (
	ExperienceBeginner     = "beginner"
	ExperienceIntermediate = "intermediate"
	ExperienceAdvanced     = "advanced"
)

// Goal constants
const (
	GoalMuscleGain = "muscle_gain"
	GoalFatLoss    = "fat_loss"
	GoalStrength   = "strength"
	GoalEndurance  = "endurance"
	GoalGeneral    = "general"
)

// Gender constants
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Training day bounds
const (
	MinTrainingDays = 1
	MaxTrainingDays = 6
)

// ValidGoals contains all valid primary goals.
var ValidGoals = []string{GoalMuscleGain, GoalFatLoss, GoalStrength, GoalEndurance, GoalGeneral}

// Profile holds a member's self-declared training parameters.
type Profile struct {
	MemberID       string
	Age            int
	Gender         string // optional
	Experience     string
	TrainingDays   int
	PrimaryGoal    string
	HighIntensity  bool
	WeeklySchedule map[int][]string // training day number (1-based) -> muscle groups
	HeightCm       *float64
	WeightKg       *float64
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks if the Profile has valid data.
// PRE: Profile struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Profile) Validate() error {
	if p.MemberID == "" {
		return ErrEmptyMemberID
	}
	if p.Age < 0 || p.Age > 120 {
		return ErrInvalidAge
	}
	if p.Gender != "" && p.Gender != GenderMale && p.Gender != GenderFemale && p.Gender != GenderOther {
		return ErrInvalidGender
	}
	switch p.Experience {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced:
	default:
		return ErrInvalidExperience
	}
	if p.TrainingDays < MinTrainingDays || p.TrainingDays > MaxTrainingDays {
		return ErrInvalidTrainingDays
	}
	if !isValidGoal(p.PrimaryGoal) {
		return ErrInvalidGoal
	}
	if p.HeightCm != nil && *p.HeightCm <= 0 {
		return ErrInvalidHeight
	}
	if p.WeightKg != nil && *p.WeightKg <= 0 {
		return ErrInvalidWeight
	}
	return nil
}

// NeedsSchedule reports whether the weekly schedule must be regenerated.
// previousDays is the stored training-day count, or 0 for a new profile.
// INVARIANT: Manual schedule edits survive until the day count changes
func (p *Profile) NeedsSchedule(previousDays int) bool {
	return len(p.WeeklySchedule) == 0 || previousDays != p.TrainingDays
}

func isValidGoal(goal string) bool {
	for _, g := range ValidGoals {
		if g == goal {
			return true
		}
	}
	return false
}
