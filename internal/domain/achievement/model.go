package achievement

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrEmptyCode          = errors.New("achievement code cannot be empty")
	ErrEmptyName          = errors.New("achievement name cannot be empty")
	ErrInvalidCategory    = errors.New("category must be one of: consistency, muscle, savage, discipline, fun")
	ErrInvalidMetric      = errors.New("metric must be one of: visits, streak_days, workouts, muscle_workouts, days_inactive")
	ErrZeroThreshold      = errors.New("threshold must be greater than zero")
	ErrMissingMuscleGroup = errors.New("muscle_workouts achievements need a muscle group")
	ErrEmptyMemberID      = errors.New("member ID cannot be empty")
	ErrEmptyAchievementID = errors.New("achievement ID cannot be empty")
)

// Category constants
const (
	CategoryConsistency = "consistency"
	CategoryMuscle      = "muscle"
	CategorySavage      = "savage"
	CategoryDiscipline  = "discipline"
	CategoryFun         = "fun"
)

// Metric constants
const (
	MetricVisits         = "visits"
	MetricStreakDays     = "streak_days"
	MetricWorkouts       = "workouts"
	MetricMuscleWorkouts = "muscle_workouts"
	MetricDaysInactive   = "days_inactive"
)

// ValidMetrics contains all valid achievement metrics.
var ValidMetrics = []string{MetricVisits, MetricStreakDays, MetricWorkouts, MetricMuscleWorkouts, MetricDaysInactive}

// Achievement is a badge in the catalog.
type Achievement struct {
	ID          string
	Code        string // stable key used by seeding
	Name        string
	Description string
	Icon        string
	Category    string
	Hidden      bool // not listed until unlocked
	Metric      string
	Threshold   int
	MuscleGroup string // only for muscle_workouts
}

// MemberAchievement records that a member unlocked an achievement.
type MemberAchievement struct {
	ID            string
	MemberID      string
	AchievementID string
	UnlockedAt    time.Time
}

// Stats is the member activity the catalog is evaluated against.
type Stats struct {
	TotalVisits        int
	CurrentStreak      int
	TotalWorkouts      int
	MuscleWorkouts     map[string]int // muscle label -> completed logs targeting it
	DaysSinceLastVisit int
	HasVisited         bool
}

// Validate checks if the Achievement has valid data.
// PRE: Achievement struct is populated
// POST: Returns nil if valid, error otherwise
func (a *Achievement) Validate() error {
	if a.Code == "" {
		return ErrEmptyCode
	}
	if a.Name == "" {
		return ErrEmptyName
	}
	switch a.Category {
	case CategoryConsistency, CategoryMuscle, CategorySavage, CategoryDiscipline, CategoryFun:
	default:
		return ErrInvalidCategory
	}
	if !isValidMetric(a.Metric) {
		return ErrInvalidMetric
	}
	if a.Threshold <= 0 {
		return ErrZeroThreshold
	}
	if a.Metric == MetricMuscleWorkouts && a.MuscleGroup == "" {
		return ErrMissingMuscleGroup
	}
	return nil
}

// Validate checks if the MemberAchievement has valid data.
func (m *MemberAchievement) Validate() error {
	if m.MemberID == "" {
		return ErrEmptyMemberID
	}
	if m.AchievementID == "" {
		return ErrEmptyAchievementID
	}
	return nil
}

// Progress returns the member's current value for the achievement's metric.
func (a *Achievement) Progress(s Stats) int {
	switch a.Metric {
	case MetricVisits:
		return s.TotalVisits
	case MetricStreakDays:
		return s.CurrentStreak
	case MetricWorkouts:
		return s.TotalWorkouts
	case MetricMuscleWorkouts:
		total := 0
		for _, label := range muscleAliases(a.MuscleGroup) {
			total += s.MuscleWorkouts[label]
		}
		return total
	case MetricDaysInactive:
		if !s.HasVisited {
			return 0
		}
		return s.DaysSinceLastVisit
	}
	return 0
}

// IsEarned reports whether the stats meet the threshold.
func (a *Achievement) IsEarned(s Stats) bool {
	return a.Progress(s) >= a.Threshold
}

// Unlockable returns the catalog entries earned by s that are not yet unlocked.
// PRE: unlocked is keyed by achievement ID
// POST: Catalog order is preserved
func Unlockable(catalog []Achievement, s Stats, unlocked map[string]bool) []Achievement {
	var out []Achievement
	for _, a := range catalog {
		if unlocked[a.ID] {
			continue
		}
		if a.IsEarned(s) {
			out = append(out, a)
		}
	}
	return out
}

// muscleAliases expands umbrella groups to the labels workouts use.
func muscleAliases(group string) []string {
	if group == "Arms" {
		return []string{"Arms", "Biceps", "Triceps"}
	}
	return []string{group}
}

func isValidMetric(metric string) bool {
	for _, v := range ValidMetrics {
		if v == metric {
			return true
		}
	}
	return false
}

// DefaultCatalog is the seeded badge set.
func DefaultCatalog() []Achievement {
	return []Achievement{
		{Code: "certified-masarap", Name: "Certified Masarap", Description: "Consistent gym attendance for 365 days. Discipline = attractive.", Icon: "😤", Category: CategoryConsistency, Metric: MetricStreakDays, Threshold: 365},
		{Code: "di-ka-na-mamatay", Name: "Di Ka Na Mamatay", Description: "180 days of continuous workouts. Hindi ka na pang soft.", Icon: "🧟", Category: CategoryConsistency, Metric: MetricStreakDays, Threshold: 180},
		{Code: "hindi-na-baguhan", Name: "Hindi Na Baguhan", Description: "30 total gym visits completed.", Icon: "🏃", Category: CategoryConsistency, Metric: MetricVisits, Threshold: 30},
		{Code: "cobra", Name: "Cobra", Description: "Completed 100+ back-focused workouts.", Icon: "🐍", Category: CategoryMuscle, Metric: MetricMuscleWorkouts, Threshold: 100, MuscleGroup: "Back"},
		{Code: "manok-legs-no-more", Name: "Manok Legs No More", Description: "50 leg day workouts completed.", Icon: "🦵", Category: CategoryMuscle, Metric: MetricMuscleWorkouts, Threshold: 50, MuscleGroup: "Legs"},
		{Code: "tibay-ng-dibdib", Name: "Tibay ng Dibdib", Description: "75 chest workouts completed.", Icon: "🦍", Category: CategoryMuscle, Metric: MetricMuscleWorkouts, Threshold: 75, MuscleGroup: "Chest"},
		{Code: "balikat-ng-diyos", Name: "Balikat ng Diyos", Description: "60 shoulder-focused workouts completed.", Icon: "🗿", Category: CategoryMuscle, Metric: MetricMuscleWorkouts, Threshold: 60, MuscleGroup: "Shoulders"},
		{Code: "bisig-ni-tanggol", Name: "Bisig ni Tanggol", Description: "80 arm workouts completed.", Icon: "💪", Category: CategoryMuscle, Metric: MetricMuscleWorkouts, Threshold: 80, MuscleGroup: "Arms"},
		{Code: "weakshit", Name: "Weakshit", Description: "Shame Badge: No gym activity for 30 consecutive days.", Icon: "🥲", Category: CategorySavage, Hidden: true, Metric: MetricDaysInactive, Threshold: 30},
		{Code: "consistency-over-motivation", Name: "Consistency > Motivation", Description: "3 months of steady attendance (any pace).", Icon: "🧠", Category: CategoryDiscipline, Metric: MetricVisits, Threshold: 90},
		{Code: "gym-is-therapy", Name: "Gym Is Therapy", Description: "100 total workouts completed.", Icon: "🖤", Category: CategoryDiscipline, Metric: MetricWorkouts, Threshold: 100},
	}
}
