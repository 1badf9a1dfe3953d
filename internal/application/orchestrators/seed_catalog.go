package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	achievementStore "frontdesk/internal/adapters/storage/achievement"
	planStore "frontdesk/internal/adapters/storage/plan"
	workoutStore "frontdesk/internal/adapters/storage/workout"
	"frontdesk/internal/domain/achievement"
	"frontdesk/internal/domain/plan"
	"frontdesk/internal/domain/workout"
)

// PlanStoreForSeed defines the plan store interface needed by SeedCatalog.
type PlanStoreForSeed interface {
	GetByName(ctx context.Context, name string) (plan.Plan, error)
	Save(ctx context.Context, p plan.Plan) error
}

// WorkoutStoreForSeed defines the workout store interface needed by SeedCatalog.
type WorkoutStoreForSeed interface {
	GetByName(ctx context.Context, name string) (workout.Workout, error)
	Save(ctx context.Context, w workout.Workout) error
}

// AchievementStoreForSeed defines the achievement store interface needed by SeedCatalog.
type AchievementStoreForSeed interface {
	GetByCode(ctx context.Context, code string) (achievement.Achievement, error)
	Save(ctx context.Context, a achievement.Achievement) error
}

// SeedCatalogDeps holds dependencies for SeedCatalog.
type SeedCatalogDeps struct {
	PlanStore        PlanStoreForSeed
	WorkoutStore     WorkoutStoreForSeed
	AchievementStore AchievementStoreForSeed
	GenerateID       func() string
	Now              func() time.Time
}

// SeedCatalogResult counts the catalog rows written.
type SeedCatalogResult struct {
	PlansCreated        int
	WorkoutsCreated     int
	WorkoutsUpdated     int
	AchievementsCreated int
	AchievementsUpdated int
}

// DefaultPlans is the starter plan catalog.
func DefaultPlans() []plan.Plan {
	return []plan.Plan{
		{Name: "1-Day Pass", DurationDays: 1, Price: decimal.RequireFromString("60.00"), Active: true},
		{Name: "3-Day Pass", DurationDays: 3, Price: decimal.RequireFromString("150.00"), Active: true},
		{Name: "7-Day Pass", DurationDays: 7, Price: decimal.RequireFromString("250.00"), Active: true},
	}
}

// ExecuteSeedCatalog creates the default plans, workout library and achievement catalog.
// PRE: none
// POST: Every default entry exists; workouts and achievements are refreshed in place
// INVARIANT: Idempotent; existing plans keep their price, IDs are never reassigned
func ExecuteSeedCatalog(ctx context.Context, deps SeedCatalogDeps) (SeedCatalogResult, error) {
	now := deps.Now()
	var result SeedCatalogResult

	for _, p := range DefaultPlans() {
		_, err := deps.PlanStore.GetByName(ctx, p.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, planStore.ErrNotFound) {
			return result, fmt.Errorf("look up plan %q: %w", p.Name, err)
		}
		p.ID = deps.GenerateID()
		p.CreatedAt = now
		if err := deps.PlanStore.Save(ctx, p); err != nil {
			return result, fmt.Errorf("save plan %q: %w", p.Name, err)
		}
		result.PlansCreated++
	}

	for _, w := range DefaultWorkouts() {
		existing, err := deps.WorkoutStore.GetByName(ctx, w.Name)
		switch {
		case err == nil:
			w.ID = existing.ID
			w.CreatedAt = existing.CreatedAt
			result.WorkoutsUpdated++
		case errors.Is(err, workoutStore.ErrNotFound):
			w.ID = deps.GenerateID()
			w.CreatedAt = now
			result.WorkoutsCreated++
		default:
			return result, fmt.Errorf("look up workout %q: %w", w.Name, err)
		}
		for i := range w.Exercises {
			w.Exercises[i].ID = deps.GenerateID()
			w.Exercises[i].WorkoutID = w.ID
		}
		if err := w.Validate(); err != nil {
			return result, fmt.Errorf("workout %q: %w", w.Name, err)
		}
		if err := deps.WorkoutStore.Save(ctx, w); err != nil {
			return result, fmt.Errorf("save workout %q: %w", w.Name, err)
		}
	}

	for _, a := range achievement.DefaultCatalog() {
		existing, err := deps.AchievementStore.GetByCode(ctx, a.Code)
		switch {
		case err == nil:
			a.ID = existing.ID
			result.AchievementsUpdated++
		case errors.Is(err, achievementStore.ErrNotFound):
			a.ID = deps.GenerateID()
			result.AchievementsCreated++
		default:
			return result, fmt.Errorf("look up achievement %q: %w", a.Code, err)
		}
		if err := a.Validate(); err != nil {
			return result, fmt.Errorf("achievement %q: %w", a.Code, err)
		}
		if err := deps.AchievementStore.Save(ctx, a); err != nil {
			return result, fmt.Errorf("save achievement %q: %w", a.Code, err)
		}
	}

	slog.Info("seed_event", "event", "catalog_seeded", "plans_created", result.PlansCreated,
		"workouts_created", result.WorkoutsCreated, "workouts_updated", result.WorkoutsUpdated,
		"achievements_created", result.AchievementsCreated, "achievements_updated", result.AchievementsUpdated)
	return result, nil
}

// step is one library exercise before sequencing.
type step struct {
	name   string
	sets   int
	reps   string
	rest   int
	warmup bool
}

var warmup = []step{
	{"Dynamic Stretching", 1, "5 mins", 0, true},
	{"Light Cardio (Jumping Jacks)", 1, "2 mins", 0, true},
}

func routine(steps ...step) []workout.Exercise {
	all := append(append([]step(nil), warmup...), steps...)
	out := make([]workout.Exercise, 0, len(all))
	for i, s := range all {
		out = append(out, workout.Exercise{
			Name:        s.name,
			Sequence:    i + 1,
			Sets:        s.sets,
			Reps:        s.reps,
			RestSeconds: s.rest,
			Warmup:      s.warmup,
		})
	}
	return out
}

// DefaultWorkouts is the starter workout library. Every routine opens with the standard warm-up.
func DefaultWorkouts() []workout.Workout {
	return []workout.Workout{
		{
			Name: "Beginner Full Body A", Description: "A complete body workout focusing on fundamental movements. Great for starting out.",
			Difficulty: workout.DifficultyBeginner, GoalType: workout.GoalGeneral, DurationMinutes: 45, Active: true,
			TargetMuscles: []string{"Chest", "Legs", "Back", "Core"},
			Exercises: routine(
				step{"Bodyweight Squats", 3, "12-15 reps", 60, false},
				step{"Push Ups (or Knee Push Ups)", 3, "8-12 reps", 60, false},
				step{"Dumbbell Rows", 3, "12 reps each", 60, false},
				step{"Plank", 3, "30 seconds", 45, false},
			),
		},
		{
			Name: "Beginner Full Body B", Description: "Alternative full body routine to mix things up.",
			Difficulty: workout.DifficultyBeginner, GoalType: workout.GoalGeneral, DurationMinutes: 45, Active: true,
			TargetMuscles: []string{"Shoulders", "Legs", "Arms"},
			Exercises: routine(
				step{"Lunges", 3, "10 reps each leg", 60, false},
				step{"Dumbbell Overhead Press", 3, "10-12 reps", 60, false},
				step{"Lat Pulldowns", 3, "12-15 reps", 60, false},
				step{"Mountain Climbers", 3, "30 seconds", 45, false},
			),
		},
		{
			Name: "Intermediate Upper Body Push", Description: "Focus on chest, shoulders, and triceps.",
			Difficulty: workout.DifficultyIntermediate, GoalType: workout.GoalMuscleGain, DurationMinutes: 60, Active: true,
			TargetMuscles: []string{"Chest", "Shoulders", "Triceps"},
			Exercises: routine(
				step{"Bench Press", 4, "8-10 reps", 90, false},
				step{"Overhead Press", 3, "8-12 reps", 90, false},
				step{"Incline Dumbbell Press", 3, "10-12 reps", 90, false},
				step{"Lateral Raises", 3, "12-15 reps", 60, false},
				step{"Tricep Pushdowns", 3, "12-15 reps", 60, false},
			),
		},
		{
			Name: "Intermediate Upper Body Pull", Description: "Focus on back and biceps.",
			Difficulty: workout.DifficultyIntermediate, GoalType: workout.GoalMuscleGain, DurationMinutes: 60, Active: true,
			TargetMuscles: []string{"Back", "Biceps"},
			Exercises: routine(
				step{"Pull Ups (or Assisted)", 4, "AMRAP", 90, false},
				step{"Barbell Rows", 4, "8-10 reps", 90, false},
				step{"Face Pulls", 3, "12-15 reps", 60, false},
				step{"Bicep Curls", 3, "10-12 reps", 60, false},
				step{"Hammer Curls", 3, "10-12 reps", 60, false},
			),
		},
		{
			Name: "Intermediate Legs & Core", Description: "Leg day essentials.",
			Difficulty: workout.DifficultyIntermediate, GoalType: workout.GoalMuscleGain, DurationMinutes: 75, Active: true,
			TargetMuscles: []string{"Legs", "Core"},
			Exercises: routine(
				step{"Barbell Squats", 4, "6-8 reps", 120, false},
				step{"Romanian Deadlifts", 3, "8-10 reps", 90, false},
				step{"Leg Press", 3, "10-12 reps", 90, false},
				step{"Calf Raises", 3, "15-20 reps", 60, false},
				step{"Hanging Leg Raises", 3, "10-15 reps", 60, false},
			),
		},
		{
			Name: "HIIT Cardio Blaster", Description: "High intensity interval training to burn calories.",
			Difficulty: workout.DifficultyIntermediate, GoalType: workout.GoalFatLoss, DurationMinutes: 30, Active: true,
			TargetMuscles: []string{"Full Body"},
			Exercises: routine(
				step{"Jumping Jacks", 4, "45 sec", 15, false},
				step{"Burpees", 4, "45 sec", 15, false},
				step{"High Knees", 4, "45 sec", 15, false},
			),
		},
		{
			Name: "Advanced Chest Destruction", Description: "High volume chest workout for experienced lifters.",
			Difficulty: workout.DifficultyAdvanced, GoalType: workout.GoalMuscleGain, DurationMinutes: 90, Active: true,
			TargetMuscles: []string{"Chest"},
			Exercises: routine(
				step{"Bench Press", 5, "5 reps", 180, false},
				step{"Incline Dumbbell Press", 4, "8-10 reps", 90, false},
				step{"Weighted Dips", 3, "10-12 reps", 90, false},
				step{"Cable Flyes", 3, "15-20 reps", 60, false},
				step{"Push Ups", 2, "Failure", 60, false},
			),
		},
		{
			Name: "Advanced Back Builder", Description: "Wide and thick back focus.",
			Difficulty: workout.DifficultyAdvanced, GoalType: workout.GoalMuscleGain, DurationMinutes: 90, Active: true,
			TargetMuscles: []string{"Back"},
			Exercises: routine(
				step{"Deadlifts", 4, "5 reps", 180, false},
				step{"Pull Ups", 4, "10 reps (weighted if needed)", 120, false},
				step{"T-Bar Rows", 3, "8-10 reps", 90, false},
				step{"Single Arm Dumbbell Rows", 3, "10-12 reps", 90, false},
				step{"Straight Arm Pulldowns", 2, "15 reps", 60, false},
			),
		},
	}
}
