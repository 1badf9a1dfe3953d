package workout

import (
	"errors"
	"sort"
	"time"
)

// Domain errors
var (
	ErrEmptyName          = errors.New("workout name cannot be empty")
	ErrInvalidDifficulty  = errors.New("difficulty must be one of: beginner, intermediate, advanced")
	ErrInvalidGoalType    = errors.New("goal type must be one of: muscle_gain, fat_loss, strength, endurance, general")
	ErrInvalidDuration    = errors.New("duration must be greater than zero")
	ErrEmptyExerciseName  = errors.New("exercise name cannot be empty")
	ErrInvalidSets        = errors.New("sets must be greater than zero")
	ErrNegativeRest       = errors.New("rest time cannot be negative")
	ErrDuplicateSequence  = errors.New("exercise sequence numbers must be unique within a workout")
	ErrEmptyMemberID      = errors.New("workout log must belong to a member")
	ErrEmptyWorkoutName   = errors.New("workout log must name the workout")
	ErrNegativeLogMinutes = errors.New("logged duration cannot be negative")
)

// Difficulty constants
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Goal type constants
const (
	GoalMuscleGain = "muscle_gain"
	GoalFatLoss    = "fat_loss"
	GoalStrength   = "strength"
	GoalEndurance  = "endurance"
	GoalGeneral    = "general"
)

// Workout is a curated routine in the static library.
type Workout struct {
	ID              string
	Name            string
	Description     string
	Difficulty      string
	TargetMuscles   []string // e.g. ["Chest", "Shoulders", "Triceps"]
	GoalType        string
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
	Exercises       []Exercise // ordered by Sequence
}

// Exercise is one ordered step of a Workout.
type Exercise struct {
	ID          string
	WorkoutID   string
	Name        string
	Sequence    int
	Sets        int
	Reps        string // free text: "8-10 reps", "30 seconds", "AMRAP"
	RestSeconds int
	Warmup      bool
}

// Validate checks if the Workout and its exercises have valid data.
// PRE: Workout struct is populated
// POST: Returns nil if valid, error otherwise
func (w *Workout) Validate() error {
	if w.Name == "" {
		return ErrEmptyName
	}
	switch w.Difficulty {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
	default:
		return ErrInvalidDifficulty
	}
	switch w.GoalType {
	case GoalMuscleGain, GoalFatLoss, GoalStrength, GoalEndurance, GoalGeneral:
	default:
		return ErrInvalidGoalType
	}
	if w.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	seen := make(map[int]bool, len(w.Exercises))
	for _, e := range w.Exercises {
		if err := e.Validate(); err != nil {
			return err
		}
		if seen[e.Sequence] {
			return ErrDuplicateSequence
		}
		seen[e.Sequence] = true
	}
	return nil
}

// SortExercises orders exercises by their sequence number.
func (w *Workout) SortExercises() {
	sort.SliceStable(w.Exercises, func(i, j int) bool {
		return w.Exercises[i].Sequence < w.Exercises[j].Sequence
	})
}

// Targets reports whether the workout lists the given muscle group.
func (w *Workout) Targets(muscle string) bool {
	for _, m := range w.TargetMuscles {
		if m == muscle {
			return true
		}
	}
	return false
}

// Validate checks if the Exercise has valid data.
func (e *Exercise) Validate() error {
	if e.Name == "" {
		return ErrEmptyExerciseName
	}
	if e.Sets <= 0 {
		return ErrInvalidSets
	}
	if e.RestSeconds < 0 {
		return ErrNegativeRest
	}
	return nil
}

// Log records a completed workout session.
type Log struct {
	ID              string
	MemberID        string
	WorkoutID       string // optional; cleared when the workout is deleted
	WorkoutName     string // snapshot so history survives workout deletion
	TargetMuscles   []string
	CompletedAt     time.Time
	DurationMinutes int
	Notes           string
}

// Validate checks if the Log has valid data.
// PRE: Log struct is populated
// POST: Returns nil if valid, error otherwise
func (l *Log) Validate() error {
	if l.MemberID == "" {
		return ErrEmptyMemberID
	}
	if l.WorkoutName == "" {
		return ErrEmptyWorkoutName
	}
	if l.DurationMinutes < 0 {
		return ErrNegativeLogMinutes
	}
	return nil
}
