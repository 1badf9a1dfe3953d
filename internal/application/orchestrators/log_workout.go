package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"frontdesk/internal/domain/workout"
)

// WorkoutLibrary looks up library workouts by name.
type WorkoutLibrary interface {
	GetByName(ctx context.Context, name string) (workout.Workout, error)
}

// WorkoutLogStore persists completed sessions.
type WorkoutLogStore interface {
	Save(ctx context.Context, l workout.Log) error
}

// LogWorkoutInput carries input for the workout log orchestrator.
type LogWorkoutInput struct {
	MemberID        string
	WorkoutName     string
	DurationMinutes int // zero uses the library duration
	Notes           string
	CompletedAt     time.Time // zero means now
}

// LogWorkoutDeps holds dependencies for LogWorkout.
type LogWorkoutDeps struct {
	MemberStore  MemberLookup
	WorkoutStore WorkoutLibrary
	LogStore     WorkoutLogStore
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteLogWorkout records that a member completed a library workout.
// PRE: MemberID names an existing member; WorkoutName names a library workout
// POST: Log persisted with the workout's name and target muscles copied in
func ExecuteLogWorkout(ctx context.Context, input LogWorkoutInput, deps LogWorkoutDeps) (workout.Log, error) {
	if _, err := deps.MemberStore.GetByID(ctx, input.MemberID); err != nil {
		return workout.Log{}, err
	}
	w, err := deps.WorkoutStore.GetByName(ctx, strings.TrimSpace(input.WorkoutName))
	if err != nil {
		return workout.Log{}, err
	}

	l := workout.Log{
		ID:              deps.GenerateID(),
		MemberID:        input.MemberID,
		WorkoutID:       w.ID,
		WorkoutName:     w.Name,
		TargetMuscles:   append([]string(nil), w.TargetMuscles...),
		CompletedAt:     input.CompletedAt,
		DurationMinutes: input.DurationMinutes,
		Notes:           strings.TrimSpace(input.Notes),
	}
	if l.CompletedAt.IsZero() {
		l.CompletedAt = deps.Now()
	}
	if l.DurationMinutes == 0 {
		l.DurationMinutes = w.DurationMinutes
	}
	if err := l.Validate(); err != nil {
		return workout.Log{}, err
	}
	if err := deps.LogStore.Save(ctx, l); err != nil {
		return workout.Log{}, fmt.Errorf("save workout log: %w", err)
	}

	slog.Info("workout_event", "event", "workout_logged", "member_id", l.MemberID, "workout", l.WorkoutName, "minutes", l.DurationMinutes)
	return l, nil
}
