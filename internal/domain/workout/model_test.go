package workout_test

import (
	"errors"
	"testing"

	"frontdesk/internal/domain/workout"
)

func pushDay() workout.Workout {
	return workout.Workout{
		Name:            "Intermediate Upper Body Push",
		Difficulty:      workout.DifficultyIntermediate,
		TargetMuscles:   []string{"Chest", "Shoulders", "Triceps"},
		GoalType:        workout.GoalMuscleGain,
		DurationMinutes: 60,
		Exercises: []workout.Exercise{
			{Name: "Bench Press", Sequence: 3, Sets: 4, Reps: "8-10 reps", RestSeconds: 90},
			{Name: "Dynamic Stretching", Sequence: 1, Sets: 1, Reps: "5 mins", Warmup: true},
			{Name: "Light Cardio (Jumping Jacks)", Sequence: 2, Sets: 1, Reps: "2 mins", Warmup: true},
		},
	}
}

// TestWorkout_Validate tests validation of Workout.
func TestWorkout_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(w *workout.Workout)
		wantErr error
	}{
		{"valid", func(w *workout.Workout) {}, nil},
		{"empty name", func(w *workout.Workout) { w.Name = "" }, workout.ErrEmptyName},
		{"bad difficulty", func(w *workout.Workout) { w.Difficulty = "expert" }, workout.ErrInvalidDifficulty},
		{"bad goal", func(w *workout.Workout) { w.GoalType = "yoga" }, workout.ErrInvalidGoalType},
		{"zero duration", func(w *workout.Workout) { w.DurationMinutes = 0 }, workout.ErrInvalidDuration},
		{"zero sets", func(w *workout.Workout) { w.Exercises[0].Sets = 0 }, workout.ErrInvalidSets},
		{"duplicate sequence", func(w *workout.Workout) { w.Exercises[0].Sequence = 1 }, workout.ErrDuplicateSequence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := pushDay()
			tt.mutate(&w)
			if err := w.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestWorkout_SortExercises checks ordering by sequence.
func TestWorkout_SortExercises(t *testing.T) {
	w := pushDay()
	w.SortExercises()
	want := []string{"Dynamic Stretching", "Light Cardio (Jumping Jacks)", "Bench Press"}
	for i, name := range want {
		if w.Exercises[i].Name != name {
			t.Errorf("Exercises[%d] = %q, want %q", i, w.Exercises[i].Name, name)
		}
	}
	if !w.Targets("Chest") || w.Targets("Legs") {
		t.Error("Targets() mismatch")
	}
}

// TestLog_Validate tests validation of Log.
func TestLog_Validate(t *testing.T) {
	ok := workout.Log{MemberID: "m1", WorkoutName: "HIIT Cardio Blaster", DurationMinutes: 30}
	if err := ok.Validate(); err != nil {
		t.Fatalf("Validate() unexpected error: %v", err)
	}
	noName := ok
	noName.WorkoutName = ""
	if err := noName.Validate(); !errors.Is(err, workout.ErrEmptyWorkoutName) {
		t.Errorf("Validate() error = %v, want ErrEmptyWorkoutName", err)
	}
	noMember := ok
	noMember.MemberID = ""
	if err := noMember.Validate(); !errors.Is(err, workout.ErrEmptyMemberID) {
		t.Errorf("Validate() error = %v, want ErrEmptyMemberID", err)
	}
}
