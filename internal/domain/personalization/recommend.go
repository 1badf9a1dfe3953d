package personalization

import (
	"math"

	"frontdesk/internal/domain/profile"
	"frontdesk/internal/domain/workout"
)

// MaxRecommendations caps the recommended workout list.
const MaxRecommendations = 5

var allowedDifficulty = map[string][]string{
	profile.ExperienceBeginner:     {workout.DifficultyBeginner},
	profile.ExperienceIntermediate: {workout.DifficultyBeginner, workout.DifficultyIntermediate},
	profile.ExperienceAdvanced:     {workout.DifficultyBeginner, workout.DifficultyIntermediate, workout.DifficultyAdvanced},
}

// compatibleGoals lists the workout goal tags that suit a member goal.
// Goals missing here are not filtered on.
var compatibleGoals = map[string][]string{
	profile.GoalMuscleGain: {workout.GoalMuscleGain, workout.GoalStrength, workout.GoalGeneral},
	profile.GoalStrength:   {workout.GoalMuscleGain, workout.GoalStrength, workout.GoalGeneral},
	profile.GoalFatLoss:    {workout.GoalFatLoss, workout.GoalGeneral, workout.GoalEndurance},
}

// RecommendWorkouts filters the library by experience and goal, keeping library order.
// POST: At most MaxRecommendations active workouts are returned
func RecommendWorkouts(p profile.Profile, library []workout.Workout) []workout.Workout {
	difficulties := allowedDifficulty[p.Experience]
	goals, filterGoal := compatibleGoals[p.PrimaryGoal]

	var out []workout.Workout
	for _, w := range library {
		if !w.Active || !contains(difficulties, w.Difficulty) {
			continue
		}
		if filterGoal && !contains(goals, w.GoalType) {
			continue
		}
		out = append(out, w)
		if len(out) == MaxRecommendations {
			break
		}
	}
	return out
}

// BMI categories
const (
	BMIUnderweight = "Underweight"
	BMINormal      = "Normal"
	BMIOverweight  = "Overweight"
	BMIObese       = "Obese"
)

// CalculateBMI returns weight / height(m)^2 rounded to two decimals.
// ok is false when either value is missing or height is not positive.
func CalculateBMI(heightCm, weightKg *float64) (bmi float64, ok bool) {
	if heightCm == nil || weightKg == nil || *heightCm <= 0 {
		return 0, false
	}
	m := *heightCm / 100
	return math.Round(*weightKg/(m*m)*100) / 100, true
}

// BMICategory buckets a BMI value.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
