package personalization

import "frontdesk/internal/domain/profile"

// Objectives is the textual plan shown alongside a member's weekly structure.
type Objectives struct {
	Goal       string
	Guidelines []string
}

var goalSentences = map[string]string{
	profile.GoalMuscleGain: "Build lean muscle mass through progressive overload and adequate protein intake.",
	profile.GoalFatLoss:    "Reduce body fat while preserving muscle with consistent training and a calorie deficit.",
	profile.GoalStrength:   "Increase maximal strength on the main compound lifts.",
	profile.GoalEndurance:  "Improve cardiovascular endurance and muscular stamina.",
	profile.GoalGeneral:    "Improve overall fitness and build a sustainable training habit.",
}

const fallbackGoal = "Stay active and build a consistent training routine."

var baseGuidelines = []string{
	"Warm up for 5-10 minutes before every session.",
	"Prioritise proper form over heavier weights.",
	"Sleep 7-9 hours a night to support recovery.",
}

var goalGuidelines = map[string][]string{
	profile.GoalMuscleGain: {
		"Train in the 8-12 rep range and add weight when the last set feels easy.",
		"Eat 1.6-2.2 g of protein per kg of bodyweight.",
	},
	profile.GoalFatLoss: {
		"Add 2-3 cardio or HIIT sessions per week.",
		"Keep a moderate calorie deficit rather than a crash diet.",
	},
	profile.GoalStrength: {
		"Work in the 3-6 rep range on compound lifts with 2-3 minutes of rest.",
	},
	profile.GoalEndurance: {
		"Extend session length gradually and keep rest periods short.",
	},
}

var highIntensityGuidelines = []string{
	"High-intensity mode: finish the last exercise with a drop set or superset.",
	"High-intensity mode: keep rest periods under 60 seconds.",
}

// ObjectivesFor maps a goal to its sentence and the guidelines that apply.
// Unknown goals get a fallback sentence and only the generic guidelines.
func ObjectivesFor(goal string, highIntensity bool) Objectives {
	sentence, ok := goalSentences[goal]
	if !ok {
		sentence = fallbackGoal
	}
	guidelines := append([]string(nil), baseGuidelines...)
	guidelines = append(guidelines, goalGuidelines[goal]...)
	if highIntensity {
		guidelines = append(guidelines, highIntensityGuidelines...)
	}
	return Objectives{Goal: sentence, Guidelines: guidelines}
}
