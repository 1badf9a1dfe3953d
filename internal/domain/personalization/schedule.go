package personalization

import (
	"frontdesk/internal/domain/profile"
)

// Muscle group labels used by weekly structures.
const (
	Chest     = "Chest"
	Back      = "Back"
	Legs      = "Legs"
	Shoulders = "Shoulders"
	Arms      = "Arms"
	Core      = "Core"
	Triceps   = "Triceps"
	Biceps    = "Biceps"
)

var (
	push = []string{Chest, Shoulders, Triceps}
	pull = []string{Back, Biceps}
	legs = []string{Legs, Core}
)

// splits is indexed by training days per week.
var splits = map[int][][]string{
	1: {{Chest, Back, Legs, Shoulders, Arms, Core}},
	2: {{Chest, Back, Shoulders, Arms}, {Legs, Core}},
	3: {push, pull, legs},
	4: {{Chest, Triceps}, {Back, Biceps}, {Legs}, {Shoulders, Core}},
	5: {{Chest}, {Back}, {Legs}, {Shoulders}, {Arms, Core}},
	6: {push, pull, legs, push, pull, legs},
}

// WeeklyStructure returns the split for the given training days, keyed by 1-based day number.
// Returns an empty map when days is outside 1..6.
// POST: The result is a fresh copy; callers may edit it
func WeeklyStructure(days int) map[int][]string {
	out := make(map[int][]string)
	if days < profile.MinTrainingDays || days > profile.MaxTrainingDays {
		return out
	}
	for i, groups := range splits[days] {
		out[i+1] = append([]string(nil), groups...)
	}
	return out
}
