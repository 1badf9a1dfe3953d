package personalization

import (
	"fmt"
	"time"

	"frontdesk/internal/domain/workout"
)

// Window sizes for member activity analytics.
const (
	DailyWindowDays   = 30
	WorkoutWindowDays = 7
	StreakScanDays    = 60
)

// DayCount is a count for one calendar day.
type DayCount struct {
	Date  string // YYYY-MM-DD
	Count int
}

// Activity summarises one member's visits and completed workouts.
type Activity struct {
	Daily         []DayCount     // last 30 days, oldest first, today last
	DayOfWeek     [7]int         // Monday first, all history
	Hourly        [24]int        // all history
	Streak        int            // consecutive visit days ending today or yesterday
	MuscleGroups  map[string]int // muscle label -> completed workout logs
	WorkoutsDaily []DayCount     // last 7 days, oldest first
	Messages      []string
}

// VisitsInWindow totals the 30-day daily histogram.
func (a *Activity) VisitsInWindow() int {
	total := 0
	for _, d := range a.Daily {
		total += d.Count
	}
	return total
}

// BuildActivity derives the activity histograms, streak and messages.
// PRE: checkIns and logs may be in any order; times are compared in now's location
// POST: Daily has 30 entries and WorkoutsDaily has 7, both zero-filled
func BuildActivity(now time.Time, checkIns []time.Time, logs []workout.Log) Activity {
	a := Activity{MuscleGroups: make(map[string]int)}

	visitsByDay := make(map[string]int)
	for _, t := range checkIns {
		local := t.In(now.Location())
		visitsByDay[local.Format(dateLayout)]++
		a.DayOfWeek[mondayIndex(local.Weekday())]++
		a.Hourly[local.Hour()]++
	}
	a.Daily = window(now, DailyWindowDays, visitsByDay)
	a.Streak = Streak(now, visitsByDay)

	logsByDay := make(map[string]int)
	for _, l := range logs {
		logsByDay[l.CompletedAt.In(now.Location()).Format(dateLayout)]++
		for _, m := range l.TargetMuscles {
			a.MuscleGroups[m]++
		}
	}
	a.WorkoutsDaily = window(now, WorkoutWindowDays, logsByDay)

	a.Messages = motivationalMessages(&a)
	return a
}

// Streak counts consecutive days with a visit, scanning back from today up to 60 days.
// An empty today does not break the streak; any earlier gap does.
func Streak(now time.Time, visitsByDay map[string]int) int {
	streak := 0
	for i := 0; i < StreakScanDays; i++ {
		key := now.AddDate(0, 0, -i).Format(dateLayout)
		if visitsByDay[key] > 0 {
			streak++
			continue
		}
		if i == 0 {
			continue
		}
		break
	}
	return streak
}

// DominantHour returns the hour with most visits, earliest on ties.
func (a *Activity) DominantHour() (hour int, ok bool) {
	best := 0
	for h, c := range a.Hourly {
		if c > best {
			best, hour = c, h
		}
	}
	return hour, best > 0
}

func motivationalMessages(a *Activity) []string {
	var msgs []string
	if a.Streak >= 3 {
		msgs = append(msgs, fmt.Sprintf("🔥 %d-day streak! Keep the momentum going.", a.Streak))
	}
	if a.DayOfWeek[5]+a.DayOfWeek[6] > 0 {
		msgs = append(msgs, "💪 Weekend warrior! You don't skip the weekend.")
	}
	if h, ok := a.DominantHour(); ok {
		switch {
		case h < 9:
			msgs = append(msgs, "🌅 Early bird! Most of your sessions start before 9 AM.")
		case h >= 18:
			msgs = append(msgs, "🌙 Night owl! You train best in the evening.")
		}
	}
	switch visits := a.VisitsInWindow(); {
	case visits == 0:
		msgs = append(msgs, "👋 We haven't seen you in a while. Your next session is the best one.")
	case visits >= 12:
		msgs = append(msgs, fmt.Sprintf("⭐ %d visits in the last 30 days. Outstanding consistency!", visits))
	}
	return msgs
}

const dateLayout = "2006-01-02"

func window(now time.Time, days int, counts map[string]int) []DayCount {
	out := make([]DayCount, 0, days)
	for i := days - 1; i >= 0; i-- {
		key := now.AddDate(0, 0, -i).Format(dateLayout)
		out = append(out, DayCount{Date: key, Count: counts[key]})
	}
	return out
}

func mondayIndex(d time.Weekday) int {
	return (int(d) + 6) % 7
}
