package projections

import (
	"context"
	"log/slog"
	"time"

	"frontdesk/internal/domain/achievement"
	"frontdesk/internal/domain/pass"
	"frontdesk/internal/domain/personalization"
)

// CheckAchievementsStore defines the achievement store interface for achievement checking.
type CheckAchievementsStore interface {
	List(ctx context.Context) ([]achievement.Achievement, error)
	Unlock(ctx context.Context, value achievement.MemberAchievement) (bool, error)
	ListUnlocked(ctx context.Context, memberID string) ([]achievement.MemberAchievement, error)
}

// CheckAchievementsDeps holds dependencies for the achievement check projection.
type CheckAchievementsDeps struct {
	AchievementStore CheckAchievementsStore
	AttendanceStore  AttendanceStore
	LogStore         WorkoutLogStore
	GenerateID       func() string
}

// CheckAchievementsQuery carries input for the achievement check.
type CheckAchievementsQuery struct {
	MemberID string
	Now      time.Time
}

// AchievementProgress pairs a badge with the member's progress toward it.
type AchievementProgress struct {
	Achievement achievement.Achievement
	Progress    int
	Unlocked    bool
	UnlockedAt  time.Time
	New         bool
}

// CheckAchievementsResult lists the visible catalog with progress.
type CheckAchievementsResult struct {
	Stats        achievement.Stats
	Achievements []AchievementProgress // hidden badges appear only once unlocked
	NewlyEarned  []achievement.Achievement
}

// QueryCheckAchievements evaluates the catalog against the member's activity
// and unlocks any newly earned badges.
// PRE: query.Now is set
// POST: Each (member, achievement) pair is unlocked at most once
func QueryCheckAchievements(ctx context.Context, query CheckAchievementsQuery, deps CheckAchievementsDeps) (CheckAchievementsResult, error) {
	catalog, err := deps.AchievementStore.List(ctx)
	if err != nil {
		return CheckAchievementsResult{}, err
	}
	unlockedRows, err := deps.AchievementStore.ListUnlocked(ctx, query.MemberID)
	if err != nil {
		return CheckAchievementsResult{}, err
	}
	records, err := deps.AttendanceStore.ListByMemberID(ctx, query.MemberID)
	if err != nil {
		return CheckAchievementsResult{}, err
	}
	logs, err := deps.LogStore.ListByMemberID(ctx, query.MemberID)
	if err != nil {
		return CheckAchievementsResult{}, err
	}

	stats := memberStats(query.Now, checkInTimes(records), len(logs))
	activity := personalization.BuildActivity(query.Now, nil, logs)
	stats.MuscleWorkouts = activity.MuscleGroups

	unlockedAt := make(map[string]time.Time, len(unlockedRows))
	unlocked := make(map[string]bool, len(unlockedRows))
	for _, u := range unlockedRows {
		unlockedAt[u.AchievementID] = u.UnlockedAt
		unlocked[u.AchievementID] = true
	}

	result := CheckAchievementsResult{Stats: stats}
	for _, a := range achievement.Unlockable(catalog, stats, unlocked) {
		created, err := deps.AchievementStore.Unlock(ctx, achievement.MemberAchievement{
			ID:            deps.GenerateID(),
			MemberID:      query.MemberID,
			AchievementID: a.ID,
			UnlockedAt:    query.Now,
		})
		if err != nil {
			return CheckAchievementsResult{}, err
		}
		unlocked[a.ID] = true
		unlockedAt[a.ID] = query.Now
		if created {
			result.NewlyEarned = append(result.NewlyEarned, a)
			slog.Info("achievement_event", "event", "achievement_unlocked", "member_id", query.MemberID, "code", a.Code)
		}
	}

	newly := make(map[string]bool, len(result.NewlyEarned))
	for _, a := range result.NewlyEarned {
		newly[a.ID] = true
	}
	for _, a := range catalog {
		if a.Hidden && !unlocked[a.ID] {
			continue
		}
		result.Achievements = append(result.Achievements, AchievementProgress{
			Achievement: a,
			Progress:    a.Progress(stats),
			Unlocked:    unlocked[a.ID],
			UnlockedAt:  unlockedAt[a.ID],
			New:         newly[a.ID],
		})
	}
	return result, nil
}

func memberStats(now time.Time, checkIns []time.Time, workouts int) achievement.Stats {
	s := achievement.Stats{TotalVisits: len(checkIns), TotalWorkouts: workouts}
	byDay := make(map[string]int, len(checkIns))
	var last time.Time
	for _, t := range checkIns {
		local := t.In(now.Location())
		byDay[local.Format("2006-01-02")]++
		if local.After(last) {
			last = local
		}
	}
	s.CurrentStreak = personalization.Streak(now, byDay)
	if len(checkIns) > 0 {
		s.HasVisited = true
		s.DaysSinceLastVisit = pass.DaysBetween(last, now)
	}
	return s
}
