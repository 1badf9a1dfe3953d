package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"frontdesk/internal/application/orchestrators"
	"frontdesk/internal/application/projections"
	"frontdesk/internal/domain/pass"
	"frontdesk/internal/domain/profile"
)

func (cli *commandLine) saveProfile(ctx context.Context, args []string) error {
	fs := cli.flags("profile-set")
	memberID := fs.String("member", "", "member ID")
	age := fs.Int("age", 0, "age in years")
	gender := fs.String("gender", "", "male, female or other")
	experience := fs.String("experience", profile.ExperienceBeginner, "beginner, intermediate or advanced")
	days := fs.Int("days", 3, "training days per week, 1-6")
	goal := fs.String("goal", profile.GoalGeneral, "muscle_gain, fat_loss, strength, endurance or general")
	intense := fs.Bool("high-intensity", false, "add drop sets and short rests to the plan")
	height := fs.Float64("height", 0, "height in cm")
	weight := fs.Float64("weight", 0, "weight in kg")
	if err := parse(fs, args, "member"); err != nil {
		return err
	}

	input := orchestrators.SaveProfileInput{
		MemberID:      *memberID,
		Age:           *age,
		Gender:        *gender,
		Experience:    *experience,
		TrainingDays:  *days,
		PrimaryGoal:   *goal,
		HighIntensity: *intense,
	}
	if *height > 0 {
		input.HeightCm = height
	}
	if *weight > 0 {
		input.WeightKg = weight
	}
	res, err := orchestrators.ExecuteSaveProfile(ctx, input, orchestrators.SaveProfileDeps{MemberStore: cli.members, ProfileStore: cli.profiles, Now: cli.now})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Saved profile (%d day(s), %s, %s)\n", res.Profile.TrainingDays, res.Profile.Experience, res.Profile.PrimaryGoal)
	cli.printSchedule(res.Profile.WeeklySchedule)
	return nil
}

func (cli *commandLine) printSchedule(schedule map[int][]string) {
	days := make([]int, 0, len(schedule))
	for d := range schedule {
		days = append(days, d)
	}
	sort.Ints(days)
	for _, d := range days {
		fmt.Fprintf(cli.out, "  Day %d: %s\n", d, joinOr(schedule[d], "rest"))
	}
}

func (cli *commandLine) analytics(ctx context.Context, args []string) error {
	fs := cli.flags("analytics")
	memberID := fs.String("member", "", "member ID")
	if err := parse(fs, args, "member"); err != nil {
		return err
	}
	res, err := projections.QueryGetMemberAnalytics(ctx, projections.GetMemberAnalyticsQuery{MemberID: *memberID, Now: cli.now()}, projections.GetMemberAnalyticsDeps{
		MemberStore:     cli.members,
		PassStore:       cli.passes,
		AttendanceStore: cli.visits,
		LogStore:        cli.logs,
		ProfileStore:    cli.profiles,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(cli.out, res.Member.Name)
	if res.ActivePass != nil {
		fmt.Fprintf(cli.out, "  Pass until %s, %d day(s) left\n", res.ActivePass.EndDate.Format(pass.DateLayout), res.DaysRemaining)
	} else {
		fmt.Fprintln(cli.out, "  No valid pass")
	}
	a := res.Activity
	fmt.Fprintf(cli.out, "  Visits: %d total, %d in the last 30 days, streak %d\n", res.TotalVisits, a.VisitsInWindow(), a.Streak)

	week := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	parts := make([]string, 0, len(week))
	for i, name := range week {
		parts = append(parts, fmt.Sprintf("%s %d", name, a.DayOfWeek[i]))
	}
	fmt.Fprintf(cli.out, "  By weekday: %s\n", strings.Join(parts, ", "))
	if h, ok := a.DominantHour(); ok {
		fmt.Fprintf(cli.out, "  Usual time: %s\n", projections.FormatPeakHour(h, ok))
	}

	muscles := make([]string, 0, len(a.MuscleGroups))
	for m, n := range a.MuscleGroups {
		muscles = append(muscles, fmt.Sprintf("%s %d", m, n))
	}
	sort.Strings(muscles)
	fmt.Fprintf(cli.out, "  Muscle groups: %s\n", joinOr(muscles, "none logged"))
	for _, msg := range a.Messages {
		fmt.Fprintf(cli.out, "  %s\n", msg)
	}

	if res.Profile == nil {
		fmt.Fprintln(cli.out, "  No training profile yet")
		return nil
	}
	if res.BMICategory != "" {
		fmt.Fprintf(cli.out, "  BMI %.2f (%s)\n", res.BMI, res.BMICategory)
	}
	fmt.Fprintf(cli.out, "  Goal: %s\n", res.Objectives.Goal)
	for _, g := range res.Objectives.Guidelines {
		fmt.Fprintf(cli.out, "    - %s\n", g)
	}
	cli.printSchedule(res.Profile.WeeklySchedule)
	return nil
}

func (cli *commandLine) recommend(ctx context.Context, args []string) error {
	fs := cli.flags("recommend")
	memberID := fs.String("member", "", "member ID")
	if err := parse(fs, args, "member"); err != nil {
		return err
	}
	res, err := projections.QueryGetRecommendedWorkouts(ctx, projections.GetRecommendedWorkoutsQuery{MemberID: *memberID},
		projections.GetRecommendedWorkoutsDeps{ProfileStore: cli.profiles, WorkoutStore: cli.workouts})
	if err != nil {
		return err
	}
	if len(res.Workouts) == 0 {
		fmt.Fprintln(cli.out, "No workouts match this profile")
		return nil
	}
	for _, w := range res.Workouts {
		fmt.Fprintf(cli.out, "%-28s %-12s %3d min  %s\n", w.Name, w.Difficulty, w.DurationMinutes, strings.Join(w.TargetMuscles, ", "))
	}
	return nil
}

func (cli *commandLine) logWorkout(ctx context.Context, args []string) error {
	fs := cli.flags("log-workout")
	memberID := fs.String("member", "", "member ID")
	name := fs.String("workout", "", "library workout name")
	minutes := fs.Int("minutes", 0, "session length; 0 uses the workout's duration")
	notes := fs.String("notes", "", "free-text notes")
	if err := parse(fs, args, "member", "workout"); err != nil {
		return err
	}
	l, err := orchestrators.ExecuteLogWorkout(ctx, orchestrators.LogWorkoutInput{MemberID: *memberID, WorkoutName: *name, DurationMinutes: *minutes, Notes: *notes},
		orchestrators.LogWorkoutDeps{MemberStore: cli.members, WorkoutStore: cli.workouts, LogStore: cli.logs, GenerateID: cli.newID, Now: cli.now})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Logged %s, %d min\n", l.WorkoutName, l.DurationMinutes)
	return nil
}

func (cli *commandLine) achievements(ctx context.Context, args []string) error {
	fs := cli.flags("achievements")
	memberID := fs.String("member", "", "member ID")
	if err := parse(fs, args, "member"); err != nil {
		return err
	}
	res, err := projections.QueryCheckAchievements(ctx, projections.CheckAchievementsQuery{MemberID: *memberID, Now: cli.now()},
		projections.CheckAchievementsDeps{AchievementStore: cli.badges, AttendanceStore: cli.visits, LogStore: cli.logs, GenerateID: cli.newID})
	if err != nil {
		return err
	}
	for _, a := range res.Achievements {
		mark := " "
		if a.Unlocked {
			mark = "*"
		}
		suffix := ""
		if a.New {
			suffix = "  NEW"
		}
		fmt.Fprintf(cli.out, "[%s] %s %-28s %d/%d%s\n", mark, a.Achievement.Icon, a.Achievement.Name, a.Progress, a.Achievement.Threshold, suffix)
	}
	return nil
}
