package projections

import (
	"context"

	workoutStore "frontdesk/internal/adapters/storage/workout"
	"frontdesk/internal/domain/personalization"
	"frontdesk/internal/domain/profile"
	"frontdesk/internal/domain/workout"
)

// RecommendationWorkoutStore defines the workout store interface needed for recommendations.
type RecommendationWorkoutStore interface {
	List(ctx context.Context, filter workoutStore.ListFilter) ([]workout.Workout, error)
}

// GetRecommendedWorkoutsQuery carries input for the recommendation projection.
type GetRecommendedWorkoutsQuery struct {
	MemberID string
}

// GetRecommendedWorkoutsDeps holds dependencies for the recommendation projection.
type GetRecommendedWorkoutsDeps struct {
	ProfileStore ProfileStore
	WorkoutStore RecommendationWorkoutStore
}

// RecommendedWorkoutsResult pairs the member's plan with the matching workouts.
type RecommendedWorkoutsResult struct {
	Profile    profile.Profile
	Objectives personalization.Objectives
	Workouts   []workout.Workout
}

// QueryGetRecommendedWorkouts filters the active library by the member's experience and goal.
// PRE: The member has a profile; otherwise the profile store's ErrNotFound is returned
// POST: At most personalization.MaxRecommendations workouts, in library order
func QueryGetRecommendedWorkouts(ctx context.Context, query GetRecommendedWorkoutsQuery, deps GetRecommendedWorkoutsDeps) (RecommendedWorkoutsResult, error) {
	p, err := deps.ProfileStore.GetByMemberID(ctx, query.MemberID)
	if err != nil {
		return RecommendedWorkoutsResult{}, err
	}
	library, err := deps.WorkoutStore.List(ctx, workoutStore.ListFilter{ActiveOnly: true})
	if err != nil {
		return RecommendedWorkoutsResult{}, err
	}
	return RecommendedWorkoutsResult{
		Profile:    p,
		Objectives: personalization.ObjectivesFor(p.PrimaryGoal, p.HighIntensity),
		Workouts:   personalization.RecommendWorkouts(p, library),
	}, nil
}
