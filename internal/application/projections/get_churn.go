package projections

import (
	"context"
	"fmt"
	"time"

	memberStore "frontdesk/internal/adapters/storage/member"
	"frontdesk/internal/domain/churn"
	"frontdesk/internal/domain/member"
	"frontdesk/internal/domain/pass"
)

// ChurnMemberStore defines the member store interface needed by the churn projections.
type ChurnMemberStore interface {
	List(ctx context.Context, filter memberStore.ListFilter) ([]member.Member, error)
}

// ChurnPassStore defines the pass store interface needed by the churn projections.
type ChurnPassStore interface {
	ListValidOn(ctx context.Context, today time.Time) ([]pass.Pass, error)
}

// ChurnAttendanceStore defines the attendance store interface needed by the churn projections.
type ChurnAttendanceStore interface {
	CheckInTimesByMember(ctx context.Context) (map[string][]time.Time, error)
}

// GetChurnDeps holds dependencies for the churn projections.
type GetChurnDeps struct {
	MemberStore     ChurnMemberStore
	PassStore       ChurnPassStore
	AttendanceStore ChurnAttendanceStore
}

// GetChurnQuery carries input for the churn projections.
type GetChurnQuery struct {
	Now      time.Time
	Strategy string // churn.StrategyHeuristic (default) or churn.StrategyClassifier
}

// MemberChurn is one member's features and return prediction.
type MemberChurn struct {
	MemberID   string           `json:"member_id"`
	Name       string           `json:"name"`
	Email      string           `json:"-"`
	Features   churn.Features   `json:"features"`
	Prediction churn.Prediction `json:"prediction"`
}

// ChurnReport scores every member.
type ChurnReport struct {
	Strategy     string                        `json:"strategy"`
	Members      []MemberChurn                 `json:"members"`
	Distribution map[churn.ProbabilityRisk]int `json:"distribution"`
	Returns      churn.Returns                 `json:"expected_returns"`
}

// QueryChurn predicts the return probability of every member.
// The classifier strategy trains on the features of the whole membership first.
// PRE: query.Now is set
// POST: Distribution always has High, Medium and Low keys
func QueryChurn(ctx context.Context, query GetChurnQuery, deps GetChurnDeps) (ChurnReport, error) {
	members, err := deps.MemberStore.List(ctx, memberStore.ListFilter{})
	if err != nil {
		return ChurnReport{}, err
	}
	valid, err := deps.PassStore.ListValidOn(ctx, query.Now)
	if err != nil {
		return ChurnReport{}, err
	}
	checkIns, err := deps.AttendanceStore.CheckInTimesByMember(ctx)
	if err != nil {
		return ChurnReport{}, err
	}

	passesByMember := make(map[string][]pass.Pass)
	for _, p := range valid {
		passesByMember[p.MemberID] = append(passesByMember[p.MemberID], p)
	}

	report := ChurnReport{
		Strategy:     query.Strategy,
		Members:      make([]MemberChurn, 0, len(members)),
		Distribution: map[churn.ProbabilityRisk]int{churn.RiskHigh: 0, churn.RiskMedium: 0, churn.RiskLow: 0},
	}
	if report.Strategy == "" {
		report.Strategy = churn.StrategyHeuristic
	}

	population := make([]churn.Features, 0, len(members))
	for _, m := range members {
		var active *pass.Pass
		if p, ok := pass.FindValid(passesByMember[m.ID], query.Now); ok {
			active = &p
		}
		f := churn.FeaturesFor(query.Now, active, checkIns[m.ID])
		population = append(population, f)
		report.Members = append(report.Members, MemberChurn{MemberID: m.ID, Name: m.Name, Email: m.Email, Features: f})
	}

	estimator, err := churn.NewEstimator(report.Strategy, population)
	if err != nil {
		return ChurnReport{}, err
	}

	probabilities := make([]float64, 0, len(report.Members))
	for i := range report.Members {
		pred := churn.Predict(report.Members[i].Features, estimator)
		report.Members[i].Prediction = pred
		report.Distribution[pred.Risk]++
		probabilities = append(probabilities, pred.Probability)
	}
	report.Returns = churn.ExpectedReturns(probabilities)
	return report, nil
}

// GetMemberChurnQuery carries input for a single member's prediction.
type GetMemberChurnQuery struct {
	MemberID string
	Now      time.Time
	Strategy string
}

// QueryMemberChurn returns one member's prediction, scored against the whole membership.
// PRE: MemberID names an existing member
// POST: Returns memberStore.ErrNotFound for an unknown member
func QueryMemberChurn(ctx context.Context, query GetMemberChurnQuery, deps GetChurnDeps) (MemberChurn, error) {
	report, err := QueryChurn(ctx, GetChurnQuery{Now: query.Now, Strategy: query.Strategy}, deps)
	if err != nil {
		return MemberChurn{}, err
	}
	for _, mc := range report.Members {
		if mc.MemberID == query.MemberID {
			return mc, nil
		}
	}
	return MemberChurn{}, fmt.Errorf("%w: %s", memberStore.ErrNotFound, query.MemberID)
}

// QueryChurnDistribution counts members per probability risk band.
func QueryChurnDistribution(ctx context.Context, query GetChurnQuery, deps GetChurnDeps) (map[churn.ProbabilityRisk]int, error) {
	report, err := QueryChurn(ctx, query, deps)
	if err != nil {
		return nil, err
	}
	return report.Distribution, nil
}

// QueryExpectedReturns estimates how many members come back over the next few days.
func QueryExpectedReturns(ctx context.Context, query GetChurnQuery, deps GetChurnDeps) (churn.Returns, error) {
	report, err := QueryChurn(ctx, query, deps)
	if err != nil {
		return churn.Returns{}, err
	}
	return report.Returns, nil
}
