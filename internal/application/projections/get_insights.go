package projections

import (
	"context"
	"fmt"
	"time"

	"frontdesk/internal/domain/churn"
)

// GetInsightsDeps holds dependencies for the insight projections.
type GetInsightsDeps struct {
	Dashboard GetDashboardDeps
	Churn     GetChurnDeps
}

// GetInsightsQuery carries input for the insight projections.
type GetInsightsQuery struct {
	Now      time.Time
	Strategy string
}

// DashboardInsights are canned observations for the front desk, plus the
// analyst prompt a language model would be given for the same numbers.
type DashboardInsights struct {
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
	Prompt          string   `json:"prompt"`
}

// QueryDashboardInsights turns the dashboard and churn numbers into insights.
// PRE: query.Now is set
// POST: Three insights when a peak hour exists, two otherwise; always two recommendations
func QueryDashboardInsights(ctx context.Context, query GetInsightsQuery, deps GetInsightsDeps) (DashboardInsights, error) {
	dash, err := QueryGetDashboard(ctx, GetDashboardQuery{Now: query.Now}, deps.Dashboard)
	if err != nil {
		return DashboardInsights{}, err
	}
	report, err := QueryChurn(ctx, GetChurnQuery{Now: query.Now, Strategy: query.Strategy}, deps.Churn)
	if err != nil {
		return DashboardInsights{}, err
	}
	highChurn := report.Distribution[churn.RiskHigh]

	var out DashboardInsights
	switch {
	case dash.TodayCheckins == 0:
		out.Insights = append(out.Insights, "📊 No check-ins recorded today yet. Consider sending reminder notifications to members with active passes.")
	case dash.TodayCheckins < 5:
		out.Insights = append(out.Insights, fmt.Sprintf("📊 Light traffic today with %d check-ins. Good opportunity for equipment maintenance.", dash.TodayCheckins))
	default:
		out.Insights = append(out.Insights, fmt.Sprintf("📊 Strong engagement today with %d check-ins!", dash.TodayCheckins))
	}
	if highChurn > 0 {
		out.Insights = append(out.Insights, fmt.Sprintf("⚠️ %d member(s) show high churn risk. Consider proactive outreach.", highChurn))
	} else {
		out.Insights = append(out.Insights, "✅ No high-risk churn members currently. Retention efforts are working well.")
	}
	if dash.PeakHours.HasData {
		out.Insights = append(out.Insights, fmt.Sprintf("⏰ Peak activity occurs at %s. Ensure adequate staffing during this time.", dash.PeakHours.Label))
	}

	if dash.ActivePasses < 5 {
		out.Recommendations = append(out.Recommendations, "🎯 Run a promotional campaign to boost new pass sales.")
	} else {
		out.Recommendations = append(out.Recommendations, "🎯 Maintain current marketing efforts. Pass sales are healthy.")
	}
	if report.Returns.Maybe > 0 {
		out.Recommendations = append(out.Recommendations, fmt.Sprintf("📱 Send personalized messages to %d 'maybe' returners to encourage visits.", report.Returns.Maybe))
	} else {
		out.Recommendations = append(out.Recommendations, "📱 Focus retention efforts on building habits for new members.")
	}

	out.Prompt = dashboardPrompt(dash, report, highChurn)
	return out, nil
}

func dashboardPrompt(dash DashboardResult, report ChurnReport, highChurn int) string {
	return fmt.Sprintf(`Act as a gym business analyst. Based on this operational and predictive data, give 3 short insights and 2 actionable recommendations.

OPERATIONAL DATA:
- Today's Check-ins: %d
- Active Passes: %d
- Expired Passes: %d
- Revenue Today: ₱%s
- Peak Time: %s (%d check-ins)

PREDICTIVE DATA:
- Expected Returns (Next 3 Days): %.1f
- Most Popular Plan: %s
- High Churn Risk Members: %d

Provide insights in a concise, actionable format.`,
		dash.TodayCheckins, dash.ActivePasses, dash.ExpiredPasses, dash.RevenueToday.StringFixed(2),
		dash.PeakHours.Label, dash.PeakHours.PeakCount,
		report.Returns.Expected, dash.MostPopularPlan, highChurn)
}

// GetMemberInsightsQuery carries input for a member's retention recommendation.
type GetMemberInsightsQuery struct {
	MemberID string
	Now      time.Time
	Strategy string
}

// MemberInsights is a retention recommendation for one member.
type MemberInsights struct {
	MemberID       string                `json:"member_id"`
	Name           string                `json:"name"`
	Recommendation string                `json:"recommendation"`
	Prompt         string                `json:"prompt"`
	Probability    float64               `json:"return_probability"`
	Risk           churn.ProbabilityRisk `json:"risk_level"`
	Features       churn.Features        `json:"features"`
}

// QueryMemberInsights picks a retention recommendation from the member's risk band and recent visits.
// PRE: MemberID names an existing member
// POST: Recommendation is never empty
func QueryMemberInsights(ctx context.Context, query GetMemberInsightsQuery, deps GetChurnDeps) (MemberInsights, error) {
	mc, err := QueryMemberChurn(ctx, GetMemberChurnQuery(query), deps)
	if err != nil {
		return MemberInsights{}, err
	}
	return MemberInsights{
		MemberID:       mc.MemberID,
		Name:           mc.Name,
		Recommendation: memberRecommendation(mc.Prediction.Risk, mc.Features),
		Prompt:         memberPrompt(mc),
		Probability:    mc.Prediction.Probability,
		Risk:           mc.Prediction.Risk,
		Features:       mc.Features,
	}, nil
}

func memberRecommendation(risk churn.ProbabilityRisk, f churn.Features) string {
	switch risk {
	case churn.RiskHigh:
		if f.Attendance7 == 0 {
			return "🚨 Member hasn't visited recently. Send a personalized 'We miss you' message with an incentive to return."
		}
		return "⚠️ Engagement is declining. Consider offering a personal training session or class recommendation."
	case churn.RiskMedium:
		if f.DaysLeft <= 2 {
			return "📅 Pass expiring soon. Reach out about renewal options before it expires."
		}
		return "📊 Moderate engagement. Encourage more frequent visits to build a consistent habit."
	default:
		if f.Attendance7 >= 3 {
			return "⭐ Highly engaged member! Consider loyalty rewards or referral incentives."
		}
		return "✅ Good standing. Continue providing excellent service to maintain satisfaction."
	}
}

func memberPrompt(mc MemberChurn) string {
	return fmt.Sprintf(`Based on this member behavior data, give a short retention recommendation.

MEMBER: %s
- Return Probability: %.0f%%
- Churn Risk Level: %s
- Days Left on Pass: %d
- Attendance (Last 7 Days): %d
- Attendance (Last 3 Days): %d

Provide a brief, personalized retention recommendation.`,
		mc.Name, mc.Prediction.Probability*100, mc.Prediction.Risk,
		mc.Features.DaysLeft, mc.Features.Attendance7, mc.Features.Attendance3)
}
