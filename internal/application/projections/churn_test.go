package projections

import (
	"context"
	"errors"
	"strings"
	"testing"

	memberStore "frontdesk/internal/adapters/storage/member"
	"frontdesk/internal/domain/attendance"
	"frontdesk/internal/domain/churn"
	"frontdesk/internal/domain/member"
	"frontdesk/internal/domain/pass"
)

// churnFixture holds three members:
// Ana never visited, Ben holds a pass and trains daily, Cora last came 20 days ago.
func churnFixture() GetChurnDeps {
	var records []attendance.Attendance
	records = append(records, visits("m2", at(2026, 3, 7, 8), at(2026, 3, 8, 8), at(2026, 3, 9, 8), at(2026, 3, 10, 8))...)
	records = append(records, visits("m3", at(2026, 2, 18, 9))...)

	return GetChurnDeps{
		MemberStore: &mockMemberStore{members: []member.Member{
			{ID: "m1", Name: "Ana Cruz", Email: "ana@example.com"},
			{ID: "m2", Name: "Ben Reyes"},
			{ID: "m3", Name: "Cora Lim", Email: "cora@example.com"},
		}},
		PassStore: &mockPassStore{passes: []pass.Pass{
			{ID: "s2", MemberID: "m2", PlanID: "p7", StartDate: date(2026, 3, 5), EndDate: date(2026, 3, 19), Status: pass.StatusActive},
		}},
		AttendanceStore: &mockAttendanceStore{records: records},
	}
}

// TestQueryChurn_Heuristic verifies predictions, the band distribution and expected returns.
func TestQueryChurn_Heuristic(t *testing.T) {
	report, err := QueryChurn(context.Background(), GetChurnQuery{Now: deskTime}, churnFixture())
	if err != nil {
		t.Fatalf("QueryChurn: %v", err)
	}
	if report.Strategy != churn.StrategyHeuristic {
		t.Errorf("Strategy = %q, want heuristic", report.Strategy)
	}

	byID := make(map[string]MemberChurn)
	for _, mc := range report.Members {
		byID[mc.MemberID] = mc
	}

	if p := byID["m1"].Prediction; p.Probability != churn.NewMemberProbability || p.Risk != churn.RiskLow {
		t.Errorf("never-visited member = %+v, want 0.95 Low", p)
	}

	ben := byID["m2"]
	if ben.Features.DaysLeft != 10 || ben.Features.Attendance7 != 4 || ben.Features.Attendance3 != 3 {
		t.Errorf("Ben features = %+v, want 10 days left, 4 in 7 days, 3 in 3 days", ben.Features)
	}
	if ben.Prediction.Probability != 1 || ben.Prediction.Risk != churn.RiskLow {
		t.Errorf("Ben prediction = %+v, want 1.0 Low", ben.Prediction)
	}

	if p := byID["m3"].Prediction; p.Probability != 0 || p.Risk != churn.RiskHigh {
		t.Errorf("Cora prediction = %+v, want 0 High", p)
	}

	want := map[churn.ProbabilityRisk]int{churn.RiskHigh: 1, churn.RiskMedium: 0, churn.RiskLow: 2}
	for band, n := range want {
		got, ok := report.Distribution[band]
		if !ok || got != n {
			t.Errorf("Distribution[%s] = %d (present %v), want %d", band, got, ok, n)
		}
	}
	if report.Returns.Likely != 2 || report.Returns.Unlikely != 1 || report.Returns.Expected != 1.6 {
		t.Errorf("Returns = %+v, want 2 likely, 1 unlikely, 1.6 expected", report.Returns)
	}
}

// TestQueryChurn_EmptyMembership verifies every band key is present with no members.
func TestQueryChurn_EmptyMembership(t *testing.T) {
	deps := GetChurnDeps{
		MemberStore:     &mockMemberStore{},
		PassStore:       &mockPassStore{},
		AttendanceStore: &mockAttendanceStore{},
	}
	dist, err := QueryChurnDistribution(context.Background(), GetChurnQuery{Now: deskTime}, deps)
	if err != nil {
		t.Fatalf("QueryChurnDistribution: %v", err)
	}
	if len(dist) != 3 {
		t.Errorf("Distribution = %v, want three zero bands", dist)
	}
	returns, err := QueryExpectedReturns(context.Background(), GetChurnQuery{Now: deskTime}, deps)
	if err != nil {
		t.Fatalf("QueryExpectedReturns: %v", err)
	}
	if returns.Expected != 0 {
		t.Errorf("Expected = %v, want 0", returns.Expected)
	}
}

// TestQueryChurn_UnknownStrategy verifies strategy names are checked.
func TestQueryChurn_UnknownStrategy(t *testing.T) {
	_, err := QueryChurn(context.Background(), GetChurnQuery{Now: deskTime, Strategy: "oracle"}, churnFixture())
	if !errors.Is(err, churn.ErrUnknownStrategy) {
		t.Errorf("err = %v, want ErrUnknownStrategy", err)
	}
}

// TestQueryMemberChurn_UnknownMember verifies the not-found error is wrapped.
func TestQueryMemberChurn_UnknownMember(t *testing.T) {
	_, err := QueryMemberChurn(context.Background(), GetMemberChurnQuery{MemberID: "ghost", Now: deskTime}, churnFixture())
	if !errors.Is(err, memberStore.ErrNotFound) {
		t.Errorf("err = %v, want member ErrNotFound", err)
	}
}

// TestQueryGetInactiveMembers verifies the recency bands and radar order.
func TestQueryGetInactiveMembers(t *testing.T) {
	var records []attendance.Attendance
	records = append(records, visits("m2", at(2026, 2, 1, 9), at(2026, 2, 18, 9))...)
	records = append(records, visits("m3", at(2026, 2, 28, 9))...)
	records = append(records, visits("m4", at(2026, 3, 9, 9))...)

	deps := GetInactiveMembersDeps{
		MemberStore: &mockMemberStore{members: []member.Member{
			{ID: "m3", Name: "Cora"},
			{ID: "m4", Name: "Dan"},
			{ID: "m2", Name: "Ben"},
			{ID: "m1", Name: "Ana"},
		}},
		AttendanceStore: &mockAttendanceStore{records: records},
	}

	got, err := QueryGetInactiveMembers(context.Background(), GetInactiveMembersQuery{Now: deskTime}, deps)
	if err != nil {
		t.Fatalf("QueryGetInactiveMembers: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d members, want 3 (Dan visited yesterday): %+v", len(got), got)
	}

	want := []struct {
		id   string
		days int
		last string
		risk churn.RecencyRisk
	}{
		{"m1", -1, "never", churn.RecencyCritical},
		{"m2", 20, "2026-02-18", churn.RecencyCritical},
		{"m3", 10, "2026-02-28", churn.RecencyHigh},
	}
	for i, w := range want {
		r := got[i]
		if r.MemberID != w.id || r.DaysInactive != w.days || r.LastCheckIn != w.last || r.Risk != w.risk {
			t.Errorf("got[%d] = %+v, want %+v", i, r, w)
		}
	}
}

// TestQueryDashboardInsights verifies the canned insights follow the numbers.
func TestQueryDashboardInsights(t *testing.T) {
	var hourly [24]int
	hourly[8] = 4
	deps := GetInsightsDeps{
		Dashboard: GetDashboardDeps{
			PassStore:       &mockPassStore{active: 1},
			AttendanceStore: &mockAttendanceStore{today: 2, hourly: hourly},
		},
		Churn: churnFixture(),
	}

	got, err := QueryDashboardInsights(context.Background(), GetInsightsQuery{Now: deskTime}, deps)
	if err != nil {
		t.Fatalf("QueryDashboardInsights: %v", err)
	}
	wantInsights := []string{
		"📊 Light traffic today with 2 check-ins. Good opportunity for equipment maintenance.",
		"⚠️ 1 member(s) show high churn risk. Consider proactive outreach.",
		"⏰ Peak activity occurs at 8:00 AM – 9:00 AM. Ensure adequate staffing during this time.",
	}
	if len(got.Insights) != len(wantInsights) {
		t.Fatalf("Insights = %v", got.Insights)
	}
	for i := range wantInsights {
		if got.Insights[i] != wantInsights[i] {
			t.Errorf("Insights[%d] = %q, want %q", i, got.Insights[i], wantInsights[i])
		}
	}
	wantRecs := []string{
		"🎯 Run a promotional campaign to boost new pass sales.",
		"📱 Focus retention efforts on building habits for new members.",
	}
	for i := range wantRecs {
		if got.Recommendations[i] != wantRecs[i] {
			t.Errorf("Recommendations[%d] = %q, want %q", i, got.Recommendations[i], wantRecs[i])
		}
	}
	if !strings.Contains(got.Prompt, "- High Churn Risk Members: 1") || !strings.Contains(got.Prompt, "- Most Popular Plan: N/A") {
		t.Errorf("Prompt missing churn or plan line:\n%s", got.Prompt)
	}
}

// TestQueryDashboardInsights_QuietDay verifies the no-data branches.
func TestQueryDashboardInsights_QuietDay(t *testing.T) {
	deps := GetInsightsDeps{
		Dashboard: GetDashboardDeps{PassStore: &mockPassStore{active: 6}, AttendanceStore: &mockAttendanceStore{}},
		Churn:     GetChurnDeps{MemberStore: &mockMemberStore{}, PassStore: &mockPassStore{}, AttendanceStore: &mockAttendanceStore{}},
	}
	got, err := QueryDashboardInsights(context.Background(), GetInsightsQuery{Now: deskTime}, deps)
	if err != nil {
		t.Fatalf("QueryDashboardInsights: %v", err)
	}
	if len(got.Insights) != 2 {
		t.Fatalf("Insights = %v, want two without a peak hour", got.Insights)
	}
	if !strings.HasPrefix(got.Insights[0], "📊 No check-ins recorded today yet.") {
		t.Errorf("Insights[0] = %q", got.Insights[0])
	}
	if !strings.HasPrefix(got.Insights[1], "✅ No high-risk churn members") {
		t.Errorf("Insights[1] = %q", got.Insights[1])
	}
	if got.Recommendations[0] != "🎯 Maintain current marketing efforts. Pass sales are healthy." {
		t.Errorf("Recommendations[0] = %q", got.Recommendations[0])
	}
}

// TestQueryMemberInsights verifies the recommendation tracks the risk band.
func TestQueryMemberInsights(t *testing.T) {
	tests := []struct {
		memberID string
		prefix   string
		percent  string
	}{
		{"m2", "⭐ Highly engaged member!", "- Return Probability: 100%"},
		{"m3", "🚨 Member hasn't visited recently.", "- Return Probability: 0%"},
		{"m1", "✅ Good standing.", "- Return Probability: 95%"},
	}
	for _, tt := range tests {
		got, err := QueryMemberInsights(context.Background(), GetMemberInsightsQuery{MemberID: tt.memberID, Now: deskTime}, churnFixture())
		if err != nil {
			t.Fatalf("QueryMemberInsights(%s): %v", tt.memberID, err)
		}
		if !strings.HasPrefix(got.Recommendation, tt.prefix) {
			t.Errorf("%s recommendation = %q, want prefix %q", tt.memberID, got.Recommendation, tt.prefix)
		}
		if !strings.Contains(got.Prompt, tt.percent) {
			t.Errorf("%s prompt missing %q:\n%s", tt.memberID, tt.percent, got.Prompt)
		}
	}
}

// TestMemberRecommendation_MediumBand verifies the renewal nudge for expiring passes.
func TestMemberRecommendation_MediumBand(t *testing.T) {
	if got := memberRecommendation(churn.RiskMedium, churn.Features{DaysLeft: 2}); !strings.HasPrefix(got, "📅 Pass expiring soon.") {
		t.Errorf("expiring = %q", got)
	}
	if got := memberRecommendation(churn.RiskMedium, churn.Features{DaysLeft: 5}); !strings.HasPrefix(got, "📊 Moderate engagement.") {
		t.Errorf("moderate = %q", got)
	}
	if got := memberRecommendation(churn.RiskHigh, churn.Features{Attendance7: 1}); !strings.HasPrefix(got, "⚠️ Engagement is declining.") {
		t.Errorf("declining = %q", got)
	}
}

// TestMemberScansAreUnbounded verifies churn and the inactive radar read every member.
func TestMemberScansAreUnbounded(t *testing.T) {
	deps := churnFixture()
	members := deps.MemberStore.(*mockMemberStore)

	report, err := QueryChurn(context.Background(), GetChurnQuery{Now: deskTime}, deps)
	if err != nil {
		t.Fatalf("QueryChurn: %v", err)
	}
	if len(report.Members) != len(members.members) {
		t.Errorf("churn scored %d members, want %d", len(report.Members), len(members.members))
	}

	_, err = QueryGetInactiveMembers(context.Background(), GetInactiveMembersQuery{Now: deskTime},
		GetInactiveMembersDeps{MemberStore: members, AttendanceStore: deps.AttendanceStore})
	if err != nil {
		t.Fatalf("QueryGetInactiveMembers: %v", err)
	}

	for i, f := range members.filters {
		if f.Limit != 0 {
			t.Errorf("List call %d used Limit %d, want 0 (all members)", i, f.Limit)
		}
	}
	if len(members.filters) != 2 {
		t.Errorf("List called %d times, want 2", len(members.filters))
	}
}
