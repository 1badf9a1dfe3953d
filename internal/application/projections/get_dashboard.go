package projections

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DashboardAttendanceStore defines the attendance store interface needed by the dashboard.
type DashboardAttendanceStore interface {
	CountOnDate(ctx context.Context, day time.Time) (int, error)
	HourlyCounts(ctx context.Context) ([24]int, error)
}

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	Now time.Time
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	PassStore       PassReportStore
	AttendanceStore DashboardAttendanceStore
}

// DashboardResult carries the front desk headline numbers.
type DashboardResult struct {
	Date            string          `json:"date"`
	TodayCheckins   int             `json:"today_checkins"`
	ActivePasses    int             `json:"active_passes"`
	ExpiredPasses   int             `json:"expired_passes"`
	RevenueToday    decimal.Decimal `json:"revenue_today"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	PeakHours       PeakHoursResult `json:"peak_hours"`
	MostPopularPlan string          `json:"most_popular_plan"`
}

// QueryGetDashboard computes the dashboard at call time.
// Expired passes are counted by predicate, so the numbers are correct before a sweep runs.
// PRE: query.Now is set
// POST: Counts reflect the state of the store at query.Now
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (DashboardResult, error) {
	now := query.Now
	result := DashboardResult{Date: now.Format("2006-01-02")}

	var err error
	if result.TodayCheckins, err = deps.AttendanceStore.CountOnDate(ctx, now); err != nil {
		return DashboardResult{}, err
	}
	if result.ActivePasses, err = deps.PassStore.CountActive(ctx, now); err != nil {
		return DashboardResult{}, err
	}
	if result.ExpiredPasses, err = deps.PassStore.CountExpired(ctx, now); err != nil {
		return DashboardResult{}, err
	}

	revenue, err := QueryRevenueReport(ctx, GetRevenueReportQuery{Now: now}, GetRevenueReportDeps{PassStore: deps.PassStore})
	if err != nil {
		return DashboardResult{}, err
	}
	result.RevenueToday = revenue.RevenueToday
	result.TotalRevenue = revenue.TotalRevenue
	result.MostPopularPlan = revenue.MostPopularPlan

	if result.PeakHours, err = QueryPeakHours(ctx, GetPeakHoursDeps{AttendanceStore: deps.AttendanceStore}); err != nil {
		return DashboardResult{}, err
	}
	return result, nil
}
