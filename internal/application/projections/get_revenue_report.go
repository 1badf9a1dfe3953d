package projections

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// NoPopularPlan is reported when no pass has been sold yet.
const NoPopularPlan = "N/A"

// PlanSalesRow is one plan's line in the sales and revenue tables.
type PlanSalesRow struct {
	PlanID   string          `json:"plan_id"`
	PlanName string          `json:"plan_name"`
	Count    int             `json:"count"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// GetRevenueReportQuery carries input for the revenue report.
type GetRevenueReportQuery struct {
	Now time.Time
}

// GetRevenueReportDeps holds dependencies for the revenue report.
type GetRevenueReportDeps struct {
	PassStore PassReportStore
}

// RevenueReport summarises pass sales.
type RevenueReport struct {
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	RevenueToday    decimal.Decimal `json:"revenue_today"`
	SalesByPlan     []PlanSalesRow  `json:"sales_by_plan"`   // count descending, then plan name
	RevenueByPlan   []PlanSalesRow  `json:"revenue_by_plan"` // revenue descending, then plan name
	MostPopularPlan string          `json:"most_popular_plan"`
}

// QueryRevenueReport aggregates revenue from the price snapshot of every pass sold.
// PRE: none
// POST: Revenue totals are zero, not missing, when nothing was sold; SalesByPlan lists every plan,
// RevenueByPlan only plans with at least one sale
func QueryRevenueReport(ctx context.Context, query GetRevenueReportQuery, deps GetRevenueReportDeps) (RevenueReport, error) {
	total, err := deps.PassStore.SumRevenue(ctx)
	if err != nil {
		return RevenueReport{}, err
	}
	today, err := deps.PassStore.SumRevenueOn(ctx, query.Now)
	if err != nil {
		return RevenueReport{}, err
	}
	sales, err := deps.PassStore.SalesByPlan(ctx)
	if err != nil {
		return RevenueReport{}, err
	}

	report := RevenueReport{
		TotalRevenue:    total,
		RevenueToday:    today,
		SalesByPlan:     make([]PlanSalesRow, 0, len(sales)),
		MostPopularPlan: NoPopularPlan,
	}
	for _, s := range sales {
		report.SalesByPlan = append(report.SalesByPlan, PlanSalesRow{PlanID: s.PlanID, PlanName: s.PlanName, Count: s.Count, Revenue: s.Revenue})
	}
	if len(report.SalesByPlan) > 0 && report.SalesByPlan[0].Count > 0 {
		report.MostPopularPlan = report.SalesByPlan[0].PlanName
	}

	report.RevenueByPlan = make([]PlanSalesRow, 0, len(report.SalesByPlan))
	for _, row := range report.SalesByPlan {
		if row.Count > 0 {
			report.RevenueByPlan = append(report.RevenueByPlan, row)
		}
	}
	sort.SliceStable(report.RevenueByPlan, func(i, j int) bool {
		a, b := report.RevenueByPlan[i], report.RevenueByPlan[j]
		if c := a.Revenue.Cmp(b.Revenue); c != 0 {
			return c > 0
		}
		return a.PlanName < b.PlanName
	})
	return report, nil
}
