package main

import (
	"context"
	"fmt"
	"time"

	"frontdesk/internal/application/orchestrators"
	"frontdesk/internal/application/projections"
	"frontdesk/internal/domain/churn"
)

// sweepFirst brings stored pass status up to date before a report reads it.
func (cli *commandLine) sweepFirst(ctx context.Context) error {
	_, err := orchestrators.ExecuteSweepExpiredPasses(ctx, orchestrators.SweepExpiredPassesDeps{PassStore: cli.passes, Now: cli.now})
	return err
}

func (cli *commandLine) dashboardDeps() projections.GetDashboardDeps {
	return projections.GetDashboardDeps{PassStore: cli.passes, AttendanceStore: cli.visits}
}

func (cli *commandLine) churnDeps() projections.GetChurnDeps {
	return projections.GetChurnDeps{MemberStore: cli.members, PassStore: cli.passes, AttendanceStore: cli.visits}
}

func (cli *commandLine) dashboard(ctx context.Context, args []string) error {
	fs := cli.flags("dashboard")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := cli.sweepFirst(ctx); err != nil {
		return err
	}
	d, err := projections.QueryGetDashboard(ctx, projections.GetDashboardQuery{Now: cli.now()}, cli.dashboardDeps())
	if err != nil {
		return err
	}
	if *asJSON {
		return cli.printJSON(d)
	}
	fmt.Fprintf(cli.out, "Dashboard for %s\n", d.Date)
	fmt.Fprintf(cli.out, "  Today's check-ins:  %d\n", d.TodayCheckins)
	fmt.Fprintf(cli.out, "  Active passes:      %d\n", d.ActivePasses)
	fmt.Fprintf(cli.out, "  Expired passes:     %d\n", d.ExpiredPasses)
	fmt.Fprintf(cli.out, "  Revenue today:      %s\n", money(d.RevenueToday))
	fmt.Fprintf(cli.out, "  Total revenue:      %s\n", money(d.TotalRevenue))
	fmt.Fprintf(cli.out, "  Peak time:          %s\n", d.PeakHours.Label)
	fmt.Fprintf(cli.out, "  Most popular plan:  %s\n", d.MostPopularPlan)
	return nil
}

func (cli *commandLine) revenueReport(ctx context.Context, args []string) error {
	fs := cli.flags("report")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := parse(fs, args); err != nil {
		return err
	}
	r, err := projections.QueryRevenueReport(ctx, projections.GetRevenueReportQuery{Now: cli.now()}, projections.GetRevenueReportDeps{PassStore: cli.passes})
	if err != nil {
		return err
	}
	if *asJSON {
		return cli.printJSON(r)
	}
	fmt.Fprintf(cli.out, "Total revenue %s, today %s, most popular: %s\n", money(r.TotalRevenue), money(r.RevenueToday), r.MostPopularPlan)
	for _, row := range r.RevenueByPlan {
		fmt.Fprintf(cli.out, "  %-14s %3d sold  %s\n", row.PlanName, row.Count, money(row.Revenue))
	}
	return nil
}

func (cli *commandLine) churnReport(ctx context.Context, args []string) error {
	fs := cli.flags("churn")
	strategy := fs.String("strategy", cli.cfg.Churn.Strategy, "heuristic or classifier")
	asJSON := fs.Bool("json", false, "print JSON")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := cli.sweepFirst(ctx); err != nil {
		return err
	}
	report, err := projections.QueryChurn(ctx, projections.GetChurnQuery{Now: cli.now(), Strategy: *strategy}, cli.churnDeps())
	if err != nil {
		return err
	}
	if *asJSON {
		return cli.printJSON(report)
	}
	for _, mc := range report.Members {
		f := mc.Features
		fmt.Fprintf(cli.out, "%-24s %3.0f%%  %-6s days left %d, 7d %d, 3d %d\n",
			mc.Name, mc.Prediction.Probability*100, mc.Prediction.Risk, f.DaysLeft, f.Attendance7, f.Attendance3)
	}
	fmt.Fprintf(cli.out, "High %d, Medium %d, Low %d\n",
		report.Distribution[churn.RiskHigh], report.Distribution[churn.RiskMedium], report.Distribution[churn.RiskLow])
	r := report.Returns
	fmt.Fprintf(cli.out, "Expected returns over the next 3 days: %.1f (%d likely, %d maybe, %d unlikely)\n", r.Expected, r.Likely, r.Maybe, r.Unlikely)
	return nil
}

func (cli *commandLine) inactive(ctx context.Context, args []string) error {
	fs := cli.flags("inactive")
	days := fs.Int("days", 8, "minimum days since the last check-in")
	if err := parse(fs, args); err != nil {
		return err
	}
	rows, err := projections.QueryGetInactiveMembers(ctx, projections.GetInactiveMembersQuery{Now: cli.now(), DaysSinceLastCheckIn: *days},
		projections.GetInactiveMembersDeps{MemberStore: cli.members, AttendanceStore: cli.visits})
	if err != nil {
		return err
	}
	for _, r := range rows {
		fmt.Fprintf(cli.out, "%-8s %-24s last visit %s\n", r.Risk, r.Name, r.LastCheckIn)
	}
	return nil
}

func (cli *commandLine) insights(ctx context.Context, args []string) error {
	fs := cli.flags("insights")
	memberID := fs.String("member", "", "member ID; omit for the whole gym")
	prompt := fs.Bool("prompt", false, "also print the analyst prompt")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := cli.sweepFirst(ctx); err != nil {
		return err
	}

	if *memberID != "" {
		mi, err := projections.QueryMemberInsights(ctx, projections.GetMemberInsightsQuery{MemberID: *memberID, Now: cli.now(), Strategy: cli.cfg.Churn.Strategy}, cli.churnDeps())
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%s: %.0f%% likely to return (%s risk)\n%s\n", mi.Name, mi.Probability*100, mi.Risk, mi.Recommendation)
		if *prompt {
			fmt.Fprintf(cli.out, "\n%s\n", mi.Prompt)
		}
		return nil
	}

	di, err := projections.QueryDashboardInsights(ctx, projections.GetInsightsQuery{Now: cli.now(), Strategy: cli.cfg.Churn.Strategy},
		projections.GetInsightsDeps{Dashboard: cli.dashboardDeps(), Churn: cli.churnDeps()})
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "Insights:")
	for _, s := range di.Insights {
		fmt.Fprintf(cli.out, "  %s\n", s)
	}
	fmt.Fprintln(cli.out, "Recommendations:")
	for _, s := range di.Recommendations {
		fmt.Fprintf(cli.out, "  %s\n", s)
	}
	if *prompt {
		fmt.Fprintf(cli.out, "\n%s\n", di.Prompt)
	}
	return nil
}

func (cli *commandLine) outreach(ctx context.Context, args []string) error {
	fs := cli.flags("outreach")
	dryRun := fs.Bool("dry-run", false, "render the emails without sending them")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := cli.sweepFirst(ctx); err != nil {
		return err
	}
	report, err := projections.QueryChurn(ctx, projections.GetChurnQuery{Now: cli.now(), Strategy: cli.cfg.Churn.Strategy}, cli.churnDeps())
	if err != nil {
		return err
	}

	targets := make([]orchestrators.OutreachTarget, 0, len(report.Members))
	for _, mc := range report.Members {
		targets = append(targets, orchestrators.OutreachTarget{
			MemberID:    mc.MemberID,
			Name:        mc.Name,
			Email:       mc.Email,
			Probability: mc.Prediction.Probability,
			Risk:        mc.Prediction.Risk,
			DaysLeft:    mc.Features.DaysLeft,
		})
	}
	res, err := orchestrators.ExecuteRetentionOutreach(ctx,
		orchestrators.RetentionOutreachInput{Targets: targets, GymName: cli.cfg.GymName, DryRun: *dryRun},
		orchestrators.RetentionOutreachDeps{Sender: cli.sender, Now: cli.now})
	if err != nil {
		return err
	}
	if *dryRun {
		for _, req := range res.Rendered {
			fmt.Fprintf(cli.out, "would send %q to %s\n", req.Subject, joinOr(req.To, "nobody"))
		}
	}
	fmt.Fprintf(cli.out, "%d sent, %d skipped, %d failed\n", res.Sent, res.Skipped, res.Failed)
	return nil
}

// dailyReport is the archived snapshot of a day at the front desk.
type dailyReport struct {
	Date         string                        `json:"date"`
	Dashboard    projections.DashboardResult   `json:"dashboard"`
	Revenue      projections.RevenueReport     `json:"revenue"`
	Distribution map[churn.ProbabilityRisk]int `json:"churn_distribution"`
	Returns      churn.Returns                 `json:"expected_returns"`
}

func (cli *commandLine) archiveReport(ctx context.Context, args []string) error {
	fs := cli.flags("archive")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := cli.sweepFirst(ctx); err != nil {
		return err
	}
	now := cli.now()
	dash, err := projections.QueryGetDashboard(ctx, projections.GetDashboardQuery{Now: now}, cli.dashboardDeps())
	if err != nil {
		return err
	}
	revenue, err := projections.QueryRevenueReport(ctx, projections.GetRevenueReportQuery{Now: now}, projections.GetRevenueReportDeps{PassStore: cli.passes})
	if err != nil {
		return err
	}
	report, err := projections.QueryChurn(ctx, projections.GetChurnQuery{Now: now, Strategy: cli.cfg.Churn.Strategy}, cli.churnDeps())
	if err != nil {
		return err
	}

	store, err := cli.archive(ctx)
	if err != nil {
		return err
	}
	res, err := orchestrators.ExecuteArchiveReport(ctx, orchestrators.ArchiveReportInput{
		Report: dailyReport{Date: dash.Date, Dashboard: dash, Revenue: revenue, Distribution: report.Distribution, Returns: report.Returns},
		Date:   now,
	}, orchestrators.ArchiveReportDeps{Store: store, Now: cli.now})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Archived %d bytes to %s\n", res.Bytes, res.Location)
	return nil
}

func (cli *commandLine) worker(ctx context.Context, args []string) error {
	fs := cli.flags("worker")
	interval := fs.Duration("interval", cli.cfg.Sweep.Interval, "time between sweeps")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *interval <= 0 {
		*interval = time.Hour
	}

	deps := orchestrators.SweepExpiredPassesDeps{PassStore: cli.passes, Now: cli.now}
	if _, err := orchestrators.ExecuteSweepExpiredPasses(ctx, deps); err != nil {
		return err
	}
	stopCh := make(chan struct{})
	done := orchestrators.StartSweepWorker(deps, *interval, stopCh)
	fmt.Fprintf(cli.out, "Sweeping expired passes every %s\n", *interval)

	<-ctx.Done()
	close(stopCh)
	<-done
	return nil
}
