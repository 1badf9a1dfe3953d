package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"frontdesk/internal/adapters/storage"
	planStore "frontdesk/internal/adapters/storage/plan"
	"frontdesk/internal/application/orchestrators"
	"frontdesk/internal/application/projections"
	"frontdesk/internal/domain/pass"
)

func (cli *commandLine) migrate(ctx context.Context, args []string) error {
	fs := cli.flags("migrate")
	if err := parse(fs, args); err != nil {
		return err
	}
	raw := cli.db.RawDB()
	if err := storage.MigrateDB(raw, cli.cfg.Database.Path); err != nil {
		return err
	}
	v, err := storage.SchemaVersion(raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "schema version %d\n", v)
	return nil
}

func (cli *commandLine) seed(ctx context.Context, args []string) error {
	fs := cli.flags("seed")
	samples := fs.Bool("samples", false, "also create sample members, passes and check-ins")
	seed := fs.Uint64("seed", 0, "random seed for sample data; 0 picks one from the clock")
	if err := parse(fs, args); err != nil {
		return err
	}

	catalog, err := orchestrators.ExecuteSeedCatalog(ctx, orchestrators.SeedCatalogDeps{
		PlanStore:        cli.plans,
		WorkoutStore:     cli.workouts,
		AchievementStore: cli.badges,
		GenerateID:       cli.newID,
		Now:              cli.now,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "plans: %d created\nworkouts: %d created, %d updated\nachievements: %d created, %d updated\n",
		catalog.PlansCreated, catalog.WorkoutsCreated, catalog.WorkoutsUpdated, catalog.AchievementsCreated, catalog.AchievementsUpdated)
	if !*samples {
		return nil
	}

	if *seed == 0 {
		*seed = uint64(cli.now().UnixNano())
	}
	res, err := orchestrators.ExecuteSeedSamples(ctx, orchestrators.SeedSamplesDeps{
		MemberStore:     cli.members,
		PlanStore:       cli.plans,
		PassStore:       cli.passes,
		AttendanceStore: cli.visits,
		Rand:            rand.New(rand.NewPCG(*seed, *seed>>1)),
		GenerateID:      cli.newID,
		Now:             cli.now,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "samples: %d members, %d passes (%d expired), %d check-ins\n", res.Members, res.Passes, res.Expired, res.Attendance)
	return nil
}

func (cli *commandLine) planDeps() orchestrators.PlanCatalogDeps {
	return orchestrators.PlanCatalogDeps{PlanStore: cli.plans, GenerateID: cli.newID, Now: cli.now}
}

func (cli *commandLine) listPlans(ctx context.Context, args []string) error {
	fs := cli.flags("plans")
	all := fs.Bool("all", false, "include unlisted plans")
	if err := parse(fs, args); err != nil {
		return err
	}
	plans, err := cli.plans.List(ctx, planStore.ListFilter{ActiveOnly: !*all})
	if err != nil {
		return err
	}
	for _, p := range plans {
		status := ""
		if !p.Active {
			status = " (unlisted)"
		}
		fmt.Fprintf(cli.out, "%s  %-12s %2d day(s)  %s%s\n", p.ID, p.Name, p.DurationDays, money(p.Price), status)
	}
	return nil
}

func (cli *commandLine) addPlan(ctx context.Context, args []string) error {
	fs := cli.flags("plan-add")
	name := fs.String("name", "", "plan name")
	days := fs.Int("days", 0, "duration in days")
	price := fs.String("price", "", "price, e.g. 150.00")
	if err := parse(fs, args, "name", "price"); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(*price)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", *price, err)
	}
	p, err := orchestrators.ExecuteCreatePlan(ctx, orchestrators.CreatePlanInput{Name: *name, DurationDays: *days, Price: amount}, cli.planDeps())
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Added %s (%s): %d day(s) for %s\n", p.Name, p.ID, p.DurationDays, money(p.Price))
	return nil
}

func (cli *commandLine) repricePlan(ctx context.Context, args []string) error {
	fs := cli.flags("plan-price")
	id := fs.String("id", "", "plan ID")
	price := fs.String("price", "", "new price")
	if err := parse(fs, args, "id", "price"); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(*price)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", *price, err)
	}
	p, err := orchestrators.ExecuteRepricePlan(ctx, orchestrators.RepricePlanInput{PlanID: *id, Price: amount}, cli.planDeps())
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s now sells for %s\n", p.Name, money(p.Price))
	return nil
}

func (cli *commandLine) setPlanActive(ctx context.Context, args []string) error {
	fs := cli.flags("plan-active")
	id := fs.String("id", "", "plan ID")
	active := fs.Bool("active", true, "whether the plan can be sold")
	if err := parse(fs, args, "id"); err != nil {
		return err
	}
	p, err := orchestrators.ExecuteSetPlanActive(ctx, orchestrators.SetPlanActiveInput{PlanID: *id, Active: *active}, cli.planDeps())
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s listed: %s\n", p.Name, yesNo(p.Active))
	return nil
}

func (cli *commandLine) deletePlan(ctx context.Context, args []string) error {
	fs := cli.flags("plan-delete")
	id := fs.String("id", "", "plan ID")
	if err := parse(fs, args, "id"); err != nil {
		return err
	}
	if err := orchestrators.ExecuteDeletePlan(ctx, orchestrators.DeletePlanInput{PlanID: *id}, cli.planDeps()); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Deleted plan %s\n", *id)
	return nil
}

func (cli *commandLine) memberDeps() orchestrators.RegisterMemberDeps {
	return orchestrators.RegisterMemberDeps{MemberStore: cli.members, GenerateID: cli.newID, Now: cli.now}
}

func (cli *commandLine) addMember(ctx context.Context, args []string) error {
	fs := cli.flags("member-add")
	name := fs.String("name", "", "full name")
	phone := fs.String("phone", "", "phone number")
	mail := fs.String("email", "", "email address for retention outreach")
	if err := parse(fs, args, "name"); err != nil {
		return err
	}
	m, err := orchestrators.ExecuteRegisterMember(ctx, orchestrators.RegisterMemberInput{Name: *name, Phone: *phone, Email: *mail}, cli.memberDeps())
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Registered %s (%s)\n", m.Name, m.ID)
	return nil
}

func (cli *commandLine) deleteMember(ctx context.Context, args []string) error {
	fs := cli.flags("member-del")
	id := fs.String("id", "", "member ID")
	if err := parse(fs, args, "id"); err != nil {
		return err
	}
	if err := orchestrators.ExecuteDeleteMember(ctx, orchestrators.DeleteMemberInput{MemberID: *id}, cli.memberDeps()); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Deleted member %s\n", *id)
	return nil
}

func (cli *commandLine) search(ctx context.Context, args []string) error {
	fs := cli.flags("search")
	q := fs.String("q", "", "part of the member's name or phone")
	limit := fs.Int("limit", 10, "maximum results")
	if err := parse(fs, args, "q"); err != nil {
		return err
	}
	res, err := orchestrators.ExecuteSearchMembers(ctx, orchestrators.SearchMembersInput{Query: *q, Limit: *limit}, orchestrators.SearchMembersDeps{MemberStore: cli.members})
	if err != nil {
		return err
	}
	for _, m := range res.Members {
		has, err := projections.QueryHasActivePass(ctx, projections.GetActivePassQuery{MemberID: m.ID, Now: cli.now()}, projections.GetActivePassDeps{PassStore: cli.passes})
		if err != nil {
			return err
		}
		fmt.Fprintf(cli.out, "%s  %-24s pass: %s\n", m.ID, m.Name, yesNo(has))
	}
	return nil
}

func (cli *commandLine) sell(ctx context.Context, args []string) error {
	fs := cli.flags("sell")
	memberID := fs.String("member", "", "member ID")
	planID := fs.String("plan", "", "plan ID")
	start := fs.String("start", "", "first valid day, YYYY-MM-DD; defaults to today")
	if err := parse(fs, args, "member", "plan"); err != nil {
		return err
	}
	day, err := parseDay(*start)
	if err != nil {
		return err
	}
	res, err := orchestrators.ExecuteSellPass(ctx, orchestrators.SellPassInput{MemberID: *memberID, PlanID: *planID, StartDate: day}, orchestrators.SellPassDeps{
		MemberStore: cli.members,
		PlanStore:   cli.plans,
		PassStore:   cli.passes,
		GenerateID:  cli.newID,
		Now:         cli.now,
	})
	if err != nil {
		return err
	}
	p := res.Pass
	fmt.Fprintf(cli.out, "Sold %s to %s: %s to %s for %s\n", res.PlanName, res.MemberName,
		p.StartDate.Format(pass.DateLayout), p.EndDate.Format(pass.DateLayout), money(p.PriceSnapshot))
	return nil
}

func (cli *commandLine) checkIn(ctx context.Context, args []string) error {
	fs := cli.flags("checkin")
	memberID := fs.String("member", "", "member ID")
	if err := parse(fs, args, "member"); err != nil {
		return err
	}
	res, err := orchestrators.ExecuteCheckInMember(ctx, orchestrators.CheckInMemberInput{MemberID: *memberID}, orchestrators.CheckInMemberDeps{
		MemberStore:     cli.members,
		PassStore:       cli.passes,
		AttendanceStore: cli.visits,
		GenerateID:      cli.newID,
		Now:             cli.now,
	})
	if err != nil {
		return err
	}
	if res.Duplicate {
		fmt.Fprintf(cli.out, "%s is already inside since %s\n", res.MemberName, res.Attendance.CheckInTime.Format("15:04"))
		return nil
	}
	fmt.Fprintf(cli.out, "Checked in %s at %s, %d day(s) left on the pass\n", res.MemberName, res.Attendance.CheckInTime.Format("15:04"), res.DaysRemaining)
	return nil
}

func (cli *commandLine) checkOut(ctx context.Context, args []string) error {
	fs := cli.flags("checkout")
	memberID := fs.String("member", "", "member ID")
	if err := parse(fs, args, "member"); err != nil {
		return err
	}
	a, err := orchestrators.ExecuteCheckOutMember(ctx, orchestrators.CheckOutMemberInput{MemberID: *memberID}, orchestrators.CheckOutMemberDeps{
		AttendanceStore: cli.visits,
		Now:             cli.now,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Checked out at %s after %s\n", a.CheckOutTime.Format("15:04"), a.Duration(cli.now()).Round(time.Minute))
	return nil
}

func (cli *commandLine) attendanceToday(ctx context.Context, args []string) error {
	fs := cli.flags("attendance")
	date := fs.String("date", "", "day to list, YYYY-MM-DD; defaults to today")
	if err := parse(fs, args); err != nil {
		return err
	}
	res, err := projections.QueryGetAttendanceToday(ctx, projections.GetAttendanceTodayQuery{Now: cli.now(), Date: *date},
		projections.GetAttendanceTodayDeps{AttendanceStore: cli.visits})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s: %d visit(s), %d inside\n", res.Date, len(res.Attendees), res.Inside)
	for _, a := range res.Attendees {
		out := "inside"
		if !a.Inside {
			out = a.CheckOutTime.Format("15:04")
		}
		fmt.Fprintf(cli.out, "  %s - %-6s %s\n", a.CheckInTime.Format("15:04"), out, a.MemberName)
	}
	return nil
}

func (cli *commandLine) sweep(ctx context.Context, args []string) error {
	fs := cli.flags("sweep")
	if err := parse(fs, args); err != nil {
		return err
	}
	res, err := orchestrators.ExecuteSweepExpiredPasses(ctx, orchestrators.SweepExpiredPassesDeps{PassStore: cli.passes, Now: cli.now})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d pass(es) expired\n", res.Expired)
	return nil
}

func (cli *commandLine) listExpired(ctx context.Context, args []string) error {
	fs := cli.flags("expired")
	limit := fs.Int("limit", 50, "maximum passes to list")
	if err := parse(fs, args); err != nil {
		return err
	}
	res, err := projections.QueryListExpiredPasses(ctx, projections.ListExpiredPassesQuery{Now: cli.now(), Limit: *limit},
		projections.ListExpiredPassesDeps{PassStore: cli.passes, MemberStore: cli.members})
	if err != nil {
		return err
	}
	for _, row := range res.Passes {
		fmt.Fprintf(cli.out, "%s  %-24s ended %s\n", row.Pass.ID, row.MemberName, row.Pass.EndDate.Format(pass.DateLayout))
	}
	return nil
}
