package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"frontdesk/internal/adapters/archive"
	"frontdesk/internal/adapters/email"
	"frontdesk/internal/adapters/perf"
	"frontdesk/internal/adapters/storage"
	achievementStore "frontdesk/internal/adapters/storage/achievement"
	attendanceStore "frontdesk/internal/adapters/storage/attendance"
	memberStore "frontdesk/internal/adapters/storage/member"
	passStore "frontdesk/internal/adapters/storage/pass"
	planStore "frontdesk/internal/adapters/storage/plan"
	profileStore "frontdesk/internal/adapters/storage/profile"
	workoutStore "frontdesk/internal/adapters/storage/workout"
	workoutLogStore "frontdesk/internal/adapters/storage/workoutlog"
	"frontdesk/internal/config"
	"frontdesk/internal/domain/pass"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	cfg       config.Config
	out       io.Writer
	db        *storage.TimedDB
	plans     *planStore.SQLiteStore
	members   *memberStore.SQLiteStore
	passes    *passStore.SQLiteStore
	visits    *attendanceStore.SQLiteStore
	profiles  *profileStore.SQLiteStore
	workouts  *workoutStore.SQLiteStore
	logs      *workoutLogStore.SQLiteStore
	badges    *achievementStore.SQLiteStore
	sender    email.Sender
	archive   func(ctx context.Context) (archive.Store, error)
	collector *perf.Collector
	now       func() time.Time
	newID     func() string
}

func newCommandLine(cfg config.Config, db *storage.TimedDB, out io.Writer) *commandLine {
	cli := &commandLine{
		cfg:      cfg,
		out:      out,
		db:       db,
		plans:    planStore.NewSQLiteStore(db),
		members:  memberStore.NewSQLiteStore(db),
		passes:   passStore.NewSQLiteStore(db),
		visits:   attendanceStore.NewSQLiteStore(db),
		profiles: profileStore.NewSQLiteStore(db),
		workouts: workoutStore.NewSQLiteStore(db),
		logs:     workoutLogStore.NewSQLiteStore(db),
		badges:   achievementStore.NewSQLiteStore(db),
		sender:   email.NewNoopSender(),
		now:      time.Now,
	}
	cli.archive = cli.openArchive
	return cli
}

// command is one subcommand; args excludes the subcommand name.
type command struct {
	usage string
	run   func(cli *commandLine, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"migrate":      {"migrate - apply pending schema migrations and print the version", (*commandLine).migrate},
	"seed":         {"seed [-samples] [-seed N] - create the default plans, workouts and badges", (*commandLine).seed},
	"plans":        {"plans [-all] - list the plan catalog", (*commandLine).listPlans},
	"plan-add":     {"plan-add -name NAME -days N -price AMOUNT - add a plan", (*commandLine).addPlan},
	"plan-price":   {"plan-price -id ID -price AMOUNT - reprice a plan for future sales", (*commandLine).repricePlan},
	"plan-active":  {"plan-active -id ID -active=true|false - list or unlist a plan", (*commandLine).setPlanActive},
	"plan-delete":  {"plan-delete -id ID - delete a plan no pass was sold from", (*commandLine).deletePlan},
	"member-add":   {"member-add -name NAME [-phone P] [-email E] - register a walk-in member", (*commandLine).addMember},
	"member-del":   {"member-del -id ID - delete a member and everything they own", (*commandLine).deleteMember},
	"search":       {"search -q TEXT - find members by name or phone", (*commandLine).search},
	"sell":         {"sell -member ID -plan ID [-start YYYY-MM-DD] - sell a pass", (*commandLine).sell},
	"checkin":      {"checkin -member ID - admit a member with a valid pass", (*commandLine).checkIn},
	"checkout":     {"checkout -member ID - close the member's open visit", (*commandLine).checkOut},
	"attendance":   {"attendance [-date YYYY-MM-DD] - list a day's visits", (*commandLine).attendanceToday},
	"sweep":        {"sweep - mark passes past their end date expired", (*commandLine).sweep},
	"expired":      {"expired [-limit N] - sweep, then list expired passes", (*commandLine).listExpired},
	"dashboard":    {"dashboard [-json] - today's front desk numbers", (*commandLine).dashboard},
	"report":       {"report [-json] - revenue by plan", (*commandLine).revenueReport},
	"churn":        {"churn [-strategy heuristic|classifier] [-json] - return predictions", (*commandLine).churnReport},
	"inactive":     {"inactive [-days N] - members who stopped coming", (*commandLine).inactive},
	"insights":     {"insights [-member ID] - canned insights and the analyst prompt", (*commandLine).insights},
	"profile-set":  {"profile-set -member ID -experience E -days N -goal G [...] - save a training profile", (*commandLine).saveProfile},
	"analytics":    {"analytics -member ID - a member's activity and plan", (*commandLine).analytics},
	"recommend":    {"recommend -member ID - workouts that fit the member's profile", (*commandLine).recommend},
	"log-workout":  {"log-workout -member ID -workout NAME [-minutes N] [-notes T] - record a session", (*commandLine).logWorkout},
	"achievements": {"achievements -member ID - unlock and list badges", (*commandLine).achievements},
	"outreach":     {"outreach [-dry-run] - email high-risk members", (*commandLine).outreach},
	"archive":      {"archive - store today's report as JSON", (*commandLine).archiveReport},
	"worker":       {"worker [-interval D] - sweep expired passes until interrupted", (*commandLine).worker},
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage: frontdesk [-timings] COMMAND [flags]")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(cli.out, "  %s\n", commands[name].usage)
	}
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	global := flag.NewFlagSet("frontdesk", flag.ContinueOnError)
	global.SetOutput(cli.out)
	timings := global.Bool("timings", false, "print operation and query timings after the command")
	showVersion := global.Bool("version", false, "print the version and exit")
	if len(args) > 0 {
		args = args[1:]
	}
	if err := global.Parse(args); err != nil {
		return errHelp
	}
	if *showVersion {
		fmt.Fprintln(cli.out, version)
		return nil
	}

	rest := global.Args()
	if len(rest) == 0 {
		cli.printUsage()
		return errHelp
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		cli.printUsage()
		return errHelp
	}

	start := time.Now()
	err := cmd.run(cli, ctx, rest[1:])
	if cli.collector != nil {
		cli.collector.Time(rest[0], start, err)
		if *timings {
			cli.printTimings(start)
		}
	}
	return err
}

// flags returns a FlagSet that reports errors instead of exiting.
func (cli *commandLine) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parse parses args and checks that every named string flag is non-empty.
func parse(fs *flag.FlagSet, args []string, required ...string) error {
	if err := fs.Parse(args); err != nil {
		return errHelp
	}
	for _, name := range required {
		if f := fs.Lookup(name); f == nil || strings.TrimSpace(f.Value.String()) == "" {
			fmt.Fprintf(fs.Output(), "missing -%s\n", name)
			fs.Usage()
			return errHelp
		}
	}
	return nil
}

// parseDay reads a YYYY-MM-DD flag value in the local zone; empty means the zero time.
func parseDay(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	day, err := time.ParseInLocation(pass.DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return day, nil
}

func (cli *commandLine) printJSON(v any) error {
	enc := json.NewEncoder(cli.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (cli *commandLine) printTimings(since time.Time) {
	snap := cli.collector.Snapshot(since, 5)
	fmt.Fprintf(cli.out, "\n%d operation(s), %d failed\n", snap.Operations, snap.FailedOperations)
	for _, s := range snap.SlowestQueries {
		fmt.Fprintf(cli.out, "  %-28s %3dx avg %.2fms max %.2fms\n", s.Label, s.Count, s.AvgMs, s.MaxMs)
	}
}

func (cli *commandLine) openArchive(ctx context.Context) (archive.Store, error) {
	a := cli.cfg.Archive
	if !a.UsesS3() {
		return archive.NewLocalStore(a.Dir), nil
	}
	return archive.NewS3Store(ctx, archive.S3Config{
		Bucket:          a.Bucket,
		Region:          a.Region,
		Endpoint:        a.Endpoint,
		AccessKeyID:     a.AccessKeyID,
		SecretAccessKey: a.SecretAccessKey,
	})
}

func money(d decimal.Decimal) string {
	return "₱" + d.StringFixed(2)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}
