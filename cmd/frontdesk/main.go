package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"frontdesk/internal/adapters/email"
	"frontdesk/internal/adapters/perf"
	"frontdesk/internal/adapters/storage"
	"frontdesk/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.LoadConfig(os.Getenv("FRONTDESK_CONFIG_DIR"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))

	// Calendar-day columns are read back in time.Local.
	loc, err := cfg.Location()
	if err != nil {
		errAndDie(err)
	}
	time.Local = loc

	db, err := openDB(cfg.Database.Path)
	errAndDie(err)
	defer db.Close()

	collector := perf.NewCollector(perf.DefaultRingSize)
	cli := newCommandLine(cfg, storage.NewTimedDB(db, collector, cfg.Database.SlowQueryMs), os.Stdout)
	cli.collector = collector
	cli.now = func() time.Time { return time.Now().In(loc) }
	cli.newID = uuid.NewString

	if cfg.Email.UsesResend() {
		cli.sender = email.NewResendSender(cfg.Email.ResendKey, cfg.Email.From, cfg.Email.ReplyTo)
	} else {
		cli.sender = email.NewNoopSender()
		if cfg.Env == "production" {
			slog.Warn("email_event", "event", "delivery_disabled", "reason", "email.resend_key is not set")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.run(ctx, os.Args); err != nil {
		if !errors.Is(err, errHelp) {
			slog.Error("command_failed", "error", err)
		}
		db.Close()
		os.Exit(1)
	}
}

// openDB opens the SQLite file with WAL, foreign keys and a busy timeout, then migrates it.
func openDB(dbPath string) (*sql.DB, error) {
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}
	if err := storage.MigrateDB(db, dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

func errAndDie(err error) {
	if err != nil {
		slog.Error("startup_failed", "error", err)
		os.Exit(1)
	}
}
