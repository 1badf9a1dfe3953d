package storage

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// migration is one forward-only schema step.
type migration struct {
	version     int
	description string
	apply       func(tx *sql.Tx) error
}

var migrations = []migration{
	{1, "baseline schema", migrateBaseline},
	{2, "reporting indexes", migrateReportingIndexes},
}

// LatestSchemaVersion returns the version MigrateDB brings a database to.
func LatestSchemaVersion() int {
	return migrations[len(migrations)-1].version
}

// SchemaVersion returns the applied schema version, or 0 for an unmigrated database.
// PRE: db is a valid database connection
// POST: db is not modified
func SchemaVersion(db *sql.DB) (int, error) {
	var exists int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'schema_version'`).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect schema: %w", err)
	}
	if exists == 0 {
		return 0, nil
	}
	var version sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return int(version.Int64), nil
}

// MigrateDB enables foreign keys and applies every pending migration, each in its own transaction.
// When dbPath names a file that already holds data, a copy is written to
// dbPath + ".bak-v<version>" before the first pending step runs.
// PRE: db is a valid database connection
// POST: SchemaVersion(db) == LatestSchemaVersion()
// INVARIANT: Re-running on an up-to-date database is a no-op
func MigrateDB(db *sql.DB, dbPath string) error {
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	current, err := SchemaVersion(db)
	if err != nil {
		return err
	}
	if current >= LatestSchemaVersion() {
		return nil
	}

	if current > 0 && dbPath != "" && dbPath != ":memory:" {
		backup := fmt.Sprintf("%s.bak-v%d", dbPath, current)
		if _, err := db.Exec(`VACUUM INTO ?`, backup); err != nil {
			return fmt.Errorf("failed to back up database before migration: %w", err)
		}
		slog.Info("migration_event", "event", "backup_written", "path", backup, "from_version", current)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(db, m); err != nil {
			return err
		}
		slog.Info("migration_event", "event", "migration_applied", "version", m.version, "description", m.description)
	}
	return nil
}

func applyMigration(db *sql.DB, m migration) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migration %d: failed to begin: %w", m.version, err)
	}
	defer tx.Rollback()

	if err := m.apply(tx); err != nil {
		return fmt.Errorf("migration %d (%s): %w", m.version, m.description, err)
	}
	if _, err := tx.Exec(`INSERT INTO schema_version (version, applied_at) VALUES (?, ?)`,
		m.version, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return fmt.Errorf("migration %d: failed to record version: %w", m.version, err)
	}
	return tx.Commit()
}

// migrateBaseline creates every table.
// Money is stored as integer cents; dates as YYYY-MM-DD; timestamps as RFC3339Nano text.
func migrateBaseline(tx *sql.Tx) error {
	schema := `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER NOT NULL,
		applied_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS plan (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		duration_days INTEGER NOT NULL CHECK (duration_days >= 1),
		price_cents INTEGER NOT NULL CHECK (price_cents >= 0),
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS member (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		phone TEXT,
		email TEXT,
		account_id TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pass (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		plan_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT NOT NULL,
		price_cents INTEGER NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('active', 'expired')),
		created_at TEXT NOT NULL,
		FOREIGN KEY (member_id) REFERENCES member(id) ON DELETE CASCADE,
		FOREIGN KEY (plan_id) REFERENCES plan(id) ON DELETE RESTRICT
	);

	CREATE TABLE IF NOT EXISTS attendance (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		pass_id TEXT,
		check_in_time TEXT NOT NULL,
		check_out_time TEXT,
		FOREIGN KEY (member_id) REFERENCES member(id) ON DELETE CASCADE,
		FOREIGN KEY (pass_id) REFERENCES pass(id) ON DELETE SET NULL
	);

	CREATE TABLE IF NOT EXISTS profile (
		member_id TEXT PRIMARY KEY,
		age INTEGER NOT NULL DEFAULT 0,
		gender TEXT,
		experience TEXT NOT NULL,
		training_days INTEGER NOT NULL CHECK (training_days BETWEEN 1 AND 6),
		primary_goal TEXT NOT NULL,
		high_intensity INTEGER NOT NULL DEFAULT 0,
		weekly_schedule TEXT NOT NULL DEFAULT '{}',
		height_cm REAL,
		weight_kg REAL,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (member_id) REFERENCES member(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS workout (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		difficulty TEXT NOT NULL,
		target_muscles TEXT NOT NULL DEFAULT '[]',
		goal_type TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS workout_exercise (
		id TEXT PRIMARY KEY,
		workout_id TEXT NOT NULL,
		name TEXT NOT NULL,
		sequence INTEGER NOT NULL,
		sets INTEGER NOT NULL,
		reps TEXT NOT NULL,
		rest_seconds INTEGER NOT NULL DEFAULT 0,
		warmup INTEGER NOT NULL DEFAULT 0,
		UNIQUE (workout_id, sequence),
		FOREIGN KEY (workout_id) REFERENCES workout(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS achievement (
		id TEXT PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		icon TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL,
		hidden INTEGER NOT NULL DEFAULT 0,
		metric TEXT NOT NULL,
		threshold INTEGER NOT NULL,
		muscle_group TEXT
	);

	CREATE TABLE IF NOT EXISTS member_achievement (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		achievement_id TEXT NOT NULL,
		unlocked_at TEXT NOT NULL,
		UNIQUE (member_id, achievement_id),
		FOREIGN KEY (member_id) REFERENCES member(id) ON DELETE CASCADE,
		FOREIGN KEY (achievement_id) REFERENCES achievement(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS workout_log (
		id TEXT PRIMARY KEY,
		member_id TEXT NOT NULL,
		workout_id TEXT,
		workout_name TEXT NOT NULL,
		target_muscles TEXT NOT NULL DEFAULT '[]',
		completed_at TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		notes TEXT,
		FOREIGN KEY (member_id) REFERENCES member(id) ON DELETE CASCADE,
		FOREIGN KEY (workout_id) REFERENCES workout(id) ON DELETE SET NULL
	);
	`
	if _, err := tx.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// migrateReportingIndexes adds the indexes the dashboard and churn scans rely on.
func migrateReportingIndexes(tx *sql.Tx) error {
	stmts := `
	CREATE INDEX IF NOT EXISTS idx_pass_member_status ON pass(member_id, status);
	CREATE INDEX IF NOT EXISTS idx_pass_end_date ON pass(status, end_date);
	CREATE INDEX IF NOT EXISTS idx_pass_created_at ON pass(created_at);
	CREATE INDEX IF NOT EXISTS idx_attendance_member ON attendance(member_id, check_in_time);
	CREATE INDEX IF NOT EXISTS idx_attendance_check_in ON attendance(check_in_time);
	CREATE INDEX IF NOT EXISTS idx_workout_log_member ON workout_log(member_id, completed_at);
	`
	if _, err := tx.Exec(stmts); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
