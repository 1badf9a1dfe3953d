package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// TestLoadConfig_Defaults verifies an empty directory yields the defaults.
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Path != "frontdesk.db" || cfg.Database.SlowQueryMs != 50 {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Sweep.Interval != time.Hour {
		t.Errorf("sweep.interval = %v, want 1h", cfg.Sweep.Interval)
	}
	if cfg.Churn.Strategy != "heuristic" {
		t.Errorf("churn.strategy = %q", cfg.Churn.Strategy)
	}
	if cfg.Email.UsesResend() || cfg.Archive.UsesS3() {
		t.Error("defaults should use the noop sender and the local archive")
	}
	if loc, _ := cfg.Location(); loc != time.Local {
		t.Errorf("Location = %v, want Local", loc)
	}
}

// TestLoadConfig_FileThenEnv verifies the environment overrides config.yaml.
func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.yaml"), `
timezone: UTC
database:
  path: /var/lib/frontdesk/gym.db
sweep:
  interval: 15m
archive:
  bucket: reports-bucket
  endpoint: http://localhost:9000
`)
	t.Setenv("FRONTDESK_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("FRONTDESK_EMAIL_RESEND_KEY", "re_123")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("database.path = %q, want env override", cfg.Database.Path)
	}
	if cfg.Sweep.Interval != 15*time.Minute {
		t.Errorf("sweep.interval = %v", cfg.Sweep.Interval)
	}
	if !cfg.Archive.UsesS3() || cfg.Archive.Endpoint != "http://localhost:9000" {
		t.Errorf("archive = %+v", cfg.Archive)
	}
	if !cfg.Email.UsesResend() {
		t.Error("resend key from env not applied")
	}
	if loc, _ := cfg.Location(); loc.String() != "UTC" {
		t.Errorf("Location = %v", loc)
	}
}

// TestLoadConfig_DotEnv verifies .env values are loaded into the environment.
func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env"), "FRONTDESK_CHURN_STRATEGY=classifier\n")
	t.Cleanup(func() { os.Unsetenv("FRONTDESK_CHURN_STRATEGY") })

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Churn.Strategy != "classifier" {
		t.Errorf("churn.strategy = %q, want classifier", cfg.Churn.Strategy)
	}
}

// TestLoadConfig_RejectsBadTimezone verifies validation runs after loading.
func TestLoadConfig_RejectsBadTimezone(t *testing.T) {
	t.Setenv("FRONTDESK_TIMEZONE", "Mars/Olympus_Mons")
	if _, err := LoadConfig(t.TempDir()); err == nil {
		t.Error("expected error for unknown timezone")
	}
}

// TestSlogLevel verifies level names map to slog levels.
func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for name, want := range tests {
		if got := (LogConfig{Level: name}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", name, got, want)
		}
	}
}
