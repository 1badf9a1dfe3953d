package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces every environment override, e.g. FRONTDESK_DATABASE_PATH.
const EnvPrefix = "FRONTDESK"

// Config holds all configuration for the front desk.
// Values come from defaults, then config.yaml, then .env, then the process environment.
type Config struct {
	Env      string         `mapstructure:"env"`
	GymName  string         `mapstructure:"gym_name"`
	Timezone string         `mapstructure:"timezone"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Sweep    SweepConfig    `mapstructure:"sweep"`
	Churn    ChurnConfig    `mapstructure:"churn"`
	Email    EmailConfig    `mapstructure:"email"`
	Archive  ArchiveConfig  `mapstructure:"archive"`
}

// LogConfig sets the slog level: debug, info, warn or error.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// DatabaseConfig locates the SQLite file and the slow-query log threshold.
type DatabaseConfig struct {
	Path        string `mapstructure:"path"`
	SlowQueryMs int    `mapstructure:"slow_query_ms"`
}

// SweepConfig sets how often the worker expires lapsed passes.
type SweepConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// ChurnConfig picks the default estimator, heuristic or classifier.
type ChurnConfig struct {
	Strategy string `mapstructure:"strategy"`
}

// EmailConfig selects Resend delivery when ResendKey is set.
type EmailConfig struct {
	ResendKey string `mapstructure:"resend_key"`
	From      string `mapstructure:"from"`
	ReplyTo   string `mapstructure:"reply_to"`
}

// ArchiveConfig selects an S3-compatible bucket when Bucket is set, the local Dir otherwise.
type ArchiveConfig struct {
	Dir             string `mapstructure:"dir"`
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

var defaults = map[string]any{
	"env":                       "dev",
	"gym_name":                  "the gym",
	"timezone":                  "Local",
	"log.level":                 "info",
	"database.path":             "frontdesk.db",
	"database.slow_query_ms":    50,
	"sweep.interval":            "1h",
	"churn.strategy":            "heuristic",
	"email.resend_key":          "",
	"email.from":                "Front Desk <noreply@localhost>",
	"email.reply_to":            "",
	"archive.dir":               "reports",
	"archive.bucket":            "",
	"archive.region":            "us-east-1",
	"archive.endpoint":          "",
	"archive.access_key_id":     "",
	"archive.secret_access_key": "",
}

// LoadConfig reads config.yaml and .env from dir (both optional) and applies environment overrides.
// PRE: dir is a readable directory path or empty for the working directory
// POST: Returns a Config with every key populated
func LoadConfig(dir string) (Config, error) {
	if dir == "" {
		dir = "."
	}

	dotEnv := filepath.Join(dir, ".env")
	if _, err := os.Stat(dotEnv); err == nil {
		if err := godotenv.Load(dotEnv); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", dotEnv, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config: stat %s: %w", dotEnv, err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read config.yaml: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the front desk cannot run with.
func (c Config) Validate() error {
	if c.Database.Path == "" {
		return errors.New("config: database.path is required")
	}
	if c.Sweep.Interval < 0 {
		return errors.New("config: sweep.interval cannot be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured time zone used for calendar days.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SlogLevel maps the configured level name to a slog.Level; unknown names mean info.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// UsesS3 reports whether reports are archived to a bucket.
func (c ArchiveConfig) UsesS3() bool {
	return c.Bucket != ""
}

// UsesResend reports whether outreach email is really delivered.
func (c EmailConfig) UsesResend() bool {
	return c.ResendKey != ""
}
