package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func newTestViper(t *testing.T, yaml string) *viper.Viper {
	t.Helper()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	dir := t.TempDir()
	if yaml != "" {
		if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
	}
	v.AddConfigPath(dir)
	return v
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")

	cfg, err := load(newTestViper(t, ""))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.TelegramAPIToken != "token" {
		t.Fatalf("expected token from env, got %q", cfg.TelegramAPIToken)
	}
	if cfg.Storage.Driver != DriverSQLite || cfg.Storage.SQLitePath != "data/wordroots.db" {
		t.Fatalf("unexpected storage %+v", cfg.Storage)
	}
	if cfg.Quiz.ChallengeQuestions != 10 || cfg.Quiz.LearnGoal != 5 {
		t.Fatalf("unexpected quiz config %+v", cfg.Quiz)
	}
	if !cfg.Reminders.Enabled || cfg.Reminders.StartHour != 9 || cfg.Reminders.EndHour != 21 {
		t.Fatalf("unexpected reminders %+v", cfg.Reminders)
	}
	if cfg.DB.MaxConnLifetime != 30*time.Minute {
		t.Fatalf("expected 30m lifetime, got %v", cfg.DB.MaxConnLifetime)
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost/wordroots")

	yaml := `
env: production
timezone: Europe/Berlin
storage:
  driver: postgres
database:
  max_connections: 4
reminders:
  enabled: false
quiz:
  learn_goal: 8
`
	cfg, err := load(newTestViper(t, yaml))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Env != "production" || cfg.Timezone != "Europe/Berlin" {
		t.Fatalf("unexpected env %q timezone %q", cfg.Env, cfg.Timezone)
	}
	if cfg.Storage.Driver != DriverPostgres || cfg.DB.MaxConnections != 4 {
		t.Fatalf("unexpected storage %+v db %+v", cfg.Storage, cfg.DB)
	}
	if dsn, err := cfg.DB.DSN(); err != nil || dsn != "postgres://localhost/wordroots" {
		t.Fatalf("unexpected dsn %q %v", dsn, err)
	}
	if cfg.Reminders.Enabled || cfg.Quiz.LearnGoal != 8 || cfg.Quiz.ChallengeQuestions != 10 {
		t.Fatalf("unexpected overrides %+v %+v", cfg.Reminders, cfg.Quiz)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("TELEGRAM_API_TOKEN", "")
	if _, err := load(newTestViper(t, "")); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("expected missing token error, got %v", err)
	}

	t.Setenv("TELEGRAM_API_TOKEN", "token")
	t.Setenv("DATABASE_URL", "")

	if _, err := load(newTestViper(t, "storage:\n  driver: postgres\n")); !errors.Is(err, ErrMissingEnvironmentVariables) {
		t.Fatalf("expected missing DATABASE_URL error, got %v", err)
	}
	if _, err := load(newTestViper(t, "storage:\n  driver: redis\n")); !errors.Is(err, ErrUnknownStorageDriver) {
		t.Fatalf("expected unknown driver error, got %v", err)
	}
	if _, err := load(newTestViper(t, "reminders:\n  start_hour: 25\n")); !errors.Is(err, ErrInvalidReminderWindow) {
		t.Fatalf("expected invalid window error, got %v", err)
	}
}
