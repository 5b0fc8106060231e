package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var (
	ErrMissingEnvironmentVariables = errors.New("missing required environment variables")
	ErrUnknownStorageDriver        = errors.New("unknown storage driver")
	ErrInvalidReminderWindow       = errors.New("invalid reminder window")
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string    `mapstructure:"env"`          // current application environment (local, dev, production etc)
	TelegramAPIToken string    `mapstructure:"-"`            // Telegram API token loaded from environment
	CatalogPath      string    `mapstructure:"catalog_path"` // path to the roots catalog, .json or .xlsx
	Timezone         string    `mapstructure:"timezone"`     // timezone streak days are counted in
	Storage          Storage   `mapstructure:"storage"`      // progress storage section
	DB               DB        `mapstructure:"database"`     // database configuration section
	Reminders        Reminders `mapstructure:"reminders"`    // streak reminder section
	Quiz             Quiz      `mapstructure:"quiz"`         // quiz sizes
}

// Storage selects the progress backend.
type Storage struct {
	Driver     string `mapstructure:"driver"`      // memory, sqlite or postgres
	SQLitePath string `mapstructure:"sqlite_path"` // database file for the sqlite driver
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// Reminders configures streak reminders.
type Reminders struct {
	Enabled   bool   `mapstructure:"enabled"`
	Schedule  string `mapstructure:"schedule"`   // cron spec
	StartHour int    `mapstructure:"start_hour"` // local hour reminders start at
	EndHour   int    `mapstructure:"end_hour"`   // local hour reminders stop at
}

// Quiz configures quiz sizes.
type Quiz struct {
	ChallengeQuestions int `mapstructure:"challenge_questions"`
	LearnGoal          int `mapstructure:"learn_goal"`
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from .env, config files and environment variables.
func Load() (*Config, error) {
	// A missing .env file is fine: variables may come from the environment.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("env", "local")
	v.SetDefault("catalog_path", "assets/data/roots.json")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlite_path", "data/wordroots.db")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_conn_lifetime", "30m")
	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.schedule", "0 * * * *")
	v.SetDefault("reminders.start_hour", 9)
	v.SetDefault("reminders.end_hour", 21)
	v.SetDefault("quiz.challenge_questions", 10)
	v.SetDefault("quiz.learn_goal", 5)

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("env", "APP_ENV")

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, fmt.Errorf("%w: TELEGRAM_API_TOKEN", ErrMissingEnvironmentVariables)
	}
	cfg.DB.URL = v.GetString("database_url")

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if _, err := c.DB.DSN(); err != nil {
			return fmt.Errorf("%w: DATABASE_URL", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, c.Storage.Driver)
	}

	r := c.Reminders
	if r.StartHour < 0 || r.StartHour > 23 || r.EndHour < 0 || r.EndHour > 24 {
		return fmt.Errorf("%w: %d-%d", ErrInvalidReminderWindow, r.StartHour, r.EndHour)
	}

	return nil
}
