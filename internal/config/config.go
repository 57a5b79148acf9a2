// Package config loads service configuration from the environment.
//
// Every key can be set as TUTOR_<KEY> with dots replaced by underscores,
// e.g. TUTOR_DATABASE_URL. When present, .env.<env> (then .env) in the working
// directory is loaded first so local runs need no exported variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the resolved configuration.
type Config struct {
	Env     string
	AppName string

	HTTP     HTTPConfig
	Database DatabaseConfig
	Log      LogConfig

	// Location is the center's local timezone. Student code years and
	// "today" defaults are computed in it.
	Location *time.Location

	// AlertsRule is the CEL expression for near-complete enrollments.
	AlertsRule string

	// AutoMigrate applies pending migrations at server start.
	AutoMigrate bool
}

// HTTPConfig holds listener settings.
type HTTPConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds pool settings.
type DatabaseConfig struct {
	URL      string
	MaxConns int32
	MinConns int32
	// StatementTimeout bounds each statement inside a transaction.
	StatementTimeout time.Duration
}

// LogConfig mirrors logger.Config.
type LogConfig struct {
	Level       string
	Development bool
}

// ErrMissingDatabaseURL is returned when TUTOR_DATABASE_URL is not set.
var ErrMissingDatabaseURL = errors.New("config: database.url is required")

func defaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("app.name", "tutorcenter")
	v.SetDefault("http.port", "8080")
	v.SetDefault("http.read_timeout", 15*time.Second)
	v.SetDefault("http.write_timeout", 30*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.shutdown_timeout", 30*time.Second)
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.statement_timeout", 30*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
	v.SetDefault("timezone", "Asia/Bangkok")
	v.SetDefault("alerts.rule", "remaining < 2")
	v.SetDefault("migrate.auto", false)
}

// Load reads dotenv files and the environment.
func Load() (*Config, error) {
	env := strings.ToLower(os.Getenv("TUTOR_ENV"))
	if env == "" {
		env = "dev"
	}
	for _, path := range []string{".env." + env, ".env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				return nil, fmt.Errorf("config: load %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
	}

	v := viper.New()
	v.SetTypeByDefaultValue(true)
	defaults(v)
	v.SetEnvPrefix("TUTOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return FromViper(v)
}

// FromViper builds Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	loc, err := time.LoadLocation(v.GetString("timezone"))
	if err != nil {
		return nil, fmt.Errorf("config: timezone %q: %w", v.GetString("timezone"), err)
	}

	cfg := &Config{
		Env:     v.GetString("env"),
		AppName: v.GetString("app.name"),
		HTTP: HTTPConfig{
			Port:            v.GetString("http.port"),
			ReadTimeout:     v.GetDuration("http.read_timeout"),
			WriteTimeout:    v.GetDuration("http.write_timeout"),
			IdleTimeout:     v.GetDuration("http.idle_timeout"),
			ShutdownTimeout: v.GetDuration("http.shutdown_timeout"),
		},
		Database: DatabaseConfig{
			URL:              v.GetString("database.url"),
			MaxConns:         v.GetInt32("database.max_conns"),
			MinConns:         v.GetInt32("database.min_conns"),
			StatementTimeout: v.GetDuration("database.statement_timeout"),
		},
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Development: v.GetBool("log.development"),
		},
		Location:    loc,
		AlertsRule:  v.GetString("alerts.rule"),
		AutoMigrate: v.GetBool("migrate.auto"),
	}

	if cfg.Database.URL == "" {
		return nil, ErrMissingDatabaseURL
	}
	return cfg, nil
}
