package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/pocket/internal/database"
	"github.com/MrJamesThe3rd/pocket/internal/period"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"pocket"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	DB struct {
		Driver   database.Driver `envconfig:"DB_DRIVER" default:"sqlite"`
		Path     string          `envconfig:"DB_PATH" default:"pocket.db"`
		Host     string          `envconfig:"DB_HOST" default:"localhost"`
		Port     int             `envconfig:"DB_PORT" default:"5432"`
		User     string          `envconfig:"DB_USER" default:"postgres"`
		Password string          `envconfig:"DB_PASSWORD" default:""`
		Name     string          `envconfig:"DB_NAME" default:"pocket"`
	}

	Locale struct {
		Timezone       string `envconfig:"LOCALE_TIMEZONE" default:"Local"`
		FirstDayOfWeek string `envconfig:"LOCALE_FIRST_DAY_OF_WEEK" default:"monday"`
	}

	Seed struct {
		DefaultCategories bool `envconfig:"SEED_DEFAULT_CATEGORIES" default:"true"`
	}

	AMQP struct {
		URL        string `envconfig:"AMQP_URL"`
		Exchange   string `envconfig:"AMQP_EXCHANGE" default:"pocket.events"`
		RoutingKey string `envconfig:"AMQP_ROUTING_KEY" default:"ledger.changed"`
	}

	Import struct {
		DecimalSeparator string `envconfig:"IMPORT_DECIMAL_SEPARATOR" default:","`
		MaxUploadMB      int64  `envconfig:"IMPORT_MAX_UPLOAD_MB" default:"10"`
	}
}

// ConnectionString returns the DSN for the configured driver.
func (c *Config) ConnectionString() string {
	if c.DB.Driver == database.DriverSQLite {
		return database.SQLiteDSN(c.DB.Path)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:     c.DB.Name,
		RawQuery: "sslmode=disable",
	}

	return u.String()
}

// Calendar builds the calendar all periods are resolved in.
func (c *Config) Calendar() (*period.Calendar, error) {
	loc, err := time.LoadLocation(c.Locale.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Locale.Timezone, err)
	}

	first, err := period.ParseWeekday(c.Locale.FirstDayOfWeek)
	if err != nil {
		return nil, err
	}

	return period.NewCalendar(loc, first), nil
}

// DecimalSeparator is the separator imported amounts are written with.
func (c *Config) DecimalSeparator() rune {
	if c.Import.DecimalSeparator == "." {
		return '.'
	}

	return ','
}

func (c *Config) MaxUploadBytes() int64 {
	return c.Import.MaxUploadMB << 20
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.DB.Driver {
	case database.DriverSQLite, database.DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	if cfg.Import.DecimalSeparator != "." && cfg.Import.DecimalSeparator != "," {
		return nil, fmt.Errorf("IMPORT_DECIMAL_SEPARATOR must be \".\" or \",\", got %q", cfg.Import.DecimalSeparator)
	}

	return &cfg, nil
}
