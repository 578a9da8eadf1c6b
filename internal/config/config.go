package config

import (
	"fmt"
	"net/url"
	"time"
	_ "time/tzdata" // library timezone must resolve on minimal images

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Scheduler SchedulerConfig `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:",squash"`
	Business  BusinessConfig  `mapstructure:",squash"`
	Auth      AuthConfig      `mapstructure:",squash"`
	Health    HealthConfig    `mapstructure:",squash"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"SERVER_PORT"`
	Host         string        `mapstructure:"SERVER_HOST"`
	Env          string        `mapstructure:"ENV"`
	AllowOrigin  string        `mapstructure:"CORS_ALLOW_ORIGIN"`
	ReadTimeout  time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"DATABASE_URL"`
	Host            string        `mapstructure:"DATABASE_HOST"`
	Port            string        `mapstructure:"DATABASE_PORT"`
	Name            string        `mapstructure:"DATABASE_NAME"`
	User            string        `mapstructure:"DATABASE_USER"`
	Password        string        `mapstructure:"DATABASE_PASSWORD"`
	SSLMode         string        `mapstructure:"DATABASE_SSLMODE"`
	MaxOpenConns    int           `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	FineCron       string `mapstructure:"SCHEDULER_FINE_CRON"`
	VisitorSweep   string `mapstructure:"SCHEDULER_VISITOR_SWEEP_CRON"`
	Timezone       string `mapstructure:"SCHEDULER_TIMEZONE"`
	JobTimeoutSecs int    `mapstructure:"SCHEDULER_JOB_TIMEOUT_SECONDS"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type BusinessConfig struct {
	MaxBorrowDays       int           `mapstructure:"MAX_BORROW_DAYS"`
	ExtensionDays       int           `mapstructure:"EXTENSION_DAYS"`
	MaxExtensions       int           `mapstructure:"MAX_EXTENSIONS"`
	DefaultMaxLoans     int           `mapstructure:"DEFAULT_MAX_LOANS"`
	DefaultPageSize     int           `mapstructure:"DEFAULT_PAGE_SIZE"`
	MaxPageSize         int           `mapstructure:"MAX_PAGE_SIZE"`
	ExportMaxRows       int           `mapstructure:"EXPORT_MAX_ROWS"`
	LibraryStatusTTL    time.Duration `mapstructure:"LIBRARY_STATUS_CACHE_TTL"`
	LibraryTimezoneName string        `mapstructure:"LIBRARY_TIMEZONE"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"JWT_SECRET"`
	JWTIssuer  string        `mapstructure:"JWT_ISSUER"`
	SessionTTL time.Duration `mapstructure:"SESSION_TTL"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

var defaults = map[string]any{
	"SERVER_PORT":                   "8080",
	"SERVER_HOST":                   "0.0.0.0",
	"ENV":                           "development",
	"CORS_ALLOW_ORIGIN":             "*",
	"SERVER_READ_TIMEOUT":           "15s",
	"SERVER_WRITE_TIMEOUT":          "30s",
	"DATABASE_URL":                  "",
	"DATABASE_HOST":                 "localhost",
	"DATABASE_PORT":                 "5432",
	"DATABASE_NAME":                 "perpustakaan",
	"DATABASE_USER":                 "postgres",
	"DATABASE_PASSWORD":             "",
	"DATABASE_SSLMODE":              "disable",
	"DATABASE_MAX_OPEN_CONNS":       25,
	"DATABASE_MAX_IDLE_CONNS":       5,
	"DATABASE_CONN_MAX_LIFETIME":    "30m",
	"REDIS_HOST":                    "localhost",
	"REDIS_PORT":                    "6379",
	"REDIS_PASSWORD":                "",
	"REDIS_DB":                      0,
	"SCHEDULER_FINE_CRON":           "0 5 0 * * *",
	"SCHEDULER_VISITOR_SWEEP_CRON":  "0 0 * * * *",
	"SCHEDULER_TIMEZONE":            "Asia/Jakarta",
	"SCHEDULER_JOB_TIMEOUT_SECONDS": 120,
	"LOG_LEVEL":                     "info",
	"LOG_FORMAT":                    "json",
	"MAX_BORROW_DAYS":               3,
	"EXTENSION_DAYS":                3,
	"MAX_EXTENSIONS":                3,
	"DEFAULT_MAX_LOANS":             3,
	"DEFAULT_PAGE_SIZE":             10,
	"MAX_PAGE_SIZE":                 100,
	"EXPORT_MAX_ROWS":               5000,
	"LIBRARY_STATUS_CACHE_TTL":      "1m",
	"LIBRARY_TIMEZONE":              "Asia/Jakarta",
	"JWT_SECRET":                    "",
	"JWT_ISSUER":                    "perpus-api",
	"SESSION_TTL":                   "12h",
	"HEALTH_CHECK_TIMEOUT":          "5s",
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	v := viper.New()

	// Every key gets a default so AutomaticEnv can resolve it during Unmarshal.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = v.ReadInConfig()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" && c.Database.Host == "" {
		return fmt.Errorf("DATABASE_URL or DATABASE_HOST is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.Business.MaxBorrowDays <= 0 {
		return fmt.Errorf("MAX_BORROW_DAYS must be greater than 0")
	}

	if c.Business.ExtensionDays <= 0 {
		return fmt.Errorf("EXTENSION_DAYS must be greater than 0")
	}

	if c.Business.MaxExtensions < 0 {
		return fmt.Errorf("MAX_EXTENSIONS must not be negative")
	}

	if c.Business.DefaultPageSize <= 0 || c.Business.DefaultPageSize > c.Business.MaxPageSize {
		return fmt.Errorf("DEFAULT_PAGE_SIZE must be within (0, MAX_PAGE_SIZE]")
	}

	if _, err := time.LoadLocation(c.Business.LibraryTimezoneName); err != nil {
		return fmt.Errorf("LIBRARY_TIMEZONE must be a valid IANA zone: %w", err)
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid IANA zone: %w", err)
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// DSN returns the lib/pq connection string. DATABASE_URL wins when set.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + d.SSLMode,
	}
	return u.String()
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// LibraryLocation returns the timezone loan dates are judged in.
func (c *Config) LibraryLocation() *time.Location {
	loc, err := time.LoadLocation(c.Business.LibraryTimezoneName)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SchedulerLocation returns the timezone cron specs are evaluated in.
func (c *Config) SchedulerLocation() *time.Location {
	loc, err := time.LoadLocation(c.Scheduler.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}

// GetJobTimeout bounds a single scheduler run.
func (c *Config) GetJobTimeout() time.Duration {
	return time.Duration(c.Scheduler.JobTimeoutSecs) * time.Second
}
