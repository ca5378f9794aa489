// Package config loads the service configuration from a YAML file with APP_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/maxviazov/railway-blog-service/internal/logger"
)

// Supported storage drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Database DatabaseConfig      `mapstructure:"database"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	SQLite   SQLiteConfig        `mapstructure:"sqlite"`
	Auth     AuthConfig          `mapstructure:"auth"`
	Site     SiteConfig          `mapstructure:"site"`
}

type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Version     string `mapstructure:"version"`
	Env         string `mapstructure:"env" validate:"oneof=dev test staging prod"`
	Port        int    `mapstructure:"port" validate:"min=1,max=65535"`
	BaseURL     string `mapstructure:"base_url" validate:"omitempty,url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
	SSL         bool   `mapstructure:"ssl"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=postgres sqlite"`
}

type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"db"`
	SSLMode           string `mapstructure:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"min=0"`
	MinConns          int32  `mapstructure:"min_conns" validate:"min=0"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime" validate:"min=0"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time" validate:"min=0"`
	HealthCheckPeriod int    `mapstructure:"health_check_period" validate:"min=0"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	// AdminPasswordHash is a bcrypt hash; generate one with `hash-password`.
	AdminPasswordHash string `mapstructure:"admin_password_hash" validate:"required"`
	SecretKey         string `mapstructure:"secret_key" validate:"required,min=16"`
	CookieName        string `mapstructure:"cookie_name" validate:"required"`
	CookieTTLSeconds  int    `mapstructure:"cookie_ttl_seconds" validate:"min=60"`
	SecureCookie      bool   `mapstructure:"secure_cookie"`
}

// CookieTTL returns the session lifetime.
func (a AuthConfig) CookieTTL() time.Duration {
	return time.Duration(a.CookieTTLSeconds) * time.Second
}

type SiteConfig struct {
	Title           string `mapstructure:"title" validate:"required"`
	DefaultCategory string `mapstructure:"default_category" validate:"required"`
	PostsPerPage    int    `mapstructure:"posts_per_page" validate:"min=1,max=100"`
	SearchPerPage   int    `mapstructure:"search_per_page" validate:"min=1,max=100"`
	RecentLimit     int    `mapstructure:"recent_limit" validate:"min=1,max=50"`
	FeedSize        int    `mapstructure:"feed_size" validate:"min=1,max=100"`
}

// defaults registers every key so AutomaticEnv can override values absent from the file.
var defaults = map[string]any{
	"app.name":                     "railway-blog-service",
	"app.version":                  "0.1.0",
	"app.env":                      "prod",
	"app.port":                     8080,
	"app.base_url":                 "http://localhost:8080",
	"app.auto_migrate":             true,
	"app.ssl":                      false,
	"logger.level":                 "",
	"logger.format":                "",
	"logger.output_target":         "",
	"logger.time_format":           "",
	"logger.env":                   "",
	"database.driver":              DriverSQLite,
	"postgres.host":                "localhost",
	"postgres.port":                5432,
	"postgres.user":                "",
	"postgres.password":            "",
	"postgres.db":                  "",
	"postgres.sslmode":             "disable",
	"postgres.max_conns":           10,
	"postgres.min_conns":           1,
	"postgres.max_conn_lifetime":   3600,
	"postgres.max_conn_idle_time":  300,
	"postgres.health_check_period": 30,
	"sqlite.path":                  "./blog.db",
	"auth.admin_password_hash":     "",
	"auth.secret_key":              "",
	"auth.cookie_name":             "auth_token",
	"auth.cookie_ttl_seconds":      3600,
	"auth.secure_cookie":           false,
	"site.title":                   "Ferrocarril",
	"site.default_category":        "noticias",
	"site.posts_per_page":          10,
	"site.search_per_page":         5,
	"site.recent_limit":            5,
	"site.feed_size":               20,
}

func Load(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if config.Logger.Env == "" {
		config.Logger.Env = config.App.Env
	}
	if config.Logger.ServiceName == "" {
		config.Logger.ServiceName = config.App.Name
	}
	if config.Logger.ServiceVersion == "" {
		config.Logger.ServiceVersion = config.App.Version
	}
	config.Logger.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks field constraints and the cross-section requirements of the chosen driver.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation error: %w", err)
	}
	switch c.Database.Driver {
	case DriverPostgres:
		var missing []string
		if c.Postgres.User == "" {
			missing = append(missing, "postgres.user")
		}
		if c.Postgres.Password == "" {
			missing = append(missing, "postgres.password")
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, "postgres.db")
		}
		if len(missing) > 0 {
			return fmt.Errorf("config validation error: missing %s", strings.Join(missing, ", "))
		}
	case DriverSQLite:
		if c.SQLite.Path == "" {
			return errors.New("config validation error: sqlite.path is required")
		}
	}
	return nil
}

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}
