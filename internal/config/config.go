package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	DefaultCalendlyURL     = "https://calendly.com/your-team/demo"
	DefaultWidgetScriptURL = "https://assets.calendly.com/assets/external/widget.js"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Auth      AuthConfig      `yaml:"auth"`
	SendGrid  SendGridConfig  `yaml:"sendgrid"`
	Landing   LandingConfig   `yaml:"landing"`
	Sessions  SessionsConfig  `yaml:"sessions"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host" env:"SERVER_HOST"`
	Port int    `yaml:"port" env:"SERVER_PORT"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Database string `yaml:"database" env:"DB_NAME"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSL_MODE"`
}

// JWTConfig contains session token settings
type JWTConfig struct {
	Secret            string `yaml:"secret" env:"JWT_SECRET"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes" env:"JWT_ACCESS_TOKEN_EXPIRY_MINUTES"`
}

// AuthConfig contains signup and sign-in policy
type AuthConfig struct {
	RequireEmailConfirmation bool   `yaml:"require_email_confirmation" env:"AUTH_REQUIRE_EMAIL_CONFIRMATION"`
	ConfirmURLBase           string `yaml:"confirm_url_base" env:"AUTH_CONFIRM_URL_BASE"`
	MinPasswordLength        int    `yaml:"min_password_length" env:"AUTH_MIN_PASSWORD_LENGTH"`
	UnconfirmedTTLHours      int    `yaml:"unconfirmed_ttl_hours" env:"AUTH_UNCONFIRMED_TTL_HOURS"`
}

// SendGridConfig contains confirmation email settings. An empty API key
// disables delivery and confirmation links are only logged.
type SendGridConfig struct {
	APIKey    string `yaml:"api_key" env:"SENDGRID_API_KEY"`
	FromEmail string `yaml:"from_email" env:"SENDGRID_FROM_EMAIL"`
	FromName  string `yaml:"from_name" env:"SENDGRID_FROM_NAME"`
}

// LandingConfig contains the scheduling widget and analytics settings
type LandingConfig struct {
	CalendlyURL     string `yaml:"calendly_url" env:"CALENDLY_URL"`
	WidgetScriptURL string `yaml:"widget_script_url" env:"CALENDLY_WIDGET_SCRIPT_URL"`
	ClarityID       string `yaml:"clarity_id" env:"CLARITY_ID"`
	DataLayer       bool   `yaml:"data_layer" env:"LANDING_DATA_LAYER"`
	StoreEvents     bool   `yaml:"store_events" env:"LANDING_STORE_EVENTS"`
}

// SessionsConfig controls the in-memory visitor and page sessions
type SessionsConfig struct {
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes" env:"SESSIONS_IDLE_TIMEOUT_MINUTES"`
	SweepSchedule      string `yaml:"sweep_schedule" env:"SESSIONS_SWEEP_SCHEDULE"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`   // "debug", "info", "warn", "error"
	Format string `yaml:"format" env:"LOG_FORMAT"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	PurgeUnconfirmedUsers  string `yaml:"purge_unconfirmed_users" env:"SCHEDULE_PURGE_UNCONFIRMED_USERS"`
	PurgeAnalyticsEvents   string `yaml:"purge_analytics_events" env:"SCHEDULE_PURGE_ANALYTICS_EVENTS"`
	AnalyticsRetentionDays int    `yaml:"analytics_retention_days" env:"ANALYTICS_RETENTION_DAYS"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and validates the result
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment variables win over the file; unset variables leave file values alone
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.JWT.AccessTokenExpiry == 0 {
		c.JWT.AccessTokenExpiry = 60
	}
	if c.Auth.MinPasswordLength == 0 {
		c.Auth.MinPasswordLength = 6
	}
	if c.Auth.UnconfirmedTTLHours == 0 {
		c.Auth.UnconfirmedTTLHours = 72
	}
	if c.Landing.CalendlyURL == "" {
		c.Landing.CalendlyURL = DefaultCalendlyURL
	}
	if c.Landing.WidgetScriptURL == "" {
		c.Landing.WidgetScriptURL = DefaultWidgetScriptURL
	}
	if c.Sessions.IdleTimeoutMinutes == 0 {
		c.Sessions.IdleTimeoutMinutes = 30
	}
	if c.Sessions.SweepSchedule == "" {
		c.Sessions.SweepSchedule = "0 */5 * * * *" // every 5 minutes
	}
	if c.Scheduler.PurgeUnconfirmedUsers == "" {
		c.Scheduler.PurgeUnconfirmedUsers = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.PurgeAnalyticsEvents == "" {
		c.Scheduler.PurgeAnalyticsEvents = "0 0 3 * * *" // 3 AM UTC
	}
	if c.Scheduler.AnalyticsRetentionDays == 0 {
		c.Scheduler.AnalyticsRetentionDays = 90
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	if c.Auth.RequireEmailConfirmation && c.Auth.ConfirmURLBase == "" {
		return fmt.Errorf("confirm URL base is required when email confirmation is enabled")
	}
	if c.SendGrid.APIKey != "" && c.SendGrid.FromEmail == "" {
		return fmt.Errorf("sendgrid from email is required when an API key is set")
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
