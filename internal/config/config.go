package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers
const (
	StoreMemory = "memory"
	StoreMySQL  = "mysql"
)

// Config holds all configuration for the application
type Config struct {
	AppMode  string `env:"APP_MODE" env-default:"dev"`
	Port     string `env:"PORT" env-default:"3000"`
	LogLevel string `env:"LOG_LEVEL" env-default:""`

	// StoreDriver selects per-session memory storage or a shared MySQL database
	StoreDriver string `env:"STORE_DRIVER" env-default:"memory"`
	Database    DatabaseConfig
	JWT         JWTConfig
	Session     SessionConfig
	AI          AIConfig

	Timezone       string `env:"TIMEZONE" env-default:"America/Sao_Paulo"`
	SeedFile       string `env:"SEED_FILE" env-default:""`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" env-default:""`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     string `env:"DB_PORT" env-default:"3306"`
	User     string `env:"DB_USER" env-default:"root"`
	Password string `env:"DB_PASS"`
	DBName   string `env:"DB_NAME" env-default:"churchhub"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string `env:"JWT_SECRET" env-default:"default_secret"`
}

// SessionConfig holds session lifetime settings
type SessionConfig struct {
	TTLMinutes    int    `env:"SESSION_TTL_MINUTES" env-default:"720"`
	SweepSchedule string `env:"SESSION_SWEEP_SCHEDULE" env-default:"*/10 * * * *"`
}

// AIConfig holds the text generation provider settings
type AIConfig struct {
	Provider string `env:"AI_PROVIDER" env-default:"none"`
	APIKey   string `env:"AI_API_KEY"`
	Model    string `env:"AI_MODEL" env-default:""`
	BaseURL  string `env:"AI_BASE_URL" env-default:""`
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// .env is optional; production passes real environment variables
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	// trim spaces for Windows compatibility
	c.AppMode = strings.TrimSpace(c.AppMode)
	if c.AppMode != "dev" && c.AppMode != "prod" {
		return fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", c.AppMode)
	}

	c.StoreDriver = strings.ToLower(strings.TrimSpace(c.StoreDriver))
	if c.StoreDriver != StoreMemory && c.StoreDriver != StoreMySQL {
		return fmt.Errorf("invalid STORE_DRIVER: '%s' (must be 'memory' or 'mysql')", c.StoreDriver)
	}

	if c.Session.TTLMinutes < 0 {
		return fmt.Errorf("invalid SESSION_TTL_MINUTES: %d", c.Session.TTLMinutes)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE '%s': %w", c.Timezone, err)
	}

	if c.IsProd() && c.JWT.Secret == "default_secret" {
		return fmt.Errorf("JWT_SECRET must be set in prod mode")
	}
	return nil
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// Location returns the display time zone
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// SessionTTL returns the idle lifetime of a session; zero disables expiry
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://hub.penielchurch.com.br"
	}
	return c.AllowedOrigins
}
