package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Sample data generator configuration
	Generator GeneratorConfig

	// Export configuration
	Export ExportConfig

	// Automation configuration
	Automation AutomationConfig

	// Logging configuration
	Logging LoggingConfig

	// Application metadata
	App AppConfig
}

// DatabaseConfig holds the local SQLite database configuration
type DatabaseConfig struct {
	Path string
}

// GeneratorConfig holds sample ticket generation configuration
type GeneratorConfig struct {
	TicketCount int
	Seed        int64
	WindowDays  int
}

// ExportConfig holds the BI export configuration
type ExportConfig struct {
	Path string
}

// AutomationConfig holds configuration for the simulated automation run
type AutomationConfig struct {
	LogPath          string
	ChatChannel      string
	EscalationDays   int
	NotifyRatePerSec float64
	NotifyBurst      int
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// AppConfig holds application metadata
type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

// Load reads configuration from the environment, with an optional .env file.
// Every key has a default, so the binaries run with no flags and no
// environment at all.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Path: getEnvOrDefault("DATABASE_PATH", "support_tickets.db"),
		},
		Generator: GeneratorConfig{
			TicketCount: getIntOrDefault("GENERATOR_TICKET_COUNT", 200),
			Seed:        getInt64OrDefault("GENERATOR_SEED", 42),
			WindowDays:  getIntOrDefault("GENERATOR_WINDOW_DAYS", 60),
		},
		Export: ExportConfig{
			Path: getEnvOrDefault("EXPORT_PATH", "powerbi_support_data.json"),
		},
		Automation: AutomationConfig{
			LogPath:          getEnvOrDefault("AUTOMATION_LOG_PATH", "automation_log.json"),
			ChatChannel:      getEnvOrDefault("AUTOMATION_CHAT_CHANNEL", "#it-support"),
			EscalationDays:   getIntOrDefault("AUTOMATION_ESCALATION_DAYS", 3),
			NotifyRatePerSec: getFloatOrDefault("AUTOMATION_NOTIFY_RPS", 5),
			NotifyBurst:      getIntOrDefault("AUTOMATION_NOTIFY_BURST", 10),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
		App: AppConfig{
			Name:        getEnvOrDefault("APP_NAME", "support-analyzer"),
			Version:     getEnvOrDefault("APP_VERSION", "dev"),
			Environment: getEnvOrDefault("APP_ENV", "development"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []string

	if c.Database.Path == "" {
		errs = append(errs, "DATABASE_PATH must not be empty")
	}

	if c.Export.Path == "" {
		errs = append(errs, "EXPORT_PATH must not be empty")
	}

	if c.Generator.TicketCount < 0 {
		errs = append(errs, "GENERATOR_TICKET_COUNT must not be negative")
	}

	if c.Generator.WindowDays <= 0 {
		errs = append(errs, "GENERATOR_WINDOW_DAYS must be positive")
	}

	if c.Automation.EscalationDays <= 0 {
		errs = append(errs, "AUTOMATION_ESCALATION_DAYS must be positive")
	}

	if len(errs) > 0 {
		return errors.New("configuration errors:\n  - " + strings.Join(errs, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// String returns a string representation of the config (safe for logging)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{DB: %s, Export: %s, Tickets: %d, Seed: %d, Environment: %s}",
		c.Database.Path,
		c.Export.Path,
		c.Generator.TicketCount,
		c.Generator.Seed,
		c.App.Environment,
	)
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
