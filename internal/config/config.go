package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the planner service
type Config struct {
	// HTTP
	Port           string   `yaml:"port" validate:"required,numeric"`
	AllowedOrigins []string `yaml:"allowed_origins" validate:"dive,required"`

	// Network source: a text file, or a network stored in the database
	NetworkFile string `yaml:"network_file" validate:"required_without=NetworkName"`
	NetworkName string `yaml:"network_name"`

	// Database
	DatabasePath string `yaml:"sqlite_database" validate:"required"`
	DatabaseURL  string `yaml:"database_url" validate:"omitempty,url"`
	RecordPlans  bool   `yaml:"record_plans"`

	// Service alerts
	AlertsURL          string        `yaml:"alerts_url" validate:"omitempty,url"`
	AlertsPollInterval time.Duration `yaml:"alerts_poll_interval"`
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		// HTTP
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnvList("ALLOWED_ORIGINS", []string{"http://localhost:5173"}),

		// Network source
		NetworkFile: getEnv("NETWORK_FILE", ""),
		NetworkName: getEnv("NETWORK_NAME", ""),

		// Database
		DatabasePath: getEnv("SQLITE_DATABASE", "/data/metroplanner.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		RecordPlans:  getEnvBool("RECORD_PLANS", false),

		// Service alerts
		AlertsURL:          getEnv("GTFS_ALERTS_URL", ""),
		AlertsPollInterval: time.Duration(getEnvInt("ALERTS_POLL_INTERVAL", 60)) * time.Second,
	}
}

// LoadFile reads a YAML file over the environment defaults and validates the result.
// Keys missing from the file keep their value from Load.
func LoadFile(path string) (*Config, error) {
	cfg := Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its validate tags.
// A poll interval is only required when an alerts feed is configured.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.AlertsURL != "" && c.AlertsPollInterval <= 0 {
		return fmt.Errorf("invalid configuration: alerts poll interval must be positive, got %v", c.AlertsPollInterval)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
