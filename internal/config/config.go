package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Config holds all configuration for the application
type Config struct {
	Log    LogConfig
	Redis  RedisConfig
	DND5E  DND5EConfig
	Master MasterConfig
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `validate:"oneof=debug info warn error"`
}

// RedisConfig holds Redis-specific configuration.
// An empty URL means the spell catalog stays in memory.
type RedisConfig struct {
	URL string `validate:"omitempty,url"`
}

// DND5EConfig holds D&D 5e API configuration used by the catalog importer
type DND5EConfig struct {
	Timeout time.Duration `validate:"gt=0"`
	Classes []string      `validate:"required,min=1,dive,required"`
}

// MasterConfig holds defaults for master spellbooks created from the CLI
type MasterConfig struct {
	Forbidden string `validate:"oneof=Fire Ice Lightning Earth Wind"`
	MaxSpells int    `validate:"gte=1"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Log: LogConfig{
			Level: getEnvOrDefault("SPELLBOOK_LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			URL: os.Getenv("REDIS_URL"),
		},
		DND5E: DND5EConfig{
			Timeout: time.Duration(getEnvAsIntOrDefault("DND5E_TIMEOUT_SECONDS", 30)) * time.Second,
			Classes: getEnvAsListOrDefault("SPELLBOOK_IMPORT_CLASSES", []string{"wizard"}),
		},
		Master: MasterConfig{
			Forbidden: getEnvOrDefault("SPELLBOOK_MASTER_FORBIDDEN", "Ice"),
			MaxSpells: getEnvAsIntOrDefault("SPELLBOOK_MASTER_MAX_SPELLS", 5),
		},
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsListOrDefault(key string, defaultValue []string) []string {
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
