package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Export  ExportConfig
	Options OptionsConfig
}

// ServerConfig holds extraction-service connection configuration
type ServerConfig struct {
	BaseURL        string
	ExtractTimeout time.Duration
	LookupTimeout  time.Duration
}

// ExportConfig holds local sheet output configuration
type ExportConfig struct {
	OutputDir string
}

// OptionsConfig holds default extraction option values
type OptionsConfig struct {
	OutputCurrency string
	ExchangeRate   string
	SyncHSCodes    bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:        getEnv("SHIPDOCS_SERVER", "http://localhost:8000"),
			ExtractTimeout: getEnvAsDuration("SHIPDOCS_EXTRACT_TIMEOUT", 180*time.Second),
			LookupTimeout:  getEnvAsDuration("SHIPDOCS_LOOKUP_TIMEOUT", 30*time.Second),
		},
		Export: ExportConfig{
			OutputDir: getEnv("SHIPDOCS_OUT", "."),
		},
		Options: OptionsConfig{
			OutputCurrency: getEnv("SHIPDOCS_CURRENCY", "auto"),
			ExchangeRate:   getEnv("SHIPDOCS_EXCHANGE_RATE", ""),
			SyncHSCodes:    getEnvAsBool("SHIPDOCS_SYNC_HS_CODES", true),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return NewAppError("CONFIG_ERROR", "SHIPDOCS_SERVER is required", ErrInvalidInput)
	}
	if c.Server.ExtractTimeout <= 0 {
		return NewAppError("CONFIG_ERROR", "SHIPDOCS_EXTRACT_TIMEOUT must be positive", ErrInvalidInput)
	}
	return nil
}
