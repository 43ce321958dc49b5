package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	// Model endpoint (OpenAI-compatible chat completions)
	ModelEndpoint string
	ModelAPIKey   string
	ModelName     string
	ModelTimeout  time.Duration

	// Pricing
	PricingURL     string
	PricingTimeout time.Duration

	// Pipeline
	DefaultRegion string
	RunTimeout    time.Duration

	// Savings rules (USD per month)
	ReservedThreshold float64
	DevTestThreshold  float64

	// Storage
	StorageEnabled bool
	DatabaseURL    string

	// Output
	OutputFormat string // text, markdown, json
	Verbose      bool
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		ModelEndpoint:     getEnv("MODEL_ENDPOINT", "https://api.openai.com/v1"),
		ModelAPIKey:       getEnv("MODEL_API_KEY", ""),
		ModelName:         getEnv("MODEL_NAME", "gpt-4.1"),
		ModelTimeout:      getEnvDuration("MODEL_TIMEOUT", 60*time.Second),
		PricingURL:        getEnv("PRICING_URL", "https://prices.azure.com/api/retail/prices"),
		PricingTimeout:    getEnvDuration("PRICING_TIMEOUT", 10*time.Second),
		DefaultRegion:     getEnv("DEFAULT_REGION", "eastus"),
		RunTimeout:        getEnvDuration("RUN_TIMEOUT", 5*time.Minute),
		ReservedThreshold: getEnvFloat("RESERVED_THRESHOLD", 100.0),
		DevTestThreshold:  getEnvFloat("DEVTEST_THRESHOLD", 500.0),
		StorageEnabled:    getEnvBool("STORAGE_ENABLED", false),
		DatabaseURL:       getEnv("DATABASE_URL", "host=localhost port=5432 user=archcost password=devpassword dbname=archcost sslmode=disable"),
		OutputFormat:      getEnv("OUTPUT_FORMAT", "text"),
		Verbose:           getEnvBool("VERBOSE", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.ModelEndpoint == "" {
		return fmt.Errorf("MODEL_ENDPOINT must be set")
	}
	if c.ModelName == "" {
		return fmt.Errorf("MODEL_NAME must be set")
	}
	if c.StorageEnabled && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set when storage is enabled")
	}
	if c.RunTimeout < time.Second {
		return fmt.Errorf("run timeout must be at least 1 second")
	}
	if c.ReservedThreshold < 0 || c.DevTestThreshold < 0 {
		return fmt.Errorf("savings thresholds must be non-negative")
	}
	switch c.OutputFormat {
	case "text", "markdown", "json":
	default:
		return fmt.Errorf("output format must be text, markdown, or json")
	}
	return nil
}
