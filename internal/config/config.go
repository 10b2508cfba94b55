package config

import (
	"fmt"
	"os"

	"billmate/internal/logger"
)

type Config struct {
	// Data Configuration
	DataDir string

	// Business Configuration
	CompanyName    string
	CurrencySymbol string

	// OpenAI Configuration (optional, insight feature only)
	OpenAIAPIKey string
	OpenAIModel  string

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		DataDir:        getEnv("BILLMATE_DATA_DIR", "./data"),
		CompanyName:    getEnv("COMPANY_NAME", "Divya Gold"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "₹"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:  getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:      getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("BILLMATE_DATA_DIR must not be empty")
	}
	if c.CompanyName == "" {
		return fmt.Errorf("COMPANY_NAME must not be empty")
	}
	// OPENAI_API_KEY is deliberately not required: the insight feature
	// degrades to fallback text without it.
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
