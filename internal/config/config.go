// Package config provides application configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Port        string
	FrontendURL string
	DBPath      string

	// Provider credentials. An empty key disables the corresponding
	// provider; calls against it fail as rejected.
	OpenWeatherAPIKey     string
	GoogleMapsAPIKey      string
	GoogleTranslateAPIKey string
	OpenAIAPIKey          string
	OpenAIModel           string

	ProviderTimeout    time.Duration
	AggregationTimeout time.Duration
	WeatherTTL         time.Duration

	TranslationCacheSize int
	HistoryLimit         int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                  getEnv("PORT", "8080"),
		FrontendURL:           getEnv("FRONTEND_URL", ""),
		DBPath:                getEnv("DB_PATH", "./data/yatra.db"),
		OpenWeatherAPIKey:     getEnv("OPENWEATHER_API_KEY", ""),
		GoogleMapsAPIKey:      getEnv("GOOGLE_MAPS_API_KEY", ""),
		GoogleTranslateAPIKey: getEnv("GOOGLE_TRANSLATE_API_KEY", ""),
		OpenAIAPIKey:          getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:           getEnv("OPENAI_MODEL", "gpt-4.1-2025-04-14"),
		ProviderTimeout:       getEnvDuration("PROVIDER_TIMEOUT", 10*time.Second),
		AggregationTimeout:    getEnvDuration("AGGREGATION_TIMEOUT", 3*time.Second),
		WeatherTTL:            getEnvDuration("WEATHER_TTL", 10*time.Minute),
		TranslationCacheSize:  getEnvInt("TRANSLATION_CACHE_SIZE", 1024),
		HistoryLimit:          getEnvInt("HISTORY_LIMIT", 20),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.ProviderTimeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be > 0")
	}
	if c.AggregationTimeout <= 0 {
		return fmt.Errorf("AGGREGATION_TIMEOUT must be > 0")
	}
	if c.TranslationCacheSize <= 0 {
		return fmt.Errorf("TRANSLATION_CACHE_SIZE must be > 0")
	}
	if c.HistoryLimit <= 0 {
		return fmt.Errorf("HISTORY_LIMIT must be > 0")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.FrontendURL == "" ||
		strings.Contains(c.FrontendURL, "localhost") ||
		strings.Contains(c.FrontendURL, "127.0.0.1")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
