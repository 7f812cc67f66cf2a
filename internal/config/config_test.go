package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.ProviderTimeout != 10*time.Second {
		t.Errorf("Expected default provider timeout 10s, got %v", cfg.ProviderTimeout)
	}
	if cfg.AggregationTimeout != 3*time.Second {
		t.Errorf("Expected default aggregation timeout 3s, got %v", cfg.AggregationTimeout)
	}
	if cfg.TranslationCacheSize != 1024 {
		t.Errorf("Expected default cache size 1024, got %d", cfg.TranslationCacheSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PROVIDER_TIMEOUT", "2s")
	t.Setenv("TRANSLATION_CACHE_SIZE", "16")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.ProviderTimeout != 2*time.Second {
		t.Errorf("Expected 2s timeout, got %v", cfg.ProviderTimeout)
	}
	if cfg.TranslationCacheSize != 16 {
		t.Errorf("Expected cache size 16, got %d", cfg.TranslationCacheSize)
	}
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "soon")
	t.Setenv("HISTORY_LIMIT", "many")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ProviderTimeout != 10*time.Second {
		t.Errorf("Expected fallback timeout, got %v", cfg.ProviderTimeout)
	}
	if cfg.HistoryLimit != 20 {
		t.Errorf("Expected fallback history limit, got %d", cfg.HistoryLimit)
	}
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Port:                 "8080",
		DBPath:               "./data/test.db",
		ProviderTimeout:      time.Second,
		AggregationTimeout:   time.Second,
		TranslationCacheSize: 8,
		HistoryLimit:         5,
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.Port = "" }},
		{"empty db path", func(c *Config) { c.DBPath = "" }},
		{"zero provider timeout", func(c *Config) { c.ProviderTimeout = 0 }},
		{"zero aggregation timeout", func(c *Config) { c.AggregationTimeout = 0 }},
		{"zero cache size", func(c *Config) { c.TranslationCacheSize = 0 }},
		{"zero history limit", func(c *Config) { c.HistoryLimit = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestIsDevelopment(t *testing.T) {
	tests := []struct {
		frontendURL string
		want        bool
	}{
		{"", true},
		{"http://localhost:3000", true},
		{"http://127.0.0.1:3000", true},
		{"https://yatra.example.com", false},
	}
	for _, tt := range tests {
		cfg := &Config{FrontendURL: tt.frontendURL}
		if got := cfg.IsDevelopment(); got != tt.want {
			t.Errorf("IsDevelopment(%q) = %v, want %v", tt.frontendURL, got, tt.want)
		}
	}
}
