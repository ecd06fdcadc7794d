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
		t.Errorf("Expected default port 8080, got %q", cfg.Port)
	}
	if cfg.TypingDelay != 1200*time.Millisecond {
		t.Errorf("Expected default typing delay 1.2s, got %v", cfg.TypingDelay)
	}
	if !cfg.IsDevelopment() {
		t.Error("Expected development mode with empty PUBLIC_URL")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TYPING_DELAY", "800")
	t.Setenv("SESSION_TTL", "10m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %q", cfg.Port)
	}
	if cfg.TypingDelay != 800*time.Millisecond {
		t.Errorf("Expected bare-number delay parsed as milliseconds, got %v", cfg.TypingDelay)
	}
	if cfg.SessionTTL != 10*time.Minute {
		t.Errorf("Expected 10m session TTL, got %v", cfg.SessionTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("Expected trimmed origin list, got %v", cfg.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid dev", func(*Config) {}, false},
		{"empty port", func(c *Config) { c.Port = "" }, true},
		{"empty db path", func(c *Config) { c.DBPath = "" }, true},
		{"missing secret in prod", func(c *Config) { c.PublicURL = "https://askio.example" }, true},
		{"negative delay", func(c *Config) { c.TypingDelay = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:        "8080",
				DBPath:      "./data/askio.db",
				TypingDelay: time.Second,
				SessionTTL:  time.Hour,
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
