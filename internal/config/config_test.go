package config

import "testing"

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/coach")
	t.Setenv("ADVICE_URL", "https://advice.example.com/v1/analyze")
	t.Setenv("ADVICE_API_KEY", "test-key")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example.com,http://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Port)
	}
	if !cfg.HasDatabase() {
		t.Error("should have database configured")
	}
	if !cfg.HasAdvice() {
		t.Error("should have advice service configured")
	}
	if cfg.Advice.APIKey != "test-key" {
		t.Errorf("APIKey = %s, want test-key", cfg.Advice.APIKey)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v, want 2 entries", cfg.AllowedOrigins)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ADVICE_URL", "")
	t.Setenv("ADVICE_API_KEY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr default = %s, want localhost:6379", cfg.RedisAddr)
	}
	if cfg.Advice.TimeoutSeconds != 30 {
		t.Errorf("advice timeout default = %d, want 30", cfg.Advice.TimeoutSeconds)
	}
	if cfg.HasDatabase() {
		t.Error("database should not be configured")
	}
	if cfg.HasAdvice() {
		t.Error("advice should not be configured without url and key")
	}
}
