// Package config handles application configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	BaseURL        string   `env:"BASE_URL" envDefault:"http://localhost:8080"`
	DatabaseURL    string   `env:"DATABASE_URL"`
	RedisAddr      string   `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	DataDir        string   `env:"DATA_DIR"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	Advice AdviceConfig
}

// AdviceConfig configures the external coaching-advice service. The API key
// is an explicit value here; no component reads it from ambient state.
type AdviceConfig struct {
	URL            string `env:"ADVICE_URL"`
	APIKey         string `env:"ADVICE_API_KEY"`
	TimeoutSeconds int    `env:"ADVICE_TIMEOUT_SECONDS" envDefault:"30"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// HasDatabase reports whether a postgres store is configured.
func (c Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// HasAdvice reports whether the coaching-advice service is configured.
// Without it, analysis degrades to "no advice available".
func (c Config) HasAdvice() bool {
	return c.Advice.URL != "" && c.Advice.APIKey != ""
}
