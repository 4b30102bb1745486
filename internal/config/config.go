// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the runtime configuration, populated from HALAQA_*
// environment variables.
type Config struct {
	// Port is the HTTP listen port.
	Port int `envconfig:"PORT" default:"8080"`

	// DBPath is the sqlite database file path.
	DBPath string `envconfig:"DB_PATH" default:"./data/halaqa.db"`

	// JWTSecret signs session tokens. Override in any real deployment.
	JWTSecret string `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`

	// TokenTTL is how long session tokens stay valid.
	TokenTTL time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	// LogLevel is debug, info, warn or error.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("halaqa", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
