// Package config loads runtime configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the server needs to start.
type Config struct {
	Port         string        `envconfig:"PORT" default:"8080"`
	GeminiAPIKey string        `envconfig:"GEMINI_API_KEY"`
	DataFile     string        `envconfig:"DATA_FILE" default:"emotion_data.txt"`
	PinFile      string        `envconfig:"PIN_FILE" default:"data/pin.dat"`
	JWTSecret    string        `envconfig:"JWT_SECRET" default:"maumlog-dev-secret"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	// ContextWindow bounds how many trailing utterances are rendered
	// as conversation context for transcript analysis.
	ContextWindow int `envconfig:"CONTEXT_WINDOW" default:"10"`
}

// Load reads .env if present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // missing .env is fine

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return &cfg, nil
}
