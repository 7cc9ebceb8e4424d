package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config is the server configuration, read from the environment. A .env file
// in the working directory is loaded first when present.
type Config struct {
	Addr       string        `env:"SERENE_ADDR" envDefault:":8490"`
	DBPath     string        `env:"SERENE_DB_PATH" envDefault:"serene.db"`
	SessionTTL time.Duration `env:"SERENE_SESSION_TTL" envDefault:"720h"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	// Missing .env is fine; the environment alone is enough.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
