package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	InstanceID string        `env:"GREENAPI_INSTANCE_ID,required,notEmpty"`
	APIToken   string        `env:"GREENAPI_API_TOKEN,required,notEmpty"`
	APIURL     string        `env:"GREENAPI_API_URL" envDefault:"https://api.green-api.com"`
	Timeout    time.Duration `env:"GREENAPI_TIMEOUT" envDefault:"60s"`

	Port      string `env:"PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is read first unless WHATSAPP_ENV is "production";
// variables already set in the environment win over the file.
func LoadConfig() (*Config, error) {
	if os.Getenv("WHATSAPP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("invalid configuration: GREENAPI_TIMEOUT must be positive")
	}
	return cfg, nil
}

// ConsoleLogs reports whether logs should be human-readable
func (c *Config) ConsoleLogs() bool {
	return c.LogFormat == "console"
}
