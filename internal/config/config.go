package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port    string `env:"PORT"     envDefault:"8080"`
	Env     string `env:"APP_ENV"  envDefault:"development"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// Storage. MockData switches the listing store to the in-memory mock.
	DBDSN    string `env:"DB_DSN"    envDefault:"soukel.db"`
	MockData bool   `env:"MOCK_DATA" envDefault:"false"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"`

	// Auth
	SessionSecret string `env:"SESSION_SECRET" envDefault:"dev-secret-change-me"`
	AdminEmail    string `env:"ADMIN_EMAIL"    envDefault:"admin@soukel.ps"`

	// Optional Redis for verification/reset tokens; empty keeps them in memory.
	RedisAddr string `env:"REDIS_ADDR"`

	// Outgoing mail; empty host disables sending.
	SMTPHost string `env:"SMTP_HOST"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPFrom string `env:"SMTP_EMAIL"`
	SMTPPass string `env:"SMTP_PASSWORD"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	log.Printf("[config] PORT=%s APP_ENV=%s DB_DSN=%s MOCK_DATA=%v LOG_LEVEL=%s REDIS_ADDR=%s",
		cfg.Port, cfg.Env, cfg.DBDSN, cfg.MockData, cfg.LogLevel, cfg.RedisAddr)
	return cfg, nil
}
