package config

import (
	"errors"
	"os"

	"github.com/caarlos0/env/v7"
	"github.com/joho/godotenv"
)

type Config struct {
	Port           int    `env:"PORT" envDefault:"8080"`
	BodyLimitBytes int    `env:"BODY_LIMIT_BYTES" envDefault:"0"`
	BodyLimitMB    int    `env:"BODY_LIMIT_MB" envDefault:"4"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS" envDefault:"*"`

	RateLimitMax           int `env:"RATE_LIMIT_MAX" envDefault:"60"`
	RateLimitWindowSeconds int `env:"RATE_LIMIT_WINDOW_SECONDS" envDefault:"60"`

	// Postgres
	DBHost     string `env:"DB_HOST" envDefault:"db"`
	DBPort     int    `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`

	// Rendering. PublicBaseURL overrides the per-request origin when the app
	// sits behind a proxy; WkhtmltopdfCmd is an explicit tool path that takes
	// precedence over PATH lookup and the well-known install locations.
	PublicBaseURL  string `env:"PUBLIC_BASE_URL"`
	WkhtmltopdfCmd string `env:"WKHTMLTOPDF_CMD"`

	// SMTP
	MailerHost     string `env:"MAILER_HOST"`
	MailerPort     int    `env:"MAILER_PORT" envDefault:"587"`
	MailerLogin    string `env:"MAILER_LOGIN"`
	MailerPassword string `env:"MAILER_PASSWORD"`
	MailerFrom     string `env:"MAILER_FROM"`
	MailerFromName string `env:"MAILER_FROM_NAME"`
}

// Load reads .env (when present) and parses the environment into a Config.
func Load() (Config, error) {
	var c Config

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}
	if err := env.Parse(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
