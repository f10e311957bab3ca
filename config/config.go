package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"APP_ENV" env-default:"local"`
	HTTPPort string `env:"PORT" env-default:"8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	DatabaseURL string `env:"DATABASE_URL"`
	DBHost      string `env:"DB_HOST" env-default:"localhost"`
	DBPort      string `env:"DB_PORT" env-default:"5432"`
	DBUser      string `env:"DB_USER" env-default:"postgres"`
	DBPassword  string `env:"DB_PASSWORD"`
	DBName      string `env:"DB_NAME" env-default:"shoply"`

	JWTSecret string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"30m"`
}

// Load reads .env if present, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return &cfg, nil
}

// DSN returns the Postgres connection string, preferring DATABASE_URL.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}
