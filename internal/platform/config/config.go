// Package config loads process-wide configuration from the environment.
package config

import (
	"log"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all settings consumed at startup. Token TTLs are deliberately
// not configurable; they are compile-time constants in the jwt package.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" env-default:":8080"`

	DB    DB
	Redis Redis

	// SecretAccess and SecretRefresh sign the two token kinds. They must be
	// distinct values.
	SecretAccess  string `env:"SECRET_ACCESS" env-required:"true"`
	SecretRefresh string `env:"SECRET_REFRESH" env-required:"true"`
}

// DB holds the Postgres connection settings.
type DB struct {
	Host     string `env:"DB_HOST" env-default:"localhost"`
	Port     string `env:"DB_PORT" env-default:"5432"`
	User     string `env:"DB_USER" env-required:"true"`
	Password string `env:"DB_PASSWORD" env-required:"true"`
	Name     string `env:"DB_NAME" env-required:"true"`
	SSLMode  string `env:"DB_SSLMODE" env-default:"disable"`

	// RunMigrations enables gorm AutoMigrate at startup.
	RunMigrations bool `env:"RUN_MIGRATIONS" env-default:"false"`
}

// Redis holds the Redis connection settings. Redis is optional; the service
// runs uncached when it is unreachable.
type Redis struct {
	Host     string `env:"REDIS_HOST" env-default:"localhost"`
	Port     string `env:"REDIS_PORT" env-default:"6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad is Load for the bootstrap path; it exits the process on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("cannot read config: %v", err)
	}
	return cfg
}
