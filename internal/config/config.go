// Package config reads the server configuration from the environment. A
// .env file, when present, is loaded first so local development needs no
// exported variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment names recognized by APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds everything the server binary needs to start.
type Config struct {
	Env       string
	Port      int
	DBDriver  string
	DBDSN     string
	SecretKey string
	SeedFile  string
}

// Load reads the environment (and an optional .env file) into a Config.
// In production a real SECRET_KEY is mandatory; in development a fixed
// fallback keeps the first run friction-free.
func Load() (Config, error) {
	// Missing .env is fine; the environment may be fully exported.
	_ = godotenv.Load()

	cfg := Config{
		Env:       getEnv("APP_ENV", EnvDevelopment),
		Port:      getEnvInt("PORT", 8080),
		DBDriver:  getEnv("DB_DRIVER", "sqlite"),
		DBDSN:     getEnv("DB_DSN", "catalog.db"),
		SecretKey: getEnv("SECRET_KEY", ""),
		SeedFile:  getEnv("SEED_FILE", ""),
	}

	switch cfg.DBDriver {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("config: unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	if cfg.SecretKey == "" {
		if cfg.Env == EnvProduction {
			return Config{}, fmt.Errorf("config: SECRET_KEY must be set in production")
		}
		cfg.SecretKey = "dev-secret-key-change-me"
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
