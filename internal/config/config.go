// Package config loads server configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Port         int
	DBPath       string
	TemplatesDir string
	LogLevel     string

	// JWTSecret enables bearer token auth when set.
	JWTSecret string
	JWTIssuer string
}

// Load reads the given .env files (".env" when none are named) and then the
// environment. Variables already set in the environment win over the files.
// Missing files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q", os.Getenv("PORT"))
	}

	return Config{
		Port:         port,
		DBPath:       getEnv("DB_PATH", "./data/estimates.db"),
		TemplatesDir: getEnv("TEMPLATES_DIR", "./templates"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTIssuer:    getEnv("JWT_ISSUER", "estimator"),
	}, nil
}

// AuthEnabled reports whether requests must carry a bearer token.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != ""
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
