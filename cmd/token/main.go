// Command token mints a bearer token for the estimator API using the same
// JWT_SECRET and JWT_ISSUER as the server.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/mmynk/estimator/internal/auth"
	"github.com/mmynk/estimator/internal/config"
	"github.com/mmynk/estimator/pkg/logging"
)

func main() {
	user := flag.String("user", "", "user ID to put in the token")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if *user == "" {
		slog.Error("-user is required")
		os.Exit(2)
	}
	if !cfg.AuthEnabled() {
		slog.Error("JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer, *ttl).Generate(*user)
	if err != nil {
		slog.Error("Failed to generate token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
