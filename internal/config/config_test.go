package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"PORT", "DB_PATH", "TEMPLATES_DIR", "LOG_LEVEL", "JWT_SECRET", "JWT_ISSUER"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8080 || cfg.Addr() != ":8080" {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.DBPath != "./data/estimates.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.TemplatesDir != "./templates" || cfg.LogLevel != "info" || cfg.JWTIssuer != "estimator" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.AuthEnabled() {
		t.Error("auth should be disabled without JWT_SECRET")
	}
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	content := "PORT=9090\nDB_PATH=/tmp/est.db\nJWT_SECRET=s3cret\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	// the environment wins over the file
	t.Setenv("DB_PATH", "/var/lib/est.db")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.DBPath != "/var/lib/est.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if !cfg.AuthEnabled() {
		t.Error("auth should be enabled")
	}
}

func TestLoadInvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "http")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for invalid PORT")
	}
}
