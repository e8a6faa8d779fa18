package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

const validYAML = `
name: customer-api
server:
  port: 9090
database:
  driver: sqlite
  dsn: ":memory:"
auth:
  token:
    secret: test-secret
    ttl: 30m
logging:
  level: debug
`

func TestLoad_FromFile(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, validYAML))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Auth.Token.Secret != "test-secret" {
		t.Errorf("unexpected secret: %q", cfg.Auth.Token.Secret)
	}
	if cfg.Auth.Token.TTL != 30*time.Minute {
		t.Errorf("expected ttl 30m, got %v", cfg.Auth.Token.TTL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected level debug, got %q", cfg.Logging.Level)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, `
database:
  driver: sqlite
  dsn: ":memory:"
auth:
  token:
    secret: s
`))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Name != "customer-api" {
		t.Errorf("expected default name, got %q", cfg.Name)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Auth.Token.TTL != time.Hour {
		t.Errorf("expected default ttl 1h, got %v", cfg.Auth.Token.TTL)
	}
	if cfg.Auth.Password.BcryptCost != 10 {
		t.Errorf("expected default bcrypt cost 10, got %d", cfg.Auth.Password.BcryptCost)
	}
}

func TestLoad_MissingSecretFatal(t *testing.T) {
	_, err := Load(writeConfigFile(t, `
database:
  driver: sqlite
  dsn: ":memory:"
`))
	if err == nil {
		t.Fatal("expected error for missing token secret")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("AUTH_TOKEN_SECRET", "from-env")
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := Load(writeConfigFile(t, validYAML))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Auth.Token.Secret != "from-env" {
		t.Errorf("expected env secret, got %q", cfg.Auth.Token.Secret)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected env port 7070, got %d", cfg.Server.Port)
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", ":memory:")
	t.Setenv("AUTH_TOKEN_SECRET", "env-secret")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Auth.Token.Secret != "env-secret" {
		t.Errorf("unexpected secret: %q", cfg.Auth.Token.Secret)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/does/not/exist.yml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
