//go:build !integration

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"oja-pos-licensing/internal/domain/activation"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const fullConfig = `
log:
  level: debug
  format: console
http:
  port: 9090
admin:
  api_key: admin-key
  jwt_secret: jwt-secret
  token_ttl: 5m
database:
  url: postgres://user:pw@localhost:5432/oja
redis:
  url: localhost:6379
activation:
  secret_key: custom-secret
  attempt_limit: 3
  attempt_window: 1m
`

func TestLoadConfig(t *testing.T) {
	t.Run("should parse yaml and fill defaults", func(t *testing.T) {
		t.Setenv("OJA_ACTIVATION_SECRET", "")
		t.Setenv("PORT", "")
		cfg, err := LoadConfig(writeConfig(t, fullConfig), true)
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if cfg.HTTP.Port != 9090 || cfg.Log.Level != "debug" {
			t.Errorf("unexpected parsed values: %+v", cfg)
		}
		if cfg.Admin.TokenTTL != 5*time.Minute {
			t.Errorf("expected token ttl 5m, got %s", cfg.Admin.TokenTTL)
		}
		if cfg.Activation.SecretKey != "custom-secret" || cfg.Activation.AttemptLimit != 3 {
			t.Errorf("unexpected activation config: %+v", cfg.Activation)
		}
		if cfg.Activation.LockTTL != 10*time.Second {
			t.Errorf("expected default lock ttl, got %s", cfg.Activation.LockTTL)
		}
		if !cfg.Runtime.Dev {
			t.Error("expected dev flag to be carried into runtime config")
		}
	})

	t.Run("should let the environment override the file", func(t *testing.T) {
		t.Setenv("OJA_ACTIVATION_SECRET", "env-secret")
		t.Setenv("PORT", "7070")
		cfg, err := LoadConfig(writeConfig(t, fullConfig), false)
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if cfg.Activation.SecretKey != "env-secret" {
			t.Errorf("expected env secret, got %q", cfg.Activation.SecretKey)
		}
		if cfg.HTTP.Port != 7070 {
			t.Errorf("expected env port, got %d", cfg.HTTP.Port)
		}
	})

	t.Run("should reject a bad PORT", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		if _, err := LoadConfig(writeConfig(t, fullConfig), false); err == nil {
			t.Fatal("expected error for non-numeric PORT")
		}
	})

	t.Run("should require the database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		body := strings.Replace(fullConfig, "url: postgres://user:pw@localhost:5432/oja", "url: \"\"", 1)
		_, err := LoadConfig(writeConfig(t, body), false)
		if err == nil || !strings.Contains(err.Error(), "database.url") {
			t.Fatalf("expected database.url error, got %v", err)
		}
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), false); err == nil {
			t.Fatal("expected error for missing config file")
		}
	})

	t.Run("should fail on invalid yaml", func(t *testing.T) {
		if _, err := LoadConfig(writeConfig(t, "log: [unterminated"), false); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestLoadGeneratorConfig(t *testing.T) {
	t.Run("should tolerate a missing file", func(t *testing.T) {
		t.Setenv("OJA_ACTIVATION_SECRET", "")
		cfg, err := LoadGeneratorConfig(filepath.Join(t.TempDir(), "absent.yaml"))
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if cfg.Activation.SecretKey != activation.DefaultSecretKey {
			t.Errorf("expected built-in key, got %q", cfg.Activation.SecretKey)
		}
		if cfg.Activation.OutputDir != "." {
			t.Errorf("expected current directory as output, got %q", cfg.Activation.OutputDir)
		}
	})

	t.Run("should not require service settings", func(t *testing.T) {
		cfg, err := LoadGeneratorConfig(writeConfig(t, "activation:\n  output_dir: /tmp/codes\n"))
		if err != nil {
			t.Fatalf("expected no error, but got: %v", err)
		}
		if cfg.Activation.OutputDir != "/tmp/codes" {
			t.Errorf("unexpected output dir %q", cfg.Activation.OutputDir)
		}
	})
}
