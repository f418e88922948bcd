package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	for _, key := range []string{
		"ENV", "APP_SECRET", "TOKEN_TTL", "LOCATION", "ALLOW_DUPLICATE_EMAILS", "ADMIN_EMAILS",
		"HTTP_ADDRESS", "STORAGE_DRIVER", "POSTGRES_USER", "POSTGRES_DB", "REDIS_ENABLED",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "app_secret: s3cret\nstorage:\n  driver: memory\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "local" {
		t.Errorf("Env = %q, want local", cfg.Env)
	}
	if cfg.TokenTTL != 72*time.Hour {
		t.Errorf("TokenTTL = %v, want 72h", cfg.TokenTTL)
	}
	if len(cfg.Auth.AdminEmails) != 1 || cfg.Auth.AdminEmails[0] != DefaultAdminEmail {
		t.Errorf("AdminEmails = %v, want [%s]", cfg.Auth.AdminEmails, DefaultAdminEmail)
	}
	if cfg.Auth.AllowDuplicateEmails {
		t.Error("email uniqueness must be strict by default")
	}
	if cfg.Redis.Enabled {
		t.Error("redis must be disabled by default")
	}
	if cfg.HTTPServer.Address != "localhost:5000" {
		t.Errorf("Address = %q", cfg.HTTPServer.Address)
	}
	if cfg.Redis.AcquireTimeout != 2*time.Second || cfg.Redis.RetryInterval != 25*time.Millisecond {
		t.Errorf("redis lock timings = %v/%v", cfg.Redis.AcquireTimeout, cfg.Redis.RetryInterval)
	}

	loc, err := cfg.LoadLocation()
	if err != nil || loc != time.Local {
		t.Errorf("LoadLocation = %v, %v; want Local", loc, err)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
env: prod
app_secret: s3cret
location: UTC
auth:
  allow_duplicate_emails: true
  admin_emails: ["boss@corp", "ops@corp"]
storage:
  driver: postgres
postgres:
  user: booking
  dbname: booking
redis:
  enabled: true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.Auth.AllowDuplicateEmails || !cfg.Redis.Enabled {
		t.Errorf("flags not read from yaml: %+v %+v", cfg.Auth, cfg.Redis)
	}
	if len(cfg.Auth.AdminEmails) != 2 || cfg.Auth.AdminEmails[1] != "ops@corp" {
		t.Errorf("AdminEmails = %v", cfg.Auth.AdminEmails)
	}

	loc, err := cfg.LoadLocation()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("LoadLocation = %v, %v; want UTC", loc, err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing secret", "storage:\n  driver: memory\n"},
		{"unknown driver", "app_secret: s\nstorage:\n  driver: sqlite\n"},
		{"postgres without db", "app_secret: s\nstorage:\n  driver: postgres\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
