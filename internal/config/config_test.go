package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoad_FileAndDefaults(t *testing.T) {
	dir := writeConfig(t, `
port: "9090"
uhoo:
  username: user@example.com
  password: secret
  client_id: client-1
poll:
  interval: 30s
`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.Uhoo.Username != "user@example.com" || cfg.Uhoo.ClientID != "client-1" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Poll.Interval != 30*time.Second {
		t.Errorf("poll.interval: want 30s, got %s", cfg.Poll.Interval)
	}
	if cfg.Uhoo.Timeout != 15*time.Second {
		t.Errorf("uhoo.timeout default: want 15s, got %s", cfg.Uhoo.Timeout)
	}
	if cfg.DB.Path != "app.db" || cfg.Accessory.Name != "uHoo" || cfg.Auth.TokenTTL != time.Hour {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_EnvOverridesWithoutFile(t *testing.T) {
	t.Setenv("UHOO_BRIDGE_UHOO_USERNAME", "env-user")
	t.Setenv("UHOO_BRIDGE_UHOO_PASSWORD", "env-pass")
	t.Setenv("UHOO_BRIDGE_UHOO_CLIENT_ID", "env-client")
	t.Setenv("UHOO_BRIDGE_POLL_INTERVAL", "2m")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Uhoo.Username != "env-user" || cfg.Uhoo.Password != "env-pass" || cfg.Uhoo.ClientID != "env-client" {
		t.Fatalf("env overrides not applied: %+v", cfg.Uhoo)
	}
	if cfg.Poll.Interval != 2*time.Minute {
		t.Fatalf("poll.interval: want 2m, got %s", cfg.Poll.Interval)
	}
}

func TestLoad_MissingCredentialsIsConfigurationError(t *testing.T) {
	dir := writeConfig(t, "uhoo:\n  username: someone\n")

	_, err := Load(dir)
	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("want *ConfigurationError, got %T: %v", err, err)
	}
	if len(ce.Missing) != 2 || ce.Missing[0] != "uhoo.password" || ce.Missing[1] != "uhoo.client_id" {
		t.Fatalf("unexpected missing keys: %v", ce.Missing)
	}
}

func TestValidate_RejectsNonPositiveInterval(t *testing.T) {
	cfg := Config{
		Uhoo: UhooConfig{Username: "u", Password: "p", ClientID: "c", Timeout: time.Second},
		Poll: PollConfig{Interval: 0},
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for zero interval")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := writeConfig(t, "uhoo: [unclosed\n")
	if _, err := Load(dir); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
}
