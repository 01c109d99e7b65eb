// Package config loads the bridge configuration from configs/config.yml and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. UHOO_BRIDGE_UHOO_PASSWORD.
const EnvPrefix = "UHOO_BRIDGE"

type Config struct {
	Port      string          `mapstructure:"port"`
	Accessory AccessoryConfig `mapstructure:"accessory"`
	Uhoo      UhooConfig      `mapstructure:"uhoo"`
	Poll      PollConfig      `mapstructure:"poll"`
	DB        DBConfig        `mapstructure:"db"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Log       LogConfig       `mapstructure:"log"`
}

type AccessoryConfig struct {
	Name string `mapstructure:"name"`
}

// UhooConfig holds the vendor account. Username, password and client id are opaque.
type UhooConfig struct {
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
	ClientID    string        `mapstructure:"client_id"`
	APIBaseURL  string        `mapstructure:"api_base_url"`
	AuthBaseURL string        `mapstructure:"auth_base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type AuthConfig struct {
	SigningKey  string        `mapstructure:"signing_key"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	AllowSignUp bool          `mapstructure:"allow_sign_up"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

var defaults = map[string]any{
	"port":               "8080",
	"accessory.name":     "uHoo",
	"uhoo.username":      "",
	"uhoo.password":      "",
	"uhoo.client_id":     "",
	"uhoo.api_base_url":  "https://api.uhooinc.com",
	"uhoo.auth_base_url": "https://auth.uhooinc.com",
	"uhoo.timeout":       "15s",
	"poll.interval":      "60s",
	"db.path":            "app.db",
	"auth.signing_key":   "",
	"auth.token_ttl":     "1h",
	"auth.allow_sign_up": false,
	"log.level":          "info",
}

// ConfigurationError reports missing required settings. It is fatal and never retried.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return "missing required configuration: " + strings.Join(e.Missing, ", ")
}

// Load reads config.yml from the given directories (first match wins), applies
// environment overrides and validates the result. A missing file is not an error.
func Load(dirs ...string) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks presence of the vendor credentials and sane intervals.
func (c Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.Uhoo.Username) == "" {
		missing = append(missing, "uhoo.username")
	}
	if c.Uhoo.Password == "" {
		missing = append(missing, "uhoo.password")
	}
	if strings.TrimSpace(c.Uhoo.ClientID) == "" {
		missing = append(missing, "uhoo.client_id")
	}
	if len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	if c.Poll.Interval <= 0 {
		return fmt.Errorf("poll.interval must be positive, got %s", c.Poll.Interval)
	}
	if c.Uhoo.Timeout <= 0 {
		return fmt.Errorf("uhoo.timeout must be positive, got %s", c.Uhoo.Timeout)
	}
	return nil
}
