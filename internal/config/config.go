// Package config loads the YAML application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yokinanya/omega-miya/internal/security"
	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "30m" parse directly.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if errDecode := value.Decode(&raw); errDecode != nil {
		return errDecode
	}
	parsed, errParse := time.ParseDuration(strings.TrimSpace(raw))
	if errParse != nil {
		return fmt.Errorf("config: parse duration %q: %w", raw, errParse)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// DatabaseConfig selects the storage backend through one DSN. Postgres
// URLs and key/value DSNs open Postgres; anything else opens SQLite.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// ServerConfig holds the admin API listener settings.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// LogConfig holds logging output settings.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// AdminConfig holds the admin API credential. The password is stored as
// a bcrypt hash, never in plaintext.
type AdminConfig struct {
	Username     string `yaml:"username"`
	PasswordHash string `yaml:"password_hash"`
}

// JWTConfig holds token signing settings for the admin API.
type JWTConfig struct {
	Secret string   `yaml:"secret"`
	Expiry Duration `yaml:"expiry"`
}

// CooldownConfig holds the expired-cooldown sweeper settings.
type CooldownConfig struct {
	PurgeInterval Duration `yaml:"purge_interval"`
}

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Admin    AdminConfig    `yaml:"admin"`
	JWT      JWTConfig      `yaml:"jwt"`
	Cooldown CooldownConfig `yaml:"cooldown"`
}

// DefaultConfigPath is used when no path is given on the command line.
const DefaultConfigPath = "config.yaml"

// Load reads and validates the configuration file, filling defaults for
// omitted fields. A missing JWT secret gets a random per-process one, so
// issued tokens stop validating across restarts.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultConfigPath
	}
	raw, errRead := os.ReadFile(path)
	if errRead != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, errRead)
	}
	var cfg Config
	if errUnmarshal := yaml.Unmarshal(raw, &cfg); errUnmarshal != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, errUnmarshal)
	}
	if errDefaults := cfg.applyDefaults(); errDefaults != nil {
		return nil, errDefaults
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("config: database.dsn is required")
	}
	if c.Server.Listen == "" {
		c.Server.Listen = ":9443"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSizeMB <= 0 {
		c.Log.MaxSizeMB = 50
	}
	if c.Log.MaxBackups <= 0 {
		c.Log.MaxBackups = 5
	}
	if c.Log.MaxAgeDays <= 0 {
		c.Log.MaxAgeDays = 30
	}
	if strings.TrimSpace(c.JWT.Secret) == "" {
		secret, errGenerate := security.GenerateRandomString(64)
		if errGenerate != nil {
			return fmt.Errorf("config: generate jwt secret: %w", errGenerate)
		}
		c.JWT.Secret = secret
	}
	if c.JWT.Expiry <= 0 {
		c.JWT.Expiry = Duration(24 * time.Hour)
	}
	if c.Cooldown.PurgeInterval <= 0 {
		c.Cooldown.PurgeInterval = Duration(time.Hour)
	}
	return nil
}
