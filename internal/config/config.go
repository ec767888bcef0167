// Package config handles resolving configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

// Environment variables that take precedence over the configuration file.
const (
	EnvPort          = "CATALOG_PORT"
	EnvSigningSecret = "CATALOG_SIGNING_SECRET"
	EnvDBFilepath    = "CATALOG_DB_FILEPATH"
)

// MinSigningSecretLen is the shortest accepted HMAC signing secret.
const MinSigningSecretLen = 32

// Config is the service configuration.
type Config struct {
	LogLevel      string        `yaml:"log_level"      validate:"oneof=DEBUG INFO WARN ERROR"`
	DevMode       bool          `yaml:"dev_mode"`
	Host          string        `yaml:"host"`
	Port          int           `yaml:"port"           validate:"min=1,max=65535"`
	DBFilepath    string        `yaml:"db_filepath"    validate:"required"`
	SigningSecret string        `yaml:"signing_secret" validate:"min=32"`
	TokenTTL      time.Duration `yaml:"token_ttl"      validate:"gt=0"`
	Credentials   Credentials   `yaml:"credentials"`
}

// Credentials identify the single account allowed to log in.
type Credentials struct {
	Username     string `yaml:"username"      validate:"required"`
	PasswordHash string `yaml:"password_hash" validate:"required"`
}

// Default returns a version of the config with all default values populated.
// Note that this configuration is _not_ valid, as the user must set the
// signing secret and credentials.
func Default() *Config {
	return &Config{
		LogLevel:      "INFO",
		Host:          "localhost",
		Port:          3000, //nolint:mnd // default listening port
		DBFilepath:    ":memory:",
		SigningSecret: "", // must be set by the user
		TokenTTL:      time.Hour,
	}
}

// Address returns the host:port the HTTP server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// LogValue satisfies [slog.LogValuer], redacting secrets.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("log_level", c.LogLevel),
		slog.Bool("dev_mode", c.DevMode),
		slog.String("address", c.Address()),
		slog.String("db_filepath", c.DBFilepath),
		slog.Duration("token_ttl", c.TokenTTL),
		slog.String("username", c.Credentials.Username),
	)
}

// Load loads a YAML configuration file from a path, merges it with defaults,
// applies environment overrides, and validates it for completeness.
func Load(path string) (*Config, error) {
	bytes, err := os.ReadFile(path) //nolint:gosec // allow the config file to be loaded from anywhere
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err = yaml.Unmarshal(bytes, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config file at %s: %w", path, err)
	}
	if err = applyEnv(cfg); err != nil {
		return nil, err
	}
	if err = Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg for completeness.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// Marshal encodes cfg as YAML suitable for [Load].
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to YAML: %w", err)
	}
	return data, nil
}

func applyEnv(cfg *Config) error {
	if val, ok := os.LookupEnv(EnvPort); ok {
		port, err := cast.ToIntE(val)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		cfg.Port = port
	}
	if val, ok := os.LookupEnv(EnvSigningSecret); ok {
		if val == "" {
			return errors.New(EnvSigningSecret + " is set but empty")
		}
		cfg.SigningSecret = val
	}
	if val, ok := os.LookupEnv(EnvDBFilepath); ok && val != "" {
		cfg.DBFilepath = val
	}
	return nil
}
