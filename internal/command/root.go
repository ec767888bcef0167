// Package command contains the CLI command constructors.
package command

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/stolasapp/catalog/internal/config"
	"github.com/stolasapp/catalog/internal/observability"
	"github.com/stolasapp/catalog/internal/sec"
)

const defaultUsername = "admin"

// RootCommand instantiates the root command, with all sub-commands bound.
func RootCommand() *cobra.Command {
	configFilePath := filepath.Join(xdg.ConfigHome, "catalog.yaml")
	cmd := &cobra.Command{
		Use:          "catalog [command] [flags]",
		Short:        "The product catalog API",
		Version:      version(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) (err error) {
			cfg, err := loadOrInitConfig(configFilePath)
			if err != nil {
				return fmt.Errorf("failed to load configuration file: %w", err)
			}
			logger := observability.InitSlog(cfg)
			logger.DebugContext(cmd.Context(), "configuration loaded", slog.Any("config", cfg))
			slog.SetDefault(logger)
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(
		&configFilePath,
		"config", "c",
		configFilePath,
		"path to the configuration file",
	)

	cmd.AddCommand(
		serveCommand(),
		passwdCommand(),
	)

	return cmd
}

func loadOrInitConfig(configFilePath string) (*config.Config, error) {
	cfg, err := config.Load(configFilePath)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}

	resp, initErr := prompt(fmt.Sprintf("Config not found at %s. Create one? [y|N] ", configFilePath), false)
	if initErr != nil || !bytes.Equal(resp, []byte("y")) {
		return nil, errors.Join(err, initErr)
	}

	username, err := prompt(fmt.Sprintf("Enter the admin username [%s]: ", defaultUsername), false)
	if err != nil {
		return nil, err
	}
	if len(username) == 0 {
		username = []byte(defaultUsername)
	}
	passwd, err := prompt("Enter the admin password: ", true)
	if err != nil {
		return nil, err
	}
	hash, err := sec.HashPassword(passwd)
	if err != nil {
		return nil, err
	}
	secret, err := newSigningSecret()
	if err != nil {
		return nil, err
	}

	cfg = config.Default()
	cfg.SigningSecret = secret
	cfg.Credentials = config.Credentials{
		Username:     string(username),
		PasswordHash: string(hash),
	}
	if err = config.Validate(cfg); err != nil {
		return nil, err
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	if err = os.MkdirAll(filepath.Dir(configFilePath), 0o700); err != nil { //nolint:mnd // owner rwx access
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err = os.WriteFile(configFilePath, data, 0o600); err != nil { //nolint:mnd // owner rw access
		return nil, fmt.Errorf("failed to write config file to %s: %w", configFilePath, err)
	}
	return cfg, nil
}

// newSigningSecret returns a random hex-encoded HMAC key.
func newSigningSecret() (string, error) {
	key := make([]byte, config.MinSigningSecretLen)
	if _, err := rand.Read(key); err != nil {
		return "", fmt.Errorf("failed to generate signing secret: %w", err)
	}
	return hex.EncodeToString(key), nil
}
