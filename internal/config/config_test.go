package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
signing_secret: "0123456789abcdef0123456789abcdef"
credentials:
  username: admin
  password_hash: "$2a$10$abcdefghijklmnopqrstuv"
`

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "valid config",
			yaml:    validYAML,
			wantErr: "",
		},
		{
			name:    "missing signing_secret fails validation",
			yaml:    "credentials: {username: admin, password_hash: x}",
			wantErr: "config validation failed",
		},
		{
			name: "short signing_secret fails validation",
			yaml: `signing_secret: "too-short"
credentials: {username: admin, password_hash: x}`,
			wantErr: "config validation failed",
		},
		{
			name:    "missing credentials fails validation",
			yaml:    `signing_secret: "0123456789abcdef0123456789abcdef"`,
			wantErr: "config validation failed",
		},
		{
			name:    "port out of range fails validation",
			yaml:    validYAML + "port: 70000\n",
			wantErr: "config validation failed",
		},
		{
			name:    "unknown log level fails validation",
			yaml:    validYAML + "log_level: TRACE\n",
			wantErr: "config validation failed",
		},
		{
			name:    "non-positive token_ttl fails validation",
			yaml:    validYAML + "token_ttl: 0s\n",
			wantErr: "config validation failed",
		},
		{
			name:    "invalid yaml syntax",
			yaml:    `invalid: [yaml: content`,
			wantErr: "failed to unmarshal config file",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			path := writeTestConfig(t, test.yaml)
			cfg, err := Load(path)

			if test.wantErr != "" {
				require.ErrorContains(t, err, test.wantErr)
				assert.Nil(t, cfg)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeTestConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "localhost:3000", cfg.Address())
	assert.Equal(t, ":memory:", cfg.DBFilepath)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, "admin", cfg.Credentials.Username)
}

func TestLoad_Overrides(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeTestConfig(t, validYAML+`
log_level: DEBUG
dev_mode: true
host: 0.0.0.0
port: 8080
token_ttl: 15m
`))
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	require.ErrorContains(t, err, "failed to read config file")
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, cfg)
}

//nolint:paralleltest // modifies the environment
func TestLoad_Env(t *testing.T) {
	path := writeTestConfig(t, validYAML)

	t.Run("overrides", func(t *testing.T) {
		t.Setenv(EnvPort, "9090")
		t.Setenv(EnvSigningSecret, strings.Repeat("s", MinSigningSecretLen))
		t.Setenv(EnvDBFilepath, "/tmp/catalog.sqlite")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 9090, cfg.Port)
		assert.Equal(t, strings.Repeat("s", MinSigningSecretLen), cfg.SigningSecret)
		assert.Equal(t, "/tmp/catalog.sqlite", cfg.DBFilepath)
	})

	t.Run("invalid port", func(t *testing.T) {
		t.Setenv(EnvPort, "http")

		_, err := Load(path)
		require.ErrorContains(t, err, EnvPort)
	})

	t.Run("empty secret", func(t *testing.T) {
		t.Setenv(EnvSigningSecret, "")

		_, err := Load(path)
		require.ErrorContains(t, err, EnvSigningSecret)
	})
}

func TestMarshal_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.SigningSecret = strings.Repeat("k", MinSigningSecretLen)
	cfg.TokenTTL = 90 * time.Minute
	cfg.Credentials = Credentials{Username: "admin", PasswordHash: "hash"}

	data, err := Marshal(cfg)
	require.NoError(t, err)

	loaded, err := Load(writeTestConfig(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_LogValue(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.SigningSecret = "super-secret-value"
	cfg.Credentials.PasswordHash = "super-secret-hash"

	rendered := cfg.LogValue().String()
	assert.NotContains(t, rendered, "super-secret")
	assert.Contains(t, rendered, "localhost:3000")
}

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)
	return path
}
