package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stolasapp/catalog/internal/config"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("json respects level", func(t *testing.T) {
		t.Parallel()

		cfg := config.Default()
		cfg.LogLevel = "WARN"
		var buf bytes.Buffer
		logger := NewLogger(&buf, cfg, false)

		logger.Info("dropped")
		logger.Warn("kept", slog.Int("port", 3000))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "kept", entry["msg"])
		assert.InDelta(t, 3000, entry["port"], 0)
		assert.NotContains(t, entry, slog.SourceKey)
	})

	t.Run("text with source in dev mode", func(t *testing.T) {
		t.Parallel()

		cfg := config.Default()
		cfg.LogLevel = "DEBUG"
		cfg.DevMode = true
		var buf bytes.Buffer
		logger := NewLogger(&buf, cfg, true)

		logger.Debug("hello")
		assert.Contains(t, buf.String(), "msg=hello")
		assert.Contains(t, buf.String(), "source=")
	})
}

func TestToLogLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, toLogLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, toLogLevel("INFO"))
	assert.Equal(t, slog.LevelWarn, toLogLevel("warn"))
	assert.Equal(t, slog.LevelError, toLogLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, toLogLevel(""))
}
