package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vearutop/spatial/internal/logging"
)

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Output: &buf})
	require.NoError(t, err)

	logger = logging.NewComponentLogger(logger, "extract")
	logger.Debug("hidden")
	logger.Info("exported", slog.String(logging.FieldRole, "left"), logging.Error(errors.New("boom")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "info", record["level"])
	assert.Equal(t, "exported", record["msg"])
	assert.Equal(t, "extract", record["component"])
	assert.Equal(t, "left", record["role"])
	assert.Equal(t, "boom", record["error"])
	assert.Contains(t, record, "ts")
}

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Output: &buf})
	require.NoError(t, err)

	logger = logging.NewComponentLogger(logger, "cli").With(slog.String(logging.FieldItem, "IMG_1.jpg"))
	logger.Info("hidden")
	logger.WithGroup("plan").Warn("stereo pair missing", slog.Int("images", 2))

	out := buf.String()
	assert.Contains(t, out, "WARN  [cli] stereo pair missing\n")
	assert.Contains(t, out, "    - item: IMG_1.jpg\n")
	assert.Contains(t, out, "    - plan.images: 2\n")
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, ".go:")
}

func TestAutoFormatUsesJSONForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "auto", Output: &buf})
	require.NoError(t, err)

	logger.Info("hello")
	assert.True(t, json.Valid(bytes.TrimSpace(buf.Bytes())), buf.String())
}

func TestNewRejectsUnknownSettings(t *testing.T) {
	_, err := logging.New(logging.Options{Format: "xml"})
	assert.Error(t, err)

	_, err = logging.New(logging.Options{Level: "loud"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":        slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	} {
		got, err := logging.ParseLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "test")
	assert.False(t, logger.Enabled(t.Context(), slog.LevelError))
	logger.Error("dropped")
}
