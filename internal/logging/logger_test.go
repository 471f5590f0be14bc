package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "INFO", LevelInfo.String())
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestNewLogger_NilConfig(t *testing.T) {
	logger := NewLogger(nil)
	assert.NotNil(t, logger)
	assert.Equal(t, LevelInfo, logger.level)
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{
		Level:     LevelDebug,
		Format:    "json",
		Output:    &buf,
		Component: "storage",
	})

	logger.Info(context.Background(), "persisted regions", "count", 7)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "persisted regions", entry["msg"])
	assert.Equal(t, "storage", entry["component"])
	assert.Equal(t, float64(7), entry["count"])
}

func TestLogger_LevelGate(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelWarn, Format: "text", Output: &buf})

	logger.Debug(context.Background(), "debug message")
	logger.Info(context.Background(), "info message")
	assert.Empty(t, buf.String())

	logger.Warn(context.Background(), nil, "warn message")
	assert.Contains(t, buf.String(), "warn message")
}

func TestLogger_ErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&LoggerConfig{Level: LevelInfo, Format: "json", Output: &buf})

	logger.Error(context.Background(), errors.New("store is full"), "write failed")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "store is full", entry["error"])
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(&LoggerConfig{Level: LevelInfo, Format: "json", Output: &buf})

	logger := base.With("region", "hippocampus")
	logger.Info(context.Background(), "selected")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "hippocampus", entry["region"])
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(&LoggerConfig{Level: LevelInfo, Format: "json", Output: &buf})

	base.WithComponent("viewer").Info(context.Background(), "ready")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "viewer", entry["component"])
}

func TestNopLogger(t *testing.T) {
	var logger Logger = NopLogger{}

	// Must be safe to call with anything, including nil errors.
	logger.Debug(context.Background(), "x")
	logger.Info(context.Background(), "x", "k", "v")
	logger.Warn(context.Background(), nil, "x")
	logger.Error(context.Background(), errors.New("e"), "x")
	assert.Equal(t, logger, logger.With("k", "v"))
	assert.Equal(t, logger, logger.WithComponent("c"))
}
