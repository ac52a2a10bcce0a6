package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nfimport/internal/config"
	"nfimport/internal/logger"
)

func TestSetupWriter_JSONWithComponent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, logger.SetupWriter(config.LogConfig{Level: "info", Format: "json"}, &buf))

	l := logger.WithComponent("importService")
	l.Info().Str("invoice_key", "123").Msg("imported")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "importService", entry["component"])
	assert.Equal(t, "123", entry["invoice_key"])
	assert.Equal(t, "imported", entry["message"])
}

func TestSetupWriter_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, logger.SetupWriter(config.LogConfig{Level: "warn", Format: "json"}, &buf))
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	l := logger.WithComponent("test")
	l.Info().Msg("hidden")

	assert.Empty(t, buf.String())
}

func TestSetupWriter_InvalidLevel(t *testing.T) {
	err := logger.SetupWriter(config.LogConfig{Level: "loud", Format: "json"}, &bytes.Buffer{})
	assert.Error(t, err)
}
