package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "info", Out: &buf})

	log.Component("cache").Info().Str("key", "stock:version").Msg("versión incrementada")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "cache", line["component"])
	assert.Equal(t, "stock:version", line["key"])
	assert.Equal(t, "versión incrementada", line["message"])
	assert.Contains(t, line, "time")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "warn", Out: &buf})

	log.Info().Msg("descartado")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNew_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Env: "production", Level: "verbose", Out: &buf})

	log.Debug().Msg("descartado")
	log.Info().Msg("visible")
	assert.NotContains(t, buf.String(), "descartado")
	assert.Contains(t, buf.String(), "visible")
}

func TestNop_DiscardsEverything(t *testing.T) {
	log := Nop()
	assert.NotPanics(t, func() {
		log.Error().Msg("nada")
	})
	assert.Equal(t, "disabled", log.Zerolog().GetLevel().String())
}
