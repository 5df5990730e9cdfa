package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithWriter_JSONOutsideDev(t *testing.T) {
	var buf bytes.Buffer
	SetupWithWriter("prod", "info", &buf)

	log.Info().Str("record_id", "7").Msg("completed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "completed", entry["message"])
	assert.Equal(t, "7", entry["record_id"])
}

func TestSetupWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	SetupWithWriter("prod", "warn", &buf)

	log.Info().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupWithWriter_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	SetupWithWriter("prod", "nope", &buf)

	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())
}
