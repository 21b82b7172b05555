package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, zerolog.DebugLevel)

	SetLevel("verbose")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	SetLevel("warn")
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

func TestSetupRoutesGlobalLogger(t *testing.T) {
	var buf bytes.Buffer
	Setup(&buf, zerolog.InfoLevel)
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	log.Info().Str("sku_id", "sku-1").Msg("plan built")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "plan built", line["message"])
	assert.Equal(t, "sku-1", line["sku_id"])
}
