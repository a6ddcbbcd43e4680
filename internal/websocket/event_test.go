package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsEvents(t *testing.T) {
	before := time.Now().UTC()

	created := SettingsCreated(sampleSettings())
	updated := SettingsUpdated(sampleSettings())

	assert.Equal(t, "settings.created", created.Type)
	assert.Equal(t, "settings.updated", updated.Type)
	assert.Zero(t, created.Seq)
	assert.False(t, created.Timestamp.Before(before))
	assert.Equal(t, time.UTC, created.Timestamp.Location())
}

func TestEvent_JSON(t *testing.T) {
	event := SettingsUpdated(sampleSettings())
	event.Seq = 7

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "settings.updated", decoded["type"])
	assert.Equal(t, float64(7), decoded["seq"])
	assert.Contains(t, decoded, "timestamp")

	settings, ok := decoded["settings"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "200000", settings["balance"])
	assert.Equal(t, float64(25), settings["years"])
}

func TestEvent_JSON_OmitsMissingSettings(t *testing.T) {
	data, err := json.Marshal(SettingsCreated(nil))
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"settings"`)
}
