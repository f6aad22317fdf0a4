package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureRejectsUnknownLevel(t *testing.T) {
	err := Configure(Options{Level: "chatty"})
	assert.Error(t, err)
}

func TestLogEventWritesJSONFields(t *testing.T) {
	require.NoError(t, Configure(Options{Level: "debug", Format: "json"}))

	var buf bytes.Buffer
	Logger.SetOutput(&buf)

	LogEvent(logrus.InfoLevel, "weather lookup", logrus.Fields{"location": "Paris"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "weather lookup", entry["msg"])
	assert.Equal(t, "Paris", entry["location"])
	assert.Equal(t, "info", entry["level"])
}
