package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Init("warn", "json", &buf))
	t.Cleanup(func() { _ = Init("info", "text", nil) })

	logrus.Info("dropped")
	logrus.WithField("user", "ana").Warn("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "ana", entry["user"])

	assert.Error(t, Init("loud", "json", &buf))
	assert.Error(t, Init("info", "xml", &buf))
}
