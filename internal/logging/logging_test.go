package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fleet/internal/logging"
)

func TestNew_ProdWritesJSONAtInfo(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logger := logging.New(logging.EnvProd, &buf)

	logger.Debug("hidden")
	logger.Info("server started", "port", ":8080")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "server started", entry["msg"])
	assert.Equal(t, ":8080", entry["port"])
}

func TestNew_LocalWritesText(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	logging.New(logging.EnvLocal, &buf).Debug("visible", "truck", 7)

	assert.Contains(t, buf.String(), "msg=visible")
	assert.Contains(t, buf.String(), "truck=7")
}
