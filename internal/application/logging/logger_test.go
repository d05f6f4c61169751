package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/eartask-go/internal/application/logging"
)

func TestLoggerFromContext_FallsBackToNoOp(t *testing.T) {
	logger := logging.LoggerFromContext(context.Background())

	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Log("INFO", "ignored", nil)
	})
}

func TestSlogLogger_WritesJSONWithMetadata(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := logging.NewSlogLogger(&buf, "info", "json")
	ctx := logging.WithLogger(context.Background(), logger)

	// Act
	logging.LoggerFromContext(ctx).Log("WARNING", "search call failed", map[string]interface{}{
		"attempt": 2,
	})

	// Assert
	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "search call failed", record["msg"])
	assert.EqualValues(t, 2, record["attempt"])
}

func TestSlogLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewSlogLogger(&buf, "warn", "text")

	logger.Log("INFO", "hidden", nil)
	logger.Log("ERROR", "shown", nil)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
