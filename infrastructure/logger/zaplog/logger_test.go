package zaplog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_PassesFields(t *testing.T) {
	core, recorded := observer.New(zap.DebugLevel)
	logger := Wrap(zap.New(core))

	logger.Warn("Enrichment failed", map[string]interface{}{
		"url":   "https://example.com/feed.xml",
		"error": errors.New("timeout"),
	})

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Enrichment failed", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "https://example.com/feed.xml", ctx["url"])
	assert.Equal(t, "timeout", ctx["error"])
}

func TestLogger_Levels(t *testing.T) {
	core, recorded := observer.New(zap.InfoLevel)
	logger := Wrap(zap.New(core))

	logger.Debug("dropped", nil)
	logger.Info("kept", nil)
	logger.Error("kept too", nil)

	assert.Equal(t, 2, recorded.Len())
}

func TestNew(t *testing.T) {
	logger, err := New("not-a-level")
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.NoError(t, logger.Close())
}
