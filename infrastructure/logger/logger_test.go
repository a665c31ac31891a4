package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"podfeed-api/infrastructure/logger/logruslog"
	"podfeed-api/infrastructure/logger/zaplog"
	"podfeed-api/pkg/config"
)

func TestNew(t *testing.T) {
	l, closeFn, err := New(config.LogConfig{Backend: "logrus", Level: "info"})
	require.NoError(t, err)
	assert.IsType(t, &logruslog.Logger{}, l)
	assert.NoError(t, closeFn())

	l, closeFn, err = New(config.LogConfig{Backend: "zap", Level: "debug"})
	require.NoError(t, err)
	assert.IsType(t, &zaplog.Logger{}, l)
	assert.NoError(t, closeFn())

	_, _, err = New(config.LogConfig{Backend: "glog"})
	assert.Error(t, err)
}
