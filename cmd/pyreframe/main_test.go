package main

import (
	"testing"

	"github.com/pyreframe/engine/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevel(t *testing.T) {
	log, err := newLogger(config.LoggingConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	log, err = newLogger(config.LoggingConfig{Level: "bogus", Format: "console"})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestProfileMode(t *testing.T) {
	assert.NotNil(t, profileMode("cpu"))
	assert.NotNil(t, profileMode("mem"))
	assert.NotNil(t, profileMode("trace"))
}
