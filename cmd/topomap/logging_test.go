package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/topomap/mapper"
)

func TestNewLogger(t *testing.T) {
	_, err := newLogger(mapper.LogConfig{Level: "loud"}, false)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "topomap.log")
	logger, err := newLogger(mapper.LogConfig{Logfile: path, MaxSize: 1, MaxAge: 1, Level: "warn"}, false)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown", zap.Int("regions", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"shown"`)
	assert.Contains(t, string(data), `"regions":3`)
	assert.NotContains(t, string(data), "hidden")

	logger, err = newLogger(mapper.LogConfig{Level: "warn"}, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}
