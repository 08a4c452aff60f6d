package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"simpletimer/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	config, err := LoadConfig("SimpleTimer", filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, model.DefaultConfig(), config)
}

func TestLoadConfigAppliesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	content := "backend: yaml\ndata_dir: /tmp/timer\ntick_interval_ms: 250\nkeep_screen_on: false\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig("SimpleTimer", path)
	require.NoError(t, err)
	assert.Equal(t, model.Config{
		Backend:      model.BackendYAML,
		DataDir:      "/tmp/timer",
		TickInterval: 250 * time.Millisecond,
		KeepScreenOn: false,
		LogLevel:     "debug",
	}, config)
}

func TestLoadConfigKeepsDefaultsForZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(path, []byte("tick_interval_ms: -5\n"), 0o644))

	config, err := LoadConfig("SimpleTimer", path)
	require.NoError(t, err)
	assert.Equal(t, time.Second, config.TickInterval)
	assert.True(t, config.KeepScreenOn)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(path, []byte("backend: [unterminated\n"), 0o644))

	config, err := LoadConfig("SimpleTimer", path)
	assert.Error(t, err)
	assert.Equal(t, model.DefaultConfig(), config)
}

func TestResolveDataDirKeepsExplicitValue(t *testing.T) {
	config, err := ResolveDataDir("SimpleTimer", model.Config{DataDir: "/srv/timer"})
	require.NoError(t, err)
	assert.Equal(t, "/srv/timer", config.DataDir)
}
