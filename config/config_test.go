package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-html/console"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "nojs-state.db", cfg.StateDB)
	assert.False(t, cfg.Persist)
	assert.Equal(t, "appstate", cfg.StoreName)
	assert.Equal(t, console.LevelInfo, cfg.Level())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NOJS_LOG_LEVEL", "trace")
	t.Setenv("NOJS_STATE_DB", "/tmp/app.db")
	t.Setenv("NOJS_PERSIST", "true")
	t.Setenv("NOJS_STORE_NAME", "todo")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, console.LevelTrace, cfg.Level())
	assert.Equal(t, "/tmp/app.db", cfg.StateDB)
	assert.True(t, cfg.Persist)
	assert.Len(t, cfg.StoreOptions(console.New(console.LevelSilent)), 2)
}

func TestLoadErrors(t *testing.T) {
	t.Run("bad bool", func(t *testing.T) {
		t.Setenv("NOJS_PERSIST", "maybe")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse env:")
	})
	t.Run("bad level", func(t *testing.T) {
		t.Setenv("NOJS_LOG_LEVEL", "loud")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "NOJS_LOG_LEVEL")
	})
}

func TestLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, console.LevelInfo, Config{LogLevel: "loud"}.Level())
	assert.Equal(t, console.LevelSilent, Config{LogLevel: "5"}.Level())
}
