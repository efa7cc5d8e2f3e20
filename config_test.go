package limitbook

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "limitbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, "instrument: ABC\nlog_level: debug\nbuffer_size: 64\ntick_size: \"0.05\"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "ABC", cfg.Instrument)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(64), cfg.BufferSize)

	tick, err := cfg.Tick()
	require.NoError(t, err)
	assert.True(t, tick.Equal(decimal.RequireFromString("0.05")))
}

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	t.Setenv("LIMITBOOK_INSTRUMENT", "XYZ")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "XYZ", cfg.Instrument)
	assert.Equal(t, DefaultConfig().LogLevel, cfg.LogLevel)
	assert.Equal(t, int64(defaultBufferSize), cfg.BufferSize)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "tick_size: \"-1\"\n"))
	assert.ErrorContains(t, err, "must be positive")

	_, err = LoadConfig(writeConfig(t, "tick_size: abc\n"))
	assert.ErrorContains(t, err, "tick_size")
}
