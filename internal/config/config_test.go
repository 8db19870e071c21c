package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".claudechat"), 0755))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Empty(t, cfg.Model)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".claudechat"), 0755))

	cfg := DefaultConfig()
	cfg.Theme = "light"
	cfg.Model = "claude-3-5-sonnet-20241022"
	cfg.MaxTokens = 2000
	cfg.Logging.DebugMode = true
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.Theme)
	assert.Equal(t, "claude-3-5-sonnet-20241022", loaded.Model)
	assert.Equal(t, 2000, loaded.MaxTokens)
	assert.True(t, loaded.Logging.DebugMode)
}

func TestDirPrefersProjectLocal(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	local := filepath.Join(dir, ".claudechat")
	require.NoError(t, os.Mkdir(local, 0755))

	got, err := Dir()
	require.NoError(t, err)
	assert.Equal(t, local, got)
}

func TestCorruptConfigFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	local := filepath.Join(dir, ".claudechat")
	require.NoError(t, os.Mkdir(local, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(local, "config.json"), []byte("{broken"), 0644))

	cfg, err := Load()
	assert.Error(t, err)
	assert.Equal(t, "dark", cfg.Theme)
}
