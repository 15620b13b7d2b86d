package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

func TestLoadConfigCreatesDefault(t *testing.T) {
	dir := isolate(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "m15", cfg.DefaultStyle)
	assert.Equal(t, 100*time.Millisecond, cfg.APIDelay())
	assert.Equal(t, filepath.Join(dir, "data", "framesmith", "art"), cfg.ImageServer.Root)

	_, err = os.Stat(filepath.Join(dir, "config", "framesmith", "config.toml"))
	assert.NoError(t, err)
}

func TestLoadConfigKeepsDefaultsForMissingKeys(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config", "framesmith", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("default_style = \"eighth\"\n[upscaler]\nfactor = 2\n"), 0644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "eighth", cfg.DefaultStyle)
	assert.Equal(t, 2, cfg.Upscaler.Factor)
	assert.Equal(t, "lanczos", cfg.Upscaler.Model)
	assert.Equal(t, 4, cfg.Workers)
}

func TestSetDefaultStyle(t *testing.T) {
	isolate(t)

	require.NoError(t, SetDefaultStyle("seventh"))
	name, err := GetDefaultStyle()
	require.NoError(t, err)
	assert.Equal(t, "seventh", name)
}

func TestPaths(t *testing.T) {
	dir := isolate(t)
	assert.Equal(t, filepath.Join(dir, "data", "framesmith", "styles"), GetStyleLibraryPath())
	assert.Equal(t, filepath.Join(dir, "cache", "framesmith"), GetCacheDir())
}
