package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)
	return filepath.Join(dir, "mangatown")
}

func TestLoadMerged_NoProfile(t *testing.T) {
	isolate(t)

	cfg, used, err := LoadMerged(Options{PageWorkers: 8})
	require.NoError(t, err)
	assert.Contains(t, used, "default config")
	assert.Equal(t, 8, cfg.PageWorkers)
	assert.Equal(t, 2, cfg.ChapterWorkers)
	assert.Equal(t, 3, cfg.Retries)
	assert.Equal(t, ".", cfg.Output)
}

func TestInitSwitchAndLoad(t *testing.T) {
	root := isolate(t)

	path, err := InitDefaultConfig(false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "configs", "Default.yaml"), path)

	_, err = InitDefaultConfig(false)
	assert.True(t, errors.Is(err, os.ErrExist))

	cfg := DefaultConfig()
	cfg.Output = "/srv/manga"
	cfg.PageWorkers = 0
	cfg.DefaultSeries = "Wakusei No Samidare"
	cfg.DefaultChapters = "0-5,63-"
	cfg.Cloudflare = true
	require.NoError(t, SaveYAML(cfg, filepath.Join(root, "configs", "work.yaml")))
	require.NoError(t, SwitchConfig("work"))

	loaded, used, err := LoadMerged(Options{ChapterWorkers: 4, CBZ: true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "configs", "work.yaml"), used)
	assert.Equal(t, "/srv/manga", loaded.Output)
	assert.Equal(t, 5, loaded.PageWorkers)
	assert.Equal(t, 4, loaded.ChapterWorkers)
	assert.True(t, loaded.CBZ)
	assert.True(t, loaded.Cloudflare)
	assert.Equal(t, "0-5,63-", loaded.DefaultChapters)

	list, err := ListConfigs()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Default", list[0].Label)
	assert.False(t, list[0].Active)
	assert.Equal(t, "work", list[1].Label)
	assert.True(t, list[1].Active)
}

func TestLoadMerged_IgnoreConfig(t *testing.T) {
	isolate(t)
	_, err := InitDefaultConfig(false)
	require.NoError(t, err)

	cfg, used, err := LoadMerged(Options{IgnoreConfig: true, Output: "out"})
	require.NoError(t, err)
	assert.Equal(t, "(ignored config)", used)
	assert.Equal(t, "out", cfg.Output)
}

func TestSwitchConfig_Unknown(t *testing.T) {
	isolate(t)
	assert.Error(t, SwitchConfig("missing"))
	assert.Error(t, SwitchConfig(" "))
}

func TestActiveConfigPath_MissingFile(t *testing.T) {
	root := isolate(t)
	require.NoError(t, os.MkdirAll(root, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "current_config"), []byte("gone"), 0644))

	_, err := ActiveConfigPath()
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoConfig))

	_, _, err = LoadMerged(Options{})
	assert.Error(t, err)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.FilenameTemplate = "{dest}/{page}{ext}"
	cfg.Print(&buf)

	assert.Contains(t, buf.String(), " -page_workers: 5")
	assert.Contains(t, buf.String(), " -filename_template: {dest}/{page}{ext}")
	assert.NotContains(t, buf.String(), "cloudflare")
}
