package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/time-master/internal/config"
)

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.True(t, cfg.SeedEnabled())

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "Load must not create the file")
}

func TestLoadTemplateMatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tm", "config.yaml")
	require.NoError(t, config.WriteDefault(path, false))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "# only a few keys\nseed: false\ntags: [Work, Play]\ntimezone: UTC\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.SeedEnabled())
	assert.Equal(t, []string{"Work", "Play"}, cfg.Tags)
	assert.Equal(t, config.DefaultTitle, cfg.DefaultTitle)
	assert.Equal(t, config.DefaultTag, cfg.DefaultTag)
	assert.Equal(t, config.DefaultOtherTag, cfg.OtherTag)
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadFillsSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tags: [Work, Misc]\nother_tag: Misc\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Seed)
	assert.True(t, *cfg.Seed)

	data, err := config.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "seed: true")
	assert.NotContains(t, string(data), "null")
}

func TestLoadOtherTag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tags: [Work, Misc]\nother_tag: Misc\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Misc", cfg.OtherTag)

	data, err := config.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "other_tag: Misc")
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tags: [unterminated\n"), 0o600))

	cfg, err := config.Load(path)
	require.Error(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadInvalidTimezone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: Mars/Olympus\n"), 0o600))

	_, err := config.Load(path)
	assert.ErrorContains(t, err, "Mars/Olympus")
}

func TestWriteDefaultRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: false\n"), 0o600))

	assert.Error(t, config.WriteDefault(path, false))
	require.NoError(t, config.WriteDefault(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.Template, string(data))
}

func TestMarshal(t *testing.T) {
	data, err := config.Marshal(config.Default())
	require.NoError(t, err)
	assert.Contains(t, string(data), "default_tag: Untagged")
	assert.Contains(t, string(data), "- Community")
}
