package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func TestLoadDefaultsWithNoConfigFile(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	theme := c.Theme()
	assert.EqualValues(t, theme.Palette, "unicode")
	assert.EqualValues(t, theme.Color, false)
	assert.EqualValues(t, theme.DefaultDirection, "")
}

func TestLoadReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("palette: ascii\ncolor: true\ndefaultDirection: LR\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	theme := c.Theme()
	assert.EqualValues(t, theme.Palette, "ascii")
	assert.EqualValues(t, theme.Color, true)
	assert.EqualValues(t, theme.DefaultDirection, "LR")
}

func TestLoadRejectsUnknownPalette(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("palette: crayon\n"), 0o644))

	_, err := Load(path)
	require.NotNil(t, err)
}

func TestLoadRejectsUnknownDirection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaultDirection: SIDEWAYS\n"), 0o644))

	_, err := Load(path)
	require.NotNil(t, err)
}

func TestLoadMissingConfigFileFallsBackToDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.EqualValues(t, c.Theme().Palette, "unicode")
}
