package iofs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnxref/internal/iofs"
	"github.com/gnames/gnxref/pkg/config"
	"github.com/gnames/gnxref/pkg/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))

	for _, dir := range []string{
		config.ConfigDir(home),
		config.DataDir(home),
	} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// idempotent
	require.NoError(t, iofs.EnsureDirs(home))
}

func TestEnsureConfigFile(t *testing.T) {
	assert := assert.New(t)
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))

	require.NoError(t, iofs.EnsureConfigFile(home))
	data, err := os.ReadFile(config.ConfigFilePath(home))
	require.NoError(t, err)
	assert.Equal(templates.ConfigYAML, string(data))

	// an existing file is left alone
	custom := []byte("graph:\n  search_limit: 7\n")
	err = os.WriteFile(config.ConfigFilePath(home), custom, 0644)
	require.NoError(t, err)
	require.NoError(t, iofs.EnsureConfigFile(home))
	data, err = os.ReadFile(config.ConfigFilePath(home))
	require.NoError(t, err)
	assert.Equal(string(custom), string(data))
}

func TestEnsureSourcesFile(t *testing.T) {
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))

	require.NoError(t, iofs.EnsureSourcesFile(home))
	data, err := os.ReadFile(config.SourcesFilePath(home))
	require.NoError(t, err)
	assert.Equal(t, templates.SourcesYAML, string(data))
}

func TestEnsureConfigFileNoDir(t *testing.T) {
	home := filepath.Join(t.TempDir(), "missing")
	err := iofs.EnsureConfigFile(home)
	assert.Error(t, err)
}
