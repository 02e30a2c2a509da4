package iosources_test

import (
	"os"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnxref/internal/iofs"
	"github.com/gnames/gnxref/internal/iosources"
	"github.com/gnames/gnxref/pkg/config"
	"github.com/gnames/gnxref/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	home := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(home))
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir(home)})
	return cfg
}

func writeSources(t *testing.T, cfg *config.Config, data string) {
	t.Helper()
	path := config.SourcesFilePath(cfg.HomeDir)
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
}

func TestLoad(t *testing.T) {
	assert := assert.New(t)
	cfg := testConfig(t)
	writeSources(t, cfg, `
taxonomies:
  - id: IOC
    title: IOC World Bird List
    version: "14.2"
    path: /data/ioc.json
    code: zoological
  - id: HM
    title: Howard and Moore
    path: /data/hm.json
`)

	res, err := iosources.New(cfg).Load()
	require.NoError(t, err)
	require.Len(t, res.Taxonomies, 2)
	assert.Equal("IOC", res.Taxonomies[0].ID)
	assert.Equal("14.2", res.Taxonomies[0].Version)
	assert.Equal("/data/hm.json", res.Taxonomies[1].Path)
}

func TestLoadMissingFile(t *testing.T) {
	cfg := testConfig(t)

	_, err := iosources.New(cfg).Load()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SourcesConfigError, gnErr.Code)
}

func TestLoadBadYAML(t *testing.T) {
	cfg := testConfig(t)
	writeSources(t, cfg, "taxonomies: [id: broken")

	_, err := iosources.New(cfg).Load()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.SourcesConfigError, gnErr.Code)
}

func TestLoadInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	writeSources(t, cfg, `
taxonomies:
  - id: IOC
`)

	_, err := iosources.New(cfg).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is required")
}
