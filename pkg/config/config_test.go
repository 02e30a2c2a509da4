package config_test

import (
	"testing"

	"github.com/gnames/gnxref/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	assert := assert.New(t)
	cfg := config.New()

	assert.Equal(50, cfg.Graph.SearchLimit)
	assert.Equal("zoological", cfg.Graph.Code)
	assert.Equal("info", cfg.Log.Level)
	assert.Equal("text", cfg.Log.Format)
	assert.Greater(cfg.JobsNumber, 0)
}

func TestUpdate(t *testing.T) {
	assert := assert.New(t)
	cfg := config.New()

	cfg.Update([]config.Option{
		config.OptGraphSearchLimit(10),
		config.OptGraphCode("botanical"),
		config.OptLogLevel("debug"),
		config.OptLogFormat("json"),
		config.OptJobsNumber(4),
		config.OptStorePath("/tmp/graph.db"),
	})

	assert.Equal(10, cfg.Graph.SearchLimit)
	assert.Equal("botanical", cfg.Graph.Code)
	assert.Equal("debug", cfg.Log.Level)
	assert.Equal("json", cfg.Log.Format)
	assert.Equal(4, cfg.JobsNumber)
	assert.Equal("/tmp/graph.db", cfg.Store.Path)
}

func TestUpdateRejectsInvalid(t *testing.T) {
	assert := assert.New(t)
	cfg := config.New()

	cfg.Update([]config.Option{
		config.OptGraphSearchLimit(0),
		config.OptGraphCode("bacterial"),
		config.OptLogLevel("loud"),
		config.OptJobsNumber(-1),
	})

	// Invalid values are ignored, config stays at defaults.
	assert.Equal(50, cfg.Graph.SearchLimit)
	assert.Equal("zoological", cfg.Graph.Code)
	assert.Equal("info", cfg.Log.Level)
	assert.Greater(cfg.JobsNumber, 0)
}

func TestToOptionsRoundTrip(t *testing.T) {
	assert := assert.New(t)
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptGraphSearchLimit(25),
		config.OptLogFormat("json"),
	})

	fresh := config.New()
	fresh.Update(cfg.ToOptions())

	assert.Equal(cfg.Graph, fresh.Graph)
	assert.Equal(cfg.Log, fresh.Log)
	assert.Equal(cfg.JobsNumber, fresh.JobsNumber)
}

func TestStorePath(t *testing.T) {
	assert := assert.New(t)
	cfg := config.New()
	cfg.Update([]config.Option{config.OptHomeDir("/home/birder")})
	assert.Equal(
		"/home/birder/.local/share/gnxref/gnxref.db", cfg.StorePath())

	cfg.Update([]config.Option{config.OptStorePath("/tmp/g.db")})
	assert.Equal("/tmp/g.db", cfg.StorePath())
}
