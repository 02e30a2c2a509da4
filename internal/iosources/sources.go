// Package iosources loads the taxonomies.yaml configuration from the
// file system.
package iosources

import (
	"os"

	"github.com/gnames/gnxref/pkg/config"
	"github.com/gnames/gnxref/pkg/sources"
	"gopkg.in/yaml.v3"
)

type iosources struct {
	cfg *config.Config
}

func New(cfg *config.Config) sources.Sources {
	res := iosources{cfg: cfg}
	return &res
}

func (s *iosources) Load() (*sources.SourcesConfig, error) {
	sourcesPath := config.SourcesFilePath(s.cfg.HomeDir)
	sourcesConfig, err := loadSourcesConfig(sourcesPath)
	if err != nil {
		return nil, SourcesConfigError(sourcesPath, err)
	}
	return sourcesConfig, nil
}

func loadSourcesConfig(path string) (*sources.SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var res sources.SourcesConfig
	if err = yaml.Unmarshal(data, &res); err != nil {
		return nil, err
	}

	if err = res.Validate(); err != nil {
		return nil, err
	}

	return &res, nil
}
