package iofs

import (
	"os"

	"github.com/gnames/gnxref/pkg/config"
	"github.com/gnames/gnxref/pkg/templates"
)

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.DataDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	if err := os.WriteFile(
		configPath, []byte(templates.ConfigYAML), 0644,
	); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

func EnsureSourcesFile(homeDir string) error {
	sourcesPath := config.SourcesFilePath(homeDir)

	// Check if sources file already exists
	if _, err := os.Stat(sourcesPath); err == nil {
		return nil
	}

	// Write embedded taxonomies.yaml to the config directory
	if err := os.WriteFile(
		sourcesPath, []byte(templates.SourcesYAML), 0644,
	); err != nil {
		return CopyFileError(sourcesPath, err)
	}

	return nil
}
