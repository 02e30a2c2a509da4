package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gnxref"

	// StoreFileName is the default name of the persisted graph file.
	StoreFileName = "gnxref.db"

	// SourcesFileName is the name of the taxonomy sources file.
	SourcesFileName = "taxonomies.yaml"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnxref by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the directory path for generated data.
// Returns ~/.local/share/gnxref by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// ConfigFilePath returns the full path to the config.yaml file.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// SourcesFilePath returns the full path to the taxonomies.yaml file.
func SourcesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), SourcesFileName)
}

// StorePath returns the path of the persisted graph file, honoring the
// Store.Path override.
func (c *Config) StorePath() string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(DataDir(c.HomeDir), StoreFileName)
}
