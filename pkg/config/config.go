// Package config provides configuration management for GNxref.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults.
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions
// - Invalid options are rejected with gn.Warn() - config stays valid
// - ToOptions() converts persistent fields (those in config.yaml)
//
// # Environment Variables
//
// Use the GNXREF_ prefix with underscores for nesting:
//
//	GNXREF_GRAPH_SEARCH_LIMIT=100
//	GNXREF_STORE_PATH=/var/lib/gnxref/graph.db
//	GNXREF_LOG_LEVEL=debug
//	GNXREF_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete GNxref configuration.
type Config struct {
	// Graph contains settings for the cross-reference graph and its
	// query layer.
	Graph GraphConfig `mapstructure:"graph" yaml:"graph"`

	// Store contains settings for graph persistence.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for name parsing
	// and cross-taxonomy matching. Defaults to the number of available
	// threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where the config and data directories reside.
	// It is set by the CLI during init, there is no default for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// GraphConfig contains cross-reference graph settings.
type GraphConfig struct {
	// SearchLimit is the maximum number of taxa a single name lookup
	// returns. Longer result sets are truncated deterministically.
	SearchLimit int `mapstructure:"search_limit" yaml:"search_limit"`

	// Code is the default nomenclatural code used for canonical name
	// normalization. Valid values: "zoological", "botanical".
	// Individual sources may override it in taxonomies.yaml.
	Code string `mapstructure:"code" yaml:"code"`
}

// StoreConfig contains settings for the persisted graph snapshot.
type StoreConfig struct {
	// Path is the SQLite file holding the serialized graph. Empty
	// means the default location under the data directory.
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Level of logging -- 'error', 'warn', 'info', 'debug'.
	Level string `mapstructure:"level" yaml:"level"`

	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format" yaml:"format"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Graph: GraphConfig{
			SearchLimit: 50,
			Code:        "zoological",
		},
		Store: StoreConfig{},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
